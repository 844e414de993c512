package app

import (
	"context"
	"log"
	"os"
	"time"

	"career-match/internal/cache"
	"career-match/internal/chat"
	"career-match/internal/chat/provider"
	chatgemini "career-match/internal/chat/provider/gemini"
	chatopenai "career-match/internal/chat/provider/openai"
	"career-match/internal/chat/provider/watsonx"
	"career-match/internal/config"
	"career-match/internal/database"
	"career-match/internal/database/migration"
	dbpostgres "career-match/internal/database/postgres"
	"career-match/internal/database/seeder"
	"career-match/internal/domain/matching"
	"career-match/internal/domain/ranking"
	"career-match/internal/embedding"
	"career-match/internal/repository"
	"career-match/internal/usecase"
	"career-match/internal/ws"
)

// Container owns every long-lived dependency. Postgres is optional: with
// no DB_HOST the server runs on in-memory repositories seeded with the
// demo catalog.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB       database.DB
	Catalog  repository.Catalog
	Profiles repository.Profiles

	Embedder embedding.Provider
	Engine   *matching.Engine
	Ranker   *ranking.Ranker
	RecCache *cache.Recommendations

	Hub        *ws.Hub
	ChatRouter *chat.Router

	Recommendations usecase.RecommendationUsecase
	ProfileUC       usecase.ProfileUsecase
	JobUC           usecase.JobUsecase
	ChatUC          usecase.ChatUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	c := &Container{Config: cfg, Logger: logger}

	if err := c.initStorage(cfg); err != nil {
		return nil, err
	}
	c.initMatching(cfg)
	c.initChat(cfg)

	hub := ws.NewHub(logger)
	notifier := ws.NewHubNotifier(hub)
	c.Hub = hub

	c.Recommendations = usecase.NewRecommendationUsecase(c.Profiles, c.Catalog, c.Engine, c.Ranker, c.RecCache, logger)
	c.ProfileUC = usecase.NewProfileUsecase(c.Profiles, c.Catalog, c.RecCache, notifier)
	c.JobUC = usecase.NewJobUsecase(c.Catalog, c.RecCache, notifier)
	c.ChatUC = usecase.NewChatUsecase(c.Profiles, c.ChatRouter)

	return c, nil
}

func (c *Container) initStorage(cfg config.Config) error {
	if cfg.Database.DBHost == "" {
		memCatalog := repository.NewMemoryCatalog()
		memProfiles := repository.NewMemoryProfiles()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := seeder.Seed(ctx, memCatalog, memProfiles, c.Logger); err != nil {
			return err
		}

		c.Catalog = memCatalog
		c.Profiles = memProfiles
		c.Logger.Printf("storage | mode=memory")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout+5*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	c.DB = db
	c.Catalog = repository.NewPostgresCatalog(db)
	c.Profiles = repository.NewPostgresProfiles(db)
	c.Logger.Printf("storage | mode=postgres host=%s db=%s", cfg.Database.DBHost, cfg.Database.DBName)
	return nil
}

func (c *Container) initMatching(cfg config.Config) {
	var embedder embedding.Provider
	if cfg.Embedding.GeminiAPIKey != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		g, err := embedding.NewGemini(ctx, cfg.Embedding.GeminiAPIKey, cfg.Embedding.Model)
		if err != nil {
			c.Logger.Printf("embedding | provider=gemini init_error=%v", err)
			embedder = embedding.Unavailable{}
		} else {
			embedder = g
			if cfg.Redis.Addr != "" {
				embedder = embedding.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.TTL, embedder, c.Logger)
			}
		}
	} else {
		c.Logger.Printf("embedding | provider=none exact_match_only=true")
		embedder = embedding.Unavailable{}
	}
	c.Embedder = embedder

	engineCfg := matching.DefaultConfig()
	engineCfg.SimilarityThreshold = cfg.Matching.SimilarityThreshold
	engineCfg.RequiredWeight = cfg.Matching.RequiredWeight
	engineCfg.PreferredWeight = cfg.Matching.PreferredWeight
	c.Engine = matching.NewEngine(embedder, engineCfg)

	rankCfg := ranking.DefaultConfig()
	if cfg.Ranking.Limit > 0 {
		rankCfg.Limit = cfg.Ranking.Limit
	}
	c.Ranker = ranking.NewRanker(rankCfg)

	c.RecCache = cache.NewRecommendations(cfg.Cache.Capacity, cfg.Cache.TTL, c.Logger)
}

func (c *Container) initChat(cfg config.Config) {
	var providers []provider.Generator

	if cfg.Chat.GeminiAPIKey != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		g, err := chatgemini.NewGenerator(ctx, cfg.Chat.GeminiAPIKey, cfg.Chat.GeminiModel)
		cancel()
		if err != nil {
			c.Logger.Printf("chat | provider=gemini init_error=%v", err)
		} else {
			providers = append(providers, g)
		}
	}
	if cfg.Chat.OpenAIAPIKey != "" {
		g, err := chatopenai.NewGenerator(cfg.Chat.OpenAIAPIKey, cfg.Chat.OpenAIModel)
		if err != nil {
			c.Logger.Printf("chat | provider=openai init_error=%v", err)
		} else {
			providers = append(providers, g)
		}
	}
	if cfg.Chat.WatsonxURL != "" {
		g, err := watsonx.NewGenerator(watsonx.Config{
			BaseURL:   cfg.Chat.WatsonxURL,
			Token:     cfg.Chat.WatsonxToken,
			ProjectID: cfg.Chat.WatsonxProjectID,
			Model:     cfg.Chat.WatsonxModel,
			Timeout:   cfg.Chat.CallTimeout,
		})
		if err != nil {
			c.Logger.Printf("chat | provider=watsonx init_error=%v", err)
		} else {
			providers = append(providers, g)
		}
	}

	c.Logger.Printf("chat | providers=%d", len(providers))

	routerCfg := chat.DefaultRouterConfig()
	routerCfg.CallTimeout = cfg.Chat.CallTimeout
	routerCfg.HistoryLimit = cfg.Chat.HistoryLimit
	routerCfg.FailureThreshold = cfg.Chat.FailureThreshold
	routerCfg.Cooldown = cfg.Chat.Cooldown
	routerCfg.RetrySameProvider = cfg.Chat.RetrySameProvider

	sessions := chat.NewSessionStore(0)
	c.ChatRouter = chat.NewRouter(providers, sessions, routerCfg, c.Logger)
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
