package app

import (
	"fmt"
	"strings"

	"career-match/internal/config"
	"career-match/internal/delivery/http/handler"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/delivery/http/routes"
	"career-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())

	registry := routes.Registry{
		Health:          handler.NewHealthHandler(c.DB),
		Jobs:            handler.NewJobsHandler(c.JobUC),
		Profiles:        handler.NewProfileHandler(c.ProfileUC),
		Recommendations: handler.NewRecommendationHandler(c.Recommendations),
		Chat:            handler.NewChatHandler(c.ChatUC),
		WS:              ws.NewHandler(c.Hub, c.Logger),
	}
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the fiber app and starts the ws hub.
// The returned cleanup closes the database pool.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	go c.Hub.Run()

	app := New(c)
	return app, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
