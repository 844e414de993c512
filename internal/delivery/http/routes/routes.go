package routes

import (
	"career-match/internal/delivery/http/handler"
	v1 "career-match/internal/delivery/http/routes/v1"
	"career-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health          *handler.HealthHandler
	Jobs            *handler.JobsHandler
	Profiles        *handler.ProfileHandler
	Recommendations *handler.RecommendationHandler
	Chat            *handler.ChatHandler
	WS              *ws.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.WS != nil {
		app.Get("/ws/recommendations", r.WS.HandleRecommendationsWS)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Handlers{
		Jobs:            r.Jobs,
		Profiles:        r.Profiles,
		Recommendations: r.Recommendations,
		Chat:            r.Chat,
	})
}
