package v1

import (
	"career-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Jobs            *handler.JobsHandler
	Profiles        *handler.ProfileHandler
	Recommendations *handler.RecommendationHandler
	Chat            *handler.ChatHandler
}

// Register mounts the v1 surface. Profile-scoped handlers share the
// /profiles group so they all see the same :id param.
func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(r.Group("/jobs"))
	}

	profiles := r.Group("/profiles")
	if h.Profiles != nil {
		h.Profiles.RegisterRoutes(profiles)
	}
	if h.Recommendations != nil {
		h.Recommendations.RegisterRoutes(profiles)
	}
	if h.Chat != nil {
		h.Chat.RegisterRoutes(profiles)
	}
}
