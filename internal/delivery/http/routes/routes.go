package routes

import (
	"github.com/Knnivedh/job-rec/internal/delivery/http/handler"
	"github.com/Knnivedh/job-rec/internal/delivery/http/middleware"
	"github.com/Knnivedh/job-rec/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups the endpoint handlers. Nil handlers are skipped.
type Handlers struct {
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Resume         *handler.ResumeHandler
	Recommendation *handler.RecommendationHandler
	Simple         *handler.SimpleHandler
	Coach          *handler.CoachHandler
	WS             *ws.Handler
}

type Registry struct {
	handlers Handlers
	auth     *middleware.AuthMiddleware
	fullMode bool
}

// NewRegistry wires the routes. fullMode is false when no database is
// configured; persistence-backed routes then answer 503.
func NewRegistry(h Handlers, auth *middleware.AuthMiddleware, fullMode bool) *Registry {
	return &Registry{handlers: h, auth: auth, fullMode: fullMode}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	api := app.Group("/api")

	// Public routes are registered before the protected group so its
	// middleware never runs for them.
	r.registerPublic(api)
	r.registerAuth(api)
	r.registerProtected(api)
}

func (r *Registry) registerPublic(api fiber.Router) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(api)
	}
	if r.handlers.Simple != nil {
		r.handlers.Simple.RegisterRoutes(api)
	}
	if r.handlers.Coach != nil {
		api.Post("/chat-coach", r.handlers.Coach.ChatCoach)
	}
}

func (r *Registry) registerAuth(api fiber.Router) {
	gate := middleware.RequireFullMode(r.fullMode, "/api/simple-analyze")

	if r.handlers.Auth != nil {
		r.handlers.Auth.RegisterRoutes(api.Group("/auth", gate))
	}
	if r.handlers.WS != nil && r.auth != nil {
		api.Get("/ws", gate, r.auth.WithQueryToken().Middleware(), r.handlers.WS.HandleNotifications)
	}
}

func (r *Registry) registerProtected(api fiber.Router) {
	if r.auth == nil {
		return
	}

	protected := api.Group("", middleware.RequireFullMode(r.fullMode, "/api/simple-analyze"), r.auth.Middleware())

	if r.handlers.User != nil {
		r.handlers.User.RegisterRoutes(protected)
	}
	if r.handlers.Resume != nil {
		r.handlers.Resume.RegisterRoutes(protected)
	}
	if r.handlers.Recommendation != nil {
		r.handlers.Recommendation.RegisterRoutes(protected)
	}
	if r.handlers.Coach != nil {
		protected.Post("/skill-gap", r.handlers.Coach.SkillGap)
	}
}
