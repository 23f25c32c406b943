package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Knnivedh/job-rec/internal/config"
	"github.com/Knnivedh/job-rec/internal/delivery/http/middleware"
	"github.com/Knnivedh/job-rec/internal/delivery/http/routes"
	"github.com/Knnivedh/job-rec/internal/domain/resume"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// bodyLimit leaves room for multipart framing around a maximum-size upload.
const bodyLimit = resume.MaxUploadBytes + 1024*1024

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	errMw := middleware.NewErrorMiddleware(c.Logger)
	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		BodyLimit:    bodyLimit,
		ErrorHandler: errMw.Handler(),
	})

	registerGlobalMiddleware(f, errMw, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, errMw *middleware.ErrorMiddleware, log *zap.Logger) {
	if app == nil {
		return
	}

	// Access log wraps the error middleware so it sees the final status.
	accessMw := middleware.NewAccessLogMiddleware(log)
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	routes.NewRegistry(c.Handlers, c.Auth, c.FullMode()).Register(app)
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
