package app

import (
	"fmt"
	"strings"

	"course-compass/internal/config"
	"course-compass/internal/delivery/http/handler"
	"course-compass/internal/delivery/http/middleware"
	"course-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg, nil)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, container)
	registerRoutes(f, container)

	go container.Hub.Run()

	cleanup := func() error { return container.Close() }
	return &App{Fiber: f, Container: container}, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(c.Store).RegisterRoutes(app)

	wsHandler := ws.NewHandler(c.Hub, c.Logger)
	app.Get("/ws/models", wsHandler.HandleModelsWS)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Admin and write routes sit behind auth when a secret is configured.
	authMw := middleware.NewAuthMiddleware(c.JWT)
	protected := v1.Group("", authMw.Middleware())

	handler.NewRecommendHandler(c.Recommend, c.Hybrid, c.Batch).RegisterRoutes(v1)
	handler.NewCourseHandler(c.Catalog).RegisterRoutes(v1, protected)
	handler.NewModelHandler(c.ModelAdmin, c.Metrics).RegisterRoutes(v1, protected)
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
