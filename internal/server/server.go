package server

import (
	"log"

	"robotics-tutor-be/internal/bootstrap"
	"robotics-tutor-be/internal/config"
	"robotics-tutor-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app  *fiber.App
	port string
}

// New assembles the fiber app: CORS, request tracing, the shared error
// envelope, and the query and health routes. Routes live at the root,
// not under an /api prefix, so existing clients of the query surface
// keep working unchanged.
func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // queries are capped far below this
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))
	app.Use(otelfiber.Middleware())
	app.Use(serverutils.ErrorHandlerMiddleware())

	container.QueryController.RegisterRoutes(app)
	container.HealthController.RegisterRoutes(app)

	return &Server{app: app, port: cfg.App.Port}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.port)
	return s.app.Listen(":" + s.port)
}
