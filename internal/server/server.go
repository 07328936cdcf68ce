package server

import (
	"backend-sparrow/internal/attraction"
	"backend-sparrow/internal/auth"
	"backend-sparrow/internal/config"
	"backend-sparrow/internal/group"
	"backend-sparrow/internal/member"
	"backend-sparrow/internal/notebook"
	"backend-sparrow/internal/rating"
	"backend-sparrow/internal/route"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	member.RegisterRoutes(s.App.Group("/member"), member.NewService(s.DB, s.Cfg.DefaultProfilePhoto), jwtMiddleware)
	group.RegisterRoutes(s.App.Group("/group"), group.NewService(s.DB), jwtMiddleware)
	route.RegisterRoutes(s.App.Group("/route"), route.NewService(s.DB), jwtMiddleware)
	attraction.RegisterRoutes(s.App.Group("/attraction"), attraction.NewService(s.DB, s.Redis, nil), jwtMiddleware)
	rating.RegisterRoutes(s.App.Group("/rating"), rating.NewService(s.DB), jwtMiddleware)
	notebookSvc := notebook.NewService(s.DB)
	notebook.RegisterRoutes(s.App.Group("/notebook"), notebookSvc, jwtMiddleware)
	notebook.RegisterStatusRoutes(s.App.Group("/status"), notebookSvc)
}
