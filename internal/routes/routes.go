// Package routes assembles the Fiber application: middleware, the /api
// route table, the websocket endpoint and the operational endpoints.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/config"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/handlers"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/logger"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/metrics"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/account"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/lifecycle"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/onboarding"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

type Deps struct {
	Config     config.Config
	Store      store.Store
	Accounts   *account.Service
	Lifecycle  *lifecycle.Service
	Onboarding *onboarding.Service
	Hub        *realtime.Hub
}

func New(d Deps) *fiber.App {
	cfg := d.Config

	app := fiber.New(fiber.Config{
		AppName:      "skillhive",
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    8 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.AccessLog())
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	if cfg.StorageDriver == "" || cfg.StorageDriver == "local" {
		app.Static("/uploads", cfg.UploadDir)
	}

	authH := &handlers.AuthHandler{
		Accounts:     d.Accounts,
		JWTSecret:    cfg.JWTSecret,
		Expires:      cfg.JWTExpiresMin,
		SecureCookie: cfg.Production(),
	}
	projectH := &handlers.ProjectHandler{Lifecycle: d.Lifecycle, Store: d.Store}
	applicationH := &handlers.ApplicationHandler{Lifecycle: d.Lifecycle, Store: d.Store}
	userH := &handlers.UserHandler{Accounts: d.Accounts, Lifecycle: d.Lifecycle}
	freelancerH := &handlers.FreelancerApplicationHandler{Onboarding: d.Onboarding}
	contactH := &handlers.ContactHandler{Store: d.Store}
	healthH := &handlers.HealthHandler{Store: d.Store}

	auth := middleware.JWT(cfg.JWTSecret)
	admin := middleware.RequireRoles("admin")

	api := app.Group("/api")

	// public
	api.Post("/signup", authH.Signup)
	api.Post("/login", authH.Login)
	api.Post("/logout", authH.Logout)
	api.Post("/contact", contactH.Create)

	api.Get("/me", auth, authH.Me)

	// projects
	api.Get("/projects", projectH.List)
	api.Get("/projects/client/:clientId", auth, projectH.ListByClient)
	api.Get("/projects/client/:clientId/dashboard", auth, middleware.SelfOrAdmin("clientId"), projectH.Dashboard)
	api.Get("/projects/:id", projectH.Get)
	api.Post("/projects", auth, projectH.Create)
	api.Put("/projects/:id/status", auth, projectH.UpdateStatus)

	// applications
	api.Post("/applications", auth, applicationH.Create)
	api.Get("/applications", auth, applicationH.List)
	api.Get("/applications/projects", auth, applicationH.ListForProjects)
	api.Put("/applications/:id", auth, applicationH.UpdateStatus)

	// users
	api.Get("/users", auth, admin, userH.List)
	api.Get("/users/freelancers", auth, admin, userH.FreelancerCandidates)
	api.Put("/users/:userId/freelancer-status", auth, admin, userH.SetFreelancer)
	api.Put("/users/:userId/profile", auth, middleware.SelfOrAdmin("userId"), userH.UpdateProfile)
	api.Get("/users/:userId/dashboard", auth, middleware.SelfOrAdmin("userId"), userH.Dashboard)
	api.Delete("/users/:id", auth, admin, userH.Delete)

	// freelancer onboarding
	api.Post("/freelancer-applications", auth, freelancerH.Submit)
	api.Get("/freelancer-applications", auth, admin, freelancerH.List)
	api.Put("/freelancer-applications/:id", auth, admin, freelancerH.Review)

	api.Get("/contact", auth, admin, contactH.List)

	if d.Hub != nil {
		app.Use("/ws", auth, func(c *fiber.Ctx) error {
			if !websocket.IsWebSocketUpgrade(c) {
				return fiber.ErrUpgradeRequired
			}
			return c.Next()
		})
		app.Get("/ws", websocket.New(d.Hub.Serve))
	}

	app.Get("/metrics", metrics.Handler())
	app.Get("/healthz", healthH.Check)

	return app
}
