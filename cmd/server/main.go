package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/consolenews/newsletter-service/internal/config"
	"github.com/consolenews/newsletter-service/internal/controller"
	"github.com/consolenews/newsletter-service/internal/db"
	"github.com/consolenews/newsletter-service/internal/email"
	"github.com/consolenews/newsletter-service/internal/logger"
	"github.com/consolenews/newsletter-service/internal/middleware"
	"github.com/consolenews/newsletter-service/internal/repository"
	"github.com/consolenews/newsletter-service/internal/scheduler"
	"github.com/consolenews/newsletter-service/internal/service"
	"github.com/consolenews/newsletter-service/internal/service/dispatch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Server)

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("could not connect to database")
	}
	defer database.Close()

	newsletterRepo := &repository.NewsletterRepository{DB: database}
	subscriptionRepo := &repository.SubscriptionRepository{DB: database}
	shipmentRepo := &repository.ShipmentRepository{DB: database}
	userRepo := &repository.UserRepository{DB: database}
	categoryRepo := &repository.CategoryRepository{DB: database}
	templateRepo := &repository.TemplateRepository{DB: database}
	dashboardRepo := &repository.DashboardRepository{DB: database}

	provider, err := email.NewProvider(cfg.Email)
	if err != nil {
		log.WithError(err).Fatal("could not configure email provider")
	}
	emailService := email.NewService(provider)
	if err := emailService.VerifyConnection(); err != nil {
		log.WithError(err).Warn("email provider verification failed, continuing anyway")
	} else {
		log.WithField("provider", cfg.Email.Provider).Info("email provider ready")
	}

	dispatcher := dispatch.New(newsletterRepo, subscriptionRepo, shipmentRepo, emailService, dispatch.Config{
		BatchSize:  cfg.Cron.MaxEmailsPerBatch,
		BatchDelay: cfg.Cron.DelayBetweenBatches,
	}, log)

	sched := scheduler.New(cfg.Cron, dispatcher, log)
	if err := sched.Start(); err != nil {
		log.WithError(err).Fatal("could not start newsletter scheduler")
	}
	defer sched.Stop()

	newsletterService := &service.NewsletterService{Newsletters: newsletterRepo}
	subscriptionService := &service.SubscriptionService{
		Subscriptions: subscriptionRepo,
		Users:         userRepo,
		Mailer:        emailService,
	}
	categoryService := &service.CategoryService{Categories: categoryRepo}
	templateService := &service.TemplateService{Templates: templateRepo}
	dashboardService := &service.DashboardService{Dashboard: dashboardRepo}

	newsletterController := &controller.NewsletterController{
		NewsletterService: newsletterService,
		Dispatcher:        dispatcher,
	}
	subscriptionController := &controller.SubscriptionController{SubscriptionService: subscriptionService}
	categoryController := &controller.CategoryController{CategoryService: categoryService}
	templateController := &controller.TemplateController{TemplateService: templateService}
	shipmentController := &controller.ShipmentController{Shipments: shipmentRepo}
	dashboardController := &controller.DashboardController{DashboardService: dashboardService}
	healthController := &controller.HealthController{DB: database}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Public surface: sign-up and liveness.
		r.Get("/health", healthController.Check)
		r.Post("/subscriptions", subscriptionController.Create)

		// Management surface behind the admin token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.Server.AdminToken))

			r.Get("/newsletters", newsletterController.List)
			r.Post("/newsletters", newsletterController.Create)
			r.Get("/newsletters/{id}", newsletterController.Get)
			r.Put("/newsletters/{id}", newsletterController.Update)
			r.Delete("/newsletters/{id}", newsletterController.Delete)
			r.Post("/newsletters/{id}/dispatch", newsletterController.Dispatch)
			r.Get("/newsletters/{id}/shipments", shipmentController.ListByNewsletter)

			r.Get("/subscriptions", subscriptionController.List)
			r.Get("/subscriptions/{id}", subscriptionController.Get)
			r.Put("/subscriptions/{id}", subscriptionController.Update)
			r.Delete("/subscriptions/{id}", subscriptionController.Delete)
			r.Patch("/subscriptions/{id}/activate", subscriptionController.Activate)
			r.Patch("/subscriptions/{id}/deactivate", subscriptionController.Deactivate)
			r.Get("/subscriptions/email/{email}", subscriptionController.FindByEmail)

			r.Get("/categories", categoryController.List)
			r.Post("/categories", categoryController.Create)
			r.Get("/categories/{id}", categoryController.Get)
			r.Put("/categories/{id}", categoryController.Update)
			r.Delete("/categories/{id}", categoryController.Delete)

			r.Get("/templates", templateController.List)
			r.Post("/templates", templateController.Create)
			r.Get("/templates/{id}", templateController.Get)
			r.Put("/templates/{id}", templateController.Update)
			r.Delete("/templates/{id}", templateController.Delete)
			r.Patch("/templates/{id}/activate", templateController.Activate)
			r.Patch("/templates/{id}/deactivate", templateController.Deactivate)

			r.Get("/shipments", shipmentController.ListByStatus)
			r.Get("/shipments/{id}", shipmentController.Get)
			r.Get("/users/{id}/shipments", shipmentController.ListByUser)
			r.Patch("/shipments/{id}/bounced", shipmentController.MarkBounced)
			r.Patch("/shipments/{id}/failed", shipmentController.MarkFailed)
			r.Patch("/shipments/{id}/opened", shipmentController.MarkOpened)

			r.Get("/dashboard", dashboardController.GetAnalytics)
		})
	})

	log.WithField("port", cfg.Server.Port).Info("newsletter server running")
	if err := http.ListenAndServe(":"+cfg.Server.Port, r); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
