package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dealdesk/dealdesk-backend/internal/config"
	"github.com/dealdesk/dealdesk-backend/internal/infra/database"
	"github.com/dealdesk/dealdesk-backend/internal/infra/http/handlers"
	"github.com/dealdesk/dealdesk-backend/internal/infra/http/middleware"
	"github.com/dealdesk/dealdesk-backend/internal/infra/integration/authapi"
	"github.com/dealdesk/dealdesk-backend/internal/infra/integration/outbound"
	"github.com/dealdesk/dealdesk-backend/internal/infra/mail"
	"github.com/dealdesk/dealdesk-backend/internal/infra/queue"
	"github.com/dealdesk/dealdesk-backend/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatal(err)
	}
	cancel()

	// 1. Repositories
	dealRepo := database.NewDealRepository(db)
	logRepo := database.NewWebhookLogRepository(db)
	profileRepo := database.NewProfileRepository(db)

	// 2. Integrations and adapters
	verifier := authapi.NewClient(cfg.AuthURL, cfg.AuthServiceKey)
	forwarder := outbound.NewClient(cfg.WebhookSecret)

	var mailSender usecase.EmailService
	if cfg.Mail != nil {
		mailSender = mail.NewEmailSender(
			cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From,
		)
	} else {
		log.Println("SMTP not fully configured, direct outreach disabled")
	}

	var publisher queue.AuditPublisherInterface
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitMQ.Close()
		publisher = queue.NewAuditPublisher(rabbitMQ.Conn, rabbitMQ.Ch)
	}

	// 3. Use cases
	audit := usecase.NewAuditTrail(logRepo, publisher)
	sendUC := usecase.NewSendOutreachUseCase(dealRepo, mailSender, audit)
	triggerUC := usecase.NewTriggerOutreachUseCase(dealRepo, forwarder, audit)
	ingestUC := usecase.NewIngestFormSubmissionUseCase(dealRepo, audit)
	profileUC := usecase.NewFetchOrCreateProfileUseCase(profileRepo)

	// 4. Handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	dealHandler := handlers.NewDealHandler(dealRepo)
	outreachHandler := handlers.NewOutreachHandler(sendUC, triggerUC)
	webhookHandler := handlers.NewWebhookHandler(ingestUC, audit, logRepo, cfg.WebhookSecret)
	profileHandler := handlers.NewProfileHandler(profileUC)
	userHandler := handlers.NewUserHandler(profileRepo)

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Webhook-Secret"},
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Handle)

		// Unauthenticated webhook entry points.
		r.Post("/webhook/google-form", webhookHandler.HandleGoogleForm)
		r.Post("/webhook/outreach-external", webhookHandler.HandleExternal)

		// Bearer-protected routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticator(verifier))

			r.Get("/deals", dealHandler.List)
			r.Post("/deals", dealHandler.Create)
			r.Put("/deals/{id}", dealHandler.Update)
			r.Delete("/deals/{id}", dealHandler.Delete)

			r.Post("/webhook/send-outreach", outreachHandler.HandleSend)
			r.Post("/webhook/trigger-outreach", outreachHandler.HandleTrigger)
			r.Get("/webhooks", webhookHandler.HandleList)

			r.Get("/user/profile", profileHandler.HandleGet)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(profileRepo))
				r.Get("/users", userHandler.HandleList)
			})
		})
	})

	addr := ":" + cfg.Port
	log.Printf("🔥 DealDesk API listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
