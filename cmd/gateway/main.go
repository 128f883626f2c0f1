package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/prepdeck/prepdeck/internal/api/http"
	auth "github.com/prepdeck/prepdeck/internal/auth/middleware"
	"github.com/prepdeck/prepdeck/internal/config"
	"github.com/prepdeck/prepdeck/internal/db"
	"github.com/prepdeck/prepdeck/internal/history"
	"github.com/prepdeck/prepdeck/internal/metrics"
	"github.com/prepdeck/prepdeck/internal/paper"
	"github.com/prepdeck/prepdeck/internal/question"
	"github.com/prepdeck/prepdeck/internal/rbac"
	"github.com/prepdeck/prepdeck/internal/report"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	questions := question.NewSQLStore(dbh)
	events := history.NewSQLStore(dbh)
	reports := report.NewSQLStore(dbh)

	paperSvc := paper.NewService(questions, events, cfg.PaperSize)
	reportSvc := report.NewService(questions, reports, nil)
	reporter := report.NewReporter(events)

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(cfg.RequestTimeoutSec) * time.Second))
	if cfg.EnableMetrics {
		r.Use(metrics.Middleware)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	// Protected API (JWT → subject+role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Student flow
		pr.With(rbac.Require("paper:create")).
			Post("/question-paper", api.BuildPaperHandler(paperSvc))
		pr.With(rbac.Require("answers:submit")).
			Post("/submit-answers", api.SubmitAnswersHandler(reportSvc))
		pr.With(rbac.RequireAny("performance:view-own", "performance:view-all")).
			Get("/user-performance/{userID}", api.UserPerformanceHandler(reporter))
		pr.With(rbac.RequireAny("performance:view-own", "performance:view-all")).
			Get("/user-performance/{userID}/{topic}", api.TopicDetailHandler(reporter))
		pr.With(rbac.Require("tags:view")).
			Get("/tags", api.TagsHandler(questions))

		// Reports
		pr.With(rbac.RequireAny("reports:view-own", "reports:view-all")).
			Get("/reports/{reportID}", api.GetReportHandler(reportSvc))
		pr.With(rbac.RequireAny("reports:view-own", "reports:view-all")).
			Get("/reports", api.ListReportsHandler(reportSvc))

		// Question authoring (teacher/admin)
		pr.With(rbac.Require("question:create")).
			Post("/questions", api.CreateQuestionHandler(questions))
		pr.With(rbac.Require("question:view")).
			Get("/questions", api.ListQuestionsHandler(questions))
		pr.With(rbac.Require("question:view")).
			Get("/questions/{questionID}", api.GetQuestionHandler(questions))
		pr.With(rbac.Require("question:delete")).
			Delete("/questions/{questionID}", api.DeleteQuestionHandler(questions))

		// Users (admin)
		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/users/bulk", api.BulkUpsertUsersHandler(dbh))
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})
	if cfg.EnableMetrics {
		r.Method("GET", "/metrics", metrics.Handler())
	}

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
