package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/ujianku/backend/internal/api/http"
	auth "github.com/ujianku/backend/internal/auth/middleware"
	"github.com/ujianku/backend/internal/config"
	"github.com/ujianku/backend/internal/db"
	rbac "github.com/ujianku/backend/internal/rbac"
	"github.com/ujianku/backend/internal/remedial"
	syncx "github.com/ujianku/backend/internal/sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := remedial.NewSQLStore(dbh, cfg.DBDriver)
	events := syncx.NewEventRepo(dbh)
	svc := remedial.NewService(store).WithEventLog(events)

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, auth.LoginOpts{
			AdminUser:     cfg.AdminUser,
			AdminPassHash: cfg.AdminPassHash,
		}))
	}

	// Protected API (JWT → subject/role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromDB(dbh, cfg.Mode == config.ModeOffline))

		// Remedial tiering
		pr.With(rbac.Require("remedial:create")).
			Post("/remedial-sessions", api.CreateRemedialSessionHandler(svc))
		pr.With(rbac.RequireAny("remedial:view-own", "remedial:view-all")).
			Get("/remedial-sessions/progression", api.ProgressionHandler(svc))

		// Answer history
		pr.With(rbac.Require("answers:record")).
			Post("/answers", api.RecordAnswerHandler(store))
		pr.With(rbac.RequireAny("answers:view-own", "answers:view-all")).
			Get("/answers", api.ListAnswersHandler(store))

		// Performance snapshots
		pr.With(rbac.RequireAny("performance:view-own", "performance:view-all")).
			Get("/performance", api.GetPerformanceHandler(svc))

		// Question bank
		pr.With(rbac.Require("questions:manage")).
			Put("/questions", api.UpsertQuestionsHandler(store))
		pr.With(rbac.Require("questions:view")).
			Get("/questions", api.ListQuestionsHandler(store))

		// Users (teacher/admin)
		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/users/bulk", api.BulkUpsertUsersHandler(dbh))
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
