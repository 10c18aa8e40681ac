package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"placement/internal/approval"
	"placement/internal/auth"
	"placement/internal/database"
	"placement/internal/handler"
	"placement/internal/middleware"
	"placement/internal/registration"
	"placement/internal/repository"
	"placement/internal/session"
	"placement/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	db, err := database.Open()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	var cache *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = redis.NewClient(&redis.Options{Addr: addr})
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	accounts := repository.NewAccountRepository(db)
	roles := repository.NewRoleRepository(db)
	students := repository.NewStudentRepository(db)
	companies := repository.NewCompanyRepository(db)
	notifications := repository.NewNotificationRepository(db)
	documents := repository.NewDocumentRepository(db)
	jobs := repository.NewJobRepository(db)
	stats := repository.NewStatsRepository(db)

	objects := storage.NewFileStore(uploadDir)
	sessions := session.NewStore()

	authService := auth.NewService(accounts)
	registrationService := registration.NewService(accounts, roles, students, companies, documents, objects)
	approvalService := approval.NewService(companies, notifications)

	pages := handler.NewPageHandler(sessions)
	authHandler := handler.NewAuthHandler(authService, sessions)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	approvalHandler := handler.NewApprovalHandler(approvalService, companies)
	jobsHandler := handler.NewJobsHandler(jobs)
	adminHandler := handler.NewAdminHandler(accounts, jobs, stats, cache)
	notificationHandler := handler.NewNotificationHandler(notifications, sessions)
	companyHandler := handler.NewCompanyHandler(companies, jobs, sessions)
	profileHandler := handler.NewProfileHandler(students, companies, documents, sessions)
	uploadHandler := handler.NewUploadHandler(objects, documents, students, sessions)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.EnrichSession(sessions, authService))
		r.Use(middleware.Guard(sessions))
		mountRoutes(r, pages, authHandler, registrationHandler, approvalHandler,
			jobsHandler, adminHandler, notificationHandler, uploadHandler, companyHandler,
			profileHandler, sessions)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("server listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func mountRoutes(
	r chi.Router,
	pages *handler.PageHandler,
	authHandler *handler.AuthHandler,
	registrationHandler *handler.RegistrationHandler,
	approvalHandler *handler.ApprovalHandler,
	jobsHandler *handler.JobsHandler,
	adminHandler *handler.AdminHandler,
	notificationHandler *handler.NotificationHandler,
	uploadHandler *handler.UploadHandler,
	companyHandler *handler.CompanyHandler,
	profileHandler *handler.ProfileHandler,
	sessions *session.Store,
) {
	// pages
	r.Get("/", pages.Home)
	r.Get("/login", pages.Login)
	r.Get("/login/{role}", pages.Login)
	r.Get("/register", pages.Register)
	r.Get("/register/complete", pages.RegisterComplete)
	r.Get("/jobs", pages.Jobs)
	r.Get("/student/dashboard", pages.Dashboard)
	r.Get("/company/dashboard", pages.Dashboard)
	r.Get("/admin/dashboard", pages.Dashboard)

	// public API
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", registrationHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/federated", authHandler.Federated)
		r.Get("/auth/logout", authHandler.Logout)
		r.Get("/jobs", jobsHandler.List)
		r.Get("/jobs/{id}", jobsHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessions))
			r.Get("/notifications", notificationHandler.List)
			r.Get("/profile", profileHandler.Profile)
			r.Get("/documents", profileHandler.Documents)
			r.Post("/upload/transcript", uploadHandler.Transcript)
		})

		r.Route("/company", func(r chi.Router) {
			r.Use(middleware.RequireRole(sessions, auth.RoleCompany))
			r.Post("/jobs", companyHandler.CreateJob)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(sessions, auth.RoleAdmin))
			r.Get("/companies/pending", approvalHandler.Pending)
			r.Post("/companies/approve", approvalHandler.Approve)
			r.Get("/users", adminHandler.Users)
			r.Delete("/users/{id}", adminHandler.DeleteUser)
			r.Get("/job-posts", adminHandler.JobPosts)
			r.Delete("/job-posts/{id}", adminHandler.DeleteJobPost)
			r.Patch("/job-posts/{id}/publish", adminHandler.SetJobPublished)
			r.Get("/dashboard/stats", adminHandler.Dashboard)
		})
	})
}
