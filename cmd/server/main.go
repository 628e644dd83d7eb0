package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kettno/courier-portal/config"
	"github.com/kettno/courier-portal/internal/api"
	"github.com/kettno/courier-portal/internal/session"
	"github.com/kettno/courier-portal/internal/towns"
	"github.com/kettno/courier-portal/internal/waybill"
	"github.com/kettno/courier-portal/internal/web/handlers"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("courier-portal %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", buildDate)
		os.Exit(0)
	}

	cfg := config.Load()

	// Everything business-level lives behind the remote courier API; the
	// portal holds no database of its own.
	client := api.NewClient(cfg.API.BaseURL)
	sessions := session.NewStore(client)
	defer sessions.Stop()

	directory := towns.NewDirectory(client)
	waybills := waybill.NewRegistry()

	// Initialize router.
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	h := handlers.New(cfg, client, sessions, directory, waybills)

	// Public routes.
	r.Get("/", h.Home)
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)

	// Protected routes (login required).
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Get("/dashboard", h.Dashboard)

		r.Get("/parcels", h.Parcels)
		r.Get("/parcels/awaiting-transit", h.StatusPage("Awaiting Transit", "registered", "/parcels/awaiting-transit"))
		r.Get("/parcels/awaiting-collection", h.StatusPage("Shipped Parcels", "delivered", "/parcels/awaiting-collection"))
		r.Get("/parcels/collected", h.StatusPage("Collected Parcels", "collected", "/parcels/collected"))
		r.Post("/parcels/{trackingNumber}/status", h.UpdateParcelStatus)
		r.Post("/parcels/{trackingNumber}/notify", h.NotifyRecipient)

		r.Get("/send", h.SendPage)
		r.Post("/send", h.SendParcel)

		r.Get("/towns", h.TownsPage)
		r.Post("/towns", h.CreateTown)
		r.Post("/towns/{townID}", h.UpdateTown)
		r.Post("/pricing", h.SetPricing)

		r.Get("/employees", h.Employees)
		r.Post("/employees", h.CreateEmployee)
		r.Post("/employees/{officialID}", h.UpdateEmployee)
		r.Post("/employees/{officialID}/toggle", h.ToggleEmployee)

		r.Get("/waybills", h.Waybills)
		r.Post("/waybills", h.CreateWaybill)
	})

	// Start server.
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Courier portal starting on %s (env: %s, api: %s)", addr, cfg.Server.Env, cfg.API.BaseURL)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
