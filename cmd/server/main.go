package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"deskhive/internal/api"
	"deskhive/internal/auth"
	"deskhive/internal/cache"
	"deskhive/internal/db"
	"deskhive/internal/repository"
	"deskhive/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	spaceRepo := repository.NewSpaceRepository(database)
	locationRepo := repository.NewLocationRepository(database)
	contactRepo := repository.NewContactRepository(database)
	bookingRepo := repository.NewBookingRepository(database)
	unitRepo := repository.NewResourceUnitRepository(database)
	userRepo := repository.NewUserRepository(database)
	jobRepo := repository.NewJobRepository(database)

	slotCache := cache.New(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"))
	sender := service.NewSenderService()

	availabilitySvc := service.NewAvailabilityService(spaceRepo, bookingRepo, unitRepo)
	bookingSvc := service.NewBookingService(spaceRepo, locationRepo, contactRepo, bookingRepo, availabilitySvc, sender, slotCache)
	authSvc := service.NewAuthService(userRepo)
	jobSvc := service.NewJobService(jobRepo, sender)

	bookingHandler := api.NewBookingHandler(bookingSvc, availabilitySvc)
	spaceHandler := api.NewSpaceHandler(availabilitySvc, spaceRepo, unitRepo)
	authHandler := api.NewAuthHandler(authSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Authenticated endpoints, organization-scoped via JWT claims
	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(auth.Middleware)
	authed.HandleFunc("/auth/users", authHandler.CreateUser).Methods("POST")

	authed.HandleFunc("/bookings", bookingHandler.CreateBooking).Methods("POST")
	authed.HandleFunc("/bookings", bookingHandler.ListBookings).Methods("GET")
	authed.HandleFunc("/bookings/{ref}", bookingHandler.GetBooking).Methods("GET")
	authed.HandleFunc("/bookings/{ref}", bookingHandler.UpdateBooking).Methods("PUT")
	authed.HandleFunc("/bookings/{ref}", bookingHandler.CancelBooking).Methods("DELETE")
	authed.HandleFunc("/bookings/{ref}/confirm", bookingHandler.Transition(db.StatusConfirmed)).Methods("POST")
	authed.HandleFunc("/bookings/{ref}/complete", bookingHandler.Transition(db.StatusCompleted)).Methods("POST")
	authed.HandleFunc("/bookings/{ref}/no-show", bookingHandler.Transition(db.StatusNoShow)).Methods("POST")

	authed.HandleFunc("/locations/{id}/spaces", spaceHandler.ListSpaces).Methods("GET")
	authed.HandleFunc("/spaces/{id}/availability", bookingHandler.AvailabilitySlots).Methods("GET")
	authed.HandleFunc("/spaces/{id}/check", bookingHandler.CheckCapacity).Methods("POST")
	authed.HandleFunc("/spaces/{id}/units", spaceHandler.GenerateUnits).Methods("POST")
	authed.HandleFunc("/spaces/{id}/units", spaceHandler.ListUnits).Methods("GET")
	authed.HandleFunc("/units/{id}/status", spaceHandler.UpdateUnitStatus).Methods("PUT")

	c := cron.New()
	c.AddFunc("@every 5m", func() {
		if err := jobSvc.CompleteFinishedBookings(context.Background()); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.AddFunc("@every 15m", func() {
		if err := jobSvc.SendUpcomingReminders(context.Background(), 24*time.Hour); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{os.Getenv("CORS_ORIGIN")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler(handlers.LoggingHandler(os.Stdout, r))))
}
