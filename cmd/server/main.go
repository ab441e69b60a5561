package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/reehan7086/EchoVibe-sub000/config"
	"github.com/reehan7086/EchoVibe-sub000/internal/database"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
	"github.com/reehan7086/EchoVibe-sub000/internal/router"
	"github.com/reehan7086/EchoVibe-sub000/internal/service"
	"github.com/reehan7086/EchoVibe-sub000/internal/ws"
	"github.com/reehan7086/EchoVibe-sub000/pkg/cloudinary"
)

func main() {
	cfg := config.Load()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("[main] database connection failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("[main] migration failed: %v", err)
	}

	var cld cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		cld, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.Fatalf("[main] cloudinary init failed: %v", err)
		}
	} else {
		log.Printf("[main] cloudinary not configured, uploads disabled")
	}

	hubs := router.NewHubs()
	seedMapMarkers(repository.NewNearbyRepository(db), hubs.Map)
	engine := router.Setup(cfg, db, cld, hubs)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := service.NewPresenceSweeper(repository.NewUserRepository(db), cfg.Discovery.SweepInterval)
	go sweeper.Run(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("[main] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[main] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] forced shutdown: %v", err)
	}
}

// seedMapMarkers rebuilds the live-map snapshot from the store so viewers
// connecting right after a restart see the current online users.
func seedMapMarkers(repo *repository.NearbyRepository, mapHub *ws.MapHub) {
	rows, err := repo.MarkerCandidates()
	if err != nil {
		log.Printf("[main] map marker seed failed: %v", err)
		return
	}
	markers := make([]ws.MapMarker, 0, len(rows))
	for _, row := range rows {
		markers = append(markers, ws.MapMarker{
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			AvatarURL:   row.AvatarURL,
			Mood:        row.Mood,
			Lat:         row.Latitude,
			Lng:         row.Longitude,
			IsOnline:    row.IsOnline,
			UpdatedAt:   row.LastActiveAt.Unix(),
		})
	}
	mapHub.Seed(markers)
	log.Printf("[main] seeded %d map markers", len(markers))
}
