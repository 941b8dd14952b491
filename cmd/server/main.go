package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leave-tracker/internal/auth"
	"leave-tracker/internal/config"
	"leave-tracker/internal/handler"
	"leave-tracker/internal/repository"
	"leave-tracker/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetServerConfig()
	logrus.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	leaveRepo, err := repository.NewGormLeaveRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create leave repository")
	}

	colorRepo, err := repository.NewGormEmployeeColorRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create employee color repository")
	}

	leaveService := service.NewLeaveService(leaveRepo, colorRepo)

	// One-time migration of flat-file data into an empty store.
	importer := service.NewImporter(db, leaveRepo)
	if err := importer.Run(cfg.EmployeesFile, cfg.LeavesFile); err != nil {
		logrus.WithError(err).Fatal("Failed to run startup import")
	}

	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	password := auth.NewSharedPassword(cfg.PasswordHash, cfg.Password)

	h, err := handler.NewHandler(leaveService, sessions, password)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create handler")
	}

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: h.Routes(),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("Leave tracker listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Server failed:", err)
		}
	}()

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.Infof("Error shutting down server: %v", err)
	}

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
