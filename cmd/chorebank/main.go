package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dukerupert/chorebank/internal/backup"
	"github.com/dukerupert/chorebank/internal/database"
	"github.com/dukerupert/chorebank/internal/logging"
	"github.com/dukerupert/chorebank/internal/server"
)

func main() {
	port := os.Getenv("CHOREBANK_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("CHOREBANK_DB_PATH")
	if dbPath == "" {
		dbPath = "chorebank.db"
	}

	logger := logging.Setup(os.Getenv("CHOREBANK_LOG_LEVEL"), os.Getenv("CHOREBANK_LOG_FORMAT"))

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	backupCfg := backup.Config{
		S3: backup.S3Config{
			Endpoint:  os.Getenv("CHOREBANK_S3_ENDPOINT"),
			Bucket:    os.Getenv("CHOREBANK_S3_BUCKET"),
			Region:    envOr("CHOREBANK_S3_REGION", "auto"),
			AccessKey: os.Getenv("CHOREBANK_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("CHOREBANK_S3_SECRET_KEY"),
		},
		DBPath:        dbPath,
		Passphrase:    os.Getenv("CHOREBANK_BACKUP_PASSPHRASE"),
		Hour:          envHour("CHOREBANK_BACKUP_HOUR", 3),
		RetentionDays: envInt("CHOREBANK_BACKUP_RETENTION_DAYS", 30),
	}

	jobHour := envHour("CHOREBANK_JOB_HOUR", 4)

	srv := server.New(db, jobHour, backupCfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv.Cron().Start(ctx)
	defer srv.Cron().Stop()

	if srv.BackupManager().Enabled() {
		srv.BackupManager().Start(ctx)
		defer srv.BackupManager().Stop()
	} else {
		logger.Info("backups disabled: missing s3 or passphrase configuration")
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("ChoreBank running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envHour(key string, fallback int) int {
	n := envInt(key, fallback)
	if n < 0 || n > 23 {
		return fallback
	}
	return n
}
