package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"copilot-agent/internal/app"
	"copilot-agent/internal/auth"
	"copilot-agent/pkg/utils"
)

// loadEnvFile loads environment variables from a .env file if present.
// It attempts to load from the current directory and parent directories
// up to the root directory.
func loadEnvFile(log *logrus.Logger) {
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded environment variables from .env file in current directory")
		return
	}

	workDir, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not determine current directory: %v", err)
		return
	}

	for dir := workDir; dir != "/"; dir = filepath.Dir(dir) {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err == nil {
				log.Infof("Loaded environment variables from %s", envPath)
				return
			}
		}
	}

	log.Info("No .env file found. Using existing environment variables.")
}

func main() {
	log := logrus.New()
	loadEnvFile(log)
	if level, err := logrus.ParseLevel(utils.GetEnvWithDefault("LOG_LEVEL", "info")); err == nil {
		log.SetLevel(level)
	}

	mintSession := flag.String("mint-session", "", "Mint a relay session token for the given GitHub login")
	disableAuth := flag.Bool("disable-auth", false, "Disable the relay session gate and accept all requests")
	flag.Parse()

	if *disableAuth {
		os.Setenv("DISABLE_AUTH", "true")
		log.Info("Relay session gate is disabled - all requests will be accepted")
	}

	cfg := app.ConfigFromEnv()

	if *mintSession != "" {
		if cfg.SessionSecret == "" {
			log.Fatal("RELAY_SESSION_SECRET must be set to mint session tokens")
		}
		token, err := auth.CreateSessionToken(*mintSession, cfg.SessionSecret)
		if err != nil {
			log.Fatalf("Failed to mint session token: %v", err)
		}
		fmt.Println(token)
		os.Exit(0)
	}

	a := app.New(cfg, log)

	log.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"log_mode": string(a.LogMode()),
	}).Info("Starting SOLID reviewer agent")
	if cfg.SessionSecret != "" && !cfg.DisableAuth {
		log.Info("Relay session gate is enabled")
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: a.Router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("Shutting down...")
		cancel()
	}()

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf("Error during server shutdown: %v", err)
	} else {
		log.Info("Server gracefully stopped")
	}
}
