package main

import (
	"fmt"
	"time"

	"pannel_backoffice/config"
	"pannel_backoffice/internal/global"
	"pannel_backoffice/internal/logger"
	"pannel_backoffice/internal/web"
)

// initLogger configures the logging system before anything else runs.
func initLogger(cfg *config.Configuration) {
	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Dir = cfg.LogDir
	if err := logger.Init(logCfg); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	initLogger(cfg)
	global.InitValidator()

	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	sessions := web.NewManager(cfg.BackendBaseURL, timeout, time.Duration(cfg.SessionTTL)*time.Minute)
	defer sessions.Stop()

	app := InitFiberApp(cfg)
	web.Register(app, sessions, cfg.BackendBaseURL, timeout)

	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"address": cfg.Address,
		"backend": cfg.BackendBaseURL,
	}).Info("Starting back-office server")

	if err := app.Listen(cfg.Address); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}
