package main

import (
	"embed"
	"fmt"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"pranik/internal/config"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewDefaultLogger().Fatal(fmt.Sprintf("configuration error: %v", err))
	}

	log := cfg.Log.NewLogger()
	app := NewApp(cfg, log)

	err = wails.Run(&options.App{
		Title:     "Pranik - Medical Voice Assistant",
		Width:     1180,
		Height:    780,
		MinWidth:  900,
		MinHeight: 600,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind:       []interface{}{app},
		Logger:     log,
		LogLevel:   cfg.Log.Level,
	})
	if err != nil {
		log.Fatal(fmt.Sprintf("wails run failed: %v", err))
	}
}
