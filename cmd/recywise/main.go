package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/recywise/recywise-tui/internal/api"
	"github.com/recywise/recywise-tui/internal/config"
	"github.com/recywise/recywise-tui/internal/logging"
	"github.com/recywise/recywise-tui/internal/tui"
)

func main() {
	// Local env files are optional; absence is not an error.
	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), logger)

	p := tea.NewProgram(tui.New(context.Background(), cfg, client, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}
