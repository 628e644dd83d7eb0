package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kettno/courier-portal/cmd/tui/internal/app"
	"github.com/kettno/courier-portal/config"
	"github.com/kettno/courier-portal/internal/api"
)

func main() {
	cfg := config.Load()
	apiURL := flag.String("api", cfg.API.BaseURL, "Courier API base URL")
	flag.Parse()

	client := api.NewClient(*apiURL)
	m := app.New(client, *apiURL)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}
}
