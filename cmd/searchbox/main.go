package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"searchbox/internal/api"
	"searchbox/internal/config"
	"searchbox/internal/domain"
	"searchbox/internal/eventbus"
	"searchbox/internal/suggest"
	"searchbox/internal/ui"
)

func main() {
	os.Exit(run())
}

// run wires and runs the search box, returning the process exit code.
// Deferred cleanup runs before main exits.
func run() int {
	// Parse command line arguments
	var (
		baseURL    string
		configPath string
		searchType string
		logPath    string
		noMouse    bool
	)
	flag.StringVarP(&baseURL, "url", "u", "", "Search backend base URL (overrides config)")
	flag.StringVarP(&configPath, "config", "c", "", "Config file path (default "+config.DefaultPath()+")")
	flag.StringVarP(&searchType, "type", "t", "", "Search type: webpage or document")
	flag.StringVar(&logPath, "log", "searchbox.log", "Log file path")
	flag.BoolVar(&noMouse, "no-mouse", false, "Disable mouse support")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [query]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}
	persisted := *cfg

	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if searchType != "" {
		cfg.SearchType = string(domain.ParseSearchType(searchType))
	}
	if noMouse {
		cfg.UISettings.Mouse = false
	}

	// Remember the chosen search type between runs
	bus.Subscribe(eventbus.EventSearchTypeToggled, func(e eventbus.DomainEvent) {
		if event, ok := e.(domain.SearchTypeToggledEvent); ok {
			persisted.SearchType = string(event.SearchType)
			if err := configSvc.Save(&persisted); err != nil {
				log.Printf("Failed to save config: %v", err)
			} else {
				log.Printf("Config saved to %s", configSvc.Path())
			}
		}
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(domain.ErrorEvent); ok {
			log.Printf("Error: %s: %v", event.Message, event.Err)
		}
	})

	// Initialize services
	client := api.NewClient(cfg.BaseURL, cfg.RequestTimeout())
	suggestSvc := suggest.NewService(client, cfg.MaxSuggestions, cfg.HistoryLimit)

	// Create UI model
	uiModel := ui.NewModel(ctx, cfg, suggestSvc, bus)
	if query := strings.TrimSpace(strings.Join(flag.Args(), " ")); query != "" {
		uiModel.SetInitialQuery(query)
	}

	// Create Bubble Tea program
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx)}
	if cfg.UISettings.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	// Run the UI
	log.Printf("Starting UI against %s", cfg.BaseURL)
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		return 1
	}
	log.Printf("UI exited normally")

	if q := uiModel.Submitted(); q != "" {
		fmt.Println(client.SearchURL(q, string(uiModel.SearchType())))
	}
	return 0
}
