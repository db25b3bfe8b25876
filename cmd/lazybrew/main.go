package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/lazybrew/internal/api"
	"github.com/rebeliceyang/lazybrew/internal/app"
	"github.com/rebeliceyang/lazybrew/internal/config"
	"github.com/rebeliceyang/lazybrew/internal/logging"
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/state"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	fs := config.NewFlagSet("lazybrew")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v (using defaults)\n", err)
		cfg = config.GetDefaults()
	}

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = logging.DefaultFile()
	}
	logger, closer, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   logFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (logging disabled)\n", err)
	}
	defer closer.Close()
	logging.SetGlobalLogger(logger)

	guard := api.NewRateLimitGuard(cfg.API.RateLimitThreshold)
	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(time.Duration(cfg.API.TimeoutMs)*time.Millisecond),
		api.WithGuard(guard),
		api.WithLogger(logger),
		api.WithUserAgent(cfg.API.UserAgent),
	)

	initial := models.DefaultFilterSet()
	if cfg.API.DefaultPerPage > 0 {
		initial.PerPage = min(cfg.API.DefaultPerPage, models.MaxPerPage)
	}
	manager := state.NewManager(client,
		state.WithLogger(logger),
		state.WithAutocompleteMinChars(cfg.API.AutocompleteMinChars),
		state.WithInitialFilters(initial),
	)

	zone.NewGlobal()

	application := app.New(cfg, manager, app.WithGuard(guard), app.WithLogger(logger))

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(application, opts...)
	guard.OnExhausted = func(remaining int) {
		p.Send(app.RateLimitMsg{Remaining: remaining})
	}

	log.Info().Str("base_url", cfg.API.BaseURL).Msg("starting lazybrew")
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
