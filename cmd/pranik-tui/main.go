// Command pranik-tui runs the medical voice assistant in a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"pranik/internal/bootstrap"
	"pranik/internal/config"
	"pranik/internal/tui"
	"pranik/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pranik-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// Log lines written to stdout would corrupt the terminal UI.
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(os.TempDir(), "pranik-tui.log")
	}
	log := cfg.Log.NewLogger()

	sink := tui.NewSink()
	services, err := bootstrap.Build(cfg, sink, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	program := tea.NewProgram(tui.New(ctx, services.Controller), tea.WithAltScreen())
	sink.Attach(program)

	_, runErr := program.Run()

	// The program no longer reads messages; detach before stopping.
	sink.Attach(nil)
	if err := services.Controller.StopRecording(); err != nil && !errors.Is(err, usecase.ErrNoActiveRecording) {
		log.Warning(fmt.Sprintf("stop on exit: %v", err))
	}
	return runErr
}
