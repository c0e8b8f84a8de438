package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ccgrid/bank"
	"ccgrid/config"
	"ccgrid/debug"
	"ccgrid/midi"
	"ccgrid/store"
	"ccgrid/theme"
	"ccgrid/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Debug {
		debug.Enable()
		defer debug.Disable()
	}

	th := theme.New(theme.Load(cfg.PalettePath))

	path, err := store.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "no data directory: %v\n", err)
		os.Exit(1)
	}
	repo := store.NewFileRepository(path)

	// Load errors fall back to the default bank set and keep going.
	banks, err := repo.LoadBanks()
	if err != nil {
		debug.Log("main", "load banks: %v", err)
	}
	preferred, _ := repo.PreferredPort()

	state := bank.NewAppState(banks, preferred)

	out := midi.NewPortOutput()
	defer out.Disconnect()

	if cfg.AutoConnect {
		if err := out.Connect(preferred); err != nil {
			debug.Log("main", "connect preferred %q: %v", preferred, err)
			if preferred != "" {
				if err := out.Connect(""); err != nil {
					debug.Log("main", "connect first available: %v", err)
				}
			}
		}
		if !out.Connected() {
			debug.Log("main", "no MIDI output connected at startup")
		}
	}

	saver := store.NewSaver(repo, cfg.SaveDelay())
	defer saver.Flush()

	m := tui.NewModel(state, repo, saver, out, th, cfg.FlipInterval())
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		saver.Flush()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
