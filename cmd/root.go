package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"brat/config"
	"brat/debug"
	"brat/midi"
	"brat/sequencer"
	"brat/theme"
	"brat/tui"
)

var (
	flagPort  string
	flagDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "brat",
	Short: "Terminal music sketching over a MIDI synth",
	Long: `brat drives a MIDI synthesizer from the terminal: add instrument
tracks, record key-driven notes, play them back with optional looping,
and run a drum loop with live tempo control.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPort, "port", "", "MIDI output port name (default: first real port)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log to ~/.config/brat/debug.log")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func run() error {
	if flagDebug {
		if err := debug.Enable(); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	portName := flagPort
	if portName == "" {
		portName = cfg.SynthOutput.PortName
	}

	// The synth is the one resource we cannot sketch without.
	synth, err := midi.OpenSynth(portName)
	if err != nil {
		return err
	}
	defer synth.Close()

	manager := sequencer.NewManager(synth)
	manager.Drums().SetTempo(time.Duration(cfg.UI.DrumTempoMs) * time.Millisecond)
	manager.SetPersist(func() {
		cfg.UI.DrumTempoMs = int(manager.Drums().Tempo().Milliseconds())
		if instruments := manager.Instruments(); len(instruments) > 0 {
			cfg.UI.LastInstrument = instruments[len(instruments)-1].Name
		}
		if err := cfg.Save(); err != nil {
			debug.Log("config", "save failed: %v", err)
		}
	})

	th := theme.New(theme.Brat())
	m := tui.NewModel(manager, th, cfg.UI.LastInstrument)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
