package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"brat/midi"
)

func init() {
	rootCmd.AddCommand(testCmd)
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a short test figure to the synth",
	Long:  `Plays a C major arpeggio and one bar of the drum pattern to verify the output port works.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		synth, err := midi.OpenSynth(flagPort)
		if err != nil {
			return err
		}
		defer synth.Close()

		fmt.Printf("Using output: %s\n", synth.PortName())

		fmt.Println("Arpeggio on channel 0...")
		for _, note := range []uint8{60, 64, 67, 72} {
			synth.NoteOn(0, note, 100)
			time.Sleep(200 * time.Millisecond)
			synth.NoteOff(0, note)
		}

		fmt.Println("Drum hits on channel 9...")
		for _, note := range []uint8{36, 42, 38, 42} {
			synth.NoteOn(9, note, 110)
			time.Sleep(150 * time.Millisecond)
			synth.NoteOff(9, note)
		}

		fmt.Println("Done!")
		return nil
	},
}
