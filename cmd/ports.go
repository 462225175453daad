package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"brat/midi"
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI output ports",
	Run: func(cmd *cobra.Command, args []string) {
		names := midi.OutPortNames()
		if len(names) == 0 {
			fmt.Println("no MIDI output ports found")
			return
		}
		for i, name := range names {
			fmt.Printf("  %d: %s\n", i, name)
		}
	},
}
