package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"asisto/internal/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Lista los dispositivos de entrada de audio",
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := audio.ListInputDevices()
		if err != nil {
			printError("audio", err)
			return err
		}
		if len(devices) == 0 {
			fmt.Println("No hay dispositivos de entrada.")
			return nil
		}
		for _, d := range devices {
			mark := "  "
			if d.IsDefault {
				mark = "* "
			}
			fmt.Printf("%s%s (%d canales, %.0f Hz)\n", mark, d.Name, d.MaxInputChannels, d.DefaultSampleRate)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
