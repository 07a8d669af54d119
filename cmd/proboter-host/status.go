package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the evaluation test PCB",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := connect()
		if err != nil {
			return err
		}
		defer h.Close()

		status, err := h.PCBStatus(timeout)
		if err != nil {
			return err
		}

		fmt.Printf("border pads: %d\n", status.BorderPads)
		for i, v := range status.TestPads {
			state := "open"
			if v != 0 {
				state = "contacted"
			}
			fmt.Printf("test pad %2d: %s\n", i+1, state)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
