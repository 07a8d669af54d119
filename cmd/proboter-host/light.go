package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var lightCmd = &cobra.Command{
	Use:   "light",
	Short: "Control the probing head light",
}

var lightGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Report the light state",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := connect()
		if err != nil {
			return err
		}
		defer h.Close()

		status, err := h.LightStatus(timeout)
		if err != nil {
			return err
		}

		switch status {
		case -1:
			fmt.Println("no light fitted")
		case 0:
			fmt.Println("off")
		default:
			fmt.Println("on")
		}
		return nil
	},
}

var lightSetCmd = &cobra.Command{
	Use:   "set <intensity>",
	Short: "Set the light intensity (0-255)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		intensity, err := strconv.Atoi(args[0])
		if err != nil || intensity < 0 || intensity > 255 {
			return errors.Errorf("intensity must be 0-255, got %q", args[0])
		}

		h, err := connect()
		if err != nil {
			return err
		}
		defer h.Close()

		return h.SetLight(uint8(intensity), timeout)
	},
}

func init() {
	lightCmd.AddCommand(lightGetCmd, lightSetCmd)
	rootCmd.AddCommand(lightCmd)
}
