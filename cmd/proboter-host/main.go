// Command proboter-host talks to a probing head controller over a
// serial link: centering runs, test PCB status, and light control.
package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"proboter/host/head"
	"proboter/host/serial"
)

var (
	device   string
	baud     int
	logLevel string
	timeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "proboter-host",
	Short: "Host client for the probing head controller",
	Long: `proboter-host drives a probing head controller over its serial
G-code link. It can run a centering cycle, query the evaluation test
PCB, and control the head light.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&device, "device", "d", "/dev/ttyACM0", "serial device path")
	rootCmd.PersistentFlags().IntVarP(&baud, "baud", "b", 250000, "baud rate (ignored for USB CDC)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "response timeout")
}

// connect opens the serial link and returns a ready client.
func connect() (*head.Head, error) {
	cfg := serial.DefaultConfig(device)
	cfg.Baud = baud

	h := head.New()
	if err := h.ConnectWithConfig(cfg); err != nil {
		return nil, err
	}
	return h, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
