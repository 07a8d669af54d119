package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"proboter/analysis"
)

var centerCmd = &cobra.Command{
	Use:   "center",
	Short: "Run a centering cycle and report the fitted reference circle",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := connect()
		if err != nil {
			return err
		}
		defer h.Close()

		logrus.WithField("device", device).Info("starting centering cycle")

		points, err := h.CenterCircle(timeout)
		if err != nil {
			return err
		}

		samples := make([]analysis.Point, len(points))
		for i, p := range points {
			fmt.Printf("point %d: x=%.3f y=%.3f z=%.3f converged=%v\n",
				i+1, p.X, p.Y, p.Z, p.Converged)
			samples[i] = analysis.Point{X: p.X, Y: p.Y}
		}

		circle, err := analysis.FitCircle(samples)
		if err != nil {
			return err
		}

		fmt.Printf("center: x=%.3f y=%.3f radius=%.3f\n",
			circle.CenterX, circle.CenterY, circle.Radius)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(centerCmd)
}
