package main

import (
	"fmt"
	"io"

	"github.com/iburimskiy/dotfield/internal/paint"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var traceFlags scriptFlags

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Print the paint calls of the last rendered frame",
	Long: `Renders headlessly onto a recording surface and lists the calls that
made up the final frame: kind, composite mode, gradient stops and circle
count.

Example:
  dotfield trace --theme light --frames 1`,
	Args: cobra.NoArgs,
	RunE: runTrace,
}

func init() {
	traceFlags.register(traceCmd.Flags(), 1)
}

func runTrace(cmd *cobra.Command, args []string) error {
	script, err := traceFlags.script()
	if err != nil {
		return err
	}
	r, err := traceFlags.renderer(cmd)
	if err != nil {
		return err
	}

	rec := &paint.Recorder{}
	if _, err := script.Run(r, headlessTheme(), rec); err != nil {
		return err
	}
	ops := rec.Frame()
	for i, op := range ops {
		logger.Debug("paint op",
			zap.Int("index", i),
			zap.Stringer("kind", op.Kind),
			zap.Stringer("mode", op.Mode),
			zap.Int("stops", len(op.Gradient.Stops)),
			zap.Int("circles", len(op.Circles)))
	}
	writeTrace(cmd.OutOrStdout(), ops)
	return nil
}

func writeTrace(w io.Writer, ops []paint.Op) {
	for i, op := range ops {
		switch op.Kind {
		case paint.OpGradient:
			g := op.Gradient
			fmt.Fprintf(w, "%2d %-8s %-8s (%.0f,%.0f r%.0f)->(%.0f,%.0f r%.0f)",
				i, op.Kind, op.Mode, g.X0, g.Y0, g.R0, g.X1, g.Y1, g.R1)
			for _, st := range g.Stops {
				fmt.Fprintf(w, " %.2f:rgba(%s,%.3f)", st.Offset, st.Color, st.Alpha)
			}
			fmt.Fprintln(w)
		case paint.OpCircles:
			fmt.Fprintf(w, "%2d %-8s %-8s %d dots rgba(%s,%.3f)\n", i, op.Kind, op.Mode, len(op.Circles), op.Color, op.Alpha)
		default:
			fmt.Fprintf(w, "%2d %s\n", i, op.Kind)
		}
	}
}
