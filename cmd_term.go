package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/iburimskiy/dotfield/internal/term"
	"github.com/spf13/cobra"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Preview the background in the terminal",
	Long: `Draws the background with half-block characters in a truecolor
terminal. Each cell stands for 8x16 logical pixels. Logs go to log.file, or
nowhere when it is unset.

Keys:
  t            toggle the theme
  Esc, q, ^C   quit`,
	Args: cobra.NoArgs,
	RunE: runTerm,
}

func runTerm(cmd *cobra.Command, args []string) error {
	flag, release, err := openTheme()
	if err != nil {
		return err
	}
	defer release()

	r, err := newRenderer(nil)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return term.New(screen, r, flag, logger.Named("term")).Run(ctx)
}
