package main

import (
	"github.com/iburimskiy/dotfield/internal/game"
	"github.com/spf13/cobra"
)

var (
	windowWidth       int
	windowHeight      int
	windowPassthrough bool
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Show the background in a desktop window",
	Long: `Opens a resizable window rendered on the GPU.

Keys:
  t       toggle the theme (written to the theme file)
  F3      frame rate and dot count overlay
  Esc, q  quit`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&windowWidth, "width", 0, "window width")
	windowCmd.Flags().IntVar(&windowHeight, "height", 0, "window height")
	windowCmd.Flags().BoolVar(&windowPassthrough, "passthrough", false, "let mouse clicks fall through the window")
}

func runWindow(cmd *cobra.Command, args []string) error {
	win := settings.Window
	if windowWidth > 0 {
		win.Width = windowWidth
	}
	if windowHeight > 0 {
		win.Height = windowHeight
	}
	if windowPassthrough {
		win.Passthrough = true
	}

	flag, release, err := openTheme()
	if err != nil {
		return err
	}
	defer release()

	r, err := newRenderer(nil)
	if err != nil {
		return err
	}
	return game.Run(game.NewGame(r, flag, logger.Named("window")), win)
}
