package cli

import (
	"github.com/spf13/cobra"

	"github.com/soar/mapview/internal/ebitendraw"
	"github.com/soar/mapview/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Open the diagram in a desktop window",
	Long: `Open an interactive window. Keys: E/Q preset, PageUp/PageDown page, F flip,
B both faces, Tab overlay, arrows and Space edit the selection, Esc quits.
Dragging across grid cells selects them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts, err := cfg.SessionOptions()
		if err != nil {
			return err
		}
		return ebitendraw.Run(session.New(opts))
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
