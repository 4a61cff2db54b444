package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soar/mapview/internal/config"
	"github.com/soar/mapview/internal/rasterdraw"
	"github.com/soar/mapview/internal/session"
)

var (
	renderOut  string
	renderZone string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one frame to a file",
	Long: `Render a single frame of the diagram. The format follows the file extension:
.svg, .png or .webp. "-" writes SVG to standard output.

Examples:
  mapview render --out map.png --preset 100 --detail back
  mapview render --out - --page 2 --zone rear_ul`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "mapview.svg",
		"output file (.svg, .png, .webp or - for stdout)")
	renderCmd.Flags().StringVar(&renderZone, "zone", "",
		"highlight this input zone, e.g. rear_ul or front_grid_r0c1")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.SessionOptions()
	if err != nil {
		return err
	}
	sess := session.New(opts)
	if renderZone != "" {
		if err := sess.Apply(session.Command{Name: session.CmdSelectZone, Zone: renderZone}); err != nil {
			return err
		}
	}

	data, err := renderFrame(sess, renderOut)
	if err != nil {
		return err
	}
	if renderOut == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(renderOut, data, 0o644); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	config.Debugf("Wrote %d bytes to %s", len(data), renderOut)
	return nil
}

func renderFrame(sess *session.Session, out string) ([]byte, error) {
	if out == "-" || strings.EqualFold(filepath.Ext(out), ".svg") {
		return sess.FrameSVG()
	}
	f, err := rasterdraw.FormatFromPath(out)
	if err != nil {
		return nil, err
	}
	return sess.FrameImage(f)
}
