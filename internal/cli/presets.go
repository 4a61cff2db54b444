package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/soar/mapview/internal/controller"
)

var presetsJSON bool

// PresetInfo is one preset with its resolved bindings.
type PresetInfo struct {
	controller.Preset
	Bindings []controller.Binding `json:"bindings"`
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List mapping presets and their bindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		slots, err := cfg.Slots()
		if err != nil {
			return err
		}
		infos := presetInfos(slots)
		if presetsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		}
		return printPresets(cmd.OutOrStdout(), infos)
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)

	presetsCmd.Flags().BoolVar(&presetsJSON, "json", false, "output as JSON")
}

func presetInfos(slots *controller.CustomSlots) []PresetInfo {
	presets := controller.Presets()
	infos := make([]PresetInfo, len(presets))
	for i, p := range presets {
		infos[i] = PresetInfo{Preset: p, Bindings: controller.NewMap(p.ID, slots).Bindings()}
	}
	return infos
}

func printPresets(w io.Writer, infos []PresetInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, info := range infos {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", info.ID, info.Name, info.Description)
		for _, b := range info.Bindings {
			fmt.Fprintf(tw, "\t  %s\t%s\n", b.Zone.Label(), b.Output.Symbol())
		}
	}
	return tw.Flush()
}
