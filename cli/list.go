package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ryanmt/nmatrix/core"
)

// DTypeInfo describes one registry entry.
type DTypeInfo struct {
	Name    string `json:"name" yaml:"name"`
	Ordinal int    `json:"ordinal" yaml:"ordinal"`
	Size    int    `json:"size" yaml:"size"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every dtype with its ordinal and size in bytes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd.OutOrStdout())
		},
	}
}

func runList(opts *RootOptions, w io.Writer) error {
	infos := make([]DTypeInfo, 0, core.NumDTypes)
	for _, d := range core.All() {
		infos = append(infos, DTypeInfo{Name: d.String(), Ordinal: int(d), Size: int(d.Size())})
	}
	name := opts.paint(color.FgCyan)
	return newFormatter(opts, w).Emit(infos, func(w io.Writer) error {
		for _, info := range infos {
			fmt.Fprintf(w, "%2d  %s %2d\n", info.Ordinal, name.Sprintf("%-*s", cellWidth, info.Name), info.Size)
		}
		return nil
	})
}
