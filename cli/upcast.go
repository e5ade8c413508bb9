package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ryanmt/nmatrix/core"
)

// UpcastResult is the outcome of promoting two dtypes.
type UpcastResult struct {
	A      string `json:"a" yaml:"a"`
	B      string `json:"b" yaml:"b"`
	Result string `json:"result" yaml:"result"`
}

// UpcastTable is the full promotion matrix; Table[i][j] is the upcast of
// DTypes[i] and DTypes[j].
type UpcastTable struct {
	DTypes []string   `json:"dtypes" yaml:"dtypes"`
	Table  [][]string `json:"table" yaml:"table"`
}

// NewUpcastCommand creates the upcast command.
func NewUpcastCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upcast <dtype> <dtype>",
		Short: "Show the dtype a binary operation between two dtypes runs in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpcast(rootOpts, args[0], args[1], cmd.OutOrStdout())
		},
	}
}

// NewTableCommand creates the table command.
func NewTableCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the complete upcast matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(rootOpts, cmd.OutOrStdout())
		},
	}
}

func runUpcast(opts *RootOptions, a, b string, w io.Writer) error {
	da, err := core.ParseDType(a)
	if err != nil {
		return err
	}
	db, err := core.ParseDType(b)
	if err != nil {
		return err
	}
	res := UpcastResult{A: da.String(), B: db.String(), Result: core.Upcast(da, db).String()}
	opts.Logger().Debug("upcast", "a", res.A, "b", res.B, "result", res.Result)

	result := opts.paint(color.FgGreen, color.Bold)
	return newFormatter(opts, w).Emit(res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s x %s -> %s\n", res.A, res.B, result.Sprint(res.Result))
		return err
	})
}

func upcastTable() UpcastTable {
	all := core.All()
	t := UpcastTable{DTypes: make([]string, len(all)), Table: make([][]string, len(all))}
	for i, a := range all {
		t.DTypes[i] = a.String()
		t.Table[i] = make([]string, len(all))
		for j, b := range all {
			t.Table[i][j] = core.Upcast(a, b).String()
		}
	}
	return t
}

func runTable(opts *RootOptions, w io.Writer) error {
	t := upcastTable()
	header := opts.paint(color.Bold)
	label := opts.paint(color.FgCyan)
	return newFormatter(opts, w).Emit(t, func(w io.Writer) error {
		fmt.Fprintln(w, header.Sprint(row(append([]string{""}, t.DTypes...))))
		for i, name := range t.DTypes {
			line := row(append([]string{name}, t.Table[i]...))
			head := fmt.Sprintf("%-*s", cellWidth, name)
			fmt.Fprintln(w, label.Sprint(head)+line[len(head):])
		}
		return nil
	})
}
