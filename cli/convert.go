package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ryanmt/nmatrix/core"
	"github.com/ryanmt/nmatrix/value"
)

// ConvertResult shows a value written in a dtype's native layout and read
// back.
type ConvertResult struct {
	Input string `json:"input" yaml:"input"`
	DType string `json:"dtype" yaml:"dtype"`
	Bytes string `json:"bytes" yaml:"bytes"`
	Value string `json:"value" yaml:"value"`
	Kind  string `json:"kind" yaml:"kind"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		to     string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "convert <value> --to <dtype>",
		Short: "Write a value in a dtype's native byte layout",
		Long: `Convert a literal (integer, float, n/d rational or a+bi complex) to the
given dtype and print its native bytes in hex along with the value read back.

Negative literals must follow "--", for example: nmtypes convert --to int8 -- -3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, args[0], to, strict, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&to, "to", "t", "", "target dtype")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject lossy integer and float narrowing")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func runConvert(opts *RootOptions, literal, to string, strict bool, w io.Writer) error {
	d, err := core.ParseDType(to)
	if err != nil {
		return err
	}
	v, err := value.Parse(literal)
	if err != nil {
		return err
	}
	conv := opts.converter(strict)
	s, err := conv.AllocateAndConvert(v, d)
	if err != nil {
		return err
	}
	defer s.Free()

	back, err := conv.FromConcrete(s.Bytes(), d)
	if err != nil {
		return err
	}
	res := ConvertResult{
		Input: literal,
		DType: d.String(),
		Bytes: hex.EncodeToString(s.Bytes()),
		Value: back.String(),
		Kind:  back.Kind().String(),
	}
	opts.Logger().Debug("converted", "input", value.Describe(v), "dtype", res.DType, "bytes", res.Bytes)

	bytesColor := opts.paint(color.FgYellow)
	return newFormatter(opts, w).Emit(res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s %s\n%s\n", res.DType, bytesColor.Sprint(spacedHex(res.Bytes)), res.Value)
		return err
	})
}

// spacedHex separates the bytes of a hex string, "c3f5" -> "c3 f5".
func spacedHex(h string) string {
	parts := make([]string, 0, len(h)/2)
	for i := 0; i+1 < len(h); i += 2 {
		parts = append(parts, h[i:i+2])
	}
	return strings.Join(parts, " ")
}
