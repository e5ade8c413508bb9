package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ryanmt/nmatrix/bridge"
	"github.com/ryanmt/nmatrix/core"
	"github.com/ryanmt/nmatrix/ops"
	"github.com/ryanmt/nmatrix/value"
)

// EvalResult is the outcome of one element-wise operation.
type EvalResult struct {
	Expr  string `json:"expr" yaml:"expr"`
	DType string `json:"dtype" yaml:"dtype"`
	Value string `json:"value" yaml:"value"`
	Bytes string `json:"bytes" yaml:"bytes"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "eval <dtype:value> <op> <dtype:value>",
		Short: "Evaluate an element-wise operator on two typed scalars",
		Long: `Evaluate a binary element-wise operator. Operands are written dtype:literal,
for example:

  nmtypes eval int32:2 + float32:0.5
  nmtypes eval rational64:1/3 '<' rational64:1/2

Operators: + - * / ** % == != < > <= >= or their names (add, sub, ...).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, args, strict, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "reject lossy integer and float narrowing")
	return cmd
}

func runEval(opts *RootOptions, args []string, strict bool, w io.Writer) error {
	conv := opts.converter(strict)
	a, err := parseOperand(conv, args[0])
	if err != nil {
		return err
	}
	op, err := ops.ParseEwOp(args[1])
	if err != nil {
		return err
	}
	b, err := parseOperand(conv, args[2])
	if err != nil {
		return err
	}

	out, err := ops.NewEngine(conv).Apply(op, a, b)
	if err != nil {
		return err
	}
	v, err := conv.FromConcrete(out.Bytes, out.DType)
	if err != nil {
		return err
	}
	res := EvalResult{
		Expr:  strings.Join([]string{args[0], op.Symbol(), args[2]}, " "),
		DType: out.DType.String(),
		Value: v.String(),
		Bytes: hex.EncodeToString(out.Bytes),
	}
	opts.Logger().Debug("eval", "op", op, "a", a.DType, "b", b.DType, "result", res.DType)

	dtype := opts.paint(color.FgCyan)
	return newFormatter(opts, w).Emit(res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s %s\n", dtype.Sprint(res.DType), res.Value)
		return err
	})
}

// parseOperand reads "dtype:literal" into a scalar of that dtype.
func parseOperand(conv *bridge.Converter, s string) (ops.Scalar, error) {
	name, lit, ok := strings.Cut(s, ":")
	if !ok {
		return ops.Scalar{}, fmt.Errorf("operand %q: want dtype:value", s)
	}
	d, err := core.ParseDType(name)
	if err != nil {
		return ops.Scalar{}, err
	}
	v, err := value.Parse(lit)
	if err != nil {
		return ops.Scalar{}, err
	}
	buf := make([]byte, d.Size())
	if err := conv.ToConcrete(v, d, buf); err != nil {
		return ops.Scalar{}, fmt.Errorf("operand %q: %w", s, err)
	}
	return ops.Scalar{DType: d, Bytes: buf}, nil
}
