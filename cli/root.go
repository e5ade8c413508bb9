package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ryanmt/nmatrix/bridge"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"
	Color   string // "auto" | "on" | "off"

	logger  *slog.Logger
	colored bool
}

var (
	// ValidFormats defines the allowed output formats.
	ValidFormats = []string{"text", "json", "yaml"}
	// ValidColorModes defines the allowed values of --color.
	ValidColorModes = []string{"auto", "on", "off"}
)

// NewRootCommand creates the root command for the nmtypes CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "nmtypes",
		Short: "Explore nmatrix element dtypes",
		Long: `Inspect the nmatrix dtype registry, the upcast rules of binary
operations, and the native byte layout of converted values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !slices.Contains(ValidColorModes, opts.Color) {
				return fmt.Errorf("invalid color mode %q: must be one of %v", opts.Color, ValidColorModes)
			}
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			opts.colored = useColor(opts.Color, cmd.OutOrStdout())
			opts.logger.Debug("options", "format", opts.Format, "color", opts.colored)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", "auto", "colorize output (auto|on|off)")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewUpcastCommand(opts))
	cmd.AddCommand(NewTableCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))

	return cmd
}

// useColor resolves --color against the output writer. auto colors only
// when w is a terminal.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// paint returns a color that honours the resolved --color setting.
func (o *RootOptions) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if o.colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Logger returns the logger installed by the root command, or a discarding
// logger before the command has run.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}

func (o *RootOptions) converter(strict bool) *bridge.Converter {
	opts := []bridge.Option{bridge.WithLogger(o.Logger())}
	if strict {
		opts = append(opts, bridge.WithStrictNarrowing())
	}
	return bridge.New(opts...)
}
