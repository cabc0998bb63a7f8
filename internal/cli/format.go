package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quarrow/tsarray/internal/format"
	"github.com/quarrow/tsarray/internal/tick"
)

// formatFlags holds the per-invocation formatting settings.
type formatFlags struct {
	Layout   string
	NullRepr string
	Zone     string
	Options  string
}

// FormatResult is the JSON payload of a successful format run.
type FormatResult struct {
	Strings []string `json:"strings"`
}

// NewFormatCommand creates the format command.
func NewFormatCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format <input.json>",
		Short: "Render a JSON array of nanosecond timestamps as strings",
		Long: `Render a JSON array of nanosecond timestamps (numbers, with null for
missing values) as strings. Reads from stdin when the input path is "-".

Without --layout and --zone the minimum sufficient sub-second precision is
inferred once for the whole array.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(rootOpts, flags, args[0], cmd, UUIDv7Generator{})
		},
	}

	cmd.Flags().StringVar(&flags.Layout, "layout", "", "explicit reference layout")
	cmd.Flags().StringVar(&flags.NullRepr, "null-repr", "", "null rendering (default NaT)")
	cmd.Flags().StringVar(&flags.Zone, "zone", "", "render in this IANA zone")
	cmd.Flags().StringVar(&flags.Options, "options", "", "YAML options file (flags win)")

	return cmd
}

func runFormat(rootOpts *RootOptions, flags *formatFlags, input string, cmd *cobra.Command, tokens RunTokenGenerator) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Output,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	if flags.Options != "" {
		file, err := LoadOptionsFile(flags.Options)
		if err != nil {
			formatter.Error("E_OPTIONS", err.Error())
			return WrapExitError(ExitCommandError, "load options", err)
		}
		set := cmd.Flags().Changed
		if !set("layout") && file.Layout != "" {
			flags.Layout = file.Layout
		}
		if !set("null-repr") && file.NullRepr != "" {
			flags.NullRepr = file.NullRepr
		}
		if !set("zone") && file.Zone != "" {
			flags.Zone = file.Zone
		}
	}

	data, err := readInput(cmd, input)
	if err != nil {
		formatter.Error("E_INPUT", err.Error())
		return WrapExitError(ExitCommandError, "read input", err)
	}
	ticks, err := decodeTickArray(data)
	if err != nil {
		formatter.Error("E_INPUT", err.Error())
		return WrapExitError(ExitCommandError, "decode input", err)
	}

	var loc *time.Location
	if flags.Zone != "" {
		loc, err = time.LoadLocation(flags.Zone)
		if err != nil {
			formatter.Error("E_ZONE", err.Error())
			return WrapExitError(ExitCommandError, "load zone", err)
		}
	}

	token := tokens.Generate()
	formatter.VerboseLog("run %s: formatting %d element(s)", token, len(ticks))

	lines := format.Format(ticks, loc, flags.Layout, flags.NullRepr)
	return formatter.Success(token, FormatResult{Strings: lines}, lines)
}

// decodeTickArray decodes a JSON array of int64 ticks; null maps to the
// not-a-time sentinel.
func decodeTickArray(data []byte) ([]int64, error) {
	var raw []*json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("input is not a JSON array of numbers: %w", err)
	}

	ticks := make([]int64, len(raw))
	for i, n := range raw {
		if n == nil {
			ticks[i] = tick.NullTick
			continue
		}
		v, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		ticks[i] = v
	}
	return ticks, nil
}
