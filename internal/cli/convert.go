package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/quarrow/tsarray/internal/engine"
	"github.com/quarrow/tsarray/internal/format"
	"github.com/quarrow/tsarray/internal/scalar"
	"github.com/quarrow/tsarray/internal/tick"
)

// convertFlags holds the per-invocation conversion settings, before the
// options file and command line are merged.
type convertFlags struct {
	Policy    string
	DayFirst  bool
	YearFirst bool
	UTC       bool
	StrictISO bool
	Unit      string
	Layout    string
	Zone      string
	Options   string
}

// ConvertResult is the JSON payload of a successful convert run.
type ConvertResult struct {
	Kind     string   `json:"kind"` // "ticks" or "objects"
	Ticks    []*int64 `json:"ticks,omitempty"`
	Objects  []any    `json:"objects,omitempty"`
	Timezone string   `json:"timezone,omitempty"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <input.json>",
		Short: "Convert a JSON array of date-like values to canonical timestamps",
		Long: `Convert a heterogeneous JSON array (nulls, numbers, strings) to
nanosecond timestamps. Reads from stdin when the input path is "-".

When elements disagree on timezone offsets, or an element's kind cannot be
converted uniformly, the result degrades to an object array where each
element keeps its own zone or original value.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, flags, args[0], cmd, UUIDv7Generator{})
		},
	}

	cmd.Flags().StringVar(&flags.Policy, "policy", "raise", "error policy (raise|ignore|coerce)")
	cmd.Flags().BoolVar(&flags.DayFirst, "day-first", false, "read ambiguous dates day-first")
	cmd.Flags().BoolVar(&flags.YearFirst, "year-first", false, "read ambiguous dates year-first")
	cmd.Flags().BoolVar(&flags.UTC, "utc", false, "force UTC, skipping timezone consensus")
	cmd.Flags().BoolVar(&flags.StrictISO, "strict-iso", false, "require strict ISO 8601 strings")
	cmd.Flags().StringVar(&flags.Unit, "unit", "ns", "unit of bare numerics (s|ms|us|ns)")
	cmd.Flags().StringVar(&flags.Layout, "layout", "", "explicit reference layout for strings")
	cmd.Flags().StringVar(&flags.Zone, "zone", "", "treat wall-clock inputs as expressed in this IANA zone")
	cmd.Flags().StringVar(&flags.Options, "options", "", "YAML options file (flags win)")

	return cmd
}

func runConvert(rootOpts *RootOptions, flags *convertFlags, input string, cmd *cobra.Command, tokens RunTokenGenerator) error {
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
		mergeConvertOptions(flags, file, cmd)
	}

	policy, err := engine.ParsePolicy(flags.Policy)
	if err != nil {
		formatter.Error("E_POLICY", err.Error())
		return WrapExitError(ExitCommandError, "parse policy", err)
	}
	unit, err := tick.ParseUnit(flags.Unit)
	if err != nil {
		formatter.Error("E_UNIT", err.Error())
		return WrapExitError(ExitCommandError, "parse unit", err)
	}

	data, err := readInput(cmd, input)
	if err != nil {
		formatter.Error("E_INPUT", err.Error())
		return WrapExitError(ExitCommandError, "read input", err)
	}
	values, err := scalar.DecodeJSONArray(data)
	if err != nil {
		formatter.Error("E_INPUT", err.Error())
		return WrapExitError(ExitCommandError, "decode input", err)
	}

	token := tokens.Generate()
	formatter.VerboseLog("run %s: converting %d element(s), policy=%s", token, len(values), policy)

	opts := []engine.ConvertOption{
		engine.WithDayFirst(flags.DayFirst),
		engine.WithYearFirst(flags.YearFirst),
		engine.WithForceUTC(flags.UTC),
		engine.WithStrictISO(flags.StrictISO),
	}
	if flags.Layout != "" {
		opts = append(opts, engine.WithFormat(flags.Layout))
	}

	var res engine.Result
	switch {
	case flags.Zone != "":
		loc, lerr := time.LoadLocation(flags.Zone)
		if lerr != nil {
			formatter.Error("E_ZONE", lerr.Error())
			return WrapExitError(ExitCommandError, "load zone", lerr)
		}
		res, err = engine.ConvertInLocation(values, loc, policy, opts...)
	case unit != tick.Nanosecond:
		res, err = engine.ConvertWithUnit(values, unit, policy, opts...)
	default:
		res, err = engine.Convert(values, policy, opts...)
	}
	if err != nil {
		formatter.Error("E_CONVERT", err.Error())
		return WrapExitError(ExitFailure, "convert", err)
	}

	slog.Debug("conversion complete",
		"run", token,
		"elements", len(values),
		"object_fallback", res.IsObject(),
	)

	return outputConvertResult(formatter, token, res)
}

// mergeConvertOptions overlays the options file beneath explicitly set flags.
func mergeConvertOptions(flags *convertFlags, file *OptionsFile, cmd *cobra.Command) {
	set := cmd.Flags().Changed
	if !set("policy") && file.Policy != "" {
		flags.Policy = file.Policy
	}
	if !set("day-first") {
		flags.DayFirst = file.DayFirst
	}
	if !set("year-first") {
		flags.YearFirst = file.YearFirst
	}
	if !set("utc") {
		flags.UTC = file.UTC
	}
	if !set("strict-iso") {
		flags.StrictISO = file.StrictISO
	}
	if !set("unit") && file.Unit != "" {
		flags.Unit = file.Unit
	}
	if !set("layout") && file.Layout != "" {
		flags.Layout = file.Layout
	}
	if !set("zone") && file.Zone != "" {
		flags.Zone = file.Zone
	}
}

func outputConvertResult(formatter *OutputFormatter, token string, res engine.Result) error {
	if res.IsObject() {
		rendered := make([]any, len(res.Objects))
		lines := make([]string, len(res.Objects))
		for i, o := range res.Objects {
			rendered[i] = renderObject(o)
			lines[i] = objectLine(o)
		}
		return formatter.Success(token, ConvertResult{Kind: "objects", Objects: rendered}, lines)
	}

	ticks := make([]*int64, len(res.Ticks))
	lines := make([]string, len(res.Ticks))
	for i := range res.Ticks {
		if tick.IsNull(res.Ticks[i]) {
			lines[i] = format.DefaultNullRepr
			continue
		}
		t := res.Ticks[i]
		ticks[i] = &t
		lines[i] = fmt.Sprintf("%d", t)
	}

	result := ConvertResult{Kind: "ticks", Ticks: ticks}
	if res.Location != nil {
		result.Timezone = res.Location.String()
	}
	return formatter.Success(token, result, lines)
}

// renderObject maps an object-array element to a JSON-friendly value.
func renderObject(o any) any {
	if t, ok := o.(time.Time); ok {
		return t.Format(time.RFC3339Nano)
	}
	return o
}

func objectLine(o any) string {
	switch val := o.(type) {
	case nil:
		return format.DefaultNullRepr
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", val)
	}
}
