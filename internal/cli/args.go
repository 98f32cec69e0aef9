package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"srtshift/internal/subtitle"
	"srtshift/internal/timecode"
)

// Args is the parsed command line. It is built once and passed by value.
type Args struct {
	File       string
	Seconds    int
	Mode       subtitle.Op
	Out        string
	Policy     string
	ConfigPath string
	DryRun     bool
	Verbose    bool
	// HelpShown is set when --help or --version was handled and there is
	// nothing left to run.
	HelpShown bool
}

// ArgumentError reports a missing or invalid command-line argument.
type ArgumentError struct {
	Flag string
	Err  error
}

func (e *ArgumentError) Error() string {
	if e.Flag == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("--%s: %v", e.Flag, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// ParseArgs parses argv (without the program name). Help and version text go
// to out. Every failure is returned as an *ArgumentError.
//
// --out and --policy are left empty when not given so the caller can fall
// back to configuration.
func ParseArgs(argv []string, out io.Writer) (Args, error) {
	if argv == nil {
		// cobra reads os.Args when no args were set.
		argv = []string{}
	}
	var a Args
	var mode string
	ran := false

	cmd := &cobra.Command{
		Use:   "srtshift --file <path> --seconds <n> --mode <+|->",
		Short: "Shift SRT subtitle timings",
		Long: `srtshift adds or subtracts a fixed number of seconds to every
"start --> end" timing line of a subtitle file. All other lines are copied
unchanged.`,
		Version:       "0.1",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ran = true
			op, err := subtitle.ParseOp(mode)
			if err != nil {
				return &ArgumentError{Flag: "mode", Err: err}
			}
			a.Mode = op
			if a.Seconds < 0 {
				return &ArgumentError{Flag: "seconds", Err: errors.Errorf("must be non-negative, got %d", a.Seconds)}
			}
			if a.File == "" {
				return &ArgumentError{Flag: "file", Err: errors.New("must not be empty")}
			}
			if cmd.Flags().Changed("out") && a.Out == "" {
				return &ArgumentError{Flag: "out", Err: errors.New("must not be empty")}
			}
			if cmd.Flags().Changed("policy") {
				if _, err := timecode.ParsePolicy(a.Policy); err != nil {
					return &ArgumentError{Flag: "policy", Err: err}
				}
			}
			return nil
		},
	}

	bindFlags(cmd.Flags(), &a, &mode)
	for _, name := range []string{"file", "seconds", "mode"} {
		_ = cmd.MarkFlagRequired(name)
	}

	cmd.SetArgs(argv)
	cmd.SetOut(out)
	cmd.SetErr(out)
	if err := cmd.Execute(); err != nil {
		var ae *ArgumentError
		if errors.As(err, &ae) {
			return Args{}, ae
		}
		return Args{}, &ArgumentError{Err: err}
	}
	if !ran {
		return Args{HelpShown: true}, nil
	}
	return a, nil
}

func bindFlags(f *pflag.FlagSet, a *Args, mode *string) {
	f.StringVarP(&a.File, "file", "f", "", "subtitle file to edit")
	f.IntVarP(&a.Seconds, "seconds", "s", 0, "seconds to shift each timestamp by")
	f.StringVarP(mode, "mode", "m", "", "+ to add or - to subtract the seconds")
	f.StringVarP(&a.Out, "out", "o", "", "output file (default from config, out.srt)")
	f.StringVarP(&a.Policy, "policy", "p", "", "literal (seconds field only) or normalized (carry across fields)")
	f.StringVarP(&a.ConfigPath, "config", "c", "", "YAML file with default settings")
	f.BoolVar(&a.DryRun, "dry-run", false, "print the changed lines instead of writing the output file")
	f.BoolVarP(&a.Verbose, "verbose", "v", false, "log debug details")
}

// Exit terminates the process with the given exit code.
func Exit(code int) {
	os.Exit(code)
}
