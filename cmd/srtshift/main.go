package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"srtshift/internal/cli"
	"srtshift/internal/config"
	"srtshift/internal/fsx"
	"srtshift/internal/subtitle"
	"srtshift/internal/timecode"
)

var (
	newLogger    = func() loggerAPI { return cli.NewStdLogger(false) }
	newFiles     = func() fileAPI { return osFiles{} }
	loadConfigFn = config.Load
	exitFn       = cli.Exit
	stdout       io.Writer = os.Stdout
)

type loggerAPI interface {
	SetVerbose(verbose bool)
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Success(msg string)
	Failure(msg string)
}

type fileAPI interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

type osFiles struct{}

func (osFiles) ReadFile(path string) ([]byte, error) { return fsx.ReadFile(path) }

func (osFiles) WriteFile(path string, data []byte) error {
	return fsx.WriteFileAtomic(path, data, 0o644)
}

func execute(args []string, logger loggerAPI, cfgLoader func(path string) (config.Config, error), files fileAPI) int {
	a, err := cli.ParseArgs(args, stdout)
	if err != nil {
		logger.Error(formatError(err))
		return 1
	}
	if a.HelpShown {
		return 0
	}
	logger.SetVerbose(a.Verbose)

	cfg, err := cfgLoader(a.ConfigPath)
	if err != nil {
		logger.Error(formatError(err))
		return 1
	}
	out := cfg.Out
	if a.Out != "" {
		out = a.Out
	}
	policy := cfg.ShiftPolicy()
	if a.Policy != "" {
		// ParseArgs has already validated the token.
		policy, _ = timecode.ParsePolicy(a.Policy)
	}
	opts := subtitle.Options{Op: a.Mode, Seconds: a.Seconds, Policy: policy}
	logger.Debug(fmt.Sprintf("file=%s mode=%s seconds=%d policy=%s out=%s", a.File, opts.Op, opts.Seconds, opts.Policy, out))

	data, err := files.ReadFile(a.File)
	if err != nil {
		logger.Error(formatError(err))
		return 1
	}

	progress := cli.NewLineProgress(filepath.Base(a.File), countLines(data))
	shifted, st, err := subtitle.Rewrite(bytes.NewReader(data), opts, progress.Update)
	progress.Stop()
	if err != nil {
		// Nothing has been written yet, so a failed line leaves no output file.
		logger.Error(formatError(err))
		return 1
	}

	if a.DryRun {
		n, err := cli.WriteDiff(stdout, string(data), string(shifted))
		if err != nil {
			logger.Error(formatError(err))
			return 1
		}
		logger.Info(fmt.Sprintf("Dry run: %d of %d timing lines would change, %s not written", n, st.Ranges, out))
		return 0
	}

	if err := files.WriteFile(out, shifted); err != nil {
		logger.Error(formatError(err))
		return 1
	}
	logger.Success(fmt.Sprintf("Shifted %d timing lines (%d lines total): %s", st.Ranges, st.Lines, out))
	return 0
}

func main() {
	logger := newLogger()
	exitCode := execute(os.Args[1:], logger, loadConfigFn, newFiles())
	exitFn(exitCode)
}

func countLines(data []byte) int {
	n := bytes.Count(data, []byte("\n"))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

// formatError prefixes err with the kind of failure so the user can tell a bad
// flag from a bad file or a bad line.
func formatError(err error) string {
	if err == nil {
		return ""
	}
	var (
		argErr  *cli.ArgumentError
		ioErr   *fsx.IOError
		lineErr *subtitle.LineError
	)
	switch {
	case errors.As(err, &argErr):
		return "invalid arguments: " + err.Error()
	case errors.As(err, &ioErr):
		return "i/o error: " + err.Error()
	case errors.As(err, &lineErr) && errors.Is(err, timecode.ErrUnderflow):
		return "underflow: " + err.Error()
	case errors.As(err, &lineErr) && errors.Is(err, timecode.ErrOverflow):
		return "overflow: " + err.Error()
	case errors.As(err, &lineErr) && errors.Is(err, subtitle.ErrLineTooLong):
		return "input error: " + err.Error()
	case errors.As(err, &lineErr):
		return "parse error: " + err.Error()
	}
	return err.Error()
}
