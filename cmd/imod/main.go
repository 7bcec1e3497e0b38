// imod is an interactive terminal editor for Unix file permissions.
//
// Usage:
//
//	imod [flags] FILE
//
// The current mode of FILE is shown as an editable owner/group/other
// triplet. Left/right arrows move between triplets, up/down arrows step
// the selected octal digit, 0-7 sets it directly, and a quick burst of
// r/w/x/- characters sets it symbolically. Enter applies the new mode
// via chmod; Ctrl-C leaves the file untouched.
//
// Flags:
//
//	-c, -v, -f, -R       passed through to chmod (--changes, --verbose,
//	                     --silent, --recursive)
//	-preserve-root       passed through to chmod
//	-no-preserve-root    passed through to chmod
//	-reference FILE      passed through to chmod
//	-preset NAME         start from a named mode in the presets file
//	-timeout DURATION    symbolic-run disambiguation window (default 1s)
//	-history N           print the last N applied changes and exit
//	-debug               enable debug logging (IMOD_LOG sets the file)
//	-version             show version and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	imod "github.com/Ahuge/imod"
	"github.com/Ahuge/imod/editor"
	"github.com/Ahuge/imod/history"
	"github.com/Ahuge/imod/mode"
	"github.com/Ahuge/imod/tty"
)

func main() {
	changes := flag.Bool("c", false, "report only when a change is made (chmod -c)")
	verbose := flag.Bool("v", false, "report every file processed (chmod -v)")
	silent := flag.Bool("f", false, "suppress most error messages (chmod -f)")
	recursive := flag.Bool("R", false, "change files and directories recursively (chmod -R)")
	preserveRoot := flag.Bool("preserve-root", false, "fail to operate recursively on /")
	noPreserveRoot := flag.Bool("no-preserve-root", false, "do not treat / specially")
	reference := flag.String("reference", "", "pass --reference=FILE through to chmod")
	preset := flag.String("preset", "", "start from a named mode in the presets file")
	timeout := flag.Duration("timeout", 0, "symbolic-run disambiguation window (0 uses config)")
	historyN := flag.Int("history", 0, "print the last N applied changes and exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "show version and exit")
	flag.Parse()

	if *showVersion {
		info := imod.GetVersionInfo()
		fmt.Fprintf(os.Stdout, "imod %s (%s, %s)\n", info.Version, info.GoVersion, info.Platform)
		os.Exit(0)
	}

	cfg := imod.LoadConfig()
	if *timeout > 0 {
		cfg.RunTimeout = *timeout
	}
	slog.SetDefault(newLogger(cfg.LogPath, *debug))

	if *historyN > 0 {
		os.Exit(printHistory(cfg.HistoryPath, *historyN))
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: imod [flags] FILE")
		flag.PrintDefaults()
		os.Exit(2)
	}
	file := flag.Arg(0)

	intent := mode.Intent{
		Changes:        *changes,
		Verbose:        *verbose,
		Silent:         *silent,
		Recursive:      *recursive,
		PreserveRoot:   *preserveRoot,
		NoPreserveRoot: *noPreserveRoot,
		Reference:      *reference,
	}

	set, oldMode, err := initialSet(cfg, *preset, file, intent)
	if err != nil {
		fmt.Fprintln(os.Stderr, "imod:", err)
		os.Exit(1)
	}

	os.Exit(edit(cfg, set, file, oldMode))
}

// initialSet stats the target and builds the editable state, starting
// from a preset mode when one was requested.
func initialSet(cfg imod.Config, preset, file string, intent mode.Intent) (*mode.Set, string, error) {
	info, err := os.Stat(file)
	if err != nil {
		return nil, "", err
	}
	oldMode := fmt.Sprintf("%03o", info.Mode().Perm())

	if preset != "" {
		octal, err := imod.LookupPreset(cfg.PresetsPath, preset)
		if err != nil {
			return nil, "", err
		}
		set, err := mode.FromOctal(octal, intent)
		if err != nil {
			return nil, "", err
		}
		return set, oldMode, nil
	}
	return mode.NewSet(info.Mode(), intent), oldMode, nil
}

// edit runs one interactive session and applies the result. The return
// value is the process exit code: 0 for apply success, cancel, or the
// designed unknown-escape exit; chmod's code on apply failure.
func edit(cfg imod.Config, set *mode.Set, file, oldMode string) int {
	t, err := tty.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, "imod:", err)
		return 1
	}
	defer t.Restore()

	sess := editor.NewSession(t, os.Stdout, set, file, cfg.RunTimeout, slog.Default())
	res, runErr := sess.Run(context.Background())

	// Raw mode must be off before anything else reaches the terminal.
	if err := t.Restore(); err != nil {
		slog.Warn("restoring terminal mode", "error", err)
	}

	if errors.Is(runErr, editor.ErrUnrecognizedEscape) {
		slog.Debug("session ended on unrecognized escape")
		return 0
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "imod:", runErr)
		return 1
	}
	if !res.Applied {
		return 0
	}

	if err := editor.Apply(context.Background(), os.Stdout, res.Mode, res.Flags, file); err != nil {
		fmt.Fprintln(os.Stderr, "imod:", err)
		var applyErr *editor.ApplyError
		if errors.As(err, &applyErr) && applyErr.ExitCode != 0 {
			return applyErr.ExitCode
		}
		return 1
	}

	recordChange(cfg.HistoryPath, file, oldMode, res)
	return 0
}

// recordChange journals an applied change. Failures degrade to a log
// line; the chmod already succeeded.
func recordChange(path, file, oldMode string, res editor.Result) {
	j, err := history.Open(path)
	if err != nil {
		slog.Warn("history unavailable", "error", err)
		return
	}
	defer j.Close()
	c := history.Change{
		Path:    file,
		OldMode: oldMode,
		NewMode: res.Mode,
		Flags:   strings.Join(res.Flags, " "),
	}
	if err := j.Record(context.Background(), c); err != nil {
		slog.Warn("history record failed", "error", err)
	}
}

func printHistory(path string, n int) int {
	j, err := history.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "imod:", err)
		return 1
	}
	defer j.Close()

	changes, err := j.Recent(context.Background(), n)
	if err != nil {
		fmt.Fprintln(os.Stderr, "imod:", err)
		return 1
	}
	for _, c := range changes {
		line := fmt.Sprintf("%s  %s -> %s  %s",
			c.Applied.Format("2006-01-02 15:04:05"), c.OldMode, c.NewMode, c.Path)
		if c.Flags != "" {
			line += "  [" + c.Flags + "]"
		}
		fmt.Println(line)
	}
	return 0
}

// newLogger sends debug logs to the configured file so they do not fight
// the status line for the terminal; without a file, non-debug runs
// discard logs and -debug falls back to stderr.
func newLogger(path string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	var w io.Writer = io.Discard
	if path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			w = f
		}
	} else if debug {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
