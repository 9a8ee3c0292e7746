package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/shell"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain manages the application lifecycle and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain(args []string) int {
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

type rootOptions struct {
	version bool
	debug   bool
	lang    string
}

// newRootCmd builds the command that runs one interactive session on the
// command's input and output streams.
func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           config.AppCommand,
		Short:         config.CmdShort,
		Long:          config.CmdLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.version {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.version, config.FlagVersion, false, config.FlagDescVersion)
	flags.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	flags.StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	return cmd
}

// run wires logging and the session, then blocks until the session ends.
func run(cmd *cobra.Command, opts rootOptions) error {
	// We configure structured logging (slog) early to capture startup issues.
	logCloser := setupLogging(opts.debug)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	logStartupInfo()

	ctx := cmd.Context()
	in := cmd.InOrStdin()

	session := shell.NewSession(shell.Options{
		In:   in,
		Out:  cmd.OutOrStdout(),
		Lang: opts.lang,
	})

	// Lifecycle Bridge:
	// A read on a terminal cannot be interrupted, so the session runs in its
	// own goroutine and a signal ends the process without waiting for it.
	errc := make(chan error, 1)
	go func() {
		errc <- session.Run(ctx)
	}()

	var err error
	select {
	case err = <-errc:
	case <-ctx.Done():
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		err = ctx.Err()
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return err
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}

// printVersion outputs the build information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyDate, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
// Standard output belongs to the interactive session, so logs go to a file
// in the user's cache directory and to stderr in debug mode.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if debugMode {
		writers = append(writers, os.Stderr)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
