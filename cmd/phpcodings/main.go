package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sadewadee/phpcodings/internal/config"
)

var version = "0.1.0-dev"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	logOutput  string
	format     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "phpcodings",
		Short: "Replays PHP teaching snippets with byte-exact output",
		Long: `phpcodings runs small PHP teaching snippets re-expressed in Go.

Scenarios:
  uppercase   uppercase an array in place and print_r it
  construct   derived constructor calls the base constructor first

Logs go to stderr unless --log-output says otherwise, so stdout carries
only scenario output.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&opts.logFormat, "log-format", "", "log format: text, json")
	pf.StringVar(&opts.logOutput, "log-output", "", "log destination: stdout, stderr or a file path")
	pf.StringVarP(&opts.format, "format", "f", "", "output format: text, json")

	root.AddCommand(
		newRunCmd(opts),
		newListCmd(opts),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads the config file, applies flag overrides and validates.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	if o.logOutput != "" {
		cfg.Logging.Output = o.logOutput
	}
	if o.format != "" {
		cfg.Output.Format = o.format
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "phpcodings v%s\n", version)
		},
	}
}

func setupLogger(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// resolveLogOutput maps a logging.output value to a writer. The closer is
// nil for the standard streams.
func resolveLogOutput(output string) (io.Writer, io.Closer) {
	switch output {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file %s, falling back to stderr: %v\n", output, err)
		return os.Stderr, nil
	}
	return f, f
}
