package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/sadewadee/phpcodings/internal/engine"
	"github.com/sadewadee/phpcodings/internal/protocol"
	"github.com/sadewadee/phpcodings/internal/scenario"
)

// jsonRecord is one line of --format json output. Run IDs stay out of it so
// repeated runs print identical bytes.
type jsonRecord struct {
	Scenario string `json:"scenario"`
	Output   string `json:"output"`
}

func newRunCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario>...",
		Short: "Run scenarios in order and print their output",
		Example: `  phpcodings run uppercase
  phpcodings run construct
  phpcodings run uppercase construct --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(cmd, opts, args)
		},
	}
}

func runScenarios(cmd *cobra.Command, opts *globalOptions, names []string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logOut, closer := resolveLogOutput(cfg.Logging.Output)
	if closer != nil {
		defer closer.Close()
	}
	logger := setupLogger(cfg.Logging.Level, cfg.Logging.Format, logOut)

	reg, err := scenario.FromConfig(cfg)
	if err != nil {
		return err
	}

	// Reject unknown names before anything reaches stdout.
	for _, name := range names {
		if _, err := reg.Lookup(name); err != nil {
			logger.Error("unknown scenario", "scenario", name, "available", reg.Names())
			return err
		}
	}

	eng := engine.New(reg, logger)
	if err := eng.Startup(); err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}
	defer eng.Shutdown()

	pong, err := eng.Ping(protocol.NewPingFrame())
	if err != nil {
		return fmt.Errorf("engine health check: %w", err)
	}
	logger.Debug("engine ping", "reply", string(pong.Payload))

	out := cmd.OutOrStdout()
	for _, name := range names {
		res, err := eng.Run(cmd.Context(), name)
		if err != nil {
			return err
		}
		logger.Info("scenario complete", "scenario", res.Scenario, "run_id", res.RunID, "bytes", len(res.Output))

		if err := writeResult(out, cfg.Output.Format, res); err != nil {
			return fmt.Errorf("writing %s output: %w", name, err)
		}
	}
	return nil
}

func writeResult(w io.Writer, format string, res *engine.Result) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(jsonRecord{
			Scenario: res.Scenario,
			Output:   string(res.Output),
		})
	}
	_, err := w.Write(res.Output)
	return err
}

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			reg, err := scenario.FromConfig(cfg)
			if err != nil {
				return err
			}
			for _, name := range reg.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
