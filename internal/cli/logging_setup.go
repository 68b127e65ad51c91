package cli

import (
	"github.com/spf13/cobra"

	"github.com/SimosManiatis/vitrify/internal/config"
	"github.com/SimosManiatis/vitrify/internal/logging"
)

// setupLogging builds the logger from config-file defaults overlaid with the
// persistent flags and attaches it to the command context. Config load
// failures are tolerated here: commands that need the config will report
// them, and `config init` must work without one.
func setupLogging(cmd *cobra.Command) error {
	logCfg := logging.Config{Level: "info", Format: "console"}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultFileName
	}
	if cfg, err := config.Load(path); err == nil {
		logCfg.Level = cfg.Logging.Level
		logCfg.Format = cfg.Logging.Format
		logCfg.File = cfg.Logging.File
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		logCfg.Format = format
	}
	if file, _ := cmd.Flags().GetString("log-file"); file != "" {
		logCfg.File = file
	}

	res := logging.NewLogger(logCfg)
	if res.FallbackUsed {
		cmd.PrintErrf("warning: cannot open log file, logging to stderr: %v\n", res.FallbackErr)
	}

	cliLogger := logging.ComponentLogger(res.Logger, "cli")
	cliLogger.Debug().
		Str("command", cmd.Name()).
		Str("level", logCfg.Level).
		Str("format", logCfg.Format).
		Msg("logging configured")

	cmd.SetContext(logging.ContextWithLogger(cmd.Context(), res.Logger))
	return nil
}
