package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Veraticus/dual-count/internal/cli"
	"github.com/Veraticus/dual-count/internal/common"
	"github.com/Veraticus/dual-count/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	logFile io.Closer
	cfgFile string
	cfg     config.Config
}

func newApp() *app {
	return &app{v: viper.New()}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dualcount",
		Short: "Two column expense ledger",
		Long: `dual-count: a simple two column spreadsheet for writing expenses in two
currencies side by side.

Run without a command to open the interactive ledger. Every change is saved
as it happens.`,
		PersistentPreRunE: a.initConfig,
		RunE:              a.runTUI,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/dualcount/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("variant", "dual", "ledger variant (dual, counter)")

	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("ui.variant", flags.Lookup("variant"))

	cmd.AddCommand(a.addCmd())
	cmd.AddCommand(a.setCmd())
	cmd.AddCommand(a.rateCmd())
	cmd.AddCommand(a.summaryCmd())
	cmd.AddCommand(a.exportCmd())
	cmd.AddCommand(a.importOFXCmd())
	cmd.AddCommand(a.checkpointCmd())
	cmd.AddCommand(a.resetCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func main() {
	handler := cli.NewInterruptHandler(os.Stderr)
	ctx, cancel := context.WithCancel(context.Background())
	ctx = handler.HandleInterrupts(ctx, true)

	a := newApp()
	err := a.rootCmd().ExecuteContext(ctx)
	a.close()
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	config.SetDefaults(a.v)
	config.BindEnv(a.v)

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		a.v.AddConfigPath(filepath.Join(home, ".config", "dualcount"))
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return common.NewUserError("invalid configuration", err)
	}
	a.cfg = cfg

	if err := a.setupLogging(cmd); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

// setupLogging sends logs to stderr for plain commands. The interactive
// ledger owns the terminal, so it logs to the configured file instead.
func (a *app) setupLogging(cmd *cobra.Command) error {
	level, err := common.ParseLevel(a.cfg.Logging.Level)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.ErrOrStderr()
	if !cmd.HasParent() {
		f, err := common.OpenLogFile(a.cfg.Logging.File)
		if err != nil {
			return err
		}
		a.logFile = f
		w = f
	}

	return common.SetupLogger(w, level, a.cfg.Logging.Format)
}

func (a *app) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "dualcount version %s\n", version)
			return err
		},
	}
}
