package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdugdh24/studymatch-backend/internal/config"
	"github.com/gdugdh24/studymatch-backend/internal/infrastructure/container"
	"github.com/gdugdh24/studymatch-backend/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "regenerate"

// Actual version can be specified in build command.
var version = "unknown"

var rootCmd = &cobra.Command{
	Use:           app,
	Short:         "regenerate rebuilds stored study partner suggestions",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// bootstrap loads config and wires the application for one command run.
// Flags override LOG_LEVEL and LOG_JSON.
func bootstrap() (*container.Container, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Logging.Level
	if viper.GetBool("debug") {
		level = "debug"
	}
	log, err := logger.New(level, cfg.Logging.JSON || viper.GetBool("json"))
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}

	c, err := container.NewContainer(cfg, log)
	if err != nil {
		log.Error("initializing application", zap.Error(err))
		return nil, nil, err
	}
	return c, log, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}
