// ABOUTME: Serve command for the bohe-sign CLI
// ABOUTME: Runs the JSON API server and the daily check-in scheduler

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/config"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/logger"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/server"
)

var envFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server and the daily scheduler",
	Long: `Run the check-in API server. Settings come from flags, the environment
and an optional .env file, in that order of precedence.

Environment Variables:
  PORT, DB_PATH, CACHE_TTL, LOG_LEVEL, LOG_FORMAT, LOG_FILE,
  CORS_ALLOWED_ORIGINS, RATE_LIMIT_ENABLED, RATE_LIMIT_DEFAULT, RATE_LIMIT_WRITE,
  LOTTERY_URL, USER_INFO_URL, TOPUP_URL, LOGIN_URL, UPSTREAM_TIMEOUT`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}

		v := viper.New()
		for key, flag := range map[string]string{
			config.KeyPort:         "port",
			config.KeyDatabasePath: "db",
			config.KeyLogLevel:     "log-level",
			config.KeyLogFormat:    "log-format",
		} {
			if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
				return err
			}
		}

		cfg, err := config.Load(v)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return serve(ctx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("port", "8080", "Listen port or host:port")
	serveCmd.Flags().String("db", "./data/bohe-sign.db", "SQLite database path")
	serveCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().String("log-format", "console", "Log format (console, json)")
	serveCmd.Flags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file")
}

// serve runs until ctx is cancelled or the listener fails
func serve(ctx context.Context, cfg *config.Config) error {
	log, restore := logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	defer restore()

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	if err := srv.Run(ctx); err != nil {
		log.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}
