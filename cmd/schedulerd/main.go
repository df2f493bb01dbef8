// Command schedulerd runs the constraint-based scheduling engine:
// "serve" exposes the HTTP façade, "solve" runs one annealing pass
// against a problem file from the command line, and "version" prints
// build information. Structure grounded on
// cmd/ollamacron/main.go (Application struct, PersistentPreRunE
// logging bootstrap, build<Name>Cmd subcommand factories, graceful
// shutdown on SIGINT/SIGTERM).
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/khryptorgraphics/schedcore/internal/api"
	"github.com/khryptorgraphics/schedcore/internal/config"
	"github.com/khryptorgraphics/schedcore/internal/logging"
	"github.com/khryptorgraphics/schedcore/internal/model"
	"github.com/khryptorgraphics/schedcore/internal/seed"
	"github.com/khryptorgraphics/schedcore/internal/store"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// application holds process-wide state shared across subcommands.
type application struct {
	config *config.Config
	logger zerolog.Logger
}

func main() {
	app := &application{}

	rootCmd := &cobra.Command{
		Use:   "schedulerd",
		Short: "Constraint-based scheduling engine",
		Long: `schedulerd runs a simulated-annealing scheduler over a typed
constraint DSL: assign tasks to resource bundles while minimizing
weighted constraint violation cost.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.bootstrap(cmd)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: searches ./, ./config, /etc/schedcore)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format override (json, console)")

	rootCmd.AddCommand(
		buildServeCmd(app),
		buildSolveCmd(app),
		buildVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the root logger, run once
// per invocation via PersistentPreRunE.
func (app *application) bootstrap(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		cfg = config.Default()
	}

	if logLevel, _ := cmd.Flags().GetString("log-level"); logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat, _ := cmd.Flags().GetString("log-format"); logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	app.config = cfg
	app.logger = logging.New(logging.Config{
		Level:  logging.Level(cfg.Logging.Level),
		Format: logging.Format(cfg.Logging.Format),
	})

	if configFile != "" {
		app.logger.Info().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
	}
	return nil
}

func buildVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("schedulerd %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  date: %s\n", date)
			fmt.Printf("  go version: %s\n", runtime.Version())
		},
	}
}

func buildServeCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP façade",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runServe(cmd)
		},
	}

	cmd.Flags().String("listen", "", "override the configured listen address")
	cmd.Flags().Bool("seed-sample", false, "load the sample timetabling problem at startup")
	return cmd
}

// runServe starts the gin router behind an http.Server and blocks
// until a shutdown signal arrives, mirroring waitForShutdown/shutdown
// in cmd/ollamacron/main.go.
func (app *application) runServe(cmd *cobra.Command) error {
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		app.config.Server.Listen = listen
	}
	seedSample, _ := cmd.Flags().GetBool("seed-sample")

	var st *store.Store
	if seedSample {
		st = store.New(seed.Problem(), seed.Constraints())
		app.logger.Info().Msg("loaded sample timetabling problem")
	} else {
		st = store.New(model.ProblemData{ItemCategories: map[string]model.Item{}}, nil)
	}

	router := api.NewRouter(st, app.logger, app.config.Server, app.config.Solver)
	httpServer := &http.Server{
		Addr:         app.config.Server.Listen,
		Handler:      router,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info().Str("listen", httpServer.Addr).Msg("starting server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigChan:
		app.logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	app.logger.Info().Msg("shutdown complete")
	return nil
}
