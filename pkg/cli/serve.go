package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/getmockd/mockwatchlogs/pkg/config"
	"github.com/getmockd/mockwatchlogs/pkg/engine"
	"github.com/getmockd/mockwatchlogs/pkg/logging"

	"github.com/spf13/cobra"
)

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	configPath          string
	host                string
	port                int
	printURL            bool
	logLevel            string
	logFormat           string
	logFile             string
	region              string
	accountID           string
	alreadyExistsStatus int
	unavailableGroup    string
	noMetrics           bool
	metricsPath         string
	requestLogEntries   int
}

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the CloudWatch Logs emulator",
	Long: `Run the emulator in the foreground until SIGTERM/SIGINT.

Requests are POSTed to / with an X-Amz-Target header of the form
Logs_20140328.<Action>. Alongside the API the server exposes /health,
/status, /_reset, /_requests and, unless disabled, Prometheus metrics.`,
	Example: `  # Listen on the default port
  mockwatchlogs serve

  # Auto-assign a port and print the URL
  mockwatchlogs serve --port 0 --print-url

  # Answer duplicate creates with 400 like the real service
  mockwatchlogs serve --already-exists-status 400

  # Load settings and seed data from a file
  mockwatchlogs serve --config mockwatchlogs.yaml`,
	RunE: runServe,
}

func init() {
	bindServeFlags(serveCmd, &serveFlagVals)
	rootCmd.AddCommand(serveCmd)
}

func bindServeFlags(cmd *cobra.Command, f *serveFlags) {
	fs := cmd.Flags()

	fs.StringVarP(&f.configPath, "config", "c", "", "Path to configuration file (YAML or JSON)")
	fs.StringVar(&f.host, "host", config.DefaultHost, "Bind address")
	fs.IntVarP(&f.port, "port", "p", config.DefaultPort, "HTTP server port (0 = OS auto-assign)")
	fs.BoolVar(&f.printURL, "print-url", false, "Print the server URL to stdout on startup")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log format (text, json)")
	fs.StringVar(&f.logFile, "log-file", "", "Also write JSON logs to this rotating file")
	fs.StringVar(&f.region, "region", "", "Region used in generated ARNs")
	fs.StringVar(&f.accountID, "account-id", "", "Account ID used in generated ARNs")
	fs.IntVar(&f.alreadyExistsStatus, "already-exists-status", 0, "HTTP status for ResourceAlreadyExistsException (default 404)")
	fs.StringVar(&f.unavailableGroup, "unavailable-group", config.DefaultServiceUnavailableGroup, "Group name that always fails with ServiceUnavailableException (empty disables)")
	fs.BoolVar(&f.noMetrics, "no-metrics", false, "Disable the Prometheus metrics endpoint")
	fs.StringVar(&f.metricsPath, "metrics-path", config.DefaultMetricsPath, "Path of the Prometheus metrics endpoint")
	fs.IntVar(&f.requestLogEntries, "request-log", config.DefaultRequestLogEntries, "Request history size (0 disables)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &serveFlagVals, os.LookupEnv)
	if err != nil {
		return err
	}

	log := logging.New(cfg.LoggerConfig())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, log, func(srv *engine.Server) {
		if serveFlagVals.printURL {
			fmt.Fprintln(cmd.OutOrStdout(), srv.URL())
		}
	})
}

// resolveConfig layers defaults, the config file, the environment and the
// flags the user set explicitly, then validates the result.
func resolveConfig(cmd *cobra.Command, f *serveFlags, lookup func(string) (string, bool)) (*config.ServerConfiguration, error) {
	cfg := config.DefaultServerConfiguration()
	if f.configPath != "" {
		loaded, err := config.LoadFromFile(f.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("host") {
		cfg.Host = f.host
	}
	if changed("port") {
		cfg.Port = f.port
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}
	if changed("log-file") {
		cfg.Logging.File = f.logFile
	}
	if changed("region") {
		cfg.Region = f.region
	}
	if changed("account-id") {
		cfg.AccountID = f.accountID
	}
	if changed("already-exists-status") {
		cfg.Compat.AlreadyExistsStatus = f.alreadyExistsStatus
	}
	if changed("unavailable-group") {
		cfg.TestHooks.ServiceUnavailableGroup = f.unavailableGroup
	}
	if changed("no-metrics") {
		cfg.Metrics.Enabled = !f.noMetrics
	}
	if changed("metrics-path") {
		cfg.Metrics.Path = f.metricsPath
	}
	if changed("request-log") {
		cfg.RequestLog.MaxEntries = f.requestLogEntries
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// serve starts the engine, calls ready once it is listening and blocks until
// ctx is done.
func serve(ctx context.Context, cfg *config.ServerConfiguration, log *slog.Logger, ready func(*engine.Server)) error {
	srv, err := engine.NewServer(cfg, engine.WithLogger(log.With("component", "engine")))
	if err != nil {
		return err
	}

	if err := srv.Start(); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use, try --port 0 for auto-assign", cfg.Port)
		}
		return fmt.Errorf("failed to start engine: %w", err)
	}

	log.Info("mockwatchlogs ready",
		"url", srv.URL(),
		"metrics", cfg.Metrics.Enabled,
		"requestLog", cfg.RequestLog.MaxEntries,
		"seedGroups", len(cfg.Seed),
	)
	if ready != nil {
		ready(srv)
	}

	<-ctx.Done()

	log.Info("shutting down")
	return srv.Close()
}
