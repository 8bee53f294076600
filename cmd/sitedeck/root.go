package main

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sitedeck/internal/collection"
	"sitedeck/internal/config"
	"sitedeck/internal/logging"
	"sitedeck/internal/siteapi"
	"sitedeck/internal/telemetry"
	"sitedeck/internal/ui"
)

// errReported marks failures the user has already been told about.
var errReported = errors.New("already reported")

// rootOptions carries flag values and the resolved configuration to
// subcommands.
type rootOptions struct {
	apiURL  string
	timeout time.Duration

	cfg *config.AppConfig

	// confirmer overrides the interactive prompt used by rm.
	confirmer collection.Confirmer
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitedeck",
		Short: "Browse and delete the sites of a sites service",
		Long: `sitedeck lists the sites served by a sites service and lets you view,
edit and delete them. Without a subcommand it opens the terminal UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.load(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts.cfg)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "base URL of the sites service (default $SITEDECK_API_URL or "+config.DefaultAPIURL+")")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "per-request timeout, 0 for none (default $SITEDECK_HTTP_TIMEOUT)")

	cmd.AddCommand(newLsCmd(opts), newRmCmd(opts), newServeCmd(opts))
	return cmd
}

// load reads .env and the environment, then applies flags on top.
func (o *rootOptions) load(cmd *cobra.Command) {
	config.LoadEnvironment()
	cfg := config.LoadAppConfigFromEnv()
	if f := cmd.Flag("api-url"); f != nil && f.Changed {
		cfg.APIURL = strings.TrimRight(o.apiURL, "/")
	}
	if f := cmd.Flag("timeout"); f != nil && f.Changed {
		cfg.HTTPTimeout = o.timeout
	}
	o.cfg = cfg
}

// setupTelemetry starts trace export when configured. Failures downgrade to
// a disabled provider.
func setupTelemetry(ctx context.Context, cfg *config.AppConfig, log *logging.Logger) *telemetry.Provider {
	tp, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		log.Warn("tracing disabled", "error", err)
		return telemetry.Disabled()
	}
	if tp.Enabled() {
		log.Info("tracing enabled", "endpoint", cfg.Telemetry.Endpoint)
	}
	return tp
}

func shutdownTelemetry(tp *telemetry.Provider, log *logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tp.Shutdown(ctx); err != nil {
		log.Warn("flush traces", "error", err)
	}
}

func newClient(cfg *config.AppConfig, tp *telemetry.Provider) *siteapi.Client {
	return siteapi.NewClient(cfg.APIURL,
		siteapi.WithTimeout(cfg.HTTPTimeout),
		siteapi.WithTracer(tp.Tracer()),
	)
}

// runTUI runs the terminal UI until the user quits. Logs never reach the
// terminal while the UI owns it.
func runTUI(ctx context.Context, cfg *config.AppConfig) error {
	log, err := logging.NewLogger(cfg.TUILogging())
	if err != nil {
		return err
	}
	defer log.Close()

	tp := setupTelemetry(ctx, cfg, log)
	defer shutdownTelemetry(tp, log)

	model := ui.NewAppModel(ui.AppOptions{
		Source:     newClient(cfg, tp),
		Logger:     log,
		BaseURL:    cfg.APIURL,
		CreatePath: cfg.CreatePath,
	})
	log.Info("starting ui", "api_url", cfg.APIURL)
	p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
