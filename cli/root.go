// Package cli implements the tripcost command line.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kbukum/tripcost/budget"
	"github.com/kbukum/tripcost/cache"
	"github.com/kbukum/tripcost/config"
	"github.com/kbukum/tripcost/httpclient/rest"
	"github.com/kbukum/tripcost/logger"
	"github.com/kbukum/tripcost/observability"
)

// ServiceName names the config files, logs and telemetry of the CLI.
const ServiceName = "tripcost"

// ErrNotFound is returned when the API has no data for the request.
var ErrNotFound = stderrors.New("not found")

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// reportError prints err and, for request failures, a suggested next step.
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, err)
	if h := hint(err); h != "" {
		fmt.Fprintln(w, "hint:", h)
	}
}

func hint(err error) string {
	switch {
	case rest.IsAuth(err):
		return "check --api-key or the API_KEY environment variable"
	case rest.IsRateLimit(err):
		return "lower api.rate_limit.rate or try again later"
	case rest.IsTimeout(err):
		return "raise api.timeout or check the connection"
	case rest.IsConnection(err):
		return "check --base-url and the network"
	case rest.IsServerError(err):
		return "the service is failing, try again later"
	}
	return ""
}

// globalFlags are shared by every command.
type globalFlags struct {
	configFile string
	envFile    string
	apiKey     string
	baseURL    string
	output     string
	query      string
	debug      bool
	noCache    bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           ServiceName,
		Short:         "Query travel costs from the BudgetYourTrip API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return validateOutput(g.output)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&g.configFile, "config", "", "config file (default: searched, e.g. ./config.yml)")
	f.StringVar(&g.envFile, "env-file", "", ".env file to load before reading the environment")
	f.StringVar(&g.apiKey, "api-key", "", "API key (overrides api.key)")
	f.StringVar(&g.baseURL, "base-url", "", "API root (overrides api.base_url)")
	f.StringVarP(&g.output, "output", "o", FormatJSON, "output format: json, yaml, text or dump")
	f.StringVarP(&g.query, "query", "q", "", "JSONPath expression applied to the result, e.g. $[0].name")
	f.BoolVar(&g.debug, "debug", false, "log requests to stderr")
	f.BoolVar(&g.noCache, "no-cache", false, "disable the response cache for this run")

	cmd.AddCommand(
		categoryCmd(g),
		categoriesCmd(g),
		currencyCmd(g),
		currenciesCmd(g),
		locationCmd(g),
		locationInfoCmd(g),
		searchLocationsCmd(g),
		countryCmd(g),
		searchCountriesCmd(g),
		costsCmd(g),
		convertCmd(g),
		rawCmd(g),
		versionCmd(g),
	)
	return cmd
}

// session holds everything a command needs to talk to the API.
type session struct {
	log      *logger.Logger
	client   *budget.Client
	provider *observability.Provider
}

func (s *session) close(ctx context.Context) {
	if err := s.client.Close(); err != nil {
		s.log.Warn("closing client", logger.ErrorFields("close", err))
	}
	if err := s.provider.Shutdown(ctx); err != nil {
		s.log.Warn("flushing telemetry", logger.ErrorFields("shutdown", err))
	}
}

// loadConfig reads the config layers and applies flag overrides before
// defaults and validation.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	var opts []config.LoaderOption
	if g.configFile != "" {
		opts = append(opts, config.WithConfigFile(g.configFile))
	}
	if g.envFile != "" {
		opts = append(opts, config.WithEnvFile(g.envFile))
	}

	cfg := &config.Config{Name: ServiceName}
	if err := config.LoadInto(ServiceName, cfg, opts...); err != nil {
		return nil, err
	}
	if g.apiKey != "" {
		cfg.API.APIKey = g.apiKey
	}
	if g.baseURL != "" {
		cfg.API.BaseURL = g.baseURL
	}
	if g.debug {
		cfg.Debug = true
		cfg.Logging.Level = "debug"
	}
	if g.noCache {
		cfg.Cache.Backend = cache.BackendNone
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *globalFlags) open(ctx context.Context, stderr io.Writer) (*session, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.NewWithWriter(&cfg.Logging, cfg.Name, stderr)

	provider, err := observability.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		return nil, err
	}

	store, err := cache.Open(cfg.Cache, log)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}
	apiCfg := cfg.API
	apiCfg.Cache = store

	client, err := budget.New(apiCfg, budget.WithLogger(log))
	if err != nil {
		_ = provider.Shutdown(ctx)
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}
	return &session{log: log, client: client, provider: provider}, nil
}

// runFunc performs one API call. A nil result means absent.
type runFunc func(ctx context.Context, c *budget.Client) (any, error)

// run wraps fn with session setup, rendering and teardown.
func (g *globalFlags) run(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		s, err := g.open(ctx, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer s.close(ctx)

		result, err := fn(ctx, s.client)
		if err != nil {
			return err
		}
		if result == nil {
			return ErrNotFound
		}
		return render(cmd.OutOrStdout(), result, g.output, g.query)
	}
}

// one converts a single lookup into a runFunc result, keeping absence untyped.
func one[T any](v *T, err error) (any, error) {
	if err != nil || v == nil {
		return nil, err
	}
	return v, nil
}

// many converts a multi lookup into a runFunc result, keeping absence untyped.
func many[T any](v []*T, err error) (any, error) {
	if err != nil || v == nil {
		return nil, err
	}
	return v, nil
}
