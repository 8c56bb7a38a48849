package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind string
	port int

	dbPath string

	osuAPIKey       string
	osuClientID     string
	osuClientSecret string
	osuBaseURL      string
	osuBaseURLV2    string
	osuTokenURL     string
	httpRetries     int
	httpBackoff     time.Duration

	popularityExponent float64
	selectionRetries   int

	workers   int
	queueSize int

	verbose bool
	version bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.osuAPIKey == "" && (c.osuClientID == "" || c.osuClientSecret == "") {
		return errors.New("either --osu-api-key or both --osu-client-id and --osu-client-secret must be provided")
	}
	if c.popularityExponent < 0 || c.popularityExponent > 1 {
		return fmt.Errorf("invalid popularity exponent (must be between 0 and 1): %g", c.popularityExponent)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("HEARDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "osu-heardle",
		Short:         "A heardle-style music quiz over the osu! beatmap catalog.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: HEARDLE_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: HEARDLE_PORT)")
	fs.StringVar(&cfg.dbPath, "db", "heardle.db", "path to the sqlite history database (env: HEARDLE_DB)")
	fs.StringVar(&cfg.osuAPIKey, "osu-api-key", "", "osu! v1 API key (env: HEARDLE_OSU_API_KEY)")
	fs.StringVar(&cfg.osuClientID, "osu-client-id", "", "osu! v2 OAuth client id (env: HEARDLE_OSU_CLIENT_ID)")
	fs.StringVar(&cfg.osuClientSecret, "osu-client-secret", "", "osu! v2 OAuth client secret (env: HEARDLE_OSU_CLIENT_SECRET)")
	fs.StringVar(&cfg.osuBaseURL, "osu-base-url", "", "override for the osu! v1 API base URL (env: HEARDLE_OSU_BASE_URL)")
	fs.StringVar(&cfg.osuBaseURLV2, "osu-base-url-v2", "", "override for the osu! v2 API base URL (env: HEARDLE_OSU_BASE_URL_V2)")
	fs.StringVar(&cfg.osuTokenURL, "osu-token-url", "", "override for the osu! OAuth token URL (env: HEARDLE_OSU_TOKEN_URL)")
	fs.IntVar(&cfg.httpRetries, "http-retries", 3, "max attempts per osu! API request (env: HEARDLE_HTTP_RETRIES)")
	fs.DurationVar(&cfg.httpBackoff, "http-backoff", 500*time.Millisecond, "base backoff between osu! API retries (env: HEARDLE_HTTP_BACKOFF)")
	fs.Float64Var(&cfg.popularityExponent, "popularity-exponent", 0.5, "playcount exponent for round selection, higher favors popular maps (env: HEARDLE_POPULARITY_EXPONENT)")
	fs.IntVar(&cfg.selectionRetries, "selection-retries", 10, "max reseeded draws before a round start fails (env: HEARDLE_SELECTION_RETRIES)")
	fs.IntVar(&cfg.workers, "workers", 2, "background workers persisting round history (env: HEARDLE_WORKERS)")
	fs.IntVar(&cfg.queueSize, "queue-size", 100, "persistence queue capacity (env: HEARDLE_QUEUE_SIZE)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: HEARDLE_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: HEARDLE_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("osu-heardle v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
