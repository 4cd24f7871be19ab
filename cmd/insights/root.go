package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/doctoryes/insights-data/client"
	"github.com/doctoryes/insights-data/internal/config"
)

// globals holds persistent flag values plus the config they were merged into.
type globals struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	debug      bool
	requestIDs bool

	cfg *config.Config
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:           "insights",
		Short:         "Query course enrollment statistics from the Insights API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.init(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.baseURL, "base-url", "", "Insights API base URL (env INSIGHTS_BASE_URL)")
	pf.StringVar(&g.apiKey, "api-key", "", "Insights API key (env INSIGHTS_API_KEY)")
	pf.DurationVar(&g.timeout, "timeout", 0, "HTTP timeout (env INSIGHTS_HTTP_TIMEOUT)")
	pf.BoolVarP(&g.debug, "debug", "d", false, "Enable verbose debug output including HTTP dumps")
	pf.BoolVar(&g.requestIDs, "request-ids", false, "Send an X-Request-ID with each request")

	for _, q := range queries {
		rootCmd.AddCommand(newQueryCmd(g, q))
	}
	return rootCmd
}

// init loads env config, lets explicitly set flags override it, validates the
// result and sets up logging.
func (g *globals) init(cmd *cobra.Command) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = g.baseURL
	}
	if flags.Changed("api-key") {
		cfg.APIKey = g.apiKey
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = g.timeout
	}
	if flags.Changed("debug") {
		cfg.Debug = g.debug
	}
	if flags.Changed("request-ids") {
		cfg.RequestIDs = g.requestIDs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.cfg = cfg

	config.InitLoggerTo(cmd.ErrOrStderr())
	if cfg.Debug {
		config.SetLogLevel(zerolog.DebugLevel)
		log.Debug().Msg("debug logging enabled")
	} else {
		config.SetLogLevel(cfg.Level())
	}
	return nil
}

func (g *globals) newClient() (*client.Client, error) {
	return client.New(g.cfg.BaseURL, g.cfg.APIKey,
		client.WithHTTPTimeout(g.cfg.HTTPTimeout),
		client.WithDebugLogging(g.cfg.Debug),
		client.WithRequestIDs(g.cfg.RequestIDs),
	)
}

// query describes one enrollment subcommand.
type query struct {
	use    string
	short  string
	filter client.Filter
	run    func(ctx context.Context, c *client.Client, courseID string) (any, error)
}

var queries = []query{
	{
		use:    "enrollment",
		short:  "Current enrollment snapshot for a course",
		filter: client.FilterNone,
		run: func(ctx context.Context, c *client.Client, id string) (any, error) {
			return c.GetCurrentCourseEnrollment(ctx, id)
		},
	},
	{
		use:    "enrollment-by-mode",
		short:  "Current enrollment broken down by mode",
		filter: client.FilterMode,
		run: func(ctx context.Context, c *client.Client, id string) (any, error) {
			return c.GetCurrentCourseEnrollmentByMode(ctx, id)
		},
	},
	{
		use:    "enrollment-by-birth-year",
		short:  "Current enrollment, one record per birth year",
		filter: client.FilterBirthYear,
		run: func(ctx context.Context, c *client.Client, id string) (any, error) {
			return c.GetCurrentCourseEnrollmentByBirthYear(ctx, id)
		},
	},
	{
		use:    "enrollment-by-education",
		short:  "Current enrollment, one record per education level",
		filter: client.FilterEducation,
		run: func(ctx context.Context, c *client.Client, id string) (any, error) {
			return c.GetCurrentCourseEnrollmentByEducation(ctx, id)
		},
	},
	{
		use:    "enrollment-by-location",
		short:  "Current enrollment, one record per country",
		filter: client.FilterLocation,
		run: func(ctx context.Context, c *client.Client, id string) (any, error) {
			return c.GetCurrentCourseEnrollmentByLocation(ctx, id)
		},
	},
}

func newQueryCmd(g *globals, q query) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   q.use + " <course-id>",
		Short: q.short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID := args[0]

			log.Debug().
				Str("course_id", courseID).
				Str("filter", q.filter.String()).
				Str("base_url", g.cfg.BaseURL).
				Msg("querying enrollment")

			c, err := g.newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			start := time.Now()
			out, err := q.run(cmd.Context(), c, courseID)
			elapsed := time.Since(start)

			if err != nil {
				log.Error().
					Err(err).
					Str("course_id", courseID).
					Str("filter", q.filter.String()).
					Dur("elapsed", elapsed).
					Msg("enrollment query failed")
				return err
			}

			log.Debug().
				Str("course_id", courseID).
				Str("filter", q.filter.String()).
				Dur("elapsed", elapsed).
				Msg("enrollment query completed")

			return writeJSON(cmd.OutOrStdout(), out, !compact)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Print JSON on a single line")
	return cmd
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
