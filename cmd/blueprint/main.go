// Hiring Blueprint CLI - turns a founder questionnaire into a build route,
// cost estimate, MVP phasing and hiring plan.
//
// Usage:
//
//	blueprint assess --responses answers.json [--format table|json|markdown]
//	blueprint questions
//	blueprint policy validate --policy-file policy.yaml
//	blueprint serve --port 8080
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"hiring-blueprint/api"
	"hiring-blueprint/db/clickhouse"
	"hiring-blueprint/db/postgres"
	"hiring-blueprint/decision/assessment"
	"hiring-blueprint/decision/enrichment"
	"hiring-blueprint/decision/policy"
	"hiring-blueprint/decision/verticals"
	apperrors "hiring-blueprint/pkg/errors"
	"hiring-blueprint/pkg/platform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := platform.LoadEnv(platform.SplitList(os.Getenv("BLUEPRINT_ENV_FILE"))...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load env file: %v\n", err)
		os.Exit(1)
	}

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "blueprint",
		Usage:   "Hiring blueprint - route, cost and MVP planning for first builds",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"BLUEPRINT_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "dev",
				Usage:   "Human readable console logs",
				EnvVars: []string{"BLUEPRINT_DEV"},
			},
			&cli.StringFlag{
				Name:    "policy-file",
				Usage:   "YAML scoring policy overlaid on the built-in defaults",
				EnvVars: []string{"BLUEPRINT_POLICY_FILE"},
			},
			&cli.StringFlag{
				Name:    "postgres-dsn",
				Usage:   "Postgres DSN for progress and assessment storage",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-host",
				Usage:   "ClickHouse host for analytics (disabled when empty)",
				EnvVars: []string{"CLICKHOUSE_HOST"},
			},
			&cli.IntFlag{
				Name:    "clickhouse-port",
				Value:   9000,
				Usage:   "ClickHouse native port",
				EnvVars: []string{"CLICKHOUSE_PORT"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-database",
				Value:   "blueprint",
				Usage:   "ClickHouse database",
				EnvVars: []string{"CLICKHOUSE_DATABASE"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-user",
				Value:   "default",
				Usage:   "ClickHouse user",
				EnvVars: []string{"CLICKHOUSE_USER"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-password",
				Value:   "",
				Usage:   "ClickHouse password",
				EnvVars: []string{"CLICKHOUSE_PASSWORD"},
			},
			&cli.StringFlag{
				Name:    "anthropic-api-key",
				Usage:   "Anthropic API key for narrative enrichment (template text when empty)",
				EnvVars: []string{"ANTHROPIC_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "anthropic-model",
				Usage:   "Anthropic model for enrichment",
				EnvVars: []string{"ANTHROPIC_MODEL"},
			},
			&cli.StringFlag{
				Name:    "anthropic-base-url",
				Usage:   "Anthropic API base URL override",
				EnvVars: []string{"ANTHROPIC_BASE_URL"},
			},
			&cli.DurationFlag{
				Name:    "enrich-timeout",
				Value:   20 * time.Second,
				Usage:   "Timeout for one enrichment call",
				EnvVars: []string{"BLUEPRINT_ENRICH_TIMEOUT"},
			},
		},

		Before: func(c *cli.Context) error {
			platform.InitLogger(c.String("log-level"), c.Bool("dev"), os.Stderr)
			return nil
		},

		Commands: []*cli.Command{
			assessCommand(),
			questionsCommand(),
			verticalsCommand(),
			policyCommand(),
			serveCommand(),
			migrateCommand(),
		},
	}
}

// =============================================================================
// SHARED SETUP
// =============================================================================

func loadPolicy(c *cli.Context) (policy.Policy, error) {
	path := c.String("policy-file")
	if path == "" {
		return policy.Default(), nil
	}
	p, err := policy.Load(path)
	if err != nil {
		return policy.Policy{}, apperrors.NewPolicyInvalidError(path, err)
	}
	return p, nil
}

func newEnricher(c *cli.Context) enrichment.Enricher {
	if c.String("anthropic-api-key") == "" {
		return enrichment.TemplateEnricher{}
	}
	e, err := enrichment.NewAnthropicEnricher(enrichment.AnthropicConfig{
		APIKey:     c.String("anthropic-api-key"),
		BaseURL:    c.String("anthropic-base-url"),
		Model:      c.String("anthropic-model"),
		Timeout:    c.Duration("enrich-timeout"),
		MaxRetries: 1,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Anthropic enrichment disabled")
		return enrichment.TemplateEnricher{}
	}
	return e
}

func openPostgres(c *cli.Context) (*postgres.Store, error) {
	cfg := postgres.DefaultConfig()
	cfg.DSN = c.String("postgres-dsn")
	store, err := postgres.NewStore(cfg)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("postgres", err)
	}
	return store, nil
}

func openClickHouse(c *cli.Context) (*clickhouse.Store, error) {
	store, err := clickhouse.NewStore(&clickhouse.Config{
		Host:     c.String("clickhouse-host"),
		Port:     c.Int("clickhouse-port"),
		Database: c.String("clickhouse-database"),
		Username: c.String("clickhouse-user"),
		Password: c.String("clickhouse-password"),
	})
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("clickhouse", err)
	}
	return store, nil
}

func readResponses(path string, stdin io.Reader) (assessment.Responses, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read responses: %w", err)
	}

	// Accept either a bare response map or the API envelope.
	var envelope struct {
		Responses assessment.Responses `json:"responses"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Responses != nil {
		return envelope.Responses, nil
	}
	var r assessment.Responses
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, apperrors.NewInvalidResponsesError(fmt.Sprintf("%s: %v", path, err))
	}
	return r, nil
}

// =============================================================================
// ASSESS COMMAND
// =============================================================================

func assessCommand() *cli.Command {
	return &cli.Command{
		Name:  "assess",
		Usage: "Evaluate questionnaire responses",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "responses",
				Aliases:  []string{"r"},
				Usage:    "Path to responses JSON keyed by question ID ('-' for stdin)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, json, markdown)",
			},
			&cli.BoolFlag{
				Name:  "enrich",
				Usage: "Add narrative enrichment",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Store the assessment in Postgres",
			},
		},
		Action: runAssess,
	}
}

func runAssess(c *cli.Context) error {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	p, err := loadPolicy(c)
	if err != nil {
		return err
	}
	r, err := readResponses(c.String("responses"), c.App.Reader)
	if err != nil {
		return err
	}

	rep := assessment.NewEngine(p).Evaluate(r)
	log.Debug().
		Str("route", string(rep.Result.Route)).
		Str("complexity", string(rep.Result.Complexity)).
		Int("features", len(rep.AllFeatures)).
		Msg("Assessment evaluated")

	var enriched *enrichment.Result
	if c.Bool("enrich") {
		res := enrichment.Apply(ctx, newEnricher(c), enrichment.InputFromReport(rep, r))
		enriched = &res
	}

	if c.Bool("save") {
		store, err := openPostgres(c)
		if err != nil {
			return err
		}
		defer store.Close()
		a, err := postgres.NewAssessment(r, rep)
		if err != nil {
			return err
		}
		if err := store.SaveAssessment(ctx, a); err != nil {
			return fmt.Errorf("failed to save assessment: %w", err)
		}
		fmt.Fprintf(c.App.ErrWriter, "Saved assessment %s\n", a.ID)
	}

	out := c.App.Writer
	switch c.String("format") {
	case "json":
		return outputJSON(out, rep, enriched)
	case "markdown":
		return outputMarkdown(out, rep, enriched)
	case "table":
		return outputTable(out, rep, enriched)
	default:
		return fmt.Errorf("unknown format %q (table, json, markdown)", c.String("format"))
	}
}

// =============================================================================
// CATALOG COMMANDS
// =============================================================================

func questionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "questions",
		Usage: "Print the questionnaire",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Print as JSON"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("json") {
				return writeJSON(c.App.Writer, assessment.Questions())
			}
			return outputQuestions(c.App.Writer, assessment.Questions())
		},
	}
}

func verticalsCommand() *cli.Command {
	return &cli.Command{
		Name:  "verticals",
		Usage: "Print the vertical templates",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Print as JSON"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("json") {
				return writeJSON(c.App.Writer, verticals.All())
			}
			return outputVerticals(c.App.Writer, verticals.All())
		},
	}
}

// =============================================================================
// POLICY COMMAND
// =============================================================================

func policyCommand() *cli.Command {
	return &cli.Command{
		Name:  "policy",
		Usage: "Inspect the scoring policy",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the effective policy as YAML",
				Action: func(c *cli.Context) error {
					p, err := loadPolicy(c)
					if err != nil {
						return err
					}
					enc := yaml.NewEncoder(c.App.Writer)
					enc.SetIndent(2)
					if err := enc.Encode(p); err != nil {
						return err
					}
					return enc.Close()
				},
			},
			{
				Name:  "validate",
				Usage: "Validate the policy file",
				Action: func(c *cli.Context) error {
					if _, err := loadPolicy(c); err != nil {
						return err
					}
					path := c.String("policy-file")
					if path == "" {
						path = "built-in defaults"
					}
					fmt.Fprintf(c.App.Writer, "Policy OK: %s\n", path)
					return nil
				},
			},
		},
	}
}

// =============================================================================
// SERVE COMMAND (API SERVER)
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "API server port",
				EnvVars: []string{"PORT", "BLUEPRINT_PORT"},
			},
			&cli.StringFlag{
				Name:    "cors-origins",
				Value:   "*",
				Usage:   "Comma-separated list of allowed CORS origins",
				EnvVars: []string{"BLUEPRINT_CORS_ORIGINS"},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Require this X-API-Key on API routes",
				EnvVars: []string{"API_KEY"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	p, err := loadPolicy(c)
	if err != nil {
		return err
	}

	cfg := api.DefaultConfig()
	cfg.Port = c.Int("port")
	cfg.CORSOrigins = platform.SplitList(c.String("cors-origins"))
	cfg.APIKey = c.String("api-key")
	cfg.Version = version

	server := api.NewServer(assessment.NewEngine(p), cfg).WithEnricher(newEnricher(c))

	if c.String("postgres-dsn") != "" {
		store, err := openPostgres(c)
		if err != nil {
			return err
		}
		defer store.Close()
		server.WithStore(store)
	} else {
		log.Warn().Msg("No Postgres DSN configured, progress is kept in memory")
		server.WithStore(postgres.NewMemoryStore())
	}

	if c.String("clickhouse-host") != "" {
		events, err := openClickHouse(c)
		if err != nil {
			return err
		}
		defer events.Close()
		server.WithEvents(events)
	}

	return server.StartWithGracefulShutdown()
}

// =============================================================================
// MIGRATE COMMAND
// =============================================================================

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create database tables",
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			ran := false
			if c.String("postgres-dsn") != "" {
				store, err := openPostgres(c)
				if err != nil {
					return err
				}
				defer store.Close()
				if err := store.Migrate(ctx); err != nil {
					return fmt.Errorf("postgres: %w", err)
				}
				log.Info().Msg("Postgres schema up to date")
				ran = true
			}
			if c.String("clickhouse-host") != "" {
				events, err := openClickHouse(c)
				if err != nil {
					return err
				}
				defer events.Close()
				if err := events.Migrate(ctx); err != nil {
					return fmt.Errorf("clickhouse: %w", err)
				}
				log.Info().Msg("ClickHouse schema up to date")
				ran = true
			}
			if !ran {
				return fmt.Errorf("nothing to migrate: set --postgres-dsn or --clickhouse-host")
			}
			return nil
		},
	}
}
