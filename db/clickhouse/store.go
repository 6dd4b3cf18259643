// Package clickhouse records assessment events for analytics.
// Events are append-only; duplicates of the same responses collapse on
// responses_hash through ReplacingMergeTree.
package clickhouse

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hiring-blueprint/decision/assessment"
)

// EventKind identifies what happened.
type EventKind string

const (
	EventAssessed      EventKind = "assessed"
	EventProgressSaved EventKind = "progress_saved"
)

// Event is one analytics row.
type Event struct {
	ID            uuid.UUID `ch:"id"`
	Kind          EventKind `ch:"kind"`
	AssessmentID  uuid.UUID `ch:"assessment_id"`
	Route         string    `ch:"route"`
	Complexity    string    `ch:"complexity"`
	Vertical      string    `ch:"vertical"`
	BudgetTier    string    `ch:"budget_tier"`
	BudgetMin     int64     `ch:"budget_min"`
	BudgetMax     int64     `ch:"budget_max"`
	FeatureCount  uint16    `ch:"feature_count"`
	HasGaps       bool      `ch:"has_gaps"`
	Answered      uint16    `ch:"answered"`
	ResponsesHash string    `ch:"responses_hash"`
	OccurredAt    time.Time `ch:"occurred_at"`
}

// NewEvent builds an event from an evaluated report.
func NewEvent(kind EventKind, assessmentID uuid.UUID, r assessment.Responses, rep *assessment.Report) Event {
	e := Event{
		ID:            uuid.New(),
		Kind:          kind,
		AssessmentID:  assessmentID,
		Route:         string(rep.Result.Route),
		Complexity:    string(rep.Result.Complexity),
		Vertical:      string(rep.Signals.Vertical),
		BudgetTier:    rep.Signals.Budget.Tier.String(),
		FeatureCount:  uint16(len(rep.AllFeatures)),
		HasGaps:       rep.Plan != nil && rep.Plan.HasGaps(),
		Answered:      uint16(rep.Progress.Answered),
		ResponsesHash: ResponsesHash(r),
		OccurredAt:    time.Now().UTC(),
	}
	if rep.Estimate != nil {
		e.BudgetMin = rep.Estimate.BudgetMin
		e.BudgetMax = rep.Estimate.BudgetMax
	}
	return e
}

// RouteCount is one row of the route distribution.
type RouteCount struct {
	Route          string          `json:"route"`
	Complexity     string          `json:"complexity"`
	Count          uint64          `json:"count"`
	AvgBudgetMid   decimal.Decimal `json:"avg_budget_mid"`
	GapRatePercent float64         `json:"gap_rate_percent"`
}

// Config holds ClickHouse connection configuration
type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Debug    bool
}

// DefaultConfig returns default development configuration
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     9000,
		Database: "blueprint",
		Username: "default",
		Password: "",
		Debug:    false,
	}
}

// Store writes and queries assessment events.
type Store struct {
	conn clickhouse.Conn
	cfg  *Config
}

// NewStore creates a new ClickHouse event store
func NewStore(cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Debug: cfg.Debug,
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	return &Store{conn: conn, cfg: cfg}, nil
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

// =============================================================================
// SCHEMA
// =============================================================================

const createEventsTable = `
	CREATE TABLE IF NOT EXISTS assessment_events (
		id             UUID,
		kind           LowCardinality(String),
		assessment_id  UUID,
		route          LowCardinality(String),
		complexity     LowCardinality(String),
		vertical       LowCardinality(String),
		budget_tier    LowCardinality(String),
		budget_min     Int64,
		budget_max     Int64,
		feature_count  UInt16,
		has_gaps       UInt8,
		answered       UInt16,
		responses_hash String,
		occurred_at    DateTime64(3, 'UTC')
	)
	ENGINE = ReplacingMergeTree(occurred_at)
	PARTITION BY toYYYYMM(occurred_at)
	ORDER BY (kind, responses_hash)
`

// Migrate creates the events table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.conn.Exec(ctx, createEventsTable); err != nil {
		return fmt.Errorf("failed to create assessment_events: %w", err)
	}
	return nil
}

// =============================================================================
// EVENT OPERATIONS
// =============================================================================

// InsertEvents writes events in one batch.
func (s *Store) InsertEvents(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO assessment_events (
			id, kind, assessment_id, route, complexity, vertical, budget_tier,
			budget_min, budget_max, feature_count, has_gaps, answered,
			responses_hash, occurred_at
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	for i := range events {
		e := &events[i]
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		if e.OccurredAt.IsZero() {
			e.OccurredAt = time.Now().UTC()
		}
		if err := batch.Append(
			e.ID, string(e.Kind), e.AssessmentID, e.Route, e.Complexity, e.Vertical, e.BudgetTier,
			e.BudgetMin, e.BudgetMax, e.FeatureCount, boolToUInt8(e.HasGaps), e.Answered,
			e.ResponsesHash, e.OccurredAt,
		); err != nil {
			return fmt.Errorf("failed to append to batch: %w", err)
		}
	}

	return batch.Send()
}

// RouteDistribution counts completed assessments per route and complexity
// since the given time.
func (s *Store) RouteDistribution(ctx context.Context, since time.Time) ([]RouteCount, error) {
	query := `
		SELECT route, complexity, count() AS n,
			   toDecimal64(avg((budget_min + budget_max) / 2), 2) AS avg_mid,
			   round(100 * avg(has_gaps), 1) AS gap_rate
		FROM assessment_events FINAL
		WHERE kind = ? AND occurred_at >= ?
		GROUP BY route, complexity
		ORDER BY n DESC, route, complexity
	`
	rows, err := s.conn.Query(ctx, query, string(EventAssessed), since)
	if err != nil {
		return nil, fmt.Errorf("failed to query route distribution: %w", err)
	}
	defer rows.Close()

	var out []RouteCount
	for rows.Next() {
		var rc RouteCount
		if err := rows.Scan(&rc.Route, &rc.Complexity, &rc.Count, &rc.AvgBudgetMid, &rc.GapRatePercent); err != nil {
			return nil, fmt.Errorf("failed to scan route count: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// ResponsesHash is a stable digest of a response set. Map order and JSON
// key order do not affect it.
func ResponsesHash(r assessment.Responses) string {
	ids := make([]int, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var sb strings.Builder
	for _, id := range ids {
		// encoding/json sorts map keys, so nested objects are canonical too.
		v, err := json.Marshal(r[id])
		if err != nil {
			v = []byte(fmt.Sprint(r[id]))
		}
		sb.WriteString(strconv.Itoa(id))
		sb.WriteString("=")
		sb.Write(v)
		sb.WriteString(";")
	}

	h := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(h[:])
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
