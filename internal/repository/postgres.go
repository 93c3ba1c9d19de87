package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursetrack/syllabus-tracker/internal/common"
	"github.com/coursetrack/syllabus-tracker/internal/entity"
)

// PostgresConfig mirrors the pool tuning knobs exposed in configuration.
type PostgresConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// PostgresRepository stores extraction records in a single JSONB-backed table.
type PostgresRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

const pgSchema = `
CREATE TABLE IF NOT EXISTS course_extractions (
	content_hash TEXT PRIMARY KEY,
	filename     TEXT NOT NULL DEFAULT '',
	events       JSONB NOT NULL,
	study_plans  JSONB NOT NULL DEFAULT '{}',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// OpenPostgres creates a pgx pool and ensures the schema exists.
func OpenPostgres(ctx context.Context, cfg PostgresConfig, logger *slog.Logger) (*PostgresRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database", "driver", "postgres")

	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, err
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "syllabus-tracker"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	logger.Info("successfully connected to database")
	return &PostgresRepository{pool: pool, log: logger}, nil
}

func (r *PostgresRepository) Get(ctx context.Context, hash string) (*entity.ExtractionRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT content_hash, filename, events, study_plans, created_at
		 FROM course_extractions WHERE content_hash = $1`, hash)

	var rec entity.ExtractionRecord
	var eventsRaw, plansRaw []byte
	if err := row.Scan(&rec.ContentHash, &rec.Filename, &eventsRaw, &plansRaw, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		r.log.Error("record lookup failed", "hash", hash, "error", err)
		return nil, common.WrapError(err, "get record")
	}
	if err := decodeRecord(&rec, eventsRaw, plansRaw); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PostgresRepository) SaveExtraction(ctx context.Context, rec *entity.ExtractionRecord) error {
	eventsRaw, plansRaw, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO course_extractions (content_hash, filename, events, study_plans, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		rec.ContentHash, rec.Filename, eventsRaw, plansRaw, rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Two requests raced on the same bytes; the stored row is
			// identical content, so losing the race is fine.
			r.log.Info("record already cached", "hash", rec.ContentHash)
			return nil
		}
		r.log.Error("record insert failed", "hash", rec.ContentHash, "error", err)
		return common.WrapError(err, "save extraction")
	}
	return nil
}

func (r *PostgresRepository) UpdateEvents(ctx context.Context, hash string, events []entity.CourseEvent) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return common.WrapError(err, "encode events")
	}
	_, err = r.pool.Exec(ctx,
		`UPDATE course_extractions SET events = $2 WHERE content_hash = $1`, hash, raw)
	if err != nil {
		r.log.Error("record events update failed", "hash", hash, "error", err)
		return common.WrapError(err, "update events")
	}
	return nil
}

func (r *PostgresRepository) SaveStudyPlan(ctx context.Context, hash, courseName string, plan entity.StudyPlan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return common.WrapError(err, "encode study plan")
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE course_extractions
		 SET study_plans = jsonb_set(study_plans, ARRAY[$2::text], $3::jsonb, true)
		 WHERE content_hash = $1`,
		hash, courseName, raw)
	if err != nil {
		r.log.Error("study plan update failed", "hash", hash, "course", courseName, "error", err)
		return common.WrapError(err, "save study plan")
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresRepository) Close() {
	r.log.Info("closing database connections")
	r.pool.Close()
}

func encodeRecord(rec *entity.ExtractionRecord) (eventsRaw, plansRaw []byte, err error) {
	events := rec.Events
	if events == nil {
		events = []entity.CourseEvent{}
	}
	plans := rec.StudyPlans
	if plans == nil {
		plans = map[string]entity.StudyPlan{}
	}
	if eventsRaw, err = json.Marshal(events); err != nil {
		return nil, nil, common.WrapError(err, "encode events")
	}
	if plansRaw, err = json.Marshal(plans); err != nil {
		return nil, nil, common.WrapError(err, "encode study plans")
	}
	return eventsRaw, plansRaw, nil
}

func decodeRecord(rec *entity.ExtractionRecord, eventsRaw, plansRaw []byte) error {
	if err := json.Unmarshal(eventsRaw, &rec.Events); err != nil {
		return common.WrapError(err, "decode events")
	}
	if len(plansRaw) > 0 {
		if err := json.Unmarshal(plansRaw, &rec.StudyPlans); err != nil {
			return common.WrapError(err, "decode study plans")
		}
	}
	return nil
}
