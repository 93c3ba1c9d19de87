package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/coursetrack/syllabus-tracker/internal/common"
	"github.com/coursetrack/syllabus-tracker/internal/entity"
)

// SQLiteRepository is the embedded cache store, used for local development
// and single-node deployments where running Postgres is overkill.
type SQLiteRepository struct {
	db  *sql.DB
	log *slog.Logger
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS course_extractions (
	content_hash TEXT PRIMARY KEY,
	filename     TEXT NOT NULL DEFAULT '',
	events       TEXT NOT NULL,
	study_plans  TEXT NOT NULL DEFAULT '{}',
	created_at   TEXT NOT NULL
)`

// OpenSQLite opens (or creates) the database at path. An empty path opens a
// shared in-memory database, which is what the tests use.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = "file:syllabus?mode=memory&cache=shared"
	}
	logger.Info("connecting to database", "driver", "sqlite", "path", path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SQLiteRepository{db: db, log: logger}, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, hash string) (*entity.ExtractionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT content_hash, filename, events, study_plans, created_at
		 FROM course_extractions WHERE content_hash = ?`, hash)

	var rec entity.ExtractionRecord
	var eventsRaw, plansRaw, createdAt string
	if err := row.Scan(&rec.ContentHash, &rec.Filename, &eventsRaw, &plansRaw, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		r.log.Error("record lookup failed", "hash", hash, "error", err)
		return nil, common.WrapError(err, "get record")
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.CreatedAt = t
	}
	if err := decodeRecord(&rec, []byte(eventsRaw), []byte(plansRaw)); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *SQLiteRepository) SaveExtraction(ctx context.Context, rec *entity.ExtractionRecord) error {
	eventsRaw, plansRaw, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO course_extractions (content_hash, filename, events, study_plans, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ContentHash, rec.Filename, string(eventsRaw), string(plansRaw),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			r.log.Info("record already cached", "hash", rec.ContentHash)
			return nil
		}
		r.log.Error("record insert failed", "hash", rec.ContentHash, "error", err)
		return common.WrapError(err, "save extraction")
	}
	return nil
}

func (r *SQLiteRepository) UpdateEvents(ctx context.Context, hash string, events []entity.CourseEvent) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return common.WrapError(err, "encode events")
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE course_extractions SET events = ? WHERE content_hash = ?`, string(raw), hash)
	if err != nil {
		r.log.Error("record events update failed", "hash", hash, "error", err)
		return common.WrapError(err, "update events")
	}
	return nil
}

func (r *SQLiteRepository) SaveStudyPlan(ctx context.Context, hash, courseName string, plan entity.StudyPlan) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	var plansRaw string
	err = tx.QueryRowContext(ctx,
		`SELECT study_plans FROM course_extractions WHERE content_hash = ?`, hash).Scan(&plansRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return common.WrapError(err, "load study plans")
	}

	plans := map[string]entity.StudyPlan{}
	if err := json.Unmarshal([]byte(plansRaw), &plans); err != nil {
		return common.WrapError(err, "decode study plans")
	}
	plans[courseName] = plan

	updated, err := json.Marshal(plans)
	if err != nil {
		return common.WrapError(err, "encode study plans")
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE course_extractions SET study_plans = ? WHERE content_hash = ?`,
		string(updated), hash); err != nil {
		return common.WrapError(err, "save study plan")
	}
	return tx.Commit()
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Close() {
	r.log.Info("closing database connections")
	if err := r.db.Close(); err != nil {
		r.log.Error("failed to close sqlite database", "error", err)
	}
}
