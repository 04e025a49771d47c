package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/lugat/internal/vocab"
)

type resultRepo struct {
	drv *entsql.Driver
}

// mistakeJSON is the stored form of a mistake.
type mistakeJSON struct {
	Prompt   string `json:"prompt"`
	Expected string `json:"expected"`
	Provided string `json:"provided,omitempty"`
}

var resultColumns = []string{
	"id", "session_id", "direction", "range_start", "range_end",
	"total_questions", "correct", "wrong", "percentage", "mistakes",
	"started_at", "finished_at",
}

func (r *resultRepo) Save(ctx context.Context, rec *ResultRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now()
	}

	mistakes := make([]mistakeJSON, 0, len(rec.Result.Mistakes))
	for _, m := range rec.Result.Mistakes {
		mistakes = append(mistakes, mistakeJSON{Prompt: m.Prompt, Expected: m.Expected, Provided: m.Provided})
	}
	raw, err := json.Marshal(mistakes)
	if err != nil {
		return fmt.Errorf("marshal mistakes: %w", err)
	}

	var startedAt any
	if !rec.StartedAt.IsZero() {
		startedAt = rec.StartedAt.UTC()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(ResultsTable.Name).
		Columns(resultColumns...).
		Values(
			rec.ID.String(),
			rec.SessionID.String(),
			string(rec.Direction),
			rec.Start,
			rec.End,
			rec.Result.TotalQuestions,
			rec.Result.Correct,
			rec.Result.Wrong,
			rec.Result.Percentage,
			string(raw),
			startedAt,
			rec.FinishedAt.UTC(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (r *resultRepo) List(ctx context.Context, limit int) ([]ResultRecord, error) {
	sel := r.selector().OrderBy(entsql.Desc("finished_at"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	recs, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return recs, nil
}

func (r *resultRepo) Get(ctx context.Context, id uuid.UUID) (*ResultRecord, error) {
	recs, err := r.query(ctx, r.selector().Where(entsql.EQ("id", id.String())))
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return &recs[0], nil
}

func (r *resultRepo) Resolve(ctx context.Context, prefix string) (*ResultRecord, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil, ErrNotFound
	}
	if id, err := uuid.Parse(prefix); err == nil {
		return r.Get(ctx, id)
	}

	recs, err := r.query(ctx, r.selector().Where(entsql.HasPrefix("id", prefix)).Limit(2))
	if err != nil {
		return nil, fmt.Errorf("resolve result: %w", err)
	}
	switch len(recs) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &recs[0], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrAmbiguous, prefix)
}

func (r *resultRepo) selector() *entsql.Selector {
	return entsql.Dialect(dialect.SQLite).
		Select(resultColumns...).
		From(entsql.Table(ResultsTable.Name))
}

func (r *resultRepo) query(ctx context.Context, sel *entsql.Selector) ([]ResultRecord, error) {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		var (
			rec       ResultRecord
			id        string
			sessionID string
			direction string
			mistakes  string
			startedAt entsql.NullTime
		)
		if err := rows.Scan(
			&id, &sessionID, &direction, &rec.Start, &rec.End,
			&rec.Result.TotalQuestions, &rec.Result.Correct, &rec.Result.Wrong, &rec.Result.Percentage,
			&mistakes, &startedAt, &rec.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}

		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse result id %q: %w", id, err)
		}
		rec.ID = parsed
		rec.SessionID = vocab.ID(sessionID)
		rec.Result.SessionID = rec.SessionID
		rec.Direction = vocab.Direction(direction)
		if startedAt.Valid {
			rec.StartedAt = startedAt.Time
		}

		var ms []mistakeJSON
		if err := json.Unmarshal([]byte(mistakes), &ms); err != nil {
			return nil, fmt.Errorf("unmarshal mistakes: %w", err)
		}
		rec.Result.Mistakes = make([]vocab.Mistake, 0, len(ms))
		for _, m := range ms {
			rec.Result.Mistakes = append(rec.Result.Mistakes, vocab.Mistake{Prompt: m.Prompt, Expected: m.Expected, Provided: m.Provided})
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
