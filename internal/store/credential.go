package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lugat/internal/vocab"
)

// credentialRowID is the primary key of the single credentials row.
const credentialRowID = 1

type credentialRepo struct {
	drv *entsql.Driver
}

func (r *credentialRepo) Save(ctx context.Context, c Credentials) error {
	if c.SavedAt.IsZero() {
		c.SavedAt = time.Now()
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(CredentialsTable.Name).
		Columns("id", "user_id", "email", "username", "access", "refresh", "api_url", "saved_at").
		Values(credentialRowID, c.UserID.String(), c.Email, c.Username, c.Access, c.Refresh, c.APIURL, c.SavedAt.UTC()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (r *credentialRepo) Load(ctx context.Context) (*Credentials, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("user_id", "email", "username", "access", "refresh", "api_url", "saved_at").
		From(entsql.Table(CredentialsTable.Name)).
		Where(entsql.EQ("id", credentialRowID)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var (
		c      Credentials
		userID string
	)
	if err := rows.Scan(&userID, &c.Email, &c.Username, &c.Access, &c.Refresh, &c.APIURL, &c.SavedAt); err != nil {
		return nil, fmt.Errorf("scan credentials: %w", err)
	}
	c.UserID = vocab.ID(userID)
	return &c, nil
}

func (r *credentialRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(CredentialsTable.Name).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
