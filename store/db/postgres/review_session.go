package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hrygo/coderev/store"
)

func (d *DB) CreateReviewSession(ctx context.Context, create *store.ReviewSession) (*store.ReviewSession, error) {
	fields := []string{"uid", "code", "review"}
	placeholderValues := []any{create.UID, create.Code, create.Review}

	stmt := `INSERT INTO review_session (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create review session: %w", err)
	}

	return create, nil
}

func (d *DB) ListReviewSessions(ctx context.Context, find *store.FindReviewSession) ([]*store.ReviewSession, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "review_session.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "review_session.uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	// Newest-first, ties broken by id so the order is reproducible.
	query := `
		SELECT
			id, uid, code, review, created_ts, updated_ts
		FROM review_session
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY review_session.created_ts DESC, review_session.id DESC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query review sessions: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ReviewSession, 0)
	for rows.Next() {
		var session store.ReviewSession
		if err := rows.Scan(
			&session.ID,
			&session.UID,
			&session.Code,
			&session.Review,
			&session.CreatedTs,
			&session.UpdatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review session: %w", err)
		}
		list = append(list, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review sessions: %w", err)
	}

	return list, nil
}

func (d *DB) GetReviewSession(ctx context.Context, find *store.FindReviewSession) (*store.ReviewSession, error) {
	list, err := d.ListReviewSessions(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, store.ErrReviewSessionNotFound
	}
	return list[0], nil
}

func (d *DB) UpdateReviewSession(ctx context.Context, update *store.UpdateReviewSession) (*store.ReviewSession, error) {
	set, args := []string{}, []any{}

	if v := update.Code; v != nil {
		set, args = append(set, "code = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Review; v != nil {
		set, args = append(set, "review = "+placeholder(len(args)+1)), append(args, *v)
	}
	set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, time.Now().Unix())

	args = append(args, update.UID)

	stmt := `UPDATE review_session SET ` + strings.Join(set, ", ") + ` WHERE uid = ` + placeholder(len(args)) + `
		RETURNING id, uid, code, review, created_ts, updated_ts`

	var session store.ReviewSession
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&session.ID,
		&session.UID,
		&session.Code,
		&session.Review,
		&session.CreatedTs,
		&session.UpdatedTs,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrReviewSessionNotFound
		}
		return nil, fmt.Errorf("failed to update review session: %w", err)
	}

	return &session, nil
}

func (d *DB) DeleteReviewSession(ctx context.Context, delete *store.DeleteReviewSession) error {
	stmt := `DELETE FROM review_session WHERE uid = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.UID)
	if err != nil {
		return fmt.Errorf("failed to delete review session: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return store.ErrReviewSessionNotFound
	}

	return nil
}
