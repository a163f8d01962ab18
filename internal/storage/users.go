package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/itjamaat/jamaatbot/internal/models"
)

// UpsertUser registers a user on first contact and refreshes the username on
// repeated /start. It never creates a duplicate row for a telegram id.
func (s *Store) UpsertUser(ctx context.Context, telegramID int64, username, fullName string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		`SELECT id, telegram_id, username, full_name, is_admin, created_at
		 FROM users WHERE telegram_id = $1`, telegramID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = s.db.GetContext(ctx, &u,
			`INSERT INTO users (telegram_id, username, full_name)
			 VALUES ($1, $2, $3)
			 RETURNING id, telegram_id, username, full_name, is_admin, created_at`,
			telegramID, username, fullName)
		if err != nil {
			return nil, fmt.Errorf("insert user: %w", err)
		}
		return &u, nil
	case err != nil:
		return nil, fmt.Errorf("query user: %w", err)
	}

	if u.Username != username && username != "" {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE users SET username = $1 WHERE id = $2`, username, u.ID); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		u.Username = username
	}
	return &u, nil
}

// CountUsers returns the total number of registered users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// CountUsersCreatedBetween counts registrations in the half-open interval
// [from, to). A zero `to` means no upper bound.
func (s *Store) CountUsersCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	var err error
	if to.IsZero() {
		err = s.db.GetContext(ctx, &n,
			`SELECT COUNT(*) FROM users WHERE created_at >= $1`, from)
	} else {
		err = s.db.GetContext(ctx, &n,
			`SELECT COUNT(*) FROM users WHERE created_at >= $1 AND created_at < $2`, from, to)
	}
	if err != nil {
		return 0, fmt.Errorf("count users window: %w", err)
	}
	return n, nil
}
