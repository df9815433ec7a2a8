// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forkful/forkful/internal/models"
)

const userColumns = `id, username, email, password_hash,
	first_name, last_name, profile_picture, bio, created_at`

// CreateUser inserts a new account. The ID and created_at are assigned
// here; the password must already be hashed. Returns ErrDuplicate when
// the username or email is taken.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	query := `INSERT INTO users (
		id, username, email, password_hash,
		first_name, last_name, profile_picture, bio, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.conn.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.ProfilePicture, user.Bio, user.CreatedAt,
	)
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("%w: username or email already registered", ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser returns a user by ID, or ErrNotFound.
func (db *DB) GetUser(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = ?", userColumns)
	user, err := scanUser(db.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

// GetUserByUsername returns a user by username, or ErrNotFound.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE username = ?", userColumns)
	user, err := scanUser(db.conn.QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// UpdateUser overwrites the editable profile fields of an existing user.
// Username, email, and password are immutable through this path. Returns
// ErrNotFound when the user does not exist.
func (db *DB) UpdateUser(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET
		first_name = ?, last_name = ?, profile_picture = ?, bio = ?
	WHERE id = ?`

	result, err := db.conn.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.ProfilePicture, user.Bio, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AuthorSummary returns the public author view for a user ID. A missing
// author yields (nil, nil): discovery results must tolerate recipes whose
// author account has been removed.
//
// It satisfies discovery.AuthorLookup.
func (db *DB) AuthorSummary(ctx context.Context, authorID string) (*models.AuthorSummary, error) {
	query := `SELECT username, first_name, last_name, profile_picture
		FROM users WHERE id = ?`

	var s models.AuthorSummary
	err := db.conn.QueryRowContext(ctx, query, authorID).Scan(
		&s.Username, &s.FirstName, &s.LastName, &s.ProfilePicture,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up author %s: %w", authorID, err)
	}
	return &s, nil
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.ProfilePicture, &u.Bio, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
