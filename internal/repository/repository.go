// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

// Package repository provides database access for all persisted state.
package repository

import (
	"database/sql"
	"errors"

	"github.com/vinovest/sqlx"
)

// ErrNotFound is returned when a record does not exist. Callers use it to
// tell absence apart from transport failures.
var ErrNotFound = errors.New("record not found")

// Repository wraps the database connection.
type Repository struct {
	db *sqlx.DB
}

// New creates a new Repository instance.
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// wrapError converts database errors to repository errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
