// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package models

import "time"

// Project is a resume project owned by a user. Data is an opaque JSON
// document produced by the editor; the server never interprets it.
type Project struct { //nolint:govet // fieldalignment: readability over optimization
	ID         int64     `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	Name       string    `db:"name" json:"name"`
	TemplateID *string   `db:"template_id" json:"template_id"`
	Data       string    `db:"data" json:"data"`
	Step       int       `db:"step" json:"step"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
