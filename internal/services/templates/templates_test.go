// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package templates_test

import (
	"testing"

	"github.com/resumekit/resumekit/internal/services/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	catalog, err := templates.Load()

	require.NoError(t, err)
	assert.NotEmpty(t, catalog.List())
}

func TestSource(t *testing.T) {
	catalog, err := templates.Load()
	require.NoError(t, err)

	source, err := catalog.Source("modern")

	require.NoError(t, err)
	assert.Contains(t, source, `\documentclass`)
}

func TestSource_UnknownID(t *testing.T) {
	catalog, err := templates.Load()
	require.NoError(t, err)

	_, err = catalog.Source("does-not-exist")

	var unknown *templates.ErrUnknownTemplate
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "does-not-exist", unknown.ID)
}

func TestList_ContainsKnownTemplates(t *testing.T) {
	catalog, err := templates.Load()
	require.NoError(t, err)

	ids := make([]string, 0)
	for _, tpl := range catalog.List() {
		ids = append(ids, tpl.ID)
	}

	assert.Contains(t, ids, "modern")
	assert.Contains(t, ids, "classic")
}
