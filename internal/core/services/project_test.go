package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

func TestProjectService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	svc := NewProjectService(f.ws)

	require.NoError(t, svc.Create(f.ctx, "  Interviews "))
	require.NoError(t, svc.Create(f.ctx, "Survey"))
	assert.Equal(t, []string{"Interviews", "Survey"}, svc.List())
	assert.Equal(t, "Survey", svc.Selection().Project)

	err := svc.Create(f.ctx, "Survey")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	err = svc.Create(f.ctx, " ")
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	require.NoError(t, svc.Rename(f.ctx, "Survey", "Poll"))
	assert.Equal(t, "Poll", svc.Selection().Project)
	assert.Equal(t, []string{"Interviews", "Poll"}, svc.List())

	require.NoError(t, svc.Use(f.ctx, "Interviews"))
	p, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, "Interviews", p.Name)

	assert.ErrorIs(t, svc.Use(f.ctx, "missing"), domain.ErrNotFound)

	require.NoError(t, svc.Delete(f.ctx, "Interviews"))
	assert.Equal(t, "Poll", svc.Selection().Project)
}
