package services

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileGet(t *testing.T) {
	gdb := newTestDB(t, true)
	svc := NewProfileService(gdb)

	require.NoError(t, gdb.Create(&models.Profile{ID: "u1", Username: "ada", FullName: "Ada L"}).Error)

	p, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "ada", p.Username)

	_, err = svc.Get(context.Background(), "u2")
	assert.ErrorIs(t, err, ErrNotFound)
}
