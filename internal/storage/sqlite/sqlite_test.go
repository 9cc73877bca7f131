package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"attendance-bot/internal/domain/models"
	"attendance-bot/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "db", "attendance.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestStorage_SaveAndList(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()

	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	first, err := s.SavePunch(ctx, models.Punch{
		Action:    models.ActionSignIn,
		Status:    models.PunchSucceeded,
		Message:   "Sign-in successful",
		CreatedAt: base,
	})
	require.NoError(t, err)

	second, err := s.SavePunch(ctx, models.Punch{
		Action:    models.ActionSignOut,
		Status:    models.PunchFailed,
		Message:   "Sign-out failed",
		CreatedAt: base.Add(8 * time.Hour),
	})
	require.NoError(t, err)
	assert.Greater(t, second, first)

	punches, err := s.Punches(ctx, 10)
	require.NoError(t, err)
	require.Len(t, punches, 2)

	assert.Equal(t, second, punches[0].ID)
	assert.Equal(t, models.ActionSignOut, punches[0].Action)
	assert.Equal(t, models.PunchFailed, punches[0].Status)
	assert.True(t, base.Add(8*time.Hour).Equal(punches[0].CreatedAt))
	assert.Equal(t, models.ActionSignIn, punches[1].Action)

	punches, err = s.Punches(ctx, 1)
	require.NoError(t, err)
	require.Len(t, punches, 1)
	assert.Equal(t, second, punches[0].ID)
}

func TestStorage_Punch(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()

	id, err := s.SavePunch(ctx, models.Punch{
		Action:    models.ActionSignIn,
		Status:    models.PunchSucceeded,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	p, err := s.Punch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.ActionSignIn, p.Action)
	assert.Empty(t, p.Message)

	_, err = s.Punch(ctx, id+1)
	assert.ErrorIs(t, err, storage.ErrPunchNotFound)
}

func TestStorage_PunchesNonPositiveLimit(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()

	_, err := s.SavePunch(ctx, models.Punch{
		Action:    models.ActionSignIn,
		Status:    models.PunchSucceeded,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	for _, limit := range []int{0, -1, -100} {
		punches, err := s.Punches(ctx, limit)
		require.NoError(t, err, limit)
		assert.Empty(t, punches, limit)
	}
}
