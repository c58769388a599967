package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"pip-counter/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreatesWithDefaultThreshold(t *testing.T) {
	repo := NewMemoryUserRepository(250)
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 250, user.HueThreshold)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestMemoryUserRepository_SaveAndUpdateState(t *testing.T) {
	repo := NewMemoryUserRepository(250)
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)

	user.SetHueThreshold(30)
	require.NoError(t, repo.Save(ctx, user))

	require.NoError(t, repo.UpdateState(ctx, 1, entity.StateAwaitingThreshold))

	got, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 30, got.HueThreshold)
	require.Equal(t, entity.StateAwaitingThreshold, got.State)
}

func TestMemoryUserRepository_GetReturnsCopy(t *testing.T) {
	repo := NewMemoryUserRepository(250)
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	user.SetHueThreshold(5)

	got, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 250, got.HueThreshold)
}
