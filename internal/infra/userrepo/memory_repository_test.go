package userrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/fitcheck/internal/domain/auth"
)

func TestMemoryRepository_CreateAndLookup(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	user, err := repo.Create(ctx, "alex", "hash")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)

	_, err = repo.Create(ctx, "alex", "other")
	require.ErrorIs(t, err, auth.ErrUsernameExists)

	found, ok, err := repo.GetByUsername(ctx, "alex")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, user.ID, found.ID)

	_, ok, err = repo.GetByID(ctx, 42)
	require.NoError(t, err)
	require.False(t, ok)
}
