package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOfWrappedChain(t *testing.T) {
	inner := Wrap(CodeNotFound, "item not found", nil)
	outer := fmt.Errorf("delete: %w", inner)

	require.True(t, IsCode(outer, CodeNotFound))
	require.Equal(t, CodeNotFound, CodeOf(outer))
	require.Equal(t, "item not found", MessageOf(outer))
	require.Empty(t, CodeOf(fmt.Errorf("plain")))
}

func TestAppErrorMessageIncludesCause(t *testing.T) {
	err := Wrap(CodeStorage, "failed to store image", fmt.Errorf("bucket missing"))
	require.Equal(t, "failed to store image: bucket missing", err.Error())
	require.Equal(t, "failed to store image", MessageOf(err))
}
