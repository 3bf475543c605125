package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/jpo/jpo/backend/item-service/internal/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, alloc *cursor.MemoryAllocator, args ...string) (string, error) {
	t.Helper()
	open := func(ctx context.Context) (cursorStore, func(), error) {
		return alloc, func() {}, nil
	}
	cmd := newRootCmd(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedCursor_InitIsIdempotent(t *testing.T) {
	alloc := &cursor.MemoryAllocator{}

	out, err := run(t, alloc, "init", "--value", "40")
	require.NoError(t, err)
	assert.Equal(t, "cursor created at 40\n", out)

	out, err = run(t, alloc, "init", "--value", "0")
	require.NoError(t, err)
	assert.Equal(t, "cursor already exists at 40\n", out)
}

func TestSeedCursor_ResetAndShow(t *testing.T) {
	alloc := cursor.NewMemoryAllocator(100)

	out, err := run(t, alloc, "show")
	require.NoError(t, err)
	assert.Equal(t, "100\n", out)

	_, err = run(t, alloc, "reset", "--value", "0")
	require.NoError(t, err)

	out, err = run(t, alloc, "show")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestSeedCursor_Errors(t *testing.T) {
	_, err := run(t, &cursor.MemoryAllocator{}, "show")
	require.ErrorIs(t, err, cursor.ErrNotFound)

	_, err = run(t, cursor.NewMemoryAllocator(0), "reset")
	require.Error(t, err)

	_, err = run(t, cursor.NewMemoryAllocator(0), "reset", "--value=-20")
	require.Error(t, err)
}
