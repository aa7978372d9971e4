package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"create donations", "create_donations"},
		{"Add-NGO-Gallery", "add_ngo_gallery"},
		{"add__read__flag", "add_read_flag"},
		{"  padded  ", "padded"},
		{"index!@# donations", "index_donations"},
		{"_leading_and_trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slug(tt.input))
		})
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	t.Run("writes an up and down pair", func(t *testing.T) {
		pair, err := Create(dir, "add notification index", "Speed up unread counts", now)
		require.NoError(t, err)

		assert.Equal(t, "20250301103000", pair.Version)
		assert.Equal(t, filepath.Join(dir, "20250301103000_add_notification_index.up.sql"), pair.UpPath)
		assert.Equal(t, filepath.Join(dir, "20250301103000_add_notification_index.down.sql"), pair.DownPath)

		up, err := os.ReadFile(pair.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "-- Migration: add notification index\n")
		assert.Contains(t, string(up), "Speed up unread counts")

		down, err := os.ReadFile(pair.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "(rollback)")
	})

	t.Run("refuses to overwrite an existing pair", func(t *testing.T) {
		_, err := Create(dir, "add notification index", "", now)
		assert.Error(t, err)
	})

	t.Run("rejects a name without letters or digits", func(t *testing.T) {
		_, err := Create(dir, "!!!", "", now)
		assert.ErrorContains(t, err, "letters or digits")
	})
}

func TestList(t *testing.T) {
	t.Run("missing directory is empty", func(t *testing.T) {
		names, err := List(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("lists up files oldest first", func(t *testing.T) {
		dir := t.TempDir()
		_, err := Create(dir, "second", "", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		_, err = Create(dir, "first", "", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), nil, 0o644))

		names, err := List(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"20250101000000_first", "20250201000000_second"}, names)
	})

	t.Run("lists the repository schema", func(t *testing.T) {
		names, err := List(filepath.Join("..", "..", "..", "migrations"))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"20250115090000_create_users",
			"20250115090100_create_donations",
			"20250115090200_create_requirements",
			"20250115090300_create_notifications",
		}, names)
	})
}
