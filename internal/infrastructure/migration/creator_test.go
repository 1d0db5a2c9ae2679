package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add users table", "add_users_table"},
		{"Add-Users-Table", "add_users_table"},
		{"ADD_USERS_TABLE", "add_users_table"},
		{"add__users__table", "add_users_table"},
		{"Add Users 123", "add_users_123"},
		{"   spaces   ", "spaces"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()

	first, err := Create(dir, "payments table", "Payments and refunds")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_payments_table.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_payments_table.down.sql"), first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "000001_payments_table (up)")
	assert.Contains(t, string(up), "-- Payments and refunds")

	second, err := Create(dir, "Shipping", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	_, err = Create(dir, "!!!", "")
	require.Error(t, err)
}

func TestList(t *testing.T) {
	fsys := fstest.MapFS{
		"000010_later.up.sql":      {},
		"000002_catalog.up.sql":    {},
		"000002_catalog.down.sql":  {},
		"000001_accounting.up.sql": {},
		"README.md":                {},
		"notanumber_thing.up.sql":  {},
	}

	entries, err := List(fsys)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Version: 1, Name: "accounting"},
		{Version: 2, Name: "catalog"},
		{Version: 10, Name: "later"},
	}, entries)
}
