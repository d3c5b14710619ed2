package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add receivables table", "add_receivables_table"},
		{"Add-Receivables-Table", "add_receivables_table"},
		{"ADD_RECEIVABLES", "add_receivables"},
		{"double__underscore", "double_underscore"},
		{"drop index 2", "drop_index_2"},
		{"   padded   ", "padded"},
		{"weird!@#chars", "weirdchars"},
		{"trailing_", "trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, slugify(tt.input))
		})
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()

	pair, err := Create(dir, "add receivables table")
	require.NoError(t, err)

	assert.Len(t, pair.Version, 14)
	assert.True(t, strings.HasSuffix(pair.UpPath, "_add_receivables_table.up.sql"))
	assert.True(t, strings.HasSuffix(pair.DownPath, "_add_receivables_table.down.sql"))

	up, err := os.ReadFile(pair.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add receivables table")

	down, err := os.ReadFile(pair.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "rollback")
}

func TestCreate_MakesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db", "migrations")

	_, err := Create(dir, "init")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestList(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		"000001_init_schema.up.sql",
		"000001_init_schema.down.sql",
		"000002_add_payments.up.sql",
		"000002_add_payments.down.sql",
		"README.md",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- test"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0o755))

	names, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init_schema", "000002_add_payments"}, names)
}

func TestList_MissingDirectory(t *testing.T) {
	names, err := List(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, names)
}
