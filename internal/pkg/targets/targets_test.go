package targets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
namespaces:
  - key: default
    name: Default
    flags:
      - key: checkout
        name: New checkout
      - key: dark-mode
  - key: staging
    flags:
      - key: checkout
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	tg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, tg.Namespaces, 2)
	assert.Equal(t, "default", tg.Namespaces[0].Key)
	assert.Equal(t, "Default", tg.Namespaces[0].Name)
	assert.Equal(t, []FlagConfig{{Key: "checkout", Name: "New checkout"}, {Key: "dark-mode"}}, tg.Namespaces[0].Flags)

	staging, ok := tg.Namespace("staging")
	require.True(t, ok)
	assert.Len(t, staging.Flags, 1)

	_, ok = tg.Namespace("prod")
	assert.False(t, ok)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read targets file")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  string
	}{
		{"not yaml", "namespaces: [", "failed to parse"},
		{"empty", "namespaces: []", "no namespaces"},
		{"namespace without key", "namespaces:\n  - flags: []", "key is required"},
		{"duplicate namespace", "namespaces:\n  - key: a\n  - key: a", "duplicate key"},
		{"flag without key", "namespaces:\n  - key: a\n    flags:\n      - name: x", "key is required"},
		{"duplicate flag", "namespaces:\n  - key: a\n    flags:\n      - key: f\n      - key: f", "duplicate key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorContains(t, err, tt.err)
		})
	}

	_, err := Parse([]byte("namespaces: []"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSingle(t *testing.T) {
	tg := Single("default", "checkout")
	require.NoError(t, tg.Validate())
	assert.Equal(t, []FlagConfig{{Key: "checkout"}}, tg.Namespaces[0].Flags)

	assert.Empty(t, Single("default", "").Namespaces[0].Flags)
}

func TestEnsure(t *testing.T) {
	tg, err := Parse([]byte(sample))
	require.NoError(t, err)

	tg.Ensure("default", "checkout")
	ns, _ := tg.Namespace("default")
	assert.Len(t, ns.Flags, 2, "existing flag is not duplicated")

	tg.Ensure("staging", "dark-mode")
	ns, _ = tg.Namespace("staging")
	assert.Equal(t, []FlagConfig{{Key: "checkout"}, {Key: "dark-mode"}}, ns.Flags)

	tg.Ensure("prod", "checkout")
	ns, ok := tg.Namespace("prod")
	require.True(t, ok)
	assert.Equal(t, []FlagConfig{{Key: "checkout"}}, ns.Flags)

	tg.Ensure("", "ignored")
	assert.Len(t, tg.Namespaces, 3)
}
