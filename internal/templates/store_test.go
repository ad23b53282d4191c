package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bgp-notifier/internal/logging"
)

func writeTemplate(t *testing.T, dir, channel, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, channel+".txt"), []byte(body), 0644))
}

func TestRenderSubstitution(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "hijack", "Hijack of ${prefix} by AS${asn}")

	store := NewStore(dir, []string{"hijack"}, logging.NewNop())

	out, err := store.Render("hijack", map[string]string{
		"prefix": "1.2.3.0/24",
		"asn":    "64500",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hijack of 1.2.3.0/24 by AS64500", out)
}

func TestRenderMissingKey(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "hijack", "prefix=${prefix} peers=${peers}")

	store := NewStore(dir, []string{"hijack"}, logging.NewNop())

	out, err := store.Render("hijack", map[string]string{"prefix": "10.0.0.0/8"})
	require.NoError(t, err)
	assert.Equal(t, "prefix=10.0.0.0/8 peers=undefined", out)
}

func TestRenderRepeatedPlaceholder(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "visibility", "${prefix} and again ${prefix}")

	store := NewStore(dir, []string{"visibility"}, logging.NewNop())

	out, err := store.Render("visibility", map[string]string{"prefix": "p"})
	require.NoError(t, err)
	assert.Equal(t, "p and again p", out)
}

func TestRenderTemplateMissing(t *testing.T) {
	store := NewStore(t.TempDir(), []string{"hijack"}, logging.NewNop())

	_, err := store.Render("hijack", nil)
	require.ErrorIs(t, err, ErrTemplateMissing)
}

func TestLoadFailureIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "visibility", "visible")

	// hijack.txt is absent; the store must still come up with the
	// channels it could load.
	store := NewStore(dir, []string{"hijack", "visibility"}, logging.NewNop())

	assert.False(t, store.Loaded("hijack"))
	assert.True(t, store.Loaded("visibility"))

	out, err := store.Render("visibility", nil)
	require.NoError(t, err)
	assert.Equal(t, "visible", out)
}
