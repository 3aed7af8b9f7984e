package hubcache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_GroupsModelsByOrganization(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"models--meta-llama--Llama-3.1-8B",
		"models--meta-llama--Llama-Guard",
		"models--google--gemma-2b",
	} {
		require.NoError(t, os.Mkdir(filepath.Join(root, name), 0o755))
	}

	byOrg, err := Scan(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Llama-3.1-8B", "Llama-Guard"}, byOrg["meta-llama"])
	assert.Equal(t, []string{"gemma-2b"}, byOrg["google"])
	assert.Len(t, byOrg, 2)
}

func TestScan_ToleratesTrailingSegments(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "models--org--name--extra--segments"), 0o755))

	byOrg, err := Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"name"}, byOrg["org"])
}

func TestScan_SkipsNonMatchingEntries(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"README",               // no marker
		"datasets--org--name",  // wrong marker
		"models--lonely",       // too few segments
		"models--",             // marker only
		".locks",               // hub bookkeeping
	} {
		require.NoError(t, os.Mkdir(filepath.Join(root, name), 0o755))
	}

	byOrg, err := Scan(root)
	require.NoError(t, err)
	assert.Empty(t, byOrg)
}

func TestScan_PreservesDuplicatePairs(t *testing.T) {
	root := t.TempDir()
	// Distinct directories that parse to the same organization/model pair.
	require.NoError(t, os.Mkdir(filepath.Join(root, "models--org--name--v1"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "models--org--name--v2"), 0o755))

	byOrg, err := Scan(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "name"}, byOrg["org"])
}

func TestScan_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := Scan(missing)
	require.Error(t, err)

	var accessErr *AccessError
	require.True(t, errors.As(err, &accessErr))
	assert.Equal(t, missing, accessErr.Path)
	assert.Contains(t, err.Error(), missing)
}

func TestEntryName_RoundTrip(t *testing.T) {
	name := EntryName("org", "model")
	assert.Equal(t, "models--org--model", name)

	org, model, ok := parseEntryName(name)
	require.True(t, ok)
	assert.Equal(t, "org", org)
	assert.Equal(t, "model", model)
}
