package hubcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureCache builds the canonical test cache: two OrgA models (20 bytes
// combined), one OrgB model (100 bytes), and an unrelated README directory.
func fixtureCache(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "models--OrgA--modelX", "weights.bin"), 15)
	writeFile(t, filepath.Join(root, "models--OrgA--modelY", "config.json"), 5)
	writeFile(t, filepath.Join(root, "models--OrgB--modelZ", "snapshots", "x", "weights.bin"), 100)
	require.NoError(t, os.Mkdir(filepath.Join(root, "README"), 0o755))
	return root
}

func TestBuildSnapshot_EndToEnd(t *testing.T) {
	root := fixtureCache(t)

	snap, err := BuildSnapshot(root)
	require.NoError(t, err)

	require.Len(t, snap.Orgs, 2)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, root, snap.Root)
	assert.False(t, snap.TakenAt.IsZero())

	orgA := snap.Orgs[0]
	assert.Equal(t, "OrgA", orgA.Organization)
	assert.EqualValues(t, 20, orgA.TotalBytes)
	require.Len(t, orgA.Models, 2)
	assert.Equal(t, "modelX", orgA.Models[0].Model)
	assert.EqualValues(t, 15, orgA.Models[0].SizeBytes)
	assert.Equal(t, "modelY", orgA.Models[1].Model)
	assert.EqualValues(t, 5, orgA.Models[1].SizeBytes)

	orgB := snap.Orgs[1]
	assert.Equal(t, "OrgB", orgB.Organization)
	assert.EqualValues(t, 100, orgB.TotalBytes)
	require.Len(t, orgB.Models, 1)
	assert.Equal(t, "modelZ", orgB.Models[0].Model)

	assert.EqualValues(t, 120, snap.TotalBytes)
	assert.Equal(t, 3, snap.ModelCount)

	for _, row := range snap.Rows(FormatAuto) {
		assert.NotEqual(t, "README", row.Organization)
		assert.NotEqual(t, "README", row.Model)
	}
}

func TestBuildSnapshot_TotalsAreConsistent(t *testing.T) {
	snap, err := BuildSnapshot(fixtureCache(t))
	require.NoError(t, err)

	var orgSum, modelSum int64
	for _, agg := range snap.Orgs {
		orgSum += agg.TotalBytes
		var perOrg int64
		for _, rec := range agg.Models {
			modelSum += rec.SizeBytes
			perOrg += rec.SizeBytes
		}
		assert.Equal(t, agg.TotalBytes, perOrg, "org %s", agg.Organization)
	}
	assert.Equal(t, snap.TotalBytes, orgSum)
	assert.Equal(t, snap.TotalBytes, modelSum)
}

func TestBuildSnapshot_MissingRoot(t *testing.T) {
	_, err := BuildSnapshot(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.IsType(t, &AccessError{}, err)
}

func TestBuildSnapshot_OrderingIsLexicographic(t *testing.T) {
	root := t.TempDir()
	// Deliberately created out of order, and with sizes that would sort
	// the other way round if size leaked into the ordering.
	writeFile(t, filepath.Join(root, "models--zeta--aaa", "f"), 1)
	writeFile(t, filepath.Join(root, "models--alpha--zzz", "f"), 500)
	writeFile(t, filepath.Join(root, "models--alpha--bbb", "f"), 2)

	snap, err := BuildSnapshot(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "zeta"}, snap.Organizations())
	assert.Equal(t, "bbb", snap.Orgs[0].Models[0].Model)
	assert.Equal(t, "zzz", snap.Orgs[0].Models[1].Model)
}

func TestFilterByOrganization(t *testing.T) {
	snap, err := BuildSnapshot(fixtureCache(t))
	require.NoError(t, err)

	sub := FilterByOrganization(snap, "OrgA")
	require.Len(t, sub.Orgs, 1)
	assert.Equal(t, "OrgA", sub.Orgs[0].Organization)
	assert.EqualValues(t, 20, sub.TotalBytes)
	assert.Equal(t, 2, sub.ModelCount)
	assert.Equal(t, snap.ID, sub.ID)

	// The source snapshot is untouched.
	assert.Len(t, snap.Orgs, 2)
	assert.EqualValues(t, 120, snap.TotalBytes)
}

func TestFilterByOrganization_UnknownOrg(t *testing.T) {
	snap, err := BuildSnapshot(fixtureCache(t))
	require.NoError(t, err)

	sub := FilterByOrganization(snap, "NoSuchOrg")
	assert.Empty(t, sub.Orgs)
	assert.EqualValues(t, 0, sub.TotalBytes)
	assert.Equal(t, snap.ID, sub.ID)
	assert.Equal(t, snap.TakenAt, sub.TakenAt)
}

func TestSnapshotRows(t *testing.T) {
	snap, err := BuildSnapshot(fixtureCache(t))
	require.NoError(t, err)

	rows := snap.Rows(FormatAuto)
	require.Len(t, rows, 3)
	assert.Equal(t, Row{Organization: "OrgA", Model: "modelX", Size: "15.00 B", SizeBytes: 15}, rows[0])
	assert.Equal(t, Row{Organization: "OrgB", Model: "modelZ", Size: "100.00 B", SizeBytes: 100}, rows[2])

	assert.Equal(t, "120.00 B", snap.TotalHuman(FormatAuto))
	assert.Equal(t, "0.00 GB", snap.TotalHuman(FormatGB))
}
