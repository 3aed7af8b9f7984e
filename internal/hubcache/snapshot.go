package hubcache

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ModelRecord is one cached model with its measured disk usage.
type ModelRecord struct {
	Organization string `json:"organization"`
	Model        string `json:"model"`
	SizeBytes    int64  `json:"sizeBytes"`
}

// OrgAggregate groups the models published under one organization together
// with their combined size.
type OrgAggregate struct {
	Organization string        `json:"organization"`
	Models       []ModelRecord `json:"models"`
	TotalBytes   int64         `json:"totalBytes"`
}

// Snapshot is one complete, immutable inventory of the cache as of a
// single scan. A new scan produces a new, independent Snapshot; nothing is
// carried over between scans.
type Snapshot struct {
	ID         string         `json:"id"`
	Root       string         `json:"root"`
	TakenAt    time.Time      `json:"takenAt"`
	Orgs       []OrgAggregate `json:"organizations"`
	TotalBytes int64          `json:"totalBytes"`
	ModelCount int            `json:"modelCount"`
	Duration   time.Duration  `json:"-"`
}

// Row is the flat shape handed to presentation layers: identifiers, a
// human-readable size, and the raw byte count for sorting or summing.
type Row struct {
	Organization string `json:"organization"`
	Model        string `json:"model"`
	Size         string `json:"size"`
	SizeBytes    int64  `json:"sizeBytes"`
}

// BuildSnapshot scans cacheRoot and sizes every discovered model.
//
// Each organization/model pair is joined back to its expected directory
// name and measured with DirectorySize. Organizations and the models
// within them are ordered lexicographically; size is displayed data, never
// an ordering key. The call blocks for the full duration of the walk and
// re-reads the disk every time.
func BuildSnapshot(cacheRoot string) (*Snapshot, error) {
	started := time.Now()

	byOrg, err := Scan(cacheRoot)
	if err != nil {
		return nil, err
	}

	orgNames := make([]string, 0, len(byOrg))
	for org := range byOrg {
		orgNames = append(orgNames, org)
	}
	sort.Strings(orgNames)

	snap := &Snapshot{
		ID:      uuid.NewString(),
		Root:    cacheRoot,
		TakenAt: started,
	}
	for _, org := range orgNames {
		models := append([]string(nil), byOrg[org]...)
		sort.Strings(models)

		agg := OrgAggregate{
			Organization: org,
			Models:       make([]ModelRecord, 0, len(models)),
		}
		for _, model := range models {
			size := DirectorySize(filepath.Join(cacheRoot, EntryName(org, model)))
			agg.Models = append(agg.Models, ModelRecord{
				Organization: org,
				Model:        model,
				SizeBytes:    size,
			})
			agg.TotalBytes += size
		}

		snap.Orgs = append(snap.Orgs, agg)
		snap.TotalBytes += agg.TotalBytes
		snap.ModelCount += len(agg.Models)
	}

	snap.Duration = time.Since(started)
	return snap, nil
}

// FilterByOrganization returns the subset of snap belonging to org, with
// totals recomputed from the subset. The input snapshot is not modified.
// An organization not present in snap yields an empty snapshot that still
// carries the original ID, root, and timestamp.
func FilterByOrganization(snap *Snapshot, org string) *Snapshot {
	out := &Snapshot{
		ID:       snap.ID,
		Root:     snap.Root,
		TakenAt:  snap.TakenAt,
		Duration: snap.Duration,
	}
	for _, agg := range snap.Orgs {
		if agg.Organization != org {
			continue
		}
		out.Orgs = append(out.Orgs, agg)
		out.TotalBytes += agg.TotalBytes
		out.ModelCount += len(agg.Models)
	}
	return out
}

// Organizations lists the organization identifiers present in the
// snapshot, in snapshot order.
func (s *Snapshot) Organizations() []string {
	names := make([]string, 0, len(s.Orgs))
	for _, agg := range s.Orgs {
		names = append(names, agg.Organization)
	}
	return names
}

// Rows flattens the snapshot for a presentation layer, formatting each
// size with the given mode.
func (s *Snapshot) Rows(mode FormatMode) []Row {
	rows := make([]Row, 0, s.ModelCount)
	for _, agg := range s.Orgs {
		for _, rec := range agg.Models {
			rows = append(rows, Row{
				Organization: rec.Organization,
				Model:        rec.Model,
				Size:         FormatSize(rec.SizeBytes, mode),
				SizeBytes:    rec.SizeBytes,
			})
		}
	}
	return rows
}

// TotalHuman renders the snapshot's grand total with the given mode.
func (s *Snapshot) TotalHuman(mode FormatMode) string {
	return FormatSize(s.TotalBytes, mode)
}
