// Package hubcache inventories a Hugging Face hub cache directory: it
// discovers cached model entries, attributes them to their publishing
// organization, and measures how much disk each one occupies.
//
// The package owns no state and never writes to disk. Every function reads
// the filesystem as it is at call time; nothing is cached between calls.
package hubcache

import (
	"fmt"
	"os"
	"strings"
)

// The hub cache names model directories "models--<org>--<model>", with
// optional further "--" separated segments. Both literals belong to the
// hub's caching convention, not to this program.
const (
	markerPrefix = "models--"
	delimiter    = "--"
)

// AccessError reports a cache root that does not exist or cannot be read.
// It is fatal for the scan that encountered it; there is no retry.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cache directory %s is not accessible: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// Scan lists the immediate children of cacheRoot and groups the model
// identifiers it finds by organization, in directory-listing order.
//
// Children whose names do not match the cache convention are skipped
// without comment: the hub cache legitimately holds unrelated entries
// (datasets, lock files, partial downloads) and warning about them would
// only produce noise. Duplicate organization/model pairs are kept as
// separate entries.
func Scan(cacheRoot string) (map[string][]string, error) {
	entries, err := os.ReadDir(cacheRoot)
	if err != nil {
		return nil, &AccessError{Path: cacheRoot, Err: err}
	}

	byOrg := make(map[string][]string)
	for _, entry := range entries {
		org, model, ok := parseEntryName(entry.Name())
		if !ok {
			continue
		}
		byOrg[org] = append(byOrg[org], model)
	}
	return byOrg, nil
}

// parseEntryName extracts the organization and model identifiers from a
// cache directory name. Segments beyond the third are tolerated and
// ignored.
func parseEntryName(name string) (org, model string, ok bool) {
	if !strings.HasPrefix(name, markerPrefix) {
		return "", "", false
	}
	parts := strings.Split(name, delimiter)
	if len(parts) < 3 {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// EntryName reassembles the on-disk directory name for an
// organization/model pair, inverse to what Scan extracts.
func EntryName(org, model string) string {
	return markerPrefix + org + delimiter + model
}
