package hubcache

import (
	"io/fs"
	"path/filepath"
)

// DirectorySize returns the total byte size of every regular file beneath
// path. Symbolic links are neither followed nor counted, so blobs the hub
// cache deduplicates between snapshots via links are charged only once.
//
// The walk is best effort: the cache is owned by another program, so files
// that vanish or turn unreadable mid-scan contribute zero instead of
// failing the whole sum. A missing path yields zero. The result is never
// negative.
func DirectorySize(path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			// Listed but gone by the time we stat it.
			return nil
		}
		total += info.Size()
		return nil
	})
	return total
}
