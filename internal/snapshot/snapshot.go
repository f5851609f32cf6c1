// Package snapshot provides utility functions for handling snapshot files.
//
// A snapshot is one archived copy of the station status feed, named by the
// minute it was captured: 2006-01-02_15:04:00.xml, with a .bz2 extension
// appended once compressed.
package snapshot

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bikeshare-tools/stationsnap/internal/constants"
)

var (
	// ErrInvalidExt is returned when a file has neither the snapshot nor the compressed snapshot extension.
	ErrInvalidExt = errors.New("invalid snapshot file extension")

	// ErrInvalidName is returned when a snapshot file has a name that can't be parsed as a capture time.
	ErrInvalidName = errors.New("invalid snapshot file name")
)

// Snapshot represents a snapshot file.
type Snapshot struct {
	Path       string    // Path is the path to the snapshot file.
	Name       string    // Name is the name of the snapshot file, including extensions.
	Timestamp  time.Time // Timestamp is the capture time encoded in the name, at minute resolution.
	Compressed bool      // Compressed reports whether the snapshot carries the compressed extension.
}

// New creates a new Snapshot object from a path.
// It does not write to the file system, or validate that the file exists.
func New(path string) (Snapshot, error) {
	name := filepath.Base(path)

	base := name
	compressed := false
	if filepath.Ext(base) == constants.CompressedExt {
		base = strings.TrimSuffix(base, constants.CompressedExt)
		compressed = true
	}
	if filepath.Ext(base) != constants.SnapshotExt {
		return Snapshot{}, ErrInvalidExt
	}

	ts, err := time.ParseInLocation(constants.SnapshotTimeLayout, strings.TrimSuffix(base, constants.SnapshotExt), time.Local)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidName, err)
	}

	return Snapshot{Path: path, Name: name, Timestamp: ts, Compressed: compressed}, nil
}

// TimestampName returns the uncompressed snapshot file name for a capture time,
// truncated to minute resolution.
func TimestampName(t time.Time) string {
	return t.Truncate(time.Minute).Format(constants.SnapshotTimeLayout) + constants.SnapshotExt
}
