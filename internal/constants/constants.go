// Package constants is responsible for defining the constants used in the application.
// It also provides the default output directory for snapshots.
package constants

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

var (
	// Version is the version of the application.
	Version = "Dev"
)

const (
	// CmdName is the name of the command line tool.
	CmdName = "stationsnap"

	// DefaultAppFolder is the name of the default root folder.
	DefaultAppFolder = "stationsnap"

	// DefaultFeedURL is the station status feed fetched when no URL is configured.
	DefaultFeedURL = "https://montreal.bixi.com/data/bikeStations.xml"

	// DefaultTimeout is the default timeout for the feed HTTP request.
	DefaultTimeout = 10 * time.Second

	// SnapshotExt is the extension of an uncompressed snapshot file.
	SnapshotExt = ".xml"

	// CompressedExt is the extension appended to a snapshot once it has been compressed.
	CompressedExt = ".bz2"

	// SnapshotTimeLayout is the minute resolution layout encoded in snapshot file names.
	SnapshotTimeLayout = "2006-01-02_15:04:00"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = slog.LevelWarn
)

var (
	// DefaultCachePath is the default output directory for snapshots. It's overridden when imported.
	DefaultCachePath = DefaultAppFolder
)

func init() {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		panic(fmt.Sprintf("Could not fetch cache directory: %v", err))
	}

	DefaultCachePath = filepath.Join(userCacheDir, DefaultCachePath)
}
