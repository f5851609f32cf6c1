package archiver

import (
	"fmt"
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"

	"github.com/bikeshare-tools/stationsnap/internal/constants"
	"github.com/bikeshare-tools/stationsnap/internal/fileutils"
)

// compress replaces the snapshot at path with a bzip2 compressed artifact
// carrying an additional .bz2 extension. The compressed data is staged in a
// temporary file and renamed into place, so a partial artifact is never
// visible under the final name. On failure the uncompressed snapshot is left
// untouched.
func (a archiver) compress(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open snapshot: %v", err)
	}
	defer in.Close()

	compressedPath := path + constants.CompressedExt
	if err := fileutils.AtomicWrite(compressedPath, func(wr io.Writer) error {
		w, err := bzip2.NewWriter(wr, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
		if err != nil {
			return fmt.Errorf("failed to create bzip2 writer: %v", err)
		}
		if _, err := io.Copy(w, in); err != nil {
			return fmt.Errorf("failed to compress snapshot: %v", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("failed to flush compressed data: %v", err)
		}
		return nil
	}); err != nil {
		return "", err
	}

	if err := os.Remove(path); err != nil {
		// Both artifacts exist and are whole, so only warn.
		a.log.Warn("Failed to remove uncompressed snapshot", "file", path, "error", err)
	}

	return compressedPath, nil
}
