package commands

import (
	"context"
	"fmt"
	"log/slog"
)

// fetchRun fetches the feed and archives one snapshot.
func (a App) fetchRun(ctx context.Context) error {
	l := slog.Default()

	arc, err := a.newArchiver(l, a.config.Fetch)
	if err != nil {
		return fmt.Errorf("failed to create archiver: %v", err)
	}

	snap, err := arc.Run(ctx)
	if err != nil {
		// Not wrapped: main maps the archiver sentinel errors to exit codes.
		return err
	}

	l.Info("Snapshot archived", "file", snap.Path)
	return nil
}
