// Main package for the stationsnap command line tool.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/bikeshare-tools/stationsnap/cmd/stationsnap/commands"
	"github.com/bikeshare-tools/stationsnap/internal/archiver"
	"github.com/bikeshare-tools/stationsnap/internal/constants"
)

func main() {
	slog.SetLogLoggerLevel(constants.DefaultLogLevel)

	a, err := commands.New()
	if err != nil {
		os.Exit(1)
	}

	os.Exit(run(a))
}

type app interface {
	Run() error
	UsageError() bool
}

// run executes the application and maps failures to exit codes, with a
// distinct code per failure class so schedulers can tell them apart.
func run(a app) int {
	err := a.Run()
	if err == nil {
		return 0
	}

	slog.Error(err.Error())

	if a.UsageError() {
		return 2
	}

	switch {
	case errors.Is(err, archiver.ErrDirectory):
		return 3
	case errors.Is(err, archiver.ErrFetch):
		return 4
	case errors.Is(err, archiver.ErrCompression):
		return 5
	}

	return 1
}
