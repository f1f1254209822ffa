package tap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tapcsv/pkg/config"
)

const csvExt = ".csv"

// resolveFiles lists the CSV files behind a configured path. A directory
// yields its .csv entries sorted by name; other entries are skipped with a
// warning.
func resolveFiles(log *slog.Logger, path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &config.ConfigurationError{Source: path, Err: err}
	}

	if !info.IsDir() {
		if !isCsvFile(log, path) {
			return nil, &config.ConfigurationError{Source: path, Err: ErrNoCsvFiles}
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, &config.ConfigurationError{Source: path, Err: err}
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		full := filepath.Join(path, e.Name())
		if isCsvFile(log, full) {
			files = append(files, full)
		}
	}
	if len(files) == 0 {
		return nil, &config.ConfigurationError{
			Source: path,
			Err:    fmt.Errorf("%w in directory", ErrNoCsvFiles),
		}
	}
	return files, nil
}

func isCsvFile(log *slog.Logger, path string) bool {
	if filepath.Ext(path) == csvExt {
		return true
	}
	log.Warn("Skipping non-csv file, expected a name ending in .csv", "path", path)
	return false
}
