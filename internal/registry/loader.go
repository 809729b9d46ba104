package registry

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Recognized extensions. Groups are processed in this order, so on a stem
// collision the gridded variant beats vector, and vector beats tabular.
// Within a group files go in sorted directory order; the first successful
// parse for a stem wins.
var extGroups = []struct {
	ext   string
	parse func(path, stem string) (Dataset, error)
}{
	{".nc", parseGridded},
	{".geojson", func(path, stem string) (Dataset, error) { return parseVector(path, stem) }},
	{".csv", func(path, stem string) (Dataset, error) { return parseTable(path, stem) }},
}

// Load scans dir and builds the dataset registry. It never fails: a missing
// directory yields an empty registry, and a file that cannot be parsed as
// its expected variant contributes no entry. Skips are logged (malformed
// content and unreadable files distinctly) rather than swallowed.
func Load(dir string) *Registry {
	reg := newRegistry()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("data directory unreadable", "dir", dir, "error", err)
		}
		return reg
	}

	for _, group := range extGroups {
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !strings.EqualFold(filepath.Ext(name), group.ext) {
				continue
			}
			stem := strings.TrimSuffix(name, filepath.Ext(name))
			if reg.has(stem) {
				slog.Warn("duplicate dataset stem, keeping earlier entry",
					"stem", stem, "skipped", name)
				continue
			}
			path := filepath.Join(dir, name)
			ds, err := group.parse(path, stem)
			if err != nil {
				var pathErr *fs.PathError
				if errors.As(err, &pathErr) {
					slog.Warn("dataset file unreadable", "file", name, "error", err)
				} else {
					slog.Warn("dataset file unparseable, skipping", "file", name, "error", err)
				}
				continue
			}
			reg.add(ds)
			slog.Debug("dataset loaded", "name", stem, "kind", ds.Kind().Label())
		}
	}
	return reg
}

// parseGridded tries the multi-variable dataset parse first and falls back
// to the single-variable array, matching the two-stage contract for
// gridded files.
func parseGridded(path, stem string) (Dataset, error) {
	g, errDataset := parseGridDataset(path, stem)
	if errDataset == nil {
		return g, nil
	}
	a, errArray := parseGridArray(path, stem)
	if errArray == nil {
		return a, nil
	}
	return nil, errors.Join(errDataset, errArray)
}
