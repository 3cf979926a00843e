package levels

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bevatsal1122/agentverse-sub000/station"
)

// Glyph returns the legend character for t, or a blank for unknown types.
func Glyph(t station.TileType) rune {
	for ch, lt := range Legend {
		if lt == t {
			return ch
		}
	}
	return ' '
}

// Save writes lvl to Dir as <name>.json and returns the path written.
func Save(lvl *Level, name string) (string, error) {
	if name == "" {
		name = lvl.Name
	}
	if name == "" || name == Metro {
		return "", fmt.Errorf("levels: cannot save level as %q", name)
	}
	file := name
	if !strings.HasSuffix(file, ".json") {
		file += ".json"
	}
	if err := os.MkdirAll(Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(Dir, file)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lvl); err != nil {
		return "", fmt.Errorf("levels: encode %s: %w", name, err)
	}
	return path, nil
}
