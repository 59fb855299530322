package decoration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/readme-cards/internal/svg"
)

const (
	fileDefaultX = 360
	fileDefaultY = 0
)

// LoadDir registers every *.svg file in dir as a decoration named after the
// file. Names that clash with an existing template or are not valid names are
// skipped. It returns the number of templates added.
func (r *Registry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read decorations dir: %w", err)
	}

	added := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".svg") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !validName.MatchString(name) || name == None {
			log.Warn().Str("file", entry.Name()).Msg("Skipping decoration with invalid name")
			continue
		}
		if _, exists := r.Lookup(name); exists {
			log.Warn().Str("decoration", name).Msg("Decoration already registered, skipping file")
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return added, fmt.Errorf("failed to read decoration %s: %w", name, err)
		}

		t := Template{
			Name: name,
			X:    fileDefaultX,
			Y:    fileDefaultY,
			Body: []svg.Node{svg.Raw(svg.ExtractContent(string(data)))},
		}
		if err := r.Register(t); err != nil {
			return added, fmt.Errorf("failed to register decoration %s: %w", name, err)
		}
		added++
	}

	log.Info().Str("dir", dir).Int("count", added).Msg("Loaded decorations")
	return added, nil
}
