package matchgame

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lexi-app/lexi/internal/assets"
)

type pairRecord struct {
	Target string `yaml:"target"`
	Native string `yaml:"native"`
}

// LoadPairs reads the word-pair list from path, or the embedded
// default dataset when path is empty or missing. Each pair gets a
// fresh ID for the session.
func LoadPairs(path string) ([]Pair, error) {
	data := assets.DefaultPairs()
	if path != "" {
		if contents, err := os.ReadFile(path); err == nil {
			data = contents
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
		}
	}

	var records []pairRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal > %w", err)
	}

	pairs := make([]Pair, 0, len(records))
	for _, record := range records {
		pairs = append(pairs, Pair{
			ID:     uuid.New(),
			Target: record.Target,
			Native: record.Native,
		})
	}
	return pairs, nil
}
