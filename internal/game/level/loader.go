package level

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type levelsFile struct {
	Levels []Level `yaml:"levels"`
}

type rosterFile struct {
	Archetypes []ArchetypeDef `yaml:"archetypes"`
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadRoster reads archetype definitions from path and layers them over the
// built-in roster. An empty path returns the built-in roster.
func LoadRoster(path string) (Roster, error) {
	roster := DefaultRoster()
	if path == "" {
		return roster, nil
	}

	var rf rosterFile
	if err := loadYAML(path, &rf); err != nil {
		return nil, fmt.Errorf("load roster %s: %w", path, err)
	}
	for _, def := range rf.Archetypes {
		arch, err := def.ToArchetype()
		if err != nil {
			return nil, fmt.Errorf("load roster %s: %w", path, err)
		}
		roster[arch.Name] = arch
	}
	return roster, nil
}

// LoadLevels reads the level rotation from path and validates it against
// roster. An empty path returns the built-in levels.
func LoadLevels(path string, roster Roster) ([]Level, error) {
	levels := DefaultLevels()
	if path != "" {
		var lf levelsFile
		if err := loadYAML(path, &lf); err != nil {
			return nil, fmt.Errorf("load levels %s: %w", path, err)
		}
		if len(lf.Levels) == 0 {
			return nil, fmt.Errorf("load levels %s: no levels defined", path)
		}
		levels = lf.Levels
	}

	for _, l := range levels {
		if err := l.Validate(roster); err != nil {
			return nil, err
		}
	}
	return levels, nil
}

// ParseLevels decodes a level list from YAML bytes without validation
func ParseLevels(data []byte) ([]Level, error) {
	var lf levelsFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, err
	}
	return lf.Levels, nil
}
