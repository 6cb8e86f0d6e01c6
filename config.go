package scriptenv

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the optional defaults file. All fields are optional;
// zero values contribute no options.
type fileConfig struct {
	RawTimeout string            `yaml:"timeout"` // e.g. "30s", "2m"
	Cwd        string            `yaml:"cwd"`
	Environ    map[string]string `yaml:"environ"`
	HistoryDB  string            `yaml:"history_db"`
}

// LoadOptions reads a YAML defaults file (conventionally .scriptenv.yaml in
// the repository root) and converts it to construction options, letting a
// test suite configure every runner in one place:
//
//	opts, err := scriptenv.LoadOptions(".scriptenv.yaml")
//	runner := scriptenv.New("python3", opts...)
//
// A missing file is not an error and yields no options. A present but
// malformed file is an error, as is an unparsable or non-positive timeout.
func LoadOptions(path string) ([]Option, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read defaults file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parse defaults file %s: %w", path, err)
	}

	var opts []Option
	if fc.RawTimeout != "" {
		d, err := time.ParseDuration(fc.RawTimeout)
		if err != nil {
			return nil, fmt.Errorf("defaults file %s: timeout: %w", path, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("defaults file %s: timeout must be greater than 0, got %v", path, d)
		}
		opts = append(opts, WithTimeout(d))
	}
	if fc.Cwd != "" {
		opts = append(opts, WithCwd(fc.Cwd))
	}
	if fc.Environ != nil {
		opts = append(opts, WithEnviron(Environ(fc.Environ)))
	}
	if fc.HistoryDB != "" {
		opts = append(opts, WithHistoryDB(fc.HistoryDB))
	}
	return opts, nil
}
