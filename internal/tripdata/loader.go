package tripdata

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Loader reads a trip log for a city from a path.
type Loader interface {
	CanLoad(path string) bool
	Load(ctx context.Context, city, path string) (*Set, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrUnsupported indicates no loader handles the file type.
var ErrUnsupported = errors.New("unsupported trip log format")

// LoadFile selects a loader by file name and returns the derived record set.
func LoadFile(ctx context.Context, city, path string) (*Set, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("trip log for %s: %w", city, err)
	}
	for _, l := range registry {
		if !l.CanLoad(path) {
			continue
		}
		set, err := l.Load(ctx, city, path)
		if err != nil {
			return nil, err
		}
		for i := range set.Trips {
			set.Trips[i].Derive()
		}
		return set, nil
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
}

func init() {
	Register(csvLoader{})
	Register(sqliteLoader{})
}
