package tripdata

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUnknownCity indicates a city with no configured trip log.
var ErrUnknownCity = errors.New("unknown city")

// Source resolves city names to trip logs through a configured mapping.
type Source struct {
	// Cities maps a lower-case city name to a trip log path. Relative paths
	// are resolved against DataDir.
	Cities  map[string]string
	DataDir string
	Log     *zap.SugaredLogger
}

// Names returns the configured city names in sorted order.
func (s *Source) Names() []string {
	out := make([]string, 0, len(s.Cities))
	for c := range s.Cities {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Path returns the resolved trip log path for city.
func (s *Source) Path(city string) (string, error) {
	p, ok := s.Cities[strings.ToLower(strings.TrimSpace(city))]
	if !ok || p == "" {
		return "", fmt.Errorf("%q: %w (configured: %s)", city, ErrUnknownCity, strings.Join(s.Names(), ", "))
	}
	if !filepath.IsAbs(p) && s.DataDir != "" {
		p = filepath.Join(s.DataDir, p)
	}
	return p, nil
}

// Load reads and derives the full, unfiltered record set for city.
func (s *Source) Load(ctx context.Context, city string) (*Set, error) {
	path, err := s.Path(city)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	set, err := LoadFile(ctx, strings.ToLower(strings.TrimSpace(city)), path)
	if err != nil {
		return nil, err
	}
	if s.Log != nil {
		s.Log.Debugw("trip log loaded", "city", set.City, "path", path, "trips", set.Len(),
			"gender", set.Schema.HasGender, "birth_year", set.Schema.HasBirthYear, "took", time.Since(started))
	}
	return set, nil
}
