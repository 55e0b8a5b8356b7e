// Package refdata provides the reference tables used to resolve schedule rows:
// the region export (location code -> node metadata) and the language
// dictionary (source string -> localized string).
package refdata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/arbys/arbitrations/pkg/core"
)

// Regions maps a location code such as "SolNode129" to its metadata.
type Regions map[string]core.Region

// Region returns the metadata of code.
func (r Regions) Region(code string) (core.Region, bool) {
	region, ok := r[code]
	return region, ok
}

// LoadRegions decodes a region export: a JSON object keyed by location code.
func LoadRegions(r io.Reader) (Regions, error) {
	regions := Regions{}
	if err := json.NewDecoder(r).Decode(&regions); err != nil {
		return nil, fmt.Errorf("error decoding regions: %w", err)
	}
	return regions, nil
}

// LoadRegionsFile reads the region export at path.
func LoadRegionsFile(path string) (Regions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening regions file: %w", err)
	}
	defer f.Close()

	return LoadRegions(f)
}
