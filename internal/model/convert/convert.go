package convert

import (
	"encoding/json"
	"fmt"

	"github.com/arbys/arbitrations/internal/model"
	"github.com/arbys/arbitrations/pkg/core"
)

// RegionRowToCore converts a GORM RegionRow to a core.Region. It fails on
// faction codes outside the known set and on malformed dark sector data.
func RegionRowToCore(r model.RegionRow) (core.Region, error) {
	faction := core.Faction(r.FactionIndex)
	if !faction.Valid() {
		return core.Region{}, fmt.Errorf("region %s: unknown faction index %d", r.Code, r.FactionIndex)
	}

	region := core.Region{
		Node:        r.Name,
		Planet:      r.SystemName,
		MissionType: r.MissionName,
		Faction:     faction,
	}

	if len(r.DarkSectorData) > 0 && string(r.DarkSectorData) != "null" {
		var dsd core.DarkSectorData
		if err := json.Unmarshal(r.DarkSectorData, &dsd); err != nil {
			return core.Region{}, fmt.Errorf("region %s: dark sector data: %w", r.Code, err)
		}
		region.DarkSectorData = &dsd
	}

	return region, nil
}

// TranslationsToEntries flattens translation rows to key -> value.
func TranslationsToEntries(rows []model.Translation) map[string]string {
	entries := make(map[string]string, len(rows))
	for _, r := range rows {
		entries[r.Key] = r.Value
	}
	return entries
}
