// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"encoding/json"
	"slices"

	"github.com/arbys/arbitrations/internal/model"
	"github.com/arbys/arbitrations/pkg/core"
	"golang.org/x/text/language"
	"gorm.io/datatypes"
)

// darkSectorToJSON converts optional dark sector data to datatypes.JSON.
// Nodes outside dark sectors store NULL.
func darkSectorToJSON(d *core.DarkSectorData) datatypes.JSON {
	if d == nil {
		return nil
	}
	data, _ := json.Marshal(d)
	return datatypes.JSON(data)
}

// CoreToRegionRow converts a core.Region to a GORM model.RegionRow stored
// under code.
func CoreToRegionRow(code string, r core.Region) model.RegionRow {
	return model.RegionRow{
		Code:           code,
		Name:           r.Node,
		SystemName:     r.Planet,
		MissionName:    r.MissionType,
		FactionIndex:   uint8(r.Faction),
		DarkSectorData: darkSectorToJSON(r.DarkSectorData),
	}
}

// CoreToRegionRows converts a whole region table, ordered by code.
func CoreToRegionRows(regions map[string]core.Region) []model.RegionRow {
	codes := make([]string, 0, len(regions))
	for code := range regions {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	rows := make([]model.RegionRow, 0, len(codes))
	for _, code := range codes {
		rows = append(rows, CoreToRegionRow(code, regions[code]))
	}
	return rows
}

// EntriesToTranslations converts dictionary entries to GORM rows for lang,
// ordered by key.
func EntriesToTranslations(lang language.Tag, entries map[string]string) []model.Translation {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tag := lang.String()
	rows := make([]model.Translation, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, model.Translation{Lang: tag, Key: k, Value: entries[k]})
	}
	return rows
}
