package refdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/arbys/arbitrations/pkg/core"
)

const regionsJSON = `{
	"SolNode64": {
		"name": "/Lotus/Language/Locations/Cinxia",
		"systemName": "/Lotus/Language/Locations/Ceres",
		"missionName": "MT_INTERCEPTION",
		"factionIndex": 0
	},
	"ClanNode2": {
		"name": "/Lotus/Language/Locations/Kadesh",
		"systemName": "/Lotus/Language/Locations/Mars",
		"missionName": "MT_DEFENSE",
		"factionIndex": 7,
		"darkSectorData": {
			"resourceBonus": 0.25,
			"xpBonus": 0.18,
			"weaponXpBonusFor": "Shotguns",
			"weaponXpBonusVal": 0.1
		}
	}
}`

func TestLoadRegions(t *testing.T) {
	regions, err := LoadRegions(strings.NewReader(regionsJSON))
	require.NoError(t, err)
	require.Len(t, regions, 2)

	cinxia, ok := regions.Region("SolNode64")
	require.True(t, ok)
	assert.Equal(t, "/Lotus/Language/Locations/Cinxia", cinxia.Node)
	assert.Equal(t, "/Lotus/Language/Locations/Ceres", cinxia.Planet)
	assert.Equal(t, "MT_INTERCEPTION", cinxia.MissionType)
	assert.Equal(t, core.FactionGrineer, cinxia.Faction)
	assert.Nil(t, cinxia.DarkSectorData)

	kadesh, ok := regions.Region("ClanNode2")
	require.True(t, ok)
	assert.Equal(t, core.FactionMurmur, kadesh.Faction)
	require.NotNil(t, kadesh.DarkSectorData)
	assert.Equal(t, core.WeaponShotguns, kadesh.DarkSectorData.WeaponXPBonusFor)
	assert.InDelta(t, 0.25, kadesh.DarkSectorData.ResourceBonus, 1e-9)
}

func TestLoadRegions_Missing(t *testing.T) {
	regions, err := LoadRegions(strings.NewReader(regionsJSON))
	require.NoError(t, err)

	_, ok := regions.Region("SolNode999")
	assert.False(t, ok)
}

func TestLoadRegions_ReservedFactionCode(t *testing.T) {
	_, err := LoadRegions(strings.NewReader(`{"X":{"name":"a","systemName":"b","missionName":"c","factionIndex":4}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding regions")
}

func TestLoadRegions_BadWeaponCategory(t *testing.T) {
	_, err := LoadRegions(strings.NewReader(`{"X":{"name":"a","systemName":"b","missionName":"c","factionIndex":1,
		"darkSectorData":{"resourceBonus":0,"xpBonus":0,"weaponXpBonusFor":"Bows","weaponXpBonusVal":0}}}`))
	require.Error(t, err)
}

func TestLoadRegionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.json")
	require.NoError(t, os.WriteFile(path, []byte(regionsJSON), 0644))

	regions, err := LoadRegionsFile(path)
	require.NoError(t, err)
	assert.Len(t, regions, 2)

	_, err = LoadRegionsFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error opening regions file")
}

func TestLoadDictionary(t *testing.T) {
	dict, err := LoadDictionary(strings.NewReader(`{"/Lotus/Language/Locations/Cinxia":"Cinxia","MT_DEFENSE":"defense"}`), language.English)
	require.NoError(t, err)

	assert.Equal(t, 2, dict.Len())
	assert.Equal(t, language.English, dict.Language())

	v, ok := dict.Translate("MT_DEFENSE")
	require.True(t, ok)
	assert.Equal(t, "defense", v)

	_, ok = dict.Translate("MT_SURVIVAL")
	assert.False(t, ok)
}

func TestLoadDictionary_Invalid(t *testing.T) {
	_, err := LoadDictionary(strings.NewReader(`["not", "an", "object"]`), language.German)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding de dictionary")
}

func TestNewDictionary_CopiesEntries(t *testing.T) {
	entries := map[string]string{"a": "b"}
	dict := NewDictionary(language.French, entries)
	entries["a"] = "changed"

	v, _ := dict.Translate("a")
	assert.Equal(t, "b", v)
}

func TestNilDictionary(t *testing.T) {
	var dict *Dictionary
	_, ok := dict.Translate("a")
	assert.False(t, ok)
	assert.Equal(t, language.Und, dict.Language())
}

func TestDictionaryEntries_ReturnsCopy(t *testing.T) {
	dict := NewDictionary(language.English, map[string]string{"MT_DEFENSE": "defense"})

	entries := dict.Entries()
	assert.Equal(t, map[string]string{"MT_DEFENSE": "defense"}, entries)

	entries["MT_DEFENSE"] = "changed"
	v, _ := dict.Translate("MT_DEFENSE")
	assert.Equal(t, "defense", v)

	var nilDict *Dictionary
	assert.Empty(t, nilDict.Entries())
}
