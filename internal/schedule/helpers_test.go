package schedule

import (
	"time"

	"golang.org/x/text/language"

	"github.com/arbys/arbitrations/internal/refdata"
	"github.com/arbys/arbitrations/internal/tier"
	"github.com/arbys/arbitrations/pkg/core"
)

// Hour-aligned base: 2024-06-13 16:00:00 UTC.
const baseSlot int64 = 1718294400

var fixedNow = time.Unix(baseSlot, 0).UTC()

func fixedClock() time.Time { return fixedNow }

func testRegions() refdata.Regions {
	return refdata.Regions{
		"SolNode64": {Node: "NODE_CINXIA", Planet: "PLANET_CERES", MissionType: "MT_INTERCEPTION", Faction: core.FactionGrineer},
		"SolNode9":  {Node: "NODE_HYDRON", Planet: "PLANET_SEDNA", MissionType: "MT_DEFENSE", Faction: core.FactionGrineer},
		"SolNode23": {Node: "NODE_ODIN", Planet: "PLANET_MERCURY", MissionType: "MT_INTERCEPTION", Faction: core.FactionGrineer},
		"SolNode30": {Node: "NODE_TESSERA", Planet: "PLANET_VENUS", MissionType: "MT_DEFENSE", Faction: core.FactionCorpus},
		"SolNode99": {Node: "NODE_UNRANKED", Planet: "PLANET_EARTH", MissionType: "MT_SURVIVAL", Faction: core.FactionInfested},
		"ClanNode2": {
			Node: "NODE_KADESH", Planet: "PLANET_MARS", MissionType: "MT_DEFENSE", Faction: core.FactionMurmur,
			DarkSectorData: &core.DarkSectorData{ResourceBonus: 0.25, XPBonus: 0.18, WeaponXPBonusFor: core.WeaponShotguns, WeaponXPBonusVal: 0.1},
		},
	}
}

func testDictionary() *refdata.Dictionary {
	return refdata.NewDictionary(language.English, map[string]string{
		"NODE_CINXIA":     "Cinxia",
		"NODE_HYDRON":     "Hydron",
		"NODE_ODIN":       "Odin",
		"NODE_TESSERA":    "Tessera",
		"NODE_UNRANKED":   "Somewhere",
		"NODE_KADESH":     "Kadesh",
		"PLANET_CERES":    "Ceres",
		"PLANET_SEDNA":    "Sedna",
		"PLANET_MERCURY":  "Mercury",
		"PLANET_VENUS":    "Venus",
		"PLANET_EARTH":    "Earth",
		"PLANET_MARS":     "Mars",
		"MT_INTERCEPTION": "INTERCEPTION",
		"MT_DEFENSE":      "defense",
		"MT_SURVIVAL":     "survival",
	})
}

// slot returns the key of the n-th hour after baseSlot.
func slot(n int) int64 {
	return baseSlot + int64(n)*3600
}

func mustBuild(rows []core.RawRow, opts ...Option) *Index {
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	ix, err := Build(rows, testRegions(), testDictionary(), tier.Default(), opts...)
	if err != nil {
		panic(err)
	}
	return ix
}
