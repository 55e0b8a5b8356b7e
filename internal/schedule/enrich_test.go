package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/arbys/arbitrations/internal/refdata"
	"github.com/arbys/arbitrations/internal/tier"
	"github.com/arbys/arbitrations/pkg/core"
)

func TestEnrich_Scenario(t *testing.T) {
	regions := refdata.Regions{
		"X1": {Node: "N", Planet: "P", MissionType: "M", Faction: core.FactionGrineer},
	}
	dict := refdata.NewDictionary(language.English, map[string]string{"N": "Cinxia"})
	e := NewEnricher(regions, dict, tier.Default())

	arb, ok, err := e.Enrich(core.RawRow{Time: 1718295508, Node: "X1"}, fixedNow)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "Cinxia", arb.Node)
	assert.Equal(t, "P", arb.Planet)
	assert.Equal(t, "M", arb.MissionType)
	assert.Equal(t, core.TierS, arb.Tier)
	assert.Equal(t, core.FactionGrineer, arb.Faction)
	assert.Equal(t, int64(1718295508), arb.Activation.Unix())
	assert.Equal(t, time.UTC, arb.Activation.Location())
	assert.Equal(t, arb.Activation.Add(time.Hour), arb.Expiry)
	assert.Nil(t, arb.DarkSectorData)
}

func TestEnrich_MissingRegionIsDropped(t *testing.T) {
	e := NewEnricher(testRegions(), testDictionary(), tier.Default())

	arb, ok, err := e.Enrich(core.RawRow{Time: baseSlot, Node: "SolNode404"}, fixedNow)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, arb)
}

func TestEnrich_KnownRegionIsNeverDropped(t *testing.T) {
	e := NewEnricher(testRegions(), refdata.NewDictionary(language.English, nil), tier.Default())

	for code := range testRegions() {
		arb, ok, err := e.Enrich(core.RawRow{Time: baseSlot, Node: code}, fixedNow)
		require.NoError(t, err, code)
		require.True(t, ok, code)
		assert.NotNil(t, arb, code)
	}
}

func TestEnrich_Fallbacks(t *testing.T) {
	regions := refdata.Regions{
		"SolNode1": {Node: "NODE_KEY", Planet: "PLANET_KEY", MissionType: "mission_key", Faction: core.FactionCorpus},
	}
	e := NewEnricher(regions, refdata.NewDictionary(language.English, nil), tier.Default())

	arb, ok, err := e.Enrich(core.RawRow{Time: baseSlot, Node: "SolNode1"}, fixedNow)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "SolNode1", arb.Node, "node falls back to the location code")
	assert.Equal(t, "PLANET_KEY", arb.Planet, "planet falls back to its key")
	assert.Equal(t, "mission_key", arb.MissionType, "untranslated mission type is not title cased")
	assert.Equal(t, core.TierF, arb.Tier)
}

func TestEnrich_TranslatedMissionIsTitleCased(t *testing.T) {
	e := NewEnricher(testRegions(), testDictionary(), tier.Default())

	arb, _, err := e.Enrich(core.RawRow{Time: baseSlot, Node: "SolNode64"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "Interception", arb.MissionType)

	arb, _, err = e.Enrich(core.RawRow{Time: baseSlot, Node: "SolNode9"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "Defense", arb.MissionType)
}

func TestEnrich_TierUsesResolvedName(t *testing.T) {
	regions := refdata.Regions{
		// The location code itself is a ranked name, the translation is not.
		"Cinxia": {Node: "NODE", Planet: "P", MissionType: "M"},
		"Code7":  {Node: "NODE_HYDRON", Planet: "P", MissionType: "M"},
	}
	dict := refdata.NewDictionary(language.English, map[string]string{"NODE": "Elsewhere", "NODE_HYDRON": "Hydron"})
	e := NewEnricher(regions, dict, tier.Default())

	arb, _, err := e.Enrich(core.RawRow{Time: baseSlot, Node: "Cinxia"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, core.TierF, arb.Tier)

	arb, _, err = e.Enrich(core.RawRow{Time: baseSlot, Node: "Code7"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, core.TierA, arb.Tier)
}

func TestEnrich_UntranslatedCodeCanStillRank(t *testing.T) {
	regions := refdata.Regions{"Casta": {Node: "NODE", Planet: "P", MissionType: "M"}}
	e := NewEnricher(regions, nil, tier.Default())

	arb, ok, err := e.Enrich(core.RawRow{Time: baseSlot, Node: "Casta"}, fixedNow)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Casta", arb.Node)
	assert.Equal(t, core.TierS, arb.Tier)
}

func TestEnrich_NilRanker(t *testing.T) {
	e := NewEnricher(testRegions(), testDictionary(), nil)

	arb, _, err := e.Enrich(core.RawRow{Time: baseSlot, Node: "SolNode64"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, core.TierF, arb.Tier)
}

func TestEnrich_ETA(t *testing.T) {
	e := NewEnricher(testRegions(), testDictionary(), tier.Default())

	arb, _, err := e.Enrich(core.RawRow{Time: slot(1) + 30*60, Node: "SolNode64"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "in 1h 30m", arb.ETA)

	arb, _, err = e.Enrich(core.RawRow{Time: slot(-48), Node: "SolNode64"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "2d ago", arb.ETA)
}

func TestEnrich_CopiesDarkSectorData(t *testing.T) {
	regions := testRegions()
	e := NewEnricher(regions, testDictionary(), tier.Default())

	arb, _, err := e.Enrich(core.RawRow{Time: baseSlot, Node: "ClanNode2"}, fixedNow)
	require.NoError(t, err)
	require.NotNil(t, arb.DarkSectorData)
	assert.Equal(t, core.WeaponShotguns, arb.DarkSectorData.WeaponXPBonusFor)
	assert.Equal(t, core.FactionMurmur, arb.Faction)
	assert.Equal(t, core.TierD, arb.Tier)

	regions["ClanNode2"].DarkSectorData.ResourceBonus = 9
	assert.InDelta(t, 0.25, arb.DarkSectorData.ResourceBonus, 1e-9)
}

func TestEnrich_InvalidTimestamp(t *testing.T) {
	e := NewEnricher(testRegions(), testDictionary(), tier.Default())

	for _, ts := range []int64{math64Max(), -math64Max(), maxActivation + 1, minActivation - 1} {
		_, ok, err := e.Enrich(core.RawRow{Time: ts, Node: "SolNode64"}, fixedNow)
		require.Error(t, err, "timestamp %d", ts)
		assert.False(t, ok)
		assert.True(t, errors.Is(err, ErrInvalidTimestamp))
	}
}

func TestEnrich_InvalidTimestampWinsOverMissingRegion(t *testing.T) {
	e := NewEnricher(testRegions(), testDictionary(), tier.Default())

	_, _, err := e.Enrich(core.RawRow{Time: math64Max(), Node: "SolNode404"}, fixedNow)
	assert.True(t, errors.Is(err, ErrInvalidTimestamp))
}

func TestActivation_Bounds(t *testing.T) {
	got, err := Activation(maxActivation)
	require.NoError(t, err)
	assert.Equal(t, maxActivation, got.Unix())

	got, err = Activation(minActivation)
	require.NoError(t, err)
	assert.Equal(t, minActivation, got.Unix())
}

func TestEnrich_LanguageCasing(t *testing.T) {
	regions := refdata.Regions{"SolNode1": {Node: "N", Planet: "P", MissionType: "M"}}
	dict := refdata.NewDictionary(language.Dutch, map[string]string{"M": "ijzeren verdediging"})
	e := NewEnricher(regions, dict, tier.Default())

	arb, _, err := e.Enrich(core.RawRow{Time: baseSlot, Node: "SolNode1"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "IJzeren Verdediging", arb.MissionType)
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"mobile defense", []string{"mobile", "defense"}},
		{"MOBILE_DEFENSE", []string{"MOBILE", "DEFENSE"}},
		{"mobileDefense", []string{"mobile", "Defense"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"  spaced--out  ", []string{"spaced", "out"}},
		{"hunter's lair", []string{"hunter's", "lair"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, splitWords(tt.in))
		})
	}
}

func TestTitleCase(t *testing.T) {
	e := NewEnricher(nil, nil, nil)

	assert.Equal(t, "Mobile Defense", e.titleCase("MOBILE_DEFENSE"))
	assert.Equal(t, "Mobile Defense", e.titleCase("mobile defense"))
	assert.Equal(t, "Dark Sector Defense", e.titleCase("darkSectorDefense"))
	assert.Equal(t, "", e.titleCase(""))
}

func math64Max() int64 { return 1<<63 - 1 }
