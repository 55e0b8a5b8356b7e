// pkg/core/faction.go
package core

import (
	"encoding/json"
	"fmt"
)

// Faction is the enemy faction occupying a node. The numeric values match the
// factionIndex used by the region export; 4 and 6 are not assigned.
type Faction uint8

const (
	FactionGrineer  Faction = 0
	FactionCorpus   Faction = 1
	FactionInfested Faction = 2
	FactionOrokin   Faction = 3
	FactionSentient Faction = 5
	FactionMurmur   Faction = 7
)

var factionNames = map[Faction]string{
	FactionGrineer:  "Grineer",
	FactionCorpus:   "Corpus",
	FactionInfested: "Infested",
	FactionOrokin:   "Orokin",
	FactionSentient: "Sentient",
	FactionMurmur:   "Murmur",
}

// Valid reports whether f is one of the known faction codes.
func (f Faction) Valid() bool {
	_, ok := factionNames[f]
	return ok
}

func (f Faction) String() string {
	if name, ok := factionNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Faction(%d)", uint8(f))
}

// MarshalJSON encodes the faction by name.
func (f Faction) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("unknown faction code %d", uint8(f))
	}
	return json.Marshal(f.String())
}

// UnmarshalJSON accepts the numeric factionIndex of the region export as well
// as the faction name.
func (f *Faction) UnmarshalJSON(data []byte) error {
	var code uint8
	if err := json.Unmarshal(data, &code); err == nil {
		if !Faction(code).Valid() {
			return fmt.Errorf("unknown faction code %d", code)
		}
		*f = Faction(code)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("faction must be a code or a name: %w", err)
	}
	parsed, err := ParseFaction(name)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFaction returns the faction with the given name.
func ParseFaction(name string) (Faction, error) {
	for f, n := range factionNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown faction %q", name)
}
