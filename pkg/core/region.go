// pkg/core/region.go
package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

// WeaponCategory is the weapon class that receives the dark sector XP bonus.
type WeaponCategory string

const (
	WeaponMelee    WeaponCategory = "Melee"
	WeaponPistols  WeaponCategory = "Pistols"
	WeaponRifles   WeaponCategory = "Rifles"
	WeaponShotguns WeaponCategory = "Shotguns"
)

// Valid reports whether c is one of the four weapon categories.
func (c WeaponCategory) Valid() bool {
	switch c {
	case WeaponMelee, WeaponPistols, WeaponRifles, WeaponShotguns:
		return true
	}
	return false
}

func (c *WeaponCategory) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !WeaponCategory(s).Valid() {
		return fmt.Errorf("unknown weapon category %q", s)
	}
	*c = WeaponCategory(s)
	return nil
}

// DarkSectorData holds the bonuses of a dark sector node.
type DarkSectorData struct {
	ResourceBonus    float64        `json:"resourceBonus"`
	XPBonus          float64        `json:"xpBonus"`
	WeaponXPBonusFor WeaponCategory `json:"weaponXpBonusFor"`
	WeaponXPBonusVal float64        `json:"weaponXpBonusVal"`
}

// UnmarshalJSON requires all four bonus fields.
func (d *DarkSectorData) UnmarshalJSON(data []byte) error {
	var raw struct {
		ResourceBonus    *float64        `json:"resourceBonus"`
		XPBonus          *float64        `json:"xpBonus"`
		WeaponXPBonusFor *WeaponCategory `json:"weaponXpBonusFor"`
		WeaponXPBonusVal *float64        `json:"weaponXpBonusVal"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := errors.Join(
		required("resourceBonus", raw.ResourceBonus == nil),
		required("xpBonus", raw.XPBonus == nil),
		required("weaponXpBonusFor", raw.WeaponXPBonusFor == nil),
		required("weaponXpBonusVal", raw.WeaponXPBonusVal == nil),
	); err != nil {
		return err
	}
	*d = DarkSectorData{
		ResourceBonus:    *raw.ResourceBonus,
		XPBonus:          *raw.XPBonus,
		WeaponXPBonusFor: *raw.WeaponXPBonusFor,
		WeaponXPBonusVal: *raw.WeaponXPBonusVal,
	}
	return nil
}

// Region is the metadata of one node from the region export. Node, Planet and
// MissionType are dictionary keys, not display strings.
type Region struct {
	Node           string          `json:"name"`
	Planet         string          `json:"systemName"`
	MissionType    string          `json:"missionName"`
	Faction        Faction         `json:"factionIndex"`
	DarkSectorData *DarkSectorData `json:"darkSectorData,omitempty"`
}

// UnmarshalJSON requires every field except darkSectorData.
func (r *Region) UnmarshalJSON(data []byte) error {
	var raw struct {
		Node           *string         `json:"name"`
		Planet         *string         `json:"systemName"`
		MissionType    *string         `json:"missionName"`
		Faction        *Faction        `json:"factionIndex"`
		DarkSectorData *DarkSectorData `json:"darkSectorData"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := errors.Join(
		required("name", raw.Node == nil),
		required("systemName", raw.Planet == nil),
		required("missionName", raw.MissionType == nil),
		required("factionIndex", raw.Faction == nil),
	); err != nil {
		return err
	}
	*r = Region{
		Node:           *raw.Node,
		Planet:         *raw.Planet,
		MissionType:    *raw.MissionType,
		Faction:        *raw.Faction,
		DarkSectorData: raw.DarkSectorData,
	}
	return nil
}

func required(field string, missing bool) error {
	if missing {
		return fmt.Errorf("missing field %q", field)
	}
	return nil
}
