package model

import (
	"time"

	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&RegionRow{},
	&Translation{},
}

////////////////////////
// REFERENCE DATA
////////////////////////

// RegionRow is one entry of the region metadata table, keyed by the
// location code used in the raw schedule.
type RegionRow struct {
	Code           string         `json:"code" gorm:"primaryKey;size:64"`
	Name           string         `json:"name" gorm:"size:255"`
	SystemName     string         `json:"systemName" gorm:"size:255"`
	MissionName    string         `json:"missionName" gorm:"size:255"`
	FactionIndex   uint8          `json:"factionIndex"`
	DarkSectorData datatypes.JSON `json:"darkSectorData"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (*RegionRow) TableName() string {
	return "regions"
}

// Translation is one localized string. Lang is a BCP 47 tag.
type Translation struct {
	ID    uint   `json:"id" gorm:"primarykey;autoIncrement"`
	Lang  string `json:"lang" gorm:"size:35;not null;uniqueIndex:idx_translations_lang_key"`
	Key   string `json:"key" gorm:"size:255;not null;uniqueIndex:idx_translations_lang_key"`
	Value string `json:"value"`
}

func (*Translation) TableName() string {
	return "translations"
}
