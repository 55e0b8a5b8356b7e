// pkg/core/arbitration.go
package core

import "time"

// RawRow is one line of the arbitration schedule: an activation time in unix
// seconds and the location code of the node.
type RawRow struct {
	Time int64
	Node string
}

// Arbitration is a fully resolved schedule entry. It is valid for one hour
// starting at Activation.
type Arbitration struct {
	Node           string          `json:"node"`
	Planet         string          `json:"planet"`
	MissionType    string          `json:"missionType"`
	Faction        Faction         `json:"faction"`
	Tier           Tier            `json:"tier"`
	DarkSectorData *DarkSectorData `json:"darkSectorData"`
	Activation     time.Time       `json:"activation"`
	Expiry         time.Time       `json:"expiry"`
	ETA            string          `json:"eta"`
}
