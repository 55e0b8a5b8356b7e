// pkg/core/tier.go
package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tier ranks how desirable a node is. S is the highest tier, F the lowest and
// the zero value, so an unclassified node is F.
type Tier uint8

const (
	TierF Tier = iota
	TierD
	TierC
	TierB
	TierA
	TierS
)

var tierLetters = [...]string{
	TierF: "F",
	TierD: "D",
	TierC: "C",
	TierB: "B",
	TierA: "A",
	TierS: "S",
}

// Tiers lists every tier from highest to lowest.
var Tiers = []Tier{TierS, TierA, TierB, TierC, TierD, TierF}

func (t Tier) String() string {
	if int(t) < len(tierLetters) {
		return tierLetters[t]
	}
	return fmt.Sprintf("Tier(%d)", uint8(t))
}

// ParseTier parses a tier letter, ignoring case and surrounding space.
func ParseTier(s string) (Tier, error) {
	letter := strings.ToUpper(strings.TrimSpace(s))
	for i, l := range tierLetters {
		if l == letter {
			return Tier(i), nil
		}
	}
	return TierF, fmt.Errorf("unknown tier %q", s)
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
