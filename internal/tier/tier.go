// Package tier ranks arbitration nodes by display name.
package tier

import (
	"fmt"
	"maps"

	"github.com/arbys/arbitrations/pkg/core"
)

// defaultTable is the community ranking of arbitration nodes. Nodes that are
// not listed rank F.
var defaultTable = map[string]core.Tier{
	"Cinxia":  core.TierS,
	"Casta":   core.TierS,
	"Seimeni": core.TierS,

	"Sechura": core.TierA,
	"Hydron":  core.TierA,
	"Odin":    core.TierA,
	"Helene":  core.TierA,

	"Tessera":        core.TierB,
	"Ose":            core.TierB,
	"Hyf":            core.TierB,
	"Outer Terminus": core.TierB,

	"Larzac":    core.TierC,
	"Sinai":     core.TierC,
	"Sangeru":   core.TierC,
	"Gulliver":  core.TierC,
	"Alator":    core.TierC,
	"Stephano":  core.TierC,
	"Io":        core.TierC,
	"Kala-azar": core.TierC,
	"Lares":     core.TierC,
	"Lith":      core.TierC,
	"Paimon":    core.TierC,
	"Callisto":  core.TierC,
	"Bellinus":  core.TierC,
	"Cerberus":  core.TierC,
	"Spear":     core.TierC,
	"Umbriel":   core.TierC,

	"Coba":      core.TierD,
	"Kadesh":    core.TierD,
	"Romula":    core.TierD,
	"Rhea":      core.TierD,
	"Berehynia": core.TierD,
	"Oestrus":   core.TierD,
	"Proteus":   core.TierD,
	"Xini":      core.TierD,
	"Cytherean": core.TierD,
	"Stöfler":   core.TierD,
	"Taranis":   core.TierD,
	"Mithra":    core.TierD,
	"Gaia":      core.TierD,
	"Caelus":    core.TierD,
	"Akkad":     core.TierD,
}

// Classifier maps a node display name to its tier. It is read-only once
// built and safe for concurrent use.
type Classifier struct {
	table map[string]core.Tier
}

// Default returns the classifier backed by the built-in ranking.
func Default() *Classifier {
	return &Classifier{table: defaultTable}
}

// New returns a classifier over a copy of table.
func New(table map[string]core.Tier) *Classifier {
	return &Classifier{table: maps.Clone(table)}
}

// FromLetters builds a classifier from tier letter -> node names, the shape
// used by the "tiers" configuration section. Letters are matched
// case-insensitively; node names are kept as written. A node listed under
// two letters is an error.
func FromLetters(groups map[string][]string) (*Classifier, error) {
	parsed := make(map[string]core.Tier)
	for letter, nodes := range groups {
		t, err := core.ParseTier(letter)
		if err != nil {
			return nil, fmt.Errorf("tier group %q: %w", letter, err)
		}
		for _, node := range nodes {
			if prev, ok := parsed[node]; ok && prev != t {
				return nil, fmt.Errorf("node %q ranked both %s and %s", node, prev, t)
			}
			parsed[node] = t
		}
	}
	return New(parsed), nil
}

// Rank returns the tier of node, F when it is not ranked. The match is exact.
func (c *Classifier) Rank(node string) core.Tier {
	if c == nil {
		return core.TierF
	}
	if t, ok := c.table[node]; ok {
		return t
	}
	return core.TierF
}

// Len returns the number of ranked nodes.
func (c *Classifier) Len() int {
	if c == nil {
		return 0
	}
	return len(c.table)
}
