package schedule

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arbys/arbitrations/internal/timecalc"
	"github.com/arbys/arbitrations/pkg/core"
)

// Window is how long every arbitration lasts.
const Window = time.Hour

// Supported activation range. Expiry must stay inside it as well.
var (
	minActivation = time.Date(-262143, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxActivation = time.Date(262142, time.December, 31, 23, 59, 59, 0, time.UTC).Unix() - int64(Window/time.Second)
)

// RegionLookup resolves a location code to its metadata.
type RegionLookup interface {
	Region(code string) (core.Region, bool)
}

// Translator resolves a source string to its localized form.
type Translator interface {
	Translate(key string) (string, bool)
}

// Ranker assigns a tier to a node display name.
type Ranker interface {
	Rank(node string) core.Tier
}

// languager is implemented by translators that know their target language.
// The language picks the casing rules for mission types.
type languager interface {
	Language() language.Tag
}

// Enricher turns raw rows into arbitrations. It is not safe for concurrent
// use because the title caser keeps state.
type Enricher struct {
	regions RegionLookup
	dict    Translator
	ranker  Ranker
	caser   cases.Caser
}

// NewEnricher creates an enricher over the given reference data.
func NewEnricher(regions RegionLookup, dict Translator, ranker Ranker) *Enricher {
	lang := language.Und
	if l, ok := dict.(languager); ok {
		lang = l.Language()
	}
	return &Enricher{
		regions: regions,
		dict:    dict,
		ranker:  ranker,
		caser:   cases.Title(lang),
	}
}

// Activation converts a row time to its UTC instant.
func Activation(unix int64) (time.Time, error) {
	if unix < minActivation || unix > maxActivation {
		return time.Time{}, fmt.Errorf("%w: %d is out of range", ErrInvalidTimestamp, unix)
	}
	return time.Unix(unix, 0).UTC(), nil
}

// Enrich resolves row. ok is false when the row's location code has no
// region metadata; such rows are skipped, not errors. now is only used for
// the ETA string.
func (e *Enricher) Enrich(row core.RawRow, now time.Time) (arb *core.Arbitration, ok bool, err error) {
	activation, err := Activation(row.Time)
	if err != nil {
		return nil, false, err
	}

	region, ok := e.regions.Region(row.Node)
	if !ok {
		return nil, false, nil
	}

	node := row.Node
	if v, found := e.translate(region.Node); found {
		node = v
	}

	planet := region.Planet
	if v, found := e.translate(region.Planet); found {
		planet = v
	}

	// The untranslated key is kept as is, only translations are title cased.
	missionType := region.MissionType
	if v, found := e.translate(region.MissionType); found {
		missionType = e.titleCase(v)
	}

	var darkSector *core.DarkSectorData
	if region.DarkSectorData != nil {
		ds := *region.DarkSectorData
		darkSector = &ds
	}

	return &core.Arbitration{
		Node:           node,
		Planet:         planet,
		MissionType:    missionType,
		Faction:        region.Faction,
		Tier:           e.rank(node),
		DarkSectorData: darkSector,
		Activation:     activation,
		Expiry:         activation.Add(Window),
		ETA:            timecalc.FormatShort(activation, now),
	}, true, nil
}

func (e *Enricher) translate(key string) (string, bool) {
	if e.dict == nil {
		return "", false
	}
	return e.dict.Translate(key)
}

func (e *Enricher) rank(node string) core.Tier {
	if e.ranker == nil {
		return core.TierF
	}
	return e.ranker.Rank(node)
}

// titleCase splits s into words and capitalizes each, so "MOBILE_DEFENSE",
// "mobile defense" and "mobileDefense" all become "Mobile Defense".
func (e *Enricher) titleCase(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = e.caser.String(w)
	}
	return strings.Join(words, " ")
}

func splitWords(s string) []string {
	var words []string
	runes := []rune(s)
	start := -1

	flush := func(end int) {
		if start >= 0 {
			words = append(words, string(runes[start:end]))
			start = -1
		}
	}

	for i, r := range runes {
		if !isWordRune(r) {
			flush(i)
			continue
		}
		if start >= 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			// camelCase, or the last capital of an acronym followed by a word: "HTTPServer".
			if unicode.IsLower(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush(i)
			}
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(runes))

	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
}
