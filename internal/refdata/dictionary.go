package refdata

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"

	"golang.org/x/text/language"
)

// Dictionary translates source strings into one target language. There is no
// fallback to other languages.
type Dictionary struct {
	lang    language.Tag
	entries map[string]string
}

// NewDictionary returns a dictionary over a copy of entries.
func NewDictionary(lang language.Tag, entries map[string]string) *Dictionary {
	return &Dictionary{lang: lang, entries: maps.Clone(entries)}
}

// LoadDictionary decodes a flat JSON object of key -> translation.
func LoadDictionary(r io.Reader, lang language.Tag) (*Dictionary, error) {
	entries := map[string]string{}
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("error decoding %s dictionary: %w", lang, err)
	}
	return &Dictionary{lang: lang, entries: entries}, nil
}

// LoadDictionaryFile reads the dictionary at path.
func LoadDictionaryFile(path string, lang language.Tag) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dictionary file: %w", err)
	}
	defer f.Close()

	return LoadDictionary(f, lang)
}

// Translate returns the translation of key.
func (d *Dictionary) Translate(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d.entries[key]
	return v, ok
}

// Language returns the dictionary's target language.
func (d *Dictionary) Language() language.Tag {
	if d == nil {
		return language.Und
	}
	return d.lang
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns a copy of the dictionary contents.
func (d *Dictionary) Entries() map[string]string {
	if d == nil {
		return map[string]string{}
	}
	return maps.Clone(d.entries)
}
