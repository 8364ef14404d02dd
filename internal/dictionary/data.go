package dictionary

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

//go:embed words.json
var embeddedWords []byte

// Record is the stored form of an entry, with the code point still escaped.
type Record struct {
	Word       string `json:"word"`
	UCSUR      string `json:"ucsur"`
	Glyph      string `json:"glyph"`
	Definition string `json:"definition"`
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default returns the built-in dictionary. It is parsed once per process.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		records, err := decodeRecords(embeddedWords)
		if err != nil {
			panic(fmt.Sprintf("dictionary: embedded word list: %v", err))
		}
		dict, err := FromRecords(records)
		if err != nil {
			panic(fmt.Sprintf("dictionary: embedded word list: %v", err))
		}
		defaultDict = dict
	})
	return defaultDict
}

// Load reads a JSON word list and decodes every code point literal.
func Load(r io.Reader) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dictionary: read: %w", err)
	}
	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}
	return FromRecords(records)
}

// FromRecords decodes stored records into a Dictionary.
func FromRecords(records []Record) (*Dictionary, error) {
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		r, err := DecodeEscaped(rec.UCSUR)
		if err != nil {
			return nil, fmt.Errorf("dictionary: word %q: %w", rec.Word, err)
		}
		entries = append(entries, Entry{
			Word:       rec.Word,
			UCSUR:      r,
			Glyph:      rec.Glyph,
			Definition: rec.Definition,
		})
	}
	return New(entries), nil
}

func decodeRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("dictionary: decode: %w", err)
	}
	return records, nil
}
