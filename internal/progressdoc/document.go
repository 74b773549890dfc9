// Package progressdoc reads and writes the versioned progress document
// shared by the file store and export/import. Fields it does not know,
// at the top level, per word and inside stats, survive a decode/encode
// round trip.
package progressdoc

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

// Keys owned by domain types. Everything else is carried through untouched.
var (
	documentKeys = []string{"version", "learnerId", "words", "stats"}
	wordKeys     = []string{
		"wordId", "word", "status", "firstSeen", "lastReviewed", "nextReview",
		"recognitionScore", "reviewCount", "correctCount", "incorrectCount", "confidenceLevel",
	}
	statsKeys = []string{"totalWordsStudied", "totalReviews", "currentStreak", "lastStudyDate"}
)

// RawObject is a JSON object with its values left encoded.
type RawObject = map[string]json.RawMessage

// Document is a decoded progress file.
type Document struct {
	Doc        domain.ProgressDocument
	Extra      RawObject            // unknown top-level fields
	WordExtra  map[string]RawObject // unknown per-word fields, by word ID
	StatsExtra RawObject            // unknown fields of the stats object
}

// New returns an empty document at the current version.
func New() Document {
	return Document{
		Doc:       domain.NewProgressDocument(),
		Extra:     RawObject{},
		WordExtra: map[string]RawObject{},
	}
}

// Clone copies the maps that mutations touch. Raw values are never mutated
// in place and are shared.
func (d Document) Clone() Document {
	out := d
	out.Doc.Words = maps.Clone(d.Doc.Words)
	out.WordExtra = maps.Clone(d.WordExtra)
	return out
}

// Upgrade parses data as a JSON object and migrates it to
// domain.DocumentVersion. It returns the version migrated from, or "".
func Upgrade(data []byte) (RawObject, string, error) {
	var top RawObject
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, "", fmt.Errorf("%w: corrupt document: %w", domain.ErrMigration, err)
	}
	if top == nil {
		return nil, "", fmt.Errorf("%w: document is null", domain.ErrMigration)
	}

	from, err := Migrate(top)
	if err != nil {
		return nil, "", err
	}
	return top, from, nil
}

// Decode upgrades data and splits it into known values and extras. Records
// without a wordId take their key; any invalid record fails the decode.
func Decode(data []byte) (Document, string, error) {
	top, from, err := Upgrade(data)
	if err != nil {
		return Document{}, "", err
	}

	doc, err := ToProgressDocument(top)
	if err != nil {
		return Document{}, "", err
	}

	var rawWords map[string]RawObject
	if w, ok := top["words"]; ok {
		if err := json.Unmarshal(w, &rawWords); err != nil {
			return Document{}, "", fmt.Errorf("%w: corrupt words: %w", domain.ErrMigration, err)
		}
	}
	var rawStats RawObject
	if s, ok := top["stats"]; ok {
		if err := json.Unmarshal(s, &rawStats); err != nil {
			return Document{}, "", fmt.Errorf("%w: corrupt stats: %w", domain.ErrMigration, err)
		}
	}

	d := Document{
		Doc:       doc,
		Extra:     without(top, documentKeys),
		WordExtra: map[string]RawObject{},
	}
	if extra := without(rawStats, statsKeys); len(extra) > 0 {
		d.StatsExtra = extra
	}
	if d.Doc.LearnerID == "" {
		d.Doc.LearnerID = domain.NewLearnerID()
	}

	for id, w := range d.Doc.Words {
		if err := w.Validate(); err != nil {
			return Document{}, "", fmt.Errorf("%w: word %q: %w", domain.ErrMigration, id, err)
		}
		if extra := without(rawWords[id], wordKeys); len(extra) > 0 {
			d.WordExtra[id] = extra
		}
	}

	return d, from, nil
}

// ToProgressDocument converts an upgraded top-level object into the domain
// document, filling missing word IDs from their keys. Records are not
// validated.
func ToProgressDocument(top RawObject) (domain.ProgressDocument, error) {
	var doc domain.ProgressDocument
	normalized, err := json.Marshal(top)
	if err != nil {
		return doc, fmt.Errorf("re-encode document: %w", err)
	}
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return doc, fmt.Errorf("%w: corrupt document: %w", domain.ErrMigration, err)
	}
	if doc.Words == nil {
		doc.Words = map[string]domain.WordProgress{}
	}

	for id, w := range doc.Words {
		if w.WordID == "" {
			w.WordID = id
			doc.Words[id] = w
		}
		if w.WordID != id {
			return doc, fmt.Errorf("%w: word %q: wordId %q does not match key", domain.ErrMigration, id, w.WordID)
		}
	}
	return doc, nil
}

// Encode renders the document with unknown fields merged back in.
func Encode(d Document) ([]byte, error) {
	top := maps.Clone(d.Extra)
	if top == nil {
		top = RawObject{}
	}

	words := make(map[string]RawObject, len(d.Doc.Words))
	for id, w := range d.Doc.Words {
		obj, err := merged(d.WordExtra[id], w)
		if err != nil {
			return nil, fmt.Errorf("encode word %q: %w", id, err)
		}
		words[id] = obj
	}

	stats, err := merged(d.StatsExtra, d.Doc.Stats)
	if err != nil {
		return nil, fmt.Errorf("encode stats: %w", err)
	}

	fields := map[string]any{
		"version":   d.Doc.Version,
		"learnerId": d.Doc.LearnerID,
		"words":     words,
		"stats":     stats,
	}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		top[k] = raw
	}

	return json.MarshalIndent(top, "", "  ")
}

// merged encodes v as an object laid over extra. Known keys win.
func merged(extra RawObject, v any) (RawObject, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var known RawObject
	if err := json.Unmarshal(data, &known); err != nil {
		return nil, err
	}

	obj := maps.Clone(extra)
	if obj == nil {
		obj = RawObject{}
	}
	maps.Copy(obj, known)
	return obj, nil
}

func without(obj RawObject, keys []string) RawObject {
	out := maps.Clone(obj)
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
