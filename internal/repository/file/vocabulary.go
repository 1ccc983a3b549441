// Package file serves vocabulary from a words.json export or an msgpack snapshot of it.
package file

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wordballs/internal/domain"

	"github.com/vmihailenco/msgpack/v5"
)

// record is one entry of the authoring tool export
type record struct {
	Text        string `json:"text" msgpack:"text"`
	Lang        string `json:"lang" msgpack:"lang"`
	Category    string `json:"category,omitempty" msgpack:"category,omitempty"`
	Image       string `json:"image,omitempty" msgpack:"image,omitempty"`
	Thumb       string `json:"thumb,omitempty" msgpack:"thumb,omitempty"`
	Audio       string `json:"audio,omitempty" msgpack:"audio,omitempty"`
	ImagePrompt string `json:"image_prompt,omitempty" msgpack:"-"`

	// Asset is the resolved asset reference. Only snapshots carry it; they
	// keep the reference a game shows and drop the raw media fields.
	Asset string `json:"-" msgpack:"asset,omitempty"`
}

type document struct {
	Words []record `json:"words" msgpack:"words"`
}

func (r record) entry() domain.WordEntry {
	asset := r.Asset
	if asset == "" {
		asset = r.Image
	}
	if asset == "" {
		asset = r.Audio
	}
	return domain.WordEntry{
		Text:     domain.NormalizeText(r.Text),
		Language: strings.TrimSpace(r.Lang),
		Category: strings.TrimSpace(r.Category),
		AssetRef: asset,
	}
}

// VocabularyRepo implements repository.VocabularyRepository over an in-memory word list
type VocabularyRepo struct {
	entries []domain.WordEntry
}

// NewVocabularyRepo creates a repository over entries in source order
func NewVocabularyRepo(entries []domain.WordEntry) *VocabularyRepo {
	return &VocabularyRepo{entries: entries}
}

// IsSnapshot reports whether path names an msgpack snapshot rather than JSON
func IsSnapshot(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk":
		return true
	}
	return false
}

// Open loads a vocabulary file, picking the codec from the extension
func Open(path string) (*VocabularyRepo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if IsSnapshot(path) {
		return DecodeSnapshot(f)
	}
	return DecodeJSON(f)
}

// DecodeJSON reads the words.json format
func DecodeJSON(r io.Reader) (*VocabularyRepo, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode vocabulary json: %w", err)
	}
	return fromDocument(doc), nil
}

// DecodeSnapshot reads an msgpack snapshot
func DecodeSnapshot(r io.Reader) (*VocabularyRepo, error) {
	var doc document
	if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode vocabulary snapshot: %w", err)
	}
	return fromDocument(doc), nil
}

func fromDocument(doc document) *VocabularyRepo {
	entries := make([]domain.WordEntry, 0, len(doc.Words))
	for _, rec := range doc.Words {
		entries = append(entries, rec.entry())
	}
	return NewVocabularyRepo(entries)
}

// EncodeSnapshot writes entries as an msgpack snapshot. A snapshot stores the
// resolved asset reference of each entry, not its image, thumb and audio.
func EncodeSnapshot(w io.Writer, entries []domain.WordEntry) error {
	doc := document{Words: make([]record, len(entries))}
	for i, e := range entries {
		doc.Words[i] = record{Text: e.Text, Lang: e.Language, Category: e.Category, Asset: e.AssetRef}
	}
	return msgpack.NewEncoder(w).Encode(&doc)
}

// Save writes entries as an msgpack snapshot file
func Save(path string, entries []domain.WordEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeSnapshot(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("encode vocabulary snapshot: %w", err)
	}
	return f.Close()
}

// All returns every entry in source order
func (r *VocabularyRepo) All() []domain.WordEntry {
	out := make([]domain.WordEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// ListWords returns the entries of a language in source order
func (r *VocabularyRepo) ListWords(language string) ([]domain.WordEntry, error) {
	var out []domain.WordEntry
	for _, e := range r.entries {
		if e.Language == language {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListLanguages returns the languages that have at least one entry
func (r *VocabularyRepo) ListLanguages() ([]string, error) {
	return distinct(r.entries, func(e domain.WordEntry) (string, bool) {
		return e.Language, e.Language != ""
	}), nil
}

// ListCategories returns the categories used by a language
func (r *VocabularyRepo) ListCategories(language string) ([]string, error) {
	return distinct(r.entries, func(e domain.WordEntry) (string, bool) {
		return e.CategoryOrDefault(), e.Language == language
	}), nil
}

func distinct(entries []domain.WordEntry, key func(domain.WordEntry) (string, bool)) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range entries {
		k, ok := key(e)
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
