package search

import (
	"slices"
	"strings"

	"github.com/surgebase/porter2"
)

// SynonymEntry maps a canonical term to its related terms.
type SynonymEntry struct {
	Key      string
	Synonyms []string
}

// SynonymTable expands queries into related terms. A table is immutable once
// built and safe for concurrent use.
type SynonymTable struct {
	entries []SynonymEntry
	stem    bool
}

// DefaultSynonyms is the built-in table used when no other is configured.
var DefaultSynonyms = NewSynonymTableFromEntries([]SynonymEntry{
	{Key: "important", Synonyms: []string{"significant", "crucial", "vital", "key", "essential", "critical"}},
	{Key: "problem", Synonyms: []string{"issue", "challenge", "difficulty", "concern", "trouble"}},
	{Key: "solution", Synonyms: []string{"answer", "resolution", "fix", "remedy", "approach"}},
	{Key: "analysis", Synonyms: []string{"examination", "study", "review", "evaluation", "assessment"}},
	{Key: "result", Synonyms: []string{"outcome", "finding", "conclusion", "output", "effect"}},
	{Key: "process", Synonyms: []string{"procedure", "method", "approach", "workflow", "system"}},
	{Key: "data", Synonyms: []string{"information", "statistics", "numbers", "facts", "figures"}},
	{Key: "performance", Synonyms: []string{"efficiency", "effectiveness", "productivity", "results"}},
	{Key: "strategy", Synonyms: []string{"plan", "approach", "method", "tactic", "framework"}},
	{Key: "research", Synonyms: []string{"study", "investigation", "analysis", "examination", "inquiry"}},
})

// NewSynonymTableFromEntries builds a table that keeps the given entry order.
// Keys and synonyms are lowercased; entries with an empty key are skipped.
func NewSynonymTableFromEntries(entries []SynonymEntry) *SynonymTable {
	t := &SynonymTable{entries: make([]SynonymEntry, 0, len(entries))}
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Key))
		if key == "" {
			continue
		}
		synonyms := make([]string, 0, len(e.Synonyms))
		for _, s := range e.Synonyms {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				synonyms = append(synonyms, s)
			}
		}
		t.entries = append(t.entries, SynonymEntry{Key: key, Synonyms: synonyms})
	}
	return t
}

// NewSynonymTable builds a table from a map. Map iteration order is random,
// so entries are sorted by key to keep expansion deterministic.
func NewSynonymTable(m map[string][]string) *SynonymTable {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	entries := make([]SynonymEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, SynonymEntry{Key: k, Synonyms: m[k]})
	}
	return NewSynonymTableFromEntries(entries)
}

// WithStemming returns a copy of t that also adds the Porter2 stem of every
// query term to its expansion.
func (t *SynonymTable) WithStemming() *SynonymTable {
	return &SynonymTable{entries: t.entries, stem: true}
}

// Entries returns a copy of the table's entries in expansion order.
func (t *SynonymTable) Entries() []SynonymEntry {
	out := make([]SynonymEntry, len(t.entries))
	for i, e := range t.entries {
		out[i] = SynonymEntry{Key: e.Key, Synonyms: slices.Clone(e.Synonyms)}
	}
	return out
}

// Len returns the number of entries.
func (t *SynonymTable) Len() int {
	return len(t.entries)
}

// Expand returns the lowercased query terms followed by the synonyms of every
// entry whose key contains a term or is contained in one. Duplicates are
// removed, keeping the first occurrence.
func (t *SynonymTable) Expand(query string) []string {
	terms := queryTerms(query)

	seen := make(map[string]struct{}, len(terms))
	expanded := make([]string, 0, len(terms))
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		expanded = append(expanded, s)
	}

	for _, term := range terms {
		add(term)
	}
	for _, term := range terms {
		for _, e := range t.entries {
			if strings.Contains(term, e.Key) || strings.Contains(e.Key, term) {
				for _, s := range e.Synonyms {
					add(s)
				}
			}
		}
	}
	if t.stem {
		for _, term := range terms {
			add(porter2.Stem(term))
		}
	}
	return expanded
}

// Expand expands query with DefaultSynonyms.
func Expand(query string) []string {
	return DefaultSynonyms.Expand(query)
}
