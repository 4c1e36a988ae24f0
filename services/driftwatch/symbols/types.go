// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package symbols builds the two symbol inventories the drift comparators
// operate on: the code-side set derived from an impact report and the
// doc-side set extracted from generated documentation text.
//
// # Description
//
// A symbol is a normalized string key identifying one entity: an API route
// ("GET /users"), a schema/model name ("User", "User.email"), or a generic
// identifier. Comparison downstream is exact string equality, so the same
// key-production rules apply on both sides.
//
// # Thread Safety
//
// Symbol sets are built single-threaded and immutable once returned;
// concurrent reads are safe, concurrent writes are not supported.
package symbols

import "sort"

// Category classifies a symbol by the kind of entity it names.
type Category string

const (
	// CategoryAPI marks API endpoint symbols ("GET /users").
	CategoryAPI Category = "api"

	// CategorySchema marks data-model symbols ("User", "User.email").
	CategorySchema Category = "schema"

	// CategoryGeneric marks all other identifiers.
	CategoryGeneric Category = "generic"
)

// CodeSymbol is one code-side identifier.
type CodeSymbol struct {
	// Key is the normalized comparison key.
	Key string

	// Category is the symbol's classification.
	Category Category
}

// DocSymbol is one symbol found in documentation, with provenance.
type DocSymbol struct {
	// Key is the normalized comparison key.
	Key string

	// Category is the inferred classification.
	Category Category

	// SourceFile is the documentation file the symbol was extracted from.
	SourceFile string

	// LineContext is the trimmed content of the matched line.
	LineContext string
}

// CodeSymbolSet is the deduplicated code-side inventory.
type CodeSymbolSet struct {
	byCategory map[Category]map[string]CodeSymbol
}

// NewCodeSymbolSet returns an empty code symbol set.
func NewCodeSymbolSet() *CodeSymbolSet {
	return &CodeSymbolSet{byCategory: make(map[Category]map[string]CodeSymbol)}
}

// Add inserts a symbol, deduplicating by key within its category.
func (s *CodeSymbolSet) Add(sym CodeSymbol) {
	if sym.Key == "" {
		return
	}
	bucket, ok := s.byCategory[sym.Category]
	if !ok {
		bucket = make(map[string]CodeSymbol)
		s.byCategory[sym.Category] = bucket
	}
	if _, exists := bucket[sym.Key]; !exists {
		bucket[sym.Key] = sym
	}
}

// Has reports whether the key exists in any category.
func (s *CodeSymbolSet) Has(key string) bool {
	for _, bucket := range s.byCategory {
		if _, ok := bucket[key]; ok {
			return true
		}
	}
	return false
}

// HasInCategory reports whether the key exists in the given category.
func (s *CodeSymbolSet) HasInCategory(cat Category, key string) bool {
	_, ok := s.byCategory[cat][key]
	return ok
}

// Keys returns the sorted keys of the given category.
func (s *CodeSymbolSet) Keys(cat Category) []string {
	bucket := s.byCategory[cat]
	keys := make([]string, 0, len(bucket))
	for key := range bucket {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the total number of symbols across categories.
func (s *CodeSymbolSet) Len() int {
	total := 0
	for _, bucket := range s.byCategory {
		total += len(bucket)
	}
	return total
}

type docKey struct {
	key      string
	category Category
}

// DocSymbolSet is the deduplicated doc-side inventory.
//
// Dedup is by (key, category); the provenance of the first occurrence wins,
// which is stable because files are indexed in sorted-path order.
type DocSymbolSet struct {
	byKey   map[docKey]DocSymbol
	firstBy map[string]DocSymbol
}

// NewDocSymbolSet returns an empty doc symbol set.
func NewDocSymbolSet() *DocSymbolSet {
	return &DocSymbolSet{
		byKey:   make(map[docKey]DocSymbol),
		firstBy: make(map[string]DocSymbol),
	}
}

// Add inserts a symbol unless the (key, category) pair is already present.
func (s *DocSymbolSet) Add(sym DocSymbol) {
	if sym.Key == "" {
		return
	}
	dk := docKey{key: sym.Key, category: sym.Category}
	if _, exists := s.byKey[dk]; exists {
		return
	}
	s.byKey[dk] = sym
	if _, exists := s.firstBy[sym.Key]; !exists {
		s.firstBy[sym.Key] = sym
	}
}

// Has reports whether the key exists in any category.
func (s *DocSymbolSet) Has(key string) bool {
	_, ok := s.firstBy[key]
	return ok
}

// HasInCategory reports whether the key exists in the given category.
func (s *DocSymbolSet) HasInCategory(cat Category, key string) bool {
	_, ok := s.byKey[docKey{key: key, category: cat}]
	return ok
}

// Lookup returns the first-recorded symbol for the key.
func (s *DocSymbolSet) Lookup(key string) (DocSymbol, bool) {
	sym, ok := s.firstBy[key]
	return sym, ok
}

// Keys returns the sorted set of unique keys across all categories.
func (s *DocSymbolSet) Keys() []string {
	keys := make([]string, 0, len(s.firstBy))
	for key := range s.firstBy {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// KeysInCategory returns the sorted keys of the given category.
func (s *DocSymbolSet) KeysInCategory(cat Category) []string {
	var keys []string
	for dk := range s.byKey {
		if dk.category == cat {
			keys = append(keys, dk.key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of (key, category) entries.
func (s *DocSymbolSet) Len() int {
	return len(s.byKey)
}
