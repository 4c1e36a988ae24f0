// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package symbols

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DocFile is one fetched documentation file.
type DocFile struct {
	Path    string
	Content []byte
}

// DocIndexResult is the outcome of indexing a batch of documentation files.
type DocIndexResult struct {
	// Set is the extracted symbol inventory.
	Set *DocSymbolSet

	// Skipped lists files that contributed zero symbols because their
	// content was empty or not valid text. Sorted by path.
	Skipped []string
}

// IndexDocFiles extracts doc symbols from a batch of documentation files.
//
// Description:
//
//	Runs the extraction patterns over every file's text content. Files are
//	processed in sorted-path order regardless of the order they arrive in,
//	so first-occurrence provenance is stable even when the files were
//	fetched concurrently.
//
//	Extraction is deliberately heuristic and conservative:
//
//	  - "METHOD /path" pairs and bare route-like tokens (leading slash,
//	    path segments, optional {param} placeholders) -> API symbols.
//	  - Back-ticked or bracketed identifier-shaped tokens -> schema
//	    symbols when under a Model/Schema/Table heading, generic
//	    otherwise.
//	  - A Model/Schema/Table heading that names an identifier also yields
//	    that identifier as a schema symbol.
//
//	Empty or non-text files never fail the batch; they contribute zero
//	symbols and are reported in Skipped.
//
// Inputs:
//
//	files - Fetched (path, content) pairs. May be nil or empty.
//
// Outputs:
//
//	DocIndexResult - The symbol set plus skipped-file record. Set is
//	never nil.
func IndexDocFiles(files []DocFile) DocIndexResult {
	sorted := make([]DocFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	result := DocIndexResult{Set: NewDocSymbolSet()}
	for _, file := range sorted {
		content := strings.TrimSpace(string(file.Content))
		if content == "" || !utf8.ValidString(content) {
			result.Skipped = append(result.Skipped, file.Path)
			continue
		}
		indexDocFile(result.Set, file.Path, content)
	}
	return result
}

// extraction patterns
var (
	httpMethods = map[string]bool{
		"GET": true, "POST": true, "PUT": true, "PATCH": true,
		"DELETE": true, "HEAD": true, "OPTIONS": true,
	}

	schemaHeadingWords = []string{"model", "schema", "table"}
)

// indexDocFile extracts symbols from one file's content, line by line.
func indexDocFile(set *DocSymbolSet, path, content string) {
	inSchemaSection := false

	// Generated artifacts can be a single multi-megabyte line (minified
	// JSON), and the content is already fully in memory; split directly
	// rather than scanning with a bounded per-line token size.
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			inSchemaSection = isSchemaHeading(line)
			if inSchemaSection {
				if name := headingSubject(line); name != "" {
					set.Add(DocSymbol{
						Key:         name,
						Category:    CategorySchema,
						SourceFile:  path,
						LineContext: line,
					})
				}
			}
			continue
		}

		extractRoutes(set, path, line)
		extractIdentifiers(set, path, line, inSchemaSection)
	}
}

// isSchemaHeading reports whether a markdown heading introduces a
// model/schema/table section.
func isSchemaHeading(line string) bool {
	lower := strings.ToLower(line)
	for _, word := range schemaHeadingWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// headingSubject returns the identifier a schema heading names, if any.
// "## Model: User" and "### Schema `Order`" both yield their identifier.
func headingSubject(line string) string {
	stripped := strings.TrimLeft(line, "# ")
	fields := strings.FieldsFunc(stripped, func(r rune) bool {
		return r == ':' || r == ' ' || r == '`'
	})
	// The subject is the last identifier-shaped token that is not the
	// heading keyword itself.
	for i := len(fields) - 1; i >= 0; i-- {
		token := fields[i]
		lower := strings.ToLower(token)
		isKeyword := false
		for _, word := range schemaHeadingWords {
			if lower == word || lower == word+"s" {
				isKeyword = true
				break
			}
		}
		if !isKeyword && isIdentifier(token) {
			return token
		}
	}
	return ""
}

// extractRoutes finds "METHOD /path" pairs and bare path tokens.
func extractRoutes(set *DocSymbolSet, path, line string) {
	tokens := strings.FieldsFunc(line, func(r rune) bool {
		return r == '`' || r == '"' || r == '\'' || r == '(' || r == ')' ||
			r == '[' || r == ']' || r == ',' || r == ' ' || r == '\t' || r == '|'
	})

	for i, token := range tokens {
		if !isRoutePath(token) {
			continue
		}
		key := token
		if i > 0 && httpMethods[strings.ToUpper(tokens[i-1])] {
			key = strings.ToUpper(tokens[i-1]) + " " + token
		}
		set.Add(DocSymbol{
			Key:         key,
			Category:    CategoryAPI,
			SourceFile:  path,
			LineContext: line,
		})
	}
}

// extractIdentifiers finds back-ticked and bracketed identifier tokens.
func extractIdentifiers(set *DocSymbolSet, path, line string, inSchemaSection bool) {
	category := CategoryGeneric
	if inSchemaSection {
		category = CategorySchema
	}

	for _, token := range delimitedTokens(line) {
		if strings.Contains(token, "/") {
			continue // route-shaped, handled by extractRoutes
		}
		if !isIdentifier(token) {
			continue
		}
		set.Add(DocSymbol{
			Key:         token,
			Category:    category,
			SourceFile:  path,
			LineContext: line,
		})
	}
}

// delimitedTokens returns the contents of `...` and [...] spans in order.
func delimitedTokens(line string) []string {
	var tokens []string
	for _, open := range []struct{ open, close byte }{{'`', '`'}, {'[', ']'}} {
		rest := line
		for {
			start := strings.IndexByte(rest, open.open)
			if start < 0 {
				break
			}
			end := strings.IndexByte(rest[start+1:], open.close)
			if end < 0 {
				break
			}
			tokens = append(tokens, rest[start+1:start+1+end])
			rest = rest[start+1+end+1:]
		}
	}
	return tokens
}

// isRoutePath reports whether a token looks like an API route: a leading
// slash followed by path segments, each a plain segment or a {param}
// placeholder.
func isRoutePath(token string) bool {
	if len(token) < 2 || token[0] != '/' {
		return false
	}
	for _, segment := range strings.Split(strings.Trim(token, "/"), "/") {
		if segment == "" {
			return false
		}
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			segment = segment[1 : len(segment)-1]
			if segment == "" {
				return false
			}
		}
		for _, r := range segment {
			if !isIdentRune(r) && r != '-' && r != '.' {
				return false
			}
		}
	}
	return true
}

// isIdentifier reports whether a token matches the known-symbol shape:
// a letter or underscore followed by word runes, with optional dotted
// suffixes ("User", "User.email", "retry_count").
func isIdentifier(token string) bool {
	if len(token) < 2 {
		return false
	}
	for _, part := range strings.Split(token, ".") {
		if part == "" {
			return false
		}
		if !isIdentStart(rune(part[0])) {
			return false
		}
		for _, r := range part {
			if !isIdentRune(r) {
				return false
			}
		}
	}
	return true
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentRune(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}
