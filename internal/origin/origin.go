// Package origin defines the source-location type attached to every
// extracted entity (spec §3, "Origin").
package origin

import (
	"strconv"
	"strings"
)

// Origin points at the literal source span an extracted entity was read
// from. Line/column are 1-based; Start/End are 0-based byte offsets into
// the file's content, taken from the tree-sitter node range the astaccess
// package derives them from. Offsets and columns count bytes, not
// characters, so they differ from character positions after any
// multi-byte character.
type Origin struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startCol"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endCol"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Symbol    string `json:"symbol,omitempty"`
	Snippet   string `json:"snippet,omitempty"`
}

// SourceRef is the byte-offset-only projection of an Origin used on
// graph nodes/edges (spec §3, "SourceRef").
type SourceRef struct {
	File  string `json:"file"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Ref projects an Origin down to a SourceRef.
func (o Origin) Ref() SourceRef {
	return SourceRef{File: o.File, Start: o.Start, End: o.End}
}

// RecordKey returns the "<file>::<line>::<col>" key used by the route
// extractor's seen-record-origins guard (spec §4.3).
func (o Origin) RecordKey() string {
	var b strings.Builder
	b.WriteString(o.File)
	b.WriteString("::")
	b.WriteString(strconv.Itoa(o.StartLine))
	b.WriteString("::")
	b.WriteString(strconv.Itoa(o.StartCol))
	return b.String()
}
