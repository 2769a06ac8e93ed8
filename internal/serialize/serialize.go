// Package serialize implements the deterministic, byte-identical JSON
// output of spec §4.10: a recursive key-sorted encoder plus the
// phase1-bundle.json / debug split-directory writers.
package serialize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/softscanner-sw/spa-multigraph/internal/model"
)

// ToJSON serializes v (the Bundle, or any sub-structure of it) as
// recursively key-sorted, 2-space-indented, UTF-8-no-BOM JSON (spec
// §4.10). It round-trips through encoding/json's map handling — which
// already sorts object keys — then re-indents; the recursion is only
// needed because Go structs marshal in field-declaration order, not
// alphabetical, so fields are re-sorted via an intermediate map pass.
func ToJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	sorted := sortKeys(generic)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(sorted); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// sortKeys recursively copies nested maps and slices of a decoded value;
// the sorted key order of the output comes from encoding/json, which
// writes map keys in sorted order, so re-encoding the decoded value
// sorts keys at every level instead of following struct field order.
func sortKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = sortKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = sortKeys(val)
		}
		return out
	default:
		return v
	}
}

// WriteBundle writes phase1-bundle.json to outputDir (spec §6).
func WriteBundle(outputDir string, bundle model.Bundle) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	data, err := ToJSON(bundle)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, "phase1-bundle.json"), data, 0o644)
}

// WriteDebugSplit writes the debug split-JSON directory: modules/,
// routes/, components/, widget-event maps, graph/, config/, and stats
// (spec §6, "--debug").
func WriteDebugSplit(outputDir string, modules []*model.Module, routeMap *model.RouteMap, compIDs []string, componentsByID map[string]*model.Component, events []*model.WidgetEvent, g model.Multigraph, cfg any) error {
	debugDir := filepath.Join(outputDir, "debug")
	dirs := []string{"modules", "routes", "components", "graph", "config"}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(debugDir, d), 0o755); err != nil {
			return err
		}
	}

	for _, m := range modules {
		if err := writeJSONFile(filepath.Join(debugDir, "modules", safeName(m.ID)+".json"), m); err != nil {
			return err
		}
	}
	for _, r := range routeMap.Routes {
		if err := writeJSONFile(filepath.Join(debugDir, "routes", safeName(r.ID)+".json"), r); err != nil {
			return err
		}
	}
	sort.Strings(compIDs)
	for _, id := range compIDs {
		c, ok := componentsByID[id]
		if !ok {
			continue
		}
		if err := writeJSONFile(filepath.Join(debugDir, "components", safeName(id)+".json"), c); err != nil {
			return err
		}
	}
	if err := writeJSONFile(filepath.Join(debugDir, "widget-events.json"), events); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(debugDir, "graph", "nodes.json"), g.Nodes); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(debugDir, "graph", "edges.json"), g.Edges); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(debugDir, "config", "analyzer-config.json"), cfg); err != nil {
		return err
	}
	return writeJSONFile(filepath.Join(debugDir, "stats.json"), model.ComputeStats(g))
}

func writeJSONFile(path string, v any) error {
	data, err := ToJSON(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// safeName turns an entity id (which may contain "/" or "#") into a
// filesystem-safe filename.
func safeName(id string) string {
	out := make([]rune, 0, len(id))
	for _, r := range id {
		switch r {
		case '/', '#', '@', ':', '*', '?', '"', '<', '>', '|', '\\':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return fmt.Sprintf("_%d", 0)
	}
	return string(out)
}
