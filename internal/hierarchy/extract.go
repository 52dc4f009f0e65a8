// Package hierarchy assembles a cycle-safe display tree from the flat,
// heterogeneously-linked records of an external issue tracker.
package hierarchy

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/groblegark/treeline/internal/jira"
	"github.com/groblegark/treeline/internal/model"
)

// Link-type categories. A typed link is classified by exact type-name match
// first, then by a phrase substring fallback; anything else carries no
// hierarchy meaning and is ignored.
var (
	containmentTypeNames = map[string]struct{}{
		"Hierarchy":    {},
		"Parent-Child": {},
		"Parent/Child": {},
	}
	coverageTypeNames = map[string]struct{}{
		"Coverage": {},
		"Covers":   {},
	}
)

// ExtractResult is the output of one record's relationship extraction.
type ExtractResult struct {
	Edges []model.Edge
	// Stubs are nodes reconstructed from linked-issue payloads that embedded
	// summary/status data. They stand in for keys absent from the working set.
	Stubs []*model.Issue
}

// Extract normalizes one raw record into typed directed edges. Pure and
// synchronous; no fetches happen here.
func Extract(rec *jira.Issue) ExtractResult {
	var res ExtractResult

	if groupKey, ok := decodeGroupKey(rec.Fields.Epic); ok {
		res.Edges = append(res.Edges, model.Edge{Parent: groupKey, Child: rec.Key, Kind: model.EdgeGroup})
	}

	for _, link := range rec.Fields.Links {
		kind, ok := classifyLink(link.Type)
		if !ok {
			continue
		}
		if other := link.OutwardIssue; other != nil && other.Key != "" {
			res.append(edgeFor(kind, rec.Key, other, link.Type.Outward))
		}
		if other := link.InwardIssue; other != nil && other.Key != "" {
			res.append(edgeFor(kind, rec.Key, other, link.Type.Inward))
		}
	}
	return res
}

// append adds the edge and, when the linked payload carried data, its stub.
func (r *ExtractResult) append(e model.Edge, stub *model.Issue) {
	r.Edges = append(r.Edges, e)
	if stub != nil {
		r.Stubs = append(r.Stubs, stub)
	}
}

// edgeFor orients one side of a typed link so Parent is always the coarser
// item, using the directional phrase attached to the present side.
func edgeFor(kind model.EdgeKind, selfKey string, other *jira.LinkedIssue, phrase string) (model.Edge, *model.Issue) {
	e := model.Edge{Kind: kind}
	if phraseMeansParent(phrase) {
		e.Parent, e.Child = selfKey, other.Key
	} else {
		e.Parent, e.Child = other.Key, selfKey
	}

	var stub *model.Issue
	if f := other.Fields; f != nil && (f.Summary != "" || f.Status != nil) {
		stub = other.ToModel()
	}
	return e, stub
}

// phraseMeansParent reports whether the directional phrase puts the record on
// the coarse side of the link ("is parent of", "covers").
func phraseMeansParent(phrase string) bool {
	p := strings.ToLower(phrase)
	if strings.Contains(p, "child") || strings.Contains(p, "covered") {
		return false
	}
	return strings.Contains(p, "parent") || strings.Contains(p, "cover")
}

// classifyLink sorts a link type into Containment or Coverage.
func classifyLink(t jira.LinkType) (model.EdgeKind, bool) {
	if _, ok := containmentTypeNames[t.Name]; ok {
		return model.EdgeContainment, true
	}
	if _, ok := coverageTypeNames[t.Name]; ok {
		return model.EdgeCoverage, true
	}
	name := strings.ToLower(t.Name)
	switch {
	case strings.Contains(name, "parent") || strings.Contains(name, "child") || strings.Contains(name, "hierarch"):
		return model.EdgeContainment, true
	case strings.Contains(name, "cover"):
		return model.EdgeCoverage, true
	}
	return "", false
}

// decodeGroupKey decodes the union-shaped grouping value into a plain
// key-or-absent result. A value no shape matches is silently dropped, never
// an error.
func decodeGroupKey(raw json.RawMessage) (string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}

	var obj struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Key != "" {
		return obj.Key, true
	}

	// Opaque scalar, recoverable only via string coercion.
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		switch x := v.(type) {
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(x), true
		}
	}
	return "", false
}
