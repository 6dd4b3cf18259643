package features

import (
	"sort"
	"strconv"
	"strings"
)

// MaxCoreFeatures is the number of features kept after normalization.
const MaxCoreFeatures = 5

// Normalize canonicalizes a raw core-features answer with the default catalog.
func Normalize(raw any) []string {
	return DefaultCatalog.Normalize(raw)
}

// Normalize canonicalizes a raw core-features answer into an ordered,
// de-duplicated list of at most MaxCoreFeatures entries.
//
// The answer may be a string array, an object with positional slots
// (feature1..feature5) plus optional "selected" and "other" keys, or a mix of
// catalog IDs and free text. Free text is split on newlines and commas. Known
// catalog IDs come first in their original order, followed by free-text items
// in their original order. Anything that is not a non-empty string is dropped.
func (c *Catalog) Normalize(raw any) []string {
	var known, other []string
	seen := make(map[string]bool)

	add := func(item string) {
		if item == "" || seen[item] {
			return
		}
		seen[item] = true
		if c.IsKnown(item) {
			known = append(known, item)
		} else {
			other = append(other, item)
		}
	}

	for _, entry := range flatten(raw) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if c.IsKnown(entry) {
			add(entry)
			continue
		}
		for _, part := range SplitFreeText(entry) {
			add(part)
		}
	}

	out := append(known, other...)
	if len(out) > MaxCoreFeatures {
		out = out[:MaxCoreFeatures]
	}
	if out == nil {
		return []string{}
	}
	return out
}

// SplitFreeText splits a free-text answer on newlines and commas, trimming
// each piece and dropping empties.
func SplitFreeText(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// flatten walks the accepted answer shapes and returns the string entries in
// significance order.
func flatten(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return flattenObject(m)
	case map[string]any:
		return flattenObject(v)
	default:
		return nil
	}
}

// flattenObject orders positional slots numerically, then "selected", then
// "other". Unrecognised keys are ignored.
func flattenObject(m map[string]any) []string {
	type slot struct {
		pos int
		val any
	}
	var slots []slot
	for k, val := range m {
		if !strings.HasPrefix(k, "feature") {
			continue
		}
		pos, err := strconv.Atoi(strings.TrimPrefix(k, "feature"))
		if err != nil || pos < 1 || pos > MaxCoreFeatures {
			continue
		}
		slots = append(slots, slot{pos: pos, val: val})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].pos < slots[j].pos })

	var out []string
	for _, s := range slots {
		out = append(out, flatten(s.val)...)
	}
	out = append(out, flatten(m["selected"])...)
	out = append(out, flatten(m["other"])...)
	return out
}
