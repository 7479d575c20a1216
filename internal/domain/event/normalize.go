package event

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

// featurePathRE captures the trailing identifier of a feature URL, e.g.
// "https://host/api/v1/features/6f1d2c3b4a5e6f7a8b9c0d1e".
var featurePathRE = regexp.MustCompile(`(?i)/features/([0-9a-f-]{20,})$`)

// Normalize extracts the ordered list of canonical events from a raw
// notification body. It is total: bodies that decode to nothing recognizable
// yield an empty list, never an error.
func Normalize(body []byte) []Canonical {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil
	}
	return FromDecoded(root)
}

// FromDecoded normalizes an already-decoded notification body.
func FromDecoded(root any) []Canonical {
	var out []Canonical
	for _, sub := range batch(root) {
		if ev, ok := fromSubEvent(sub); ok {
			out = append(out, ev)
		}
	}
	return out
}

// batch splits the body into raw sub-events. Shapes are tried in order,
// first match wins:
//  1. data is an array            -> its elements
//  2. data.events is an array     -> those elements
//  3. data is an object           -> a single sub-event
//  4. anything else               -> the whole body as one sub-event
func batch(root any) []any {
	obj, ok := root.(map[string]any)
	if !ok {
		return []any{root}
	}
	switch data := obj["data"].(type) {
	case []any:
		return data
	case map[string]any:
		if events, ok := data["events"].([]any); ok {
			return events
		}
		return []any{data}
	}
	return []any{root}
}

// fromSubEvent extracts one canonical event from a raw sub-event, if possible.
//
// The shallow cascade is gated on the event kind carrying the feature prefix.
// Sub-events without a usable kind (older notifier versions) can only be
// rescued by the deep walk, which keys on a node declaring itself a feature
// and is deliberately exempt from the kind gate.
func fromSubEvent(raw any) (Canonical, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Canonical{}, false
	}

	kind := str(obj["eventType"])
	if kind == "" {
		kind = str(obj["type"])
	}

	if strings.HasPrefix(kind, KindPrefix) {
		if id := directID(obj); id != "" {
			return Canonical{EntityID: id, Kind: kind, Raw: obj}, true
		}
	}

	if id := deepFeatureID(obj); id != "" {
		return Canonical{EntityID: id, Kind: kind, Raw: obj}, true
	}

	return Canonical{}, false
}

// directID runs the ordered shallow extraction cascade and returns the first
// non-empty identifier it finds. Only called for feature-kinded sub-events.
func directID(obj map[string]any) string {
	// 1. Direct id on the event itself.
	if id := str(obj["id"]); id != "" {
		return id
	}

	// 2. URL-shaped reference on the event or under its data container.
	if id := urlFeatureID(obj); id != "" {
		return id
	}
	if data, ok := obj["data"].(map[string]any); ok {
		if id := urlFeatureID(data); id != "" {
			return id
		}
	}

	// 3. Nested entity object declaring itself a feature.
	if id := typedEntityID(obj["entity"]); id != "" {
		return id
	}

	// 4. Top-level entityId.
	if id := str(obj["entityId"]); id != "" {
		return id
	}

	// 5. Same checks one level down: under data, and under the entity
	// container (events are sometimes double-wrapped as entity.entity).
	for _, nested := range []any{obj["data"], obj["entity"]} {
		sub, ok := nested.(map[string]any)
		if !ok {
			continue
		}
		if id := typedEntityID(sub["entity"]); id != "" {
			return id
		}
		if id := str(sub["entityId"]); id != "" {
			return id
		}
		if id := str(sub["id"]); id != "" {
			return id
		}
	}

	return ""
}

// urlFeatureID scans the object's string values, in sorted key order, for a
// URL whose path ends in a feature identifier.
func urlFeatureID(obj map[string]any) string {
	for _, k := range sortedKeys(obj) {
		s, ok := obj[k].(string)
		if !ok {
			continue
		}
		if m := featurePathRE.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	return ""
}

// typedEntityID returns the id of an entity object whose declared type is
// "feature", or "" when v is not such an object.
func typedEntityID(v any) string {
	ent, ok := v.(map[string]any)
	if !ok || str(ent["type"]) != "feature" {
		return ""
	}
	return str(ent["id"])
}

// Describe reports the top-level keys and detected kind of a notification
// body, for diagnosing unrecognized payload shapes.
func Describe(body []byte) (keys []string, kind string) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, ""
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, ""
	}
	keys = sortedKeys(obj)
	kind = str(obj["eventType"])
	if kind == "" {
		kind = str(obj["type"])
	}
	return keys, kind
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
