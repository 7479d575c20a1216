package event

// deepFeatureID walks a decoded value depth-first and returns the identifier
// of the first node that declares itself a feature (a "type" or "entityType"
// of "feature" alongside a string "id" or "entityId").
//
// JSON objects carry no ordering, so "first" is pinned by visiting map keys
// in sorted order and array elements in index order. When several nodes in
// one payload would satisfy the check, which one wins is a property of this
// traversal order, not of the payload.
func deepFeatureID(v any) string {
	switch node := v.(type) {
	case map[string]any:
		if str(node["type"]) == "feature" || str(node["entityType"]) == "feature" {
			if id := str(node["id"]); id != "" {
				return id
			}
			if id := str(node["entityId"]); id != "" {
				return id
			}
		}
		for _, k := range sortedKeys(node) {
			if id := deepFeatureID(node[k]); id != "" {
				return id
			}
		}
	case []any:
		for _, el := range node {
			if id := deepFeatureID(el); id != "" {
				return id
			}
		}
	}
	return ""
}
