package convert

// Flatten collapses nested property maps into a single level with dotted
// keys: {"a": {"b": 1}} becomes {"a.b": 1}. Arrays and empty maps are kept
// as values.
func Flatten(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	flattenInto(out, "", props)
	return out
}

func flattenInto(out map[string]any, prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok && len(nested) > 0 {
			flattenInto(out, key, nested)
			continue
		}
		out[key] = v
	}
}
