package taskcfg

// Accessors for the untyped document shape. Every field in a task
// configuration is optional and may be mistyped; accessors distinguish
// an absent field from a present-but-invalid one so resolvers can
// report the right diagnostic and keep going.

// fieldState reports the outcome of reading an optional field.
type fieldState uint8

const (
	// fieldAbsent means the key is not present.
	fieldAbsent fieldState = iota
	// fieldInvalid means the key is present with the wrong type.
	fieldInvalid
	// fieldSet means the key is present with a valid value.
	fieldSet
)

func stringField(obj map[string]any, key string) (string, fieldState) {
	v, ok := obj[key]
	if !ok {
		return "", fieldAbsent
	}
	s, ok := v.(string)
	if !ok {
		return "", fieldInvalid
	}
	return s, fieldSet
}

func boolField(obj map[string]any, key string) (bool, fieldState) {
	v, ok := obj[key]
	if !ok {
		return false, fieldAbsent
	}
	b, ok := v.(bool)
	if !ok {
		return false, fieldInvalid
	}
	return b, fieldSet
}

func objectField(obj map[string]any, key string) (map[string]any, fieldState) {
	v, ok := obj[key]
	if !ok {
		return nil, fieldAbsent
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fieldInvalid
	}
	return m, fieldSet
}

func listField(obj map[string]any, key string) ([]any, fieldState) {
	v, ok := obj[key]
	if !ok {
		return nil, fieldAbsent
	}
	l, ok := v.([]any)
	if !ok {
		return nil, fieldInvalid
	}
	return l, fieldSet
}

// stringListField reads an array-of-strings field. A non-array value or
// an array with a non-string element is fieldInvalid; callers escalate
// that to fatal severity per the validation policy for array fields.
func stringListField(obj map[string]any, key string) ([]string, fieldState) {
	v, ok := obj[key]
	if !ok {
		return nil, fieldAbsent
	}
	switch l := v.(type) {
	case []string:
		out := make([]string, len(l))
		copy(out, l)
		return out, fieldSet
	case []any:
		out := make([]string, 0, len(l))
		for _, entry := range l {
			s, ok := entry.(string)
			if !ok {
				return nil, fieldInvalid
			}
			out = append(out, s)
		}
		return out, fieldSet
	default:
		return nil, fieldInvalid
	}
}

// stringMapField reads a string-to-string mapping field.
func stringMapField(obj map[string]any, key string) (map[string]string, fieldState) {
	v, ok := obj[key]
	if !ok {
		return nil, fieldAbsent
	}
	switch m := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, fieldSet
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, entry := range m {
			s, ok := entry.(string)
			if !ok {
				return nil, fieldInvalid
			}
			out[k] = s
		}
		return out, fieldSet
	default:
		return nil, fieldInvalid
	}
}

// cloneMap creates a deep copy of a nested document map.
func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, val := range src {
		switch v := val.(type) {
		case map[string]any:
			dst[key] = cloneMap(v)
		case []any:
			dst[key] = cloneSlice(v)
		default:
			dst[key] = val
		}
	}

	return dst
}

// cloneSlice creates a deep copy of a document slice.
func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, val := range src {
		switch v := val.(type) {
		case map[string]any:
			dst[i] = cloneMap(v)
		case []any:
			dst[i] = cloneSlice(v)
		default:
			dst[i] = val
		}
	}

	return dst
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
