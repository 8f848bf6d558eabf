package problem

import (
	"errors"
	"fmt"
	"regexp"
)

// Errors returned when parsing matcher definitions.
var (
	// ErrMissingPattern indicates the definition has no pattern property.
	ErrMissingPattern = errors.New("problem matcher must define a pattern")

	// ErrMissingRegexp indicates a pattern has no regexp property.
	ErrMissingRegexp = errors.New("problem pattern must define a regexp")
)

// Parse builds a Matcher from a structured, untyped definition as found
// in a task configuration document. The definition shape is:
//
//	{
//	  "name":         string,            // optional
//	  "owner":        string,            // optional
//	  "severity":     string,            // optional: error|warning|info
//	  "fileLocation": string,            // optional: relative|absolute
//	  "pattern":      object | []object, // required
//	}
//
// Each pattern object carries a required "regexp" string plus optional
// capture-group indexes: file, line, column, endLine, endColumn,
// severity, code, message.
func Parse(raw map[string]any) (*Matcher, error) {
	m := &Matcher{
		FileLocation: FileLocationRelative,
	}

	if v, ok := raw["name"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("problem matcher name must be a string, got %T", v)
		}
		m.Name = s
	}
	if v, ok := raw["owner"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("problem matcher owner must be a string, got %T", v)
		}
		m.Owner = s
	}
	if v, ok := raw["severity"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("problem matcher severity must be a string, got %T", v)
		}
		m.DefaultSeverity = ParseSeverity(s)
	}
	if v, ok := raw["fileLocation"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("problem matcher fileLocation must be a string, got %T", v)
		}
		switch FileLocation(s) {
		case FileLocationRelative, FileLocationAbsolute:
			m.FileLocation = FileLocation(s)
		default:
			return nil, fmt.Errorf("unknown fileLocation %q", s)
		}
	}

	patterns, err := parsePatterns(raw["pattern"])
	if err != nil {
		return nil, err
	}
	m.Patterns = patterns

	return m, nil
}

func parsePatterns(raw any) ([]Pattern, error) {
	switch v := raw.(type) {
	case nil:
		return nil, ErrMissingPattern
	case map[string]any:
		p, err := parsePattern(v)
		if err != nil {
			return nil, err
		}
		return []Pattern{p}, nil
	case []any:
		if len(v) == 0 {
			return nil, ErrMissingPattern
		}
		patterns := make([]Pattern, 0, len(v))
		for i, entry := range v {
			obj, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("pattern %d must be an object, got %T", i, entry)
			}
			p, err := parsePattern(obj)
			if err != nil {
				return nil, fmt.Errorf("pattern %d: %w", i, err)
			}
			patterns = append(patterns, p)
		}
		return patterns, nil
	default:
		return nil, fmt.Errorf("pattern must be an object or an array, got %T", raw)
	}
}

func parsePattern(raw map[string]any) (Pattern, error) {
	var p Pattern

	expr, ok := raw["regexp"].(string)
	if !ok {
		return p, ErrMissingRegexp
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return p, fmt.Errorf("invalid regexp %q: %w", expr, err)
	}
	p.Regexp = re

	p.File = intProperty(raw, "file")
	p.Line = intProperty(raw, "line")
	p.Column = intProperty(raw, "column")
	p.EndLine = intProperty(raw, "endLine")
	p.EndColumn = intProperty(raw, "endColumn")
	p.Severity = intProperty(raw, "severity")
	p.Code = intProperty(raw, "code")
	p.Message = intProperty(raw, "message")

	return p, nil
}

// intProperty reads a capture-group index. JSON decodes numbers as
// float64 while TOML and YAML decode them as int64 or int.
func intProperty(raw map[string]any, key string) int {
	switch v := raw[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
