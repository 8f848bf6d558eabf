package taskcfg

import (
	"strings"

	"taskwright/internal/problem"
)

// sharedEmptyMatchers is the slice handed out whenever a task has no
// problem matchers. Shared across all tasks; never appended to in place.
var sharedEmptyMatchers = make([]*problem.Matcher, 0)

// matcherKind classifies the polymorphic problemMatcher property.
type matcherKind uint8

const (
	matcherKindUnknown matcherKind = iota
	matcherKindString
	matcherKindSingle
	matcherKindArray
)

func classifyMatcherSpec(raw any) matcherKind {
	switch raw.(type) {
	case string:
		return matcherKindString
	case map[string]any:
		return matcherKindSingle
	case []any:
		return matcherKindArray
	default:
		return matcherKindUnknown
	}
}

// resolveNamedMatchers builds the lookup table of matchers declared by
// the document. A declaration the parser rejects, or one without a
// name, is dropped with an error; the last declaration of a given name
// wins.
func resolveNamedMatchers(raw any, ctx *parseContext) map[string]*problem.Matcher {
	named := make(map[string]*problem.Matcher)
	if raw == nil {
		return named
	}

	list, ok := raw.([]any)
	if !ok {
		ctx.errorf("property declares must be an array of problem matcher definitions")
		return named
	}

	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			ctx.errorf("a problem matcher declaration must be an object")
			continue
		}
		m, err := problem.Parse(obj)
		if err != nil {
			ctx.errorf("invalid problem matcher declaration: %v", err)
			continue
		}
		if m.Name == "" {
			ctx.errorf("a declared problem matcher must have a name")
			continue
		}
		named[m.Name] = m
	}

	return named
}

// resolveMatcherRefs resolves a polymorphic problemMatcher value into
// the matchers it denotes: a $name reference, a single inline
// definition, or an array of either. A bad entry contributes nothing
// but does not block its siblings. An absent value resolves to nil
// without a diagnostic.
func resolveMatcherRefs(raw any, ctx *parseContext) []*problem.Matcher {
	if raw == nil {
		return nil
	}

	switch classifyMatcherSpec(raw) {
	case matcherKindString:
		if m := resolveMatcherRef(raw.(string), ctx); m != nil {
			return []*problem.Matcher{m}
		}
		return sharedEmptyMatchers
	case matcherKindSingle:
		if m := parseInlineMatcher(raw.(map[string]any), ctx); m != nil {
			return []*problem.Matcher{m}
		}
		return sharedEmptyMatchers
	case matcherKindArray:
		list := raw.([]any)
		matchers := make([]*problem.Matcher, 0, len(list))
		for _, entry := range list {
			switch classifyMatcherSpec(entry) {
			case matcherKindString:
				if m := resolveMatcherRef(entry.(string), ctx); m != nil {
					matchers = append(matchers, m)
				}
			case matcherKindSingle:
				if m := parseInlineMatcher(entry.(map[string]any), ctx); m != nil {
					matchers = append(matchers, m)
				}
			default:
				ctx.warnf("a problem matcher entry must be a string or an object")
			}
		}
		return matchers
	default:
		ctx.warnf("property problemMatcher must be a string, an object, or an array of those")
		return sharedEmptyMatchers
	}
}

// resolveMatcherRef looks up a $name reference: first among the
// built-in matchers, then among the matchers this document declares.
// A locally declared matcher is cloned with its name stripped; once
// attached to a task it is no longer globally nameable.
func resolveMatcherRef(ref string, ctx *parseContext) *problem.Matcher {
	if !strings.HasPrefix(ref, "$") {
		ctx.errorf("problem matcher reference %q must start with '$'", ref)
		return nil
	}
	name := ref[1:]

	if m, ok := ctx.registry.Get(name); ok {
		return m.Clone()
	}
	if m, ok := ctx.named[name]; ok {
		c := m.Clone()
		c.Name = ""
		return c
	}

	ctx.errorf("problem matcher %q is unknown", ref)
	return nil
}

// parseInlineMatcher parses a structured matcher definition attached
// directly to a task.
func parseInlineMatcher(raw map[string]any, ctx *parseContext) *problem.Matcher {
	m, err := problem.Parse(raw)
	if err != nil {
		ctx.errorf("invalid problem matcher: %v", err)
		return nil
	}
	return m
}
