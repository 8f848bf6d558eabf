package problem

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
)

// Registry holds named problem matchers. Task configurations reference
// registered matchers as "$name".
type Registry struct {
	mu       sync.RWMutex
	matchers map[string]*Matcher
}

// NewRegistry creates an empty matcher registry.
func NewRegistry() *Registry {
	return &Registry{
		matchers: make(map[string]*Matcher),
	}
}

// Register adds a matcher under its name. A matcher without a name
// cannot be registered.
func (r *Registry) Register(m *Matcher) error {
	if m.Name == "" {
		return fmt.Errorf("cannot register a problem matcher without a name")
	}

	r.mu.Lock()
	r.matchers[m.Name] = m
	r.mu.Unlock()

	return nil
}

// Get returns the matcher registered under name.
func (r *Registry) Get(name string) (*Matcher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matchers[name]
	return m, ok
}

// Names returns all registered matcher names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.matchers))
	for name := range r.matchers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	builtinOnce sync.Once
	builtins    *Registry
)

// Builtins returns the shared registry of built-in matchers. Callers
// must treat the returned matchers as read-only; Clone before modifying.
func Builtins() *Registry {
	builtinOnce.Do(func() {
		builtins = NewRegistry()
		registerBuiltins(builtins)
	})
	return builtins
}

func registerBuiltins(r *Registry) {
	// GCC/Clang style: file:line:column: severity: message
	mustRegister(r, &Matcher{
		Name:  "gcc",
		Owner: "gcc",
		Patterns: []Pattern{
			{
				Regexp:   regexp.MustCompile(`^(.+):(\d+):(\d+):\s*(error|warning|note):\s*(.+)$`),
				File:     1,
				Line:     2,
				Column:   3,
				Severity: 4,
				Message:  5,
			},
			{
				Regexp:   regexp.MustCompile(`^(.+):(\d+):\s*(error|warning|note):\s*(.+)$`),
				File:     1,
				Line:     2,
				Severity: 3,
				Message:  4,
			},
		},
		DefaultSeverity: SeverityError,
		FileLocation:    FileLocationRelative,
	})

	// Go compiler: file:line:column: message
	mustRegister(r, &Matcher{
		Name:  "go",
		Owner: "go",
		Patterns: []Pattern{
			{
				Regexp:  regexp.MustCompile(`^(.+):(\d+):(\d+):\s*(.+)$`),
				File:    1,
				Line:    2,
				Column:  3,
				Message: 4,
			},
			{
				Regexp:  regexp.MustCompile(`^(.+):(\d+):\s*(.+)$`),
				File:    1,
				Line:    2,
				Message: 3,
			},
		},
		DefaultSeverity: SeverityError,
		FileLocation:    FileLocationRelative,
	})

	// Go test failures: file:line: message indented under --- FAIL
	mustRegister(r, &Matcher{
		Name:  "go-test",
		Owner: "go-test",
		Patterns: []Pattern{
			{
				Regexp:  regexp.MustCompile(`^\s*(.+):(\d+):\s*(.+)$`),
				File:    1,
				Line:    2,
				Message: 3,
			},
		},
		DefaultSeverity: SeverityError,
		FileLocation:    FileLocationRelative,
	})

	// TypeScript: file(line,col): severity code: message
	mustRegister(r, &Matcher{
		Name:  "tsc",
		Owner: "typescript",
		Patterns: []Pattern{
			{
				Regexp:   regexp.MustCompile(`^(.+)\((\d+),(\d+)\):\s*(error|warning)\s+(\w+):\s*(.+)$`),
				File:     1,
				Line:     2,
				Column:   3,
				Severity: 4,
				Code:     5,
				Message:  6,
			},
		},
		DefaultSeverity: SeverityError,
		FileLocation:    FileLocationRelative,
	})

	// ESLint compact format: file: line N, col N, Severity - message
	mustRegister(r, &Matcher{
		Name:  "eslint-compact",
		Owner: "eslint",
		Patterns: []Pattern{
			{
				Regexp:   regexp.MustCompile(`^(.+):\s*line\s+(\d+),\s*col\s+(\d+),\s*(Error|Warning)\s*-\s*(.+)$`),
				File:     1,
				Line:     2,
				Column:   3,
				Severity: 4,
				Message:  5,
			},
		},
		DefaultSeverity: SeverityError,
		FileLocation:    FileLocationRelative,
	})

	// ESLint stylish format: indented line:col severity message rule-id
	mustRegister(r, &Matcher{
		Name:  "eslint-stylish",
		Owner: "eslint",
		Patterns: []Pattern{
			{
				Regexp:   regexp.MustCompile(`^\s+(\d+):(\d+)\s+(error|warning)\s+(.+?)\s+(\S+)$`),
				Line:     1,
				Column:   2,
				Severity: 3,
				Message:  4,
				Code:     5,
			},
		},
		DefaultSeverity: SeverityError,
		FileLocation:    FileLocationRelative,
	})

	// Pylint: file:line:column: code: message
	mustRegister(r, &Matcher{
		Name:  "pylint",
		Owner: "pylint",
		Patterns: []Pattern{
			{
				Regexp:  regexp.MustCompile(`^(.+):(\d+):(\d+):\s*([A-Z]\d+):\s*(.+)$`),
				File:    1,
				Line:    2,
				Column:  3,
				Code:    4,
				Message: 5,
			},
		},
		DefaultSeverity: SeverityWarning,
		FileLocation:    FileLocationRelative,
	})

	// Rust/cargo location lines:   --> file:line:col
	mustRegister(r, &Matcher{
		Name:  "rustc",
		Owner: "rustc",
		Patterns: []Pattern{
			{
				Regexp: regexp.MustCompile(`^\s*-->\s*(.+):(\d+):(\d+)$`),
				File:   1,
				Line:   2,
				Column: 3,
			},
		},
		DefaultSeverity: SeverityError,
		FileLocation:    FileLocationRelative,
	})

	// Generic: file:line: message
	mustRegister(r, &Matcher{
		Name:  "generic",
		Owner: "generic",
		Patterns: []Pattern{
			{
				Regexp:  regexp.MustCompile(`^(.+):(\d+):\s*(.+)$`),
				File:    1,
				Line:    2,
				Message: 3,
			},
		},
		DefaultSeverity: SeverityError,
		FileLocation:    FileLocationRelative,
	})
}

func mustRegister(r *Registry, m *Matcher) {
	if err := r.Register(m); err != nil {
		panic(err)
	}
}
