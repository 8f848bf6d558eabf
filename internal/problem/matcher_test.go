package problem

import (
	"testing"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input string
		want  Severity
	}{
		{"error", SeverityError},
		{"Error", SeverityError},
		{"FATAL", SeverityError},
		{"warning", SeverityWarning},
		{"warn", SeverityWarning},
		{"WARN", SeverityWarning},
		{"info", SeverityInfo},
		{"note", SeverityInfo},
		{"NOTE", SeverityInfo},
		{"unknown", SeverityError}, // default
	}

	for _, tt := range tests {
		got := ParseSeverity(tt.input)
		if got != tt.want {
			t.Errorf("ParseSeverity(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMatcher_MatchGCC(t *testing.T) {
	m, ok := Builtins().Get("gcc")
	if !ok {
		t.Fatal("gcc matcher not found")
	}

	tests := []struct {
		line    string
		wantOK  bool
		file    string
		lineNum int
		col     int
		sev     Severity
		msg     string
	}{
		{
			line:    "main.c:10:5: error: expected ';' before '}' token",
			wantOK:  true,
			file:    "main.c",
			lineNum: 10,
			col:     5,
			sev:     SeverityError,
			msg:     "expected ';' before '}' token",
		},
		{
			line:    "utils.c:20:3: warning: unused variable 'x'",
			wantOK:  true,
			file:    "utils.c",
			lineNum: 20,
			col:     3,
			sev:     SeverityWarning,
			msg:     "unused variable 'x'",
		},
		{
			line:    "header.h:5: note: declared here",
			wantOK:  true,
			file:    "header.h",
			lineNum: 5,
			sev:     SeverityInfo,
			msg:     "declared here",
		},
		{
			line:   "not a problem line",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			problem, ok := m.Match(tt.line)
			if ok != tt.wantOK {
				t.Errorf("Match() ok = %v, want %v", ok, tt.wantOK)
				return
			}
			if !ok {
				return
			}

			if problem.File != tt.file {
				t.Errorf("File = %q, want %q", problem.File, tt.file)
			}
			if problem.Line != tt.lineNum {
				t.Errorf("Line = %d, want %d", problem.Line, tt.lineNum)
			}
			if tt.col > 0 && problem.Column != tt.col {
				t.Errorf("Column = %d, want %d", problem.Column, tt.col)
			}
			if problem.Severity != tt.sev {
				t.Errorf("Severity = %q, want %q", problem.Severity, tt.sev)
			}
			if problem.Message != tt.msg {
				t.Errorf("Message = %q, want %q", problem.Message, tt.msg)
			}
		})
	}
}

func TestMatcher_MatchGo(t *testing.T) {
	m, ok := Builtins().Get("go")
	if !ok {
		t.Fatal("go matcher not found")
	}

	problem, ok := m.Match("main.go:15:10: undefined: someFunc")
	if !ok {
		t.Fatal("expected match")
	}
	if problem.File != "main.go" {
		t.Errorf("File = %q, want main.go", problem.File)
	}
	if problem.Line != 15 {
		t.Errorf("Line = %d, want 15", problem.Line)
	}
	if problem.Column != 10 {
		t.Errorf("Column = %d, want 10", problem.Column)
	}
	if problem.Message != "undefined: someFunc" {
		t.Errorf("Message = %q", problem.Message)
	}
	if problem.Source != "go" {
		t.Errorf("Source = %q, want go", problem.Source)
	}
}

func TestMatcher_MatchTSC(t *testing.T) {
	m, ok := Builtins().Get("tsc")
	if !ok {
		t.Fatal("tsc matcher not found")
	}

	line := "src/index.ts(42,15): error TS2339: Property 'foo' does not exist on type 'Bar'"
	problem, ok := m.Match(line)
	if !ok {
		t.Fatal("expected match")
	}

	if problem.File != "src/index.ts" {
		t.Errorf("File = %q, want src/index.ts", problem.File)
	}
	if problem.Line != 42 {
		t.Errorf("Line = %d, want 42", problem.Line)
	}
	if problem.Column != 15 {
		t.Errorf("Column = %d, want 15", problem.Column)
	}
	if problem.Code != "TS2339" {
		t.Errorf("Code = %q, want TS2339", problem.Code)
	}
}

func TestMatcher_Clone(t *testing.T) {
	m, ok := Builtins().Get("gcc")
	if !ok {
		t.Fatal("gcc matcher not found")
	}

	c := m.Clone()
	c.Name = ""
	c.Owner = "other"

	if m.Name != "gcc" {
		t.Errorf("clone mutated original name: %q", m.Name)
	}
	if m.Owner != "gcc" {
		t.Errorf("clone mutated original owner: %q", m.Owner)
	}
	if len(c.Patterns) != len(m.Patterns) {
		t.Errorf("clone has %d patterns, want %d", len(c.Patterns), len(m.Patterns))
	}
}
