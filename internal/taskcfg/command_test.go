package taskcfg

import (
	"reflect"
	"testing"
)

func TestMergeCommand(t *testing.T) {
	t.Run("empty source keeps target", func(t *testing.T) {
		target := &CommandConfig{name: strPtr("make")}
		if got := mergeCommand(target, nil); got != target {
			t.Errorf("mergeCommand(target, nil) did not return target")
		}
	})

	t.Run("empty target clones source", func(t *testing.T) {
		source := &CommandConfig{name: strPtr("make"), args: []string{"all"}}
		got := mergeCommand(nil, source)
		if got == source {
			t.Fatalf("merge returned the source itself")
		}
		if got.Name() != "make" || !reflect.DeepEqual(got.Args(), []string{"all"}) {
			t.Errorf("merged = %q %v", got.Name(), got.Args())
		}
		got.args[0] = "changed"
		if source.args[0] != "all" {
			t.Errorf("merge aliased the source args")
		}
	})

	t.Run("set target fields stay", func(t *testing.T) {
		target := &CommandConfig{name: strPtr("tsc"), echo: boolPtr(true)}
		source := &CommandConfig{name: strPtr("make"), echo: boolPtr(false), taskSelector: strPtr("/t:")}
		got := mergeCommand(target, source)
		if got.Name() != "tsc" {
			t.Errorf("Name() = %q, want %q", got.Name(), "tsc")
		}
		if !got.Echo() {
			t.Errorf("Echo() = false, target value should stay")
		}
		if got.TaskSelector() != "/t:" {
			t.Errorf("TaskSelector() = %q, want filled from source", got.TaskSelector())
		}
	})

	t.Run("args concatenate target then source", func(t *testing.T) {
		target := &CommandConfig{args: []string{"a", "b"}}
		source := &CommandConfig{args: []string{"c"}}
		got := mergeCommand(target, source)
		if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got.Args(), want) {
			t.Errorf("Args() = %v, want %v", got.Args(), want)
		}
	})

	t.Run("frozen target is untouched", func(t *testing.T) {
		target := &CommandConfig{name: strPtr("tsc")}
		target.freeze()
		source := &CommandConfig{args: []string{"x"}}
		got := mergeCommand(target, source)
		if got != target || got.args != nil {
			t.Errorf("merge modified a frozen target: %v", got.Args())
		}
	})
}

func TestCommandFillDefaults(t *testing.T) {
	c := &CommandConfig{name: strPtr("make")}
	c.fillDefaults()

	if !c.Shell().IsSet() || c.Shell().IsShellCommand() {
		t.Errorf("shell = set %v / shellCommand %v, want set false flag",
			c.Shell().IsSet(), c.Shell().IsShellCommand())
	}
	if c.Echo() {
		t.Errorf("Echo() = true, want default false")
	}
	if c.Args() == nil || len(c.Args()) != 0 {
		t.Errorf("Args() = %v, want empty", c.Args())
	}
	if c.Options().Cwd() != DefaultCwd {
		t.Errorf("Options().Cwd() = %q, want %q", c.Options().Cwd(), DefaultCwd)
	}

	before := *c
	c.fillDefaults()
	if !reflect.DeepEqual(before.args, c.args) || before.shell != c.shell {
		t.Errorf("fillDefaults is not idempotent")
	}
}

func TestCommandFillDefaultsWithoutName(t *testing.T) {
	c := &CommandConfig{}
	c.fillDefaults()
	if c.Shell().IsSet() {
		t.Errorf("shell defaulted without a command name")
	}
}

func TestCommandClone(t *testing.T) {
	c := &CommandConfig{
		name:         strPtr("gulp"),
		shell:        ShellValue{kind: shellObject, shell: &ShellConfig{executable: strPtr("/bin/sh")}},
		args:         []string{"watch"},
		options:      &Options{env: map[string]string{"A": "1"}},
		echo:         boolPtr(true),
		taskSelector: strPtr("--task="),
	}
	c.freeze()

	got := c.clone()
	if got.frozen {
		t.Errorf("clone is frozen")
	}
	got.args[0] = "changed"
	got.options.env["A"] = "changed"
	got.shell.shell.args = append(got.shell.shell.args, "-x")
	if c.args[0] != "watch" || c.options.env["A"] != "1" || len(c.shell.shell.args) != 0 {
		t.Errorf("clone aliased the original")
	}
	if got.Name() != "gulp" || got.TaskSelector() != "--task=" || !got.Echo() {
		t.Errorf("clone lost fields: %q %q %v", got.Name(), got.TaskSelector(), got.Echo())
	}
}

func TestResolveCommandPlatformOverlay(t *testing.T) {
	raw := map[string]any{
		"command": "make",
		"args":    []any{"all"},
		"options": map[string]any{"env": map[string]any{"A": "base", "B": "2"}},
		"windows": map[string]any{
			"command": "nmake",
			"options": map[string]any{"env": map[string]any{"A": "win"}},
		},
	}

	t.Run("windows", func(t *testing.T) {
		ctx, _ := newTestContext(PlatformWindows, EngineProcess)
		c := resolveCommand(raw, ctx)
		if c.Name() != "nmake" {
			t.Errorf("Name() = %q, want platform override %q", c.Name(), "nmake")
		}
		if want := []string{"all"}; !reflect.DeepEqual(c.Args(), want) {
			t.Errorf("Args() = %v, want inherited %v", c.Args(), want)
		}
		if c.Options().Env()["A"] != "win" || c.Options().Env()["B"] != "2" {
			t.Errorf("Env() = %v, want A=win B=2", c.Options().Env())
		}
	})

	t.Run("linux falls through to the base", func(t *testing.T) {
		ctx, _ := newTestContext(PlatformLinux, EngineProcess)
		c := resolveCommand(raw, ctx)
		if c.Name() != "make" {
			t.Errorf("Name() = %q, want %q", c.Name(), "make")
		}
		if c.Options().Env()["A"] != "base" {
			t.Errorf("Env()[A] = %q, want %q", c.Options().Env()["A"], "base")
		}
	})
}

func TestCommandFromBaseDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want Severity
	}{
		{"mistyped command", map[string]any{"command": 1}, SeverityError},
		{"mistyped echoCommand", map[string]any{"echoCommand": "yes"}, SeverityError},
		{"mistyped taskSelector", map[string]any{"taskSelector": 9}, SeverityError},
		{"mistyped options", map[string]any{"options": "none"}, SeverityError},
		{"non-array args", map[string]any{"args": "all"}, SeverityFatal},
		{"non-string args element", map[string]any{"args": []any{"a", 1}}, SeverityFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newTestContext(PlatformLinux, EngineProcess)
			if c := commandFromBase(tt.raw, ctx); c == nil {
				t.Fatalf("commandFromBase() = nil, a present field should yield a config")
			}
			if ctx.status.State() != tt.want {
				t.Errorf("status = %v, want %v", ctx.status.State(), tt.want)
			}
		})
	}

	t.Run("no command fields present", func(t *testing.T) {
		ctx, _ := newTestContext(PlatformLinux, EngineProcess)
		if c := commandFromBase(map[string]any{"taskName": "x"}, ctx); c != nil {
			t.Errorf("commandFromBase() = %v, want nil", c)
		}
	})
}
