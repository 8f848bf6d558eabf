package taskcfg

import "testing"

func TestResolveShellValue(t *testing.T) {
	t.Run("boolean flag", func(t *testing.T) {
		ctx, _ := newTestContext(PlatformLinux, EngineProcess)
		v := resolveShellValue(true, ctx)
		if !v.IsSet() || !v.IsShellCommand() {
			t.Errorf("IsSet() = %v, IsShellCommand() = %v", v.IsSet(), v.IsShellCommand())
		}
		if !ctx.status.IsOK() {
			t.Errorf("status = %v, want ok", ctx.status.State())
		}
	})

	t.Run("object under the terminal engine", func(t *testing.T) {
		ctx, _ := newTestContext(PlatformLinux, EngineTerminal)
		v := resolveShellValue(map[string]any{
			"executable": "/bin/zsh",
			"args":       []any{"-c"},
		}, ctx)
		if !v.IsShellCommand() {
			t.Errorf("IsShellCommand() = false for an object value")
		}
		if v.Config().Executable() != "/bin/zsh" {
			t.Errorf("Executable() = %q, want %q", v.Config().Executable(), "/bin/zsh")
		}
		if !ctx.status.IsOK() {
			t.Errorf("status = %v, want ok", ctx.status.State())
		}
	})

	t.Run("object under the process engine warns", func(t *testing.T) {
		ctx, logs := newTestContext(PlatformLinux, EngineProcess)
		v := resolveShellValue(map[string]any{"executable": "/bin/sh"}, ctx)
		if !v.IsShellCommand() {
			t.Errorf("IsShellCommand() = false; the value should still be retained")
		}
		if ctx.status.State() != SeverityWarning {
			t.Errorf("status = %v, want %v", ctx.status.State(), SeverityWarning)
		}
		if len(*logs) != 1 {
			t.Errorf("len(logs) = %d, want 1", len(*logs))
		}
	})

	t.Run("mistyped value", func(t *testing.T) {
		ctx, _ := newTestContext(PlatformLinux, EngineProcess)
		v := resolveShellValue("yes", ctx)
		if v.IsSet() {
			t.Errorf("IsSet() = true for a mistyped value")
		}
		if ctx.status.State() != SeverityError {
			t.Errorf("status = %v, want %v", ctx.status.State(), SeverityError)
		}
	})

	t.Run("non-string shell args are fatal", func(t *testing.T) {
		ctx, _ := newTestContext(PlatformLinux, EngineTerminal)
		v := resolveShellValue(map[string]any{
			"executable": "/bin/sh",
			"args":       []any{"-c", 7},
		}, ctx)
		if !ctx.status.IsFatal() {
			t.Errorf("status = %v, want fatal", ctx.status.State())
		}
		// The executable sibling still resolves.
		if v.Config().Executable() != "/bin/sh" {
			t.Errorf("Executable() = %q, want %q", v.Config().Executable(), "/bin/sh")
		}
	})
}

func TestMergeShellValue(t *testing.T) {
	flag := func(b bool) ShellValue { return ShellValue{kind: shellFlag, flag: b} }
	object := func(exe string) ShellValue {
		return ShellValue{kind: shellObject, shell: &ShellConfig{executable: strPtr(exe)}}
	}

	t.Run("unset source keeps target", func(t *testing.T) {
		got := mergeShellValue(flag(true), ShellValue{})
		if !got.IsShellCommand() {
			t.Errorf("IsShellCommand() = false")
		}
	})

	t.Run("unset target takes source", func(t *testing.T) {
		got := mergeShellValue(ShellValue{}, flag(false))
		if !got.IsSet() || got.IsShellCommand() {
			t.Errorf("IsSet() = %v, IsShellCommand() = %v", got.IsSet(), got.IsShellCommand())
		}
	})

	t.Run("unset target clones an object source", func(t *testing.T) {
		source := object("/bin/zsh")
		got := mergeShellValue(ShellValue{}, source)
		if got.Config() == source.Config() {
			t.Errorf("merge aliased the source shell config")
		}
		if got.Config().Executable() != "/bin/zsh" {
			t.Errorf("Executable() = %q", got.Config().Executable())
		}
	})

	t.Run("flag target wins over flag source", func(t *testing.T) {
		got := mergeShellValue(flag(false), flag(true))
		if got.IsShellCommand() {
			t.Errorf("IsShellCommand() = true, target flag should win")
		}
	})

	t.Run("object source replaces flag target", func(t *testing.T) {
		got := mergeShellValue(flag(true), object("/bin/bash"))
		if got.kind != shellObject || got.Config().Executable() != "/bin/bash" {
			t.Errorf("got kind %v, executable %q", got.kind, got.Config().Executable())
		}
	})

	t.Run("objects merge structurally", func(t *testing.T) {
		target := ShellValue{kind: shellObject, shell: &ShellConfig{executable: strPtr("/bin/sh")}}
		source := ShellValue{kind: shellObject, shell: &ShellConfig{
			executable: strPtr("/bin/bash"),
			args:       []string{"-l"},
		}}
		got := mergeShellValue(target, source)
		if got.Config().Executable() != "/bin/sh" {
			t.Errorf("Executable() = %q, want target's %q", got.Config().Executable(), "/bin/sh")
		}
		if len(got.Config().Args()) != 1 || got.Config().Args()[0] != "-l" {
			t.Errorf("Args() = %v, want source's [-l]", got.Config().Args())
		}
	})

	t.Run("object target wins over flag source", func(t *testing.T) {
		got := mergeShellValue(object("/bin/sh"), flag(false))
		if got.kind != shellObject {
			t.Errorf("got kind %v, want object", got.kind)
		}
	})
}
