package taskcfg

// ShellConfig selects a specific shell executable and its arguments for
// running a shell command.
type ShellConfig struct {
	executable *string
	args       []string
	frozen     bool
}

// Executable returns the shell executable, or the empty string if unset.
func (s *ShellConfig) Executable() string {
	if s == nil || s.executable == nil {
		return ""
	}
	return *s.executable
}

// Args returns the shell arguments. Callers must not modify the slice.
func (s *ShellConfig) Args() []string {
	if s == nil {
		return nil
	}
	return s.args
}

// IsEmpty reports whether both fields are unset or empty.
func (s *ShellConfig) IsEmpty() bool {
	return s == nil || ((s.executable == nil || *s.executable == "") && len(s.args) == 0)
}

// resolveShellConfig validates and copies the recognized fields of a
// raw shell object.
func resolveShellConfig(raw map[string]any, ctx *parseContext) *ShellConfig {
	if raw == nil {
		return nil
	}

	s := &ShellConfig{}

	switch executable, state := stringField(raw, "executable"); state {
	case fieldSet:
		s.executable = &executable
	case fieldInvalid:
		ctx.errorf("shell executable must be of type string")
	}

	switch args, state := stringListField(raw, "args"); state {
	case fieldSet:
		s.args = args
	case fieldInvalid:
		// Wrong element types in an array are a harder problem than a
		// mistyped scalar; the rest of the object still resolves.
		ctx.fatalf("shell args must be an array of strings")
	}

	return s
}

// mergeShellConfig combines two shell configurations; fields set on
// target stay, source fills the gaps.
func mergeShellConfig(target, source *ShellConfig) *ShellConfig {
	if source.IsEmpty() {
		return target
	}
	if target.IsEmpty() {
		return source.clone()
	}

	if target.executable == nil {
		target.executable = source.executable
	}
	if target.args == nil {
		target.args = source.args
	}
	return target
}

// freeze marks the shell configuration immutable.
func (s *ShellConfig) freeze() {
	if s == nil {
		return
	}
	s.frozen = true
}

// clone returns an unfrozen deep copy.
func (s *ShellConfig) clone() *ShellConfig {
	if s == nil {
		return nil
	}
	c := &ShellConfig{}
	if s.executable != nil {
		executable := *s.executable
		c.executable = &executable
	}
	if s.args != nil {
		c.args = make([]string, len(s.args))
		copy(c.args, s.args)
	}
	return c
}

// shellValueKind tags the polymorphic isShellCommand property.
type shellValueKind uint8

const (
	shellUnset shellValueKind = iota
	shellFlag
	shellObject
)

// ShellValue is the resolved form of the isShellCommand property, which
// is either a boolean or a shell configuration object. The shape is
// classified once at parse time; merge logic pattern-matches on the
// variant instead of re-inspecting types.
type ShellValue struct {
	kind  shellValueKind
	flag  bool
	shell *ShellConfig
}

// IsSet reports whether the property was given in any form.
func (v ShellValue) IsSet() bool {
	return v.kind != shellUnset
}

// IsShellCommand reports whether the command should run through a shell.
func (v ShellValue) IsShellCommand() bool {
	switch v.kind {
	case shellFlag:
		return v.flag
	case shellObject:
		return true
	default:
		return false
	}
}

// Config returns the shell configuration, or nil for the boolean form.
func (v ShellValue) Config() *ShellConfig {
	return v.shell
}

// resolveShellValue classifies and resolves a raw isShellCommand value.
// A shell configuration object is only honored by the terminal engine;
// elsewhere it draws a warning but the value is still retained.
func resolveShellValue(raw any, ctx *parseContext) ShellValue {
	switch v := raw.(type) {
	case nil:
		return ShellValue{}
	case bool:
		return ShellValue{kind: shellFlag, flag: v}
	case map[string]any:
		if ctx.engine != EngineTerminal {
			ctx.warnf("a shell configuration is only supported when executing tasks in the terminal")
		}
		return ShellValue{kind: shellObject, shell: resolveShellConfig(v, ctx)}
	default:
		ctx.errorf("property isShellCommand must be a boolean or a shell configuration object")
		return ShellValue{}
	}
}

// mergeShellValue combines two shell values: a set target wins over a
// boolean source, two objects merge structurally, and an object source
// replaces a boolean target entirely.
func mergeShellValue(target, source ShellValue) ShellValue {
	switch {
	case !source.IsSet():
		return target
	case !target.IsSet():
		if source.kind == shellObject {
			return ShellValue{kind: shellObject, shell: source.shell.clone()}
		}
		return source
	case target.kind == shellObject && source.kind == shellObject:
		target.shell = mergeShellConfig(target.shell, source.shell)
		return target
	case target.kind == shellFlag && source.kind == shellObject:
		return ShellValue{kind: shellObject, shell: source.shell.clone()}
	default:
		// flag+flag or object+flag: target wins.
		return target
	}
}
