package taskcfg

// sharedEmptyArgs is the slice handed out whenever an argument list
// defaults to empty. It is shared across all tasks and must never be
// appended to in place.
var sharedEmptyArgs = make([]string, 0)

// CommandConfig is the resolved, per-layer view of how to run a
// command: the executable or shell command line, its arguments, the
// shell request, execution options, and echo behavior.
type CommandConfig struct {
	name         *string
	shell        ShellValue
	args         []string
	options      *Options
	echo         *bool
	taskSelector *string
	frozen       bool
}

// Name returns the command name, or the empty string if unset.
func (c *CommandConfig) Name() string {
	if c == nil || c.name == nil {
		return ""
	}
	return *c.name
}

// HasName reports whether a command name was set.
func (c *CommandConfig) HasName() bool {
	return c != nil && c.name != nil
}

// Shell returns the resolved isShellCommand value.
func (c *CommandConfig) Shell() ShellValue {
	if c == nil {
		return ShellValue{}
	}
	return c.shell
}

// Args returns the command arguments. Callers must not modify the slice.
func (c *CommandConfig) Args() []string {
	if c == nil {
		return nil
	}
	return c.args
}

// Options returns the execution options, nil if none were resolved.
func (c *CommandConfig) Options() *Options {
	if c == nil {
		return nil
	}
	return c.options
}

// Echo reports whether the command line is echoed before execution.
func (c *CommandConfig) Echo() bool {
	if c == nil || c.echo == nil {
		return false
	}
	return *c.echo
}

// TaskSelector returns the selector prefix put before the task name
// when it is passed as an argument, or the empty string if unset.
func (c *CommandConfig) TaskSelector() string {
	if c == nil || c.taskSelector == nil {
		return ""
	}
	return *c.taskSelector
}

// IsEmpty reports whether no command-defining field is set: no name,
// no shell request, no args, empty options, and no echo.
func (c *CommandConfig) IsEmpty() bool {
	return c == nil ||
		(c.name == nil && !c.shell.IsSet() && c.args == nil && c.options.IsEmpty() && c.echo == nil)
}

// onlyEcho reports the degenerate shape produced by a lone echoCommand
// property: echo is the only field set.
func (c *CommandConfig) onlyEcho() bool {
	return c != nil && c.echo != nil &&
		c.name == nil && !c.shell.IsSet() && c.args == nil && c.options.IsEmpty()
}

// resolveCommand resolves the command-defining fields of a raw shape,
// then overlays the sub-shape for the running platform, if any. The
// platform layer wins on conflicts.
func resolveCommand(raw map[string]any, ctx *parseContext) *CommandConfig {
	result := commandFromBase(raw, ctx)

	sub, state := objectField(raw, ctx.platform.String())
	if state != fieldSet {
		return result
	}
	osCommand := commandFromBase(sub, ctx)
	if osCommand == nil {
		return result
	}
	return mergeCommand(osCommand, result)
}

// commandFromBase validates and copies the command-defining fields of
// one raw layer. It returns nil when none of them are present.
func commandFromBase(raw map[string]any, ctx *parseContext) *CommandConfig {
	c := &CommandConfig{}
	present := false

	switch name, state := stringField(raw, "command"); state {
	case fieldSet:
		c.name = &name
		present = true
	case fieldInvalid:
		present = true
		ctx.errorf("property command must be of type string")
	}

	if v, ok := raw["isShellCommand"]; ok {
		present = true
		c.shell = resolveShellValue(v, ctx)
	}

	switch args, state := stringListField(raw, "args"); state {
	case fieldSet:
		c.args = args
		present = true
	case fieldInvalid:
		present = true
		ctx.fatalf("property args must be an array of strings")
	}

	switch options, state := objectField(raw, "options"); state {
	case fieldSet:
		c.options = resolveOptions(options, ctx)
		present = true
	case fieldInvalid:
		present = true
		ctx.errorf("property options must be an object")
	}

	switch echo, state := boolField(raw, "echoCommand"); state {
	case fieldSet:
		c.echo = &echo
		present = true
	case fieldInvalid:
		present = true
		ctx.errorf("property echoCommand must be of type boolean")
	}

	switch selector, state := stringField(raw, "taskSelector"); state {
	case fieldSet:
		c.taskSelector = &selector
		present = true
	case fieldInvalid:
		present = true
		ctx.errorf("property taskSelector must be of type string")
	}

	if !present {
		return nil
	}
	return c
}

// mergeCommand combines two command configurations. Fields set on
// target stay, source fills the gaps, except args which concatenate
// target-then-source when both are present. The source is never
// modified; a frozen target is returned untouched.
func mergeCommand(target, source *CommandConfig) *CommandConfig {
	if source.IsEmpty() {
		return target
	}
	if target.IsEmpty() {
		return source.clone()
	}
	if target.frozen {
		return target
	}

	if target.name == nil {
		target.name = source.name
	}
	target.shell = mergeShellValue(target.shell, source.shell)
	if target.args == nil {
		if source.args != nil {
			args := make([]string, len(source.args))
			copy(args, source.args)
			target.args = args
		}
	} else if source.args != nil {
		merged := make([]string, 0, len(target.args)+len(source.args))
		merged = append(merged, target.args...)
		merged = append(merged, source.args...)
		target.args = merged
	}
	target.options = mergeOptions(target.options, source.options)
	if target.echo == nil {
		target.echo = source.echo
	}
	if target.taskSelector == nil {
		target.taskSelector = source.taskSelector
	}

	return target
}

// fillDefaults fills the remaining unset fields. Idempotent; a frozen
// value is returned untouched.
func (c *CommandConfig) fillDefaults() {
	if c == nil || c.frozen {
		return
	}

	if c.name != nil && !c.shell.IsSet() {
		c.shell = ShellValue{kind: shellFlag, flag: false}
	}
	if c.echo == nil {
		echo := false
		c.echo = &echo
	}
	if c.args == nil {
		c.args = sharedEmptyArgs
	}
	if c.options == nil {
		c.options = &Options{}
	}
	c.options.fillDefaults()
}

// freeze marks the configuration and its nested members immutable.
func (c *CommandConfig) freeze() {
	if c == nil {
		return
	}
	c.frozen = true
	c.options.freeze()
	c.shell.shell.freeze()
}

// clone returns an unfrozen deep copy.
func (c *CommandConfig) clone() *CommandConfig {
	if c == nil {
		return nil
	}
	out := &CommandConfig{}
	if c.name != nil {
		name := *c.name
		out.name = &name
	}
	out.shell = c.shell
	out.shell.shell = c.shell.shell.clone()
	if c.args != nil {
		out.args = make([]string, len(c.args))
		copy(out.args, c.args)
	}
	out.options = c.options.clone()
	if c.echo != nil {
		echo := *c.echo
		out.echo = &echo
	}
	if c.taskSelector != nil {
		selector := *c.taskSelector
		out.taskSelector = &selector
	}
	return out
}
