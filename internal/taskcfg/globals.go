package taskcfg

// Globals holds the document-level defaults applied to every task that
// does not set its own values, plus the document-level command
// configuration. A Globals is frozen once resolved; callers only read.
type Globals struct {
	command          *CommandConfig
	promptOnClose    *bool
	suppressTaskName *bool
	showOutput       *ShowOutput
	frozen           bool
}

// Command returns the document-level command configuration, nil if the
// document defines none.
func (g *Globals) Command() *CommandConfig {
	return g.command
}

// PromptOnClose reports the document-level promptOnClose default.
func (g *Globals) PromptOnClose() bool {
	return g.promptOnClose != nil && *g.promptOnClose
}

// SuppressTaskName reports the document-level suppressTaskName default.
func (g *Globals) SuppressTaskName() bool {
	return g.suppressTaskName != nil && *g.suppressTaskName
}

// ShowOutput returns the document-level showOutput default.
func (g *Globals) ShowOutput() ShowOutput {
	if g.showOutput == nil {
		return ShowOutputAlways
	}
	return *g.showOutput
}

// resolveGlobals resolves the document-level defaults: the base shape,
// overlaid by the sub-shape for the running platform (the platform
// layer wins on conflicts), with defaults filled and the result frozen.
func resolveGlobals(doc map[string]any, ctx *parseContext) *Globals {
	g := globalsFromBase(doc, ctx)

	if sub, state := objectField(doc, ctx.platform.String()); state == fieldSet {
		g = fillGlobals(globalsFromBase(sub, ctx), g)
	}

	if g.suppressTaskName == nil {
		g.suppressTaskName = boolPtr(false)
	}
	if g.showOutput == nil {
		v := ShowOutputAlways
		g.showOutput = &v
	}
	if g.promptOnClose == nil {
		g.promptOnClose = boolPtr(true)
	}

	g.command = resolveCommand(doc, ctx)
	if g.command != nil {
		g.command.freeze()
	}

	g.frozen = true
	return g
}

// globalsFromBase validates and copies the scalar defaults of one raw
// layer.
func globalsFromBase(raw map[string]any, ctx *parseContext) *Globals {
	g := &Globals{}

	g.showOutput = showOutputField(raw, ctx)

	switch suppress, state := boolField(raw, "suppressTaskName"); state {
	case fieldSet:
		g.suppressTaskName = &suppress
	case fieldInvalid:
		ctx.errorf("property suppressTaskName must be of type boolean")
	}

	switch prompt, state := boolField(raw, "promptOnClose"); state {
	case fieldSet:
		g.promptOnClose = &prompt
	case fieldInvalid:
		ctx.errorf("property promptOnClose must be of type boolean")
	}

	return g
}

// fillGlobals keeps the fields set on target and fills the gaps from
// source.
func fillGlobals(target, source *Globals) *Globals {
	if target.showOutput == nil {
		target.showOutput = source.showOutput
	}
	if target.suppressTaskName == nil {
		target.suppressTaskName = source.suppressTaskName
	}
	if target.promptOnClose == nil {
		target.promptOnClose = source.promptOnClose
	}
	return target
}
