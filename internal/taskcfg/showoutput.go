package taskcfg

// ShowOutput controls when task output is revealed to the user.
type ShowOutput uint8

const (
	// ShowOutputAlways reveals the output whenever the task runs.
	ShowOutputAlways ShowOutput = iota
	// ShowOutputSilent reveals the output only when a problem is found.
	ShowOutputSilent
	// ShowOutputNever keeps the output hidden.
	ShowOutputNever
)

// String returns the configuration spelling of the value.
func (s ShowOutput) String() string {
	switch s {
	case ShowOutputAlways:
		return "always"
	case ShowOutputSilent:
		return "silent"
	case ShowOutputNever:
		return "never"
	default:
		return "unknown"
	}
}

// parseShowOutput maps the string form to the enum. An unrecognized
// value draws a warning, so a typo does not silently become "always",
// and then falls back to the default.
func parseShowOutput(s string, ctx *parseContext) ShowOutput {
	switch s {
	case "always":
		return ShowOutputAlways
	case "silent":
		return ShowOutputSilent
	case "never":
		return ShowOutputNever
	default:
		ctx.warnf("property showOutput has unknown value %q; using %q", s, ShowOutputAlways)
		return ShowOutputAlways
	}
}

// showOutputField reads and converts a raw showOutput property.
func showOutputField(raw map[string]any, ctx *parseContext) *ShowOutput {
	switch s, state := stringField(raw, "showOutput"); state {
	case fieldSet:
		v := parseShowOutput(s, ctx)
		return &v
	case fieldInvalid:
		ctx.errorf("property showOutput must be of type string")
	}
	return nil
}
