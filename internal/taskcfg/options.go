package taskcfg

// DefaultCwd is the working-directory placeholder filled in when a
// configuration never sets cwd. The execution engine substitutes the
// workspace root at run time.
const DefaultCwd = "${workspaceRoot}"

// Options carries the working directory and environment for a command.
type Options struct {
	cwd    *string
	env    map[string]string
	frozen bool
}

// Cwd returns the working directory, or the empty string if unset.
func (o *Options) Cwd() string {
	if o == nil || o.cwd == nil {
		return ""
	}
	return *o.cwd
}

// Env returns the environment mapping. Callers must not modify it.
func (o *Options) Env() map[string]string {
	if o == nil {
		return nil
	}
	return o.env
}

// IsEmpty reports whether neither field is set.
func (o *Options) IsEmpty() bool {
	return o == nil || (o.cwd == nil && o.env == nil)
}

// resolveOptions validates and copies the recognized fields of a raw
// options object. It returns nil when raw is nil.
func resolveOptions(raw map[string]any, ctx *parseContext) *Options {
	if raw == nil {
		return nil
	}

	o := &Options{}

	switch cwd, state := stringField(raw, "cwd"); state {
	case fieldSet:
		o.cwd = &cwd
	case fieldInvalid:
		ctx.errorf("options.cwd must be of type string")
	}

	switch env, state := stringMapField(raw, "env"); state {
	case fieldSet:
		o.env = env
	case fieldInvalid:
		ctx.errorf("options.env must be a mapping of string values")
	}

	return o
}

// mergeOptions combines two option sets. Fields already set on target
// stay; source fills the gaps. For env the maps are unioned and target
// keys win on conflict. The source is never modified.
func mergeOptions(target, source *Options) *Options {
	if source.IsEmpty() {
		return target
	}
	if target.IsEmpty() {
		return source.clone()
	}

	if target.cwd == nil {
		target.cwd = source.cwd
	}
	if target.env == nil {
		env := make(map[string]string, len(source.env))
		for k, v := range source.env {
			env[k] = v
		}
		target.env = env
	} else {
		for k, v := range source.env {
			if _, ok := target.env[k]; !ok {
				target.env[k] = v
			}
		}
	}

	return target
}

// fillDefaults fills the working-directory placeholder. Idempotent;
// a frozen value is returned untouched.
func (o *Options) fillDefaults() {
	if o == nil || o.frozen {
		return
	}
	if o.cwd == nil {
		cwd := DefaultCwd
		o.cwd = &cwd
	}
}

// freeze marks the options immutable.
func (o *Options) freeze() {
	if o == nil {
		return
	}
	o.frozen = true
}

// clone returns an unfrozen deep copy.
func (o *Options) clone() *Options {
	if o == nil {
		return nil
	}
	c := &Options{}
	if o.cwd != nil {
		cwd := *o.cwd
		c.cwd = &cwd
	}
	if o.env != nil {
		c.env = make(map[string]string, len(o.env))
		for k, v := range o.env {
			c.env[k] = v
		}
	}
	return c
}
