package taskcfg

import (
	"github.com/google/uuid"

	"taskwright/internal/problem"
)

// Configuration is the fully resolved result of a parse run: every
// surviving task keyed by identifier, plus the build and test
// designations. A Configuration is immutable once returned.
type Configuration struct {
	tasks      map[string]*Task
	buildTasks []string
	testTasks  []string
}

// Tasks returns the resolved tasks keyed by identifier. Callers must
// not modify the map.
func (c *Configuration) Tasks() map[string]*Task {
	return c.tasks
}

// Task returns the task with the given identifier, nil if unknown.
func (c *Configuration) Task(id string) *Task {
	return c.tasks[id]
}

// TaskByName returns the task with the given name, nil if unknown.
func (c *Configuration) TaskByName(name string) *Task {
	for _, t := range c.tasks {
		if t.name == name {
			return t
		}
	}
	return nil
}

// BuildTasks returns the identifiers of the tasks designated as build
// tasks. The slice holds at most one entry.
func (c *Configuration) BuildTasks() []string {
	return c.buildTasks
}

// TestTasks returns the identifiers of the tasks designated as test
// tasks. The slice holds at most one entry.
func (c *Configuration) TestTasks() []string {
	return c.testTasks
}

// Parser resolves raw task documents. The zero value is usable: it
// resolves for the current platform, discards diagnostics, uses the
// built-in problem matchers, and generates random task identifiers.
type Parser struct {
	// Platform selects which platform sub-shapes overlay the base
	// configuration. Zero means the platform the process runs on.
	Platform Platform

	// Logger receives one message per diagnostic. Nil discards them.
	Logger Logger

	// Registry supplies the named problem matchers $references resolve
	// against. Nil means the built-in registry.
	Registry *problem.Registry

	// NewID generates task identifiers. Nil means random UUIDs.
	NewID func() string
}

// Parse resolves a raw task document into a Configuration. The input
// document is never modified. The returned status carries the worst
// severity seen; the Configuration is nil only when a fatal problem in
// the document-level shape made the whole run unusable.
func (p *Parser) Parse(doc map[string]any) (*Configuration, *ValidationStatus) {
	status := NewValidationStatus()
	if doc == nil {
		return &Configuration{tasks: map[string]*Task{}}, status
	}

	doc = cloneMap(doc)
	applyMigrations(doc)

	engine := EngineProcess
	if runner, state := stringField(doc, "_runner"); state == fieldSet && runner == "terminal" {
		engine = EngineTerminal
	}

	platform := p.Platform
	if platform == platformUnset {
		platform = CurrentPlatform()
	}
	registry := p.Registry
	if registry == nil {
		registry = problem.Builtins()
	}
	newID := p.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	logger := p.Logger
	if logger == nil {
		logger = discardLogger{}
	}

	ctx := &parseContext{
		platform: platform,
		engine:   engine,
		logger:   logger,
		status:   status,
		registry: registry,
		newID:    newID,
	}

	globals := resolveGlobals(doc, ctx)
	if status.IsFatal() {
		return nil, status
	}

	ctx.named = resolveNamedMatchers(doc["declares"], ctx)

	baseList, ok := tasksList(doc, ctx)
	if !ok {
		return nil, status
	}
	set := resolveTasks(baseList, globals, ctx)

	if sub, state := objectField(doc, platform.String()); state == fieldSet {
		subList, ok := tasksList(sub, ctx)
		if !ok {
			return nil, status
		}
		set = mergeTaskSets(set, resolveTasks(subList, globals, ctx))
	}

	if len(set.tasks) == 0 && globals.Command().HasName() {
		synthesizeTask(set, doc, globals, ctx)
	}

	cfg := &Configuration{tasks: set.tasks}
	if set.build.id != "" {
		cfg.buildTasks = []string{set.build.id}
	}
	if set.test.id != "" {
		cfg.testTasks = []string{set.test.id}
	}
	return cfg, status
}

// Parse resolves a raw task document for the platform the process runs
// on, sending diagnostics to logger.
func Parse(doc map[string]any, logger Logger) (*Configuration, *ValidationStatus) {
	p := &Parser{Logger: logger}
	return p.Parse(doc)
}

// tasksList reads a raw tasks property. A present but non-array value
// is fatal for the layer that carries it.
func tasksList(raw map[string]any, ctx *parseContext) ([]any, bool) {
	v, ok := raw["tasks"]
	if !ok {
		return nil, true
	}
	list, ok := v.([]any)
	if !ok {
		ctx.fatalf("property tasks must be an array of task definitions")
		return nil, false
	}
	return list, true
}

// synthesizeTask derives a single task from a document that configures
// a command but declares no tasks. The task carries the command's name,
// inherits the document-level problem matchers and background flag, and
// becomes the build task.
func synthesizeTask(set *taskSet, doc map[string]any, globals *Globals, ctx *parseContext) {
	t := &Task{
		id:               ctx.newID(),
		name:             globals.Command().Name(),
		command:          globals.Command().clone(),
		suppressTaskName: boolPtr(true),
	}

	if v, ok := doc["problemMatcher"]; ok {
		t.matchers = resolveMatcherRefs(v, ctx)
	}

	switch bg, state := boolField(doc, "isBackground"); state {
	case fieldSet:
		t.isBackground = &bg
	case fieldInvalid:
		ctx.errorf("property isBackground must be of type boolean")
	}

	if t.promptOnClose == nil && t.isBackground == nil {
		t.promptOnClose = globals.promptOnClose
	}
	if t.showOutput == nil {
		t.showOutput = globals.showOutput
	}

	t.fillDefaults()
	t.command.freeze()

	set.add(t)
	set.build = candidate{id: t.id, score: scoreExplicit}
}
