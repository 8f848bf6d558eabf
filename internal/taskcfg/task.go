package taskcfg

import (
	"taskwright/internal/problem"
)

// Task is one fully resolved task. Identifiers are generated fresh per
// resolution run; tasks of the same name across layers are reconciled
// by name, then stored by identifier.
type Task struct {
	id               string
	name             string
	command          *CommandConfig
	args             []string
	isBackground     *bool
	promptOnClose    *bool
	suppressTaskName *bool
	showOutput       *ShowOutput
	matchers         []*problem.Matcher
}

// ID returns the opaque task identifier.
func (t *Task) ID() string {
	return t.id
}

// Name returns the task name.
func (t *Task) Name() string {
	return t.name
}

// Command returns the resolved command configuration, nil when neither
// the task nor the document defines a command.
func (t *Task) Command() *CommandConfig {
	return t.command
}

// Args returns the task-level arguments appended after the command's
// own arguments. Callers must not modify the slice.
func (t *Task) Args() []string {
	return t.args
}

// IsBackground reports whether the task keeps running in the background.
func (t *Task) IsBackground() bool {
	return t.isBackground != nil && *t.isBackground
}

// PromptOnClose reports whether the user is prompted before the task's
// terminal is closed.
func (t *Task) PromptOnClose() bool {
	return t.promptOnClose != nil && *t.promptOnClose
}

// SuppressTaskName reports whether the task name is omitted from the
// command arguments.
func (t *Task) SuppressTaskName() bool {
	return t.suppressTaskName != nil && *t.suppressTaskName
}

// ShowOutput returns when the task's output is revealed.
func (t *Task) ShowOutput() ShowOutput {
	if t.showOutput == nil {
		return ShowOutputAlways
	}
	return *t.showOutput
}

// ProblemMatchers returns the resolved problem matchers, in declaration
// order. Callers must not modify the slice.
func (t *Task) ProblemMatchers() []*problem.Matcher {
	return t.matchers
}

// fillDefaults fills every still-unset task field.
func (t *Task) fillDefaults() {
	t.command.fillDefaults()
	if t.args == nil {
		t.args = sharedEmptyArgs
	}
	if t.suppressTaskName == nil {
		t.suppressTaskName = boolPtr(false)
	}
	if t.isBackground == nil {
		t.isBackground = boolPtr(false)
	}
	if t.promptOnClose == nil {
		t.promptOnClose = boolPtr(!*t.isBackground)
	}
	if t.showOutput == nil {
		v := ShowOutputAlways
		t.showOutput = &v
	}
	if t.matchers == nil {
		t.matchers = sharedEmptyMatchers
	}
}

// Build/test designation scores. An explicit isBuildCommand or
// isTestCommand flag outranks a task merely named "build" or "test".
const (
	scoreNone     = 0
	scoreName     = 1
	scoreExplicit = 2
)

// candidate tracks the best build or test task seen so far.
type candidate struct {
	id    string
	score int
}

// taskSet is the working collection of resolved tasks: the tasks by
// identifier, a name index for layer reconciliation, and the build and
// test candidates.
type taskSet struct {
	tasks  map[string]*Task
	byName map[string]string
	build  candidate
	test   candidate
}

func newTaskSet() *taskSet {
	return &taskSet{
		tasks:  make(map[string]*Task),
		byName: make(map[string]string),
	}
}

// add inserts a task. A task of the same name already in the set is
// replaced entirely; a build or test designation pointing at the
// replaced task follows to the replacement.
func (s *taskSet) add(t *Task) {
	if oldID, ok := s.byName[t.name]; ok {
		delete(s.tasks, oldID)
		if s.build.id == oldID {
			s.build.id = t.id
		}
		if s.test.id == oldID {
			s.test.id = t.id
		}
	}
	s.tasks[t.id] = t
	s.byName[t.name] = t.id
}

// resolveTasks resolves a raw task list. Each entry resolves against
// its own validation scope: a fatally malformed entry is dropped while
// its siblings still resolve, and the entry's worst severity folds into
// the run status afterwards.
func resolveTasks(list []any, globals *Globals, ctx *parseContext) *taskSet {
	set := newTaskSet()
	if list == nil {
		return set
	}

	outer := ctx.status
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			ctx.errorf("a task entry must be an object")
			continue
		}

		entryStatus := NewValidationStatus()
		ctx.status = entryStatus
		t := resolveTask(obj, globals, ctx)
		ctx.status = outer
		outer.Merge(entryStatus)

		if t == nil || entryStatus.IsFatal() {
			continue
		}

		set.add(t)
		scoreCandidates(set, t, obj, ctx)
	}

	return set
}

// resolveTask resolves one raw task entry against the document globals.
// It returns nil when the entry cannot contribute a task at all.
func resolveTask(entry map[string]any, globals *Globals, ctx *parseContext) *Task {
	name, state := stringField(entry, "taskName")
	if state != fieldSet || name == "" {
		ctx.fatalf("a task must provide a taskName property")
		return nil
	}

	t := &Task{
		id:   ctx.newID(),
		name: name,
	}

	if v, ok := entry["problemMatcher"]; ok {
		t.matchers = resolveMatcherRefs(v, ctx)
	}

	// Task-level args are appended after the command's own arguments at
	// execution time; only the document-level shape owns a command args
	// property. Remove the key so the command resolver does not claim it.
	switch args, argState := stringListField(entry, "args"); argState {
	case fieldSet:
		t.args = args
	case fieldInvalid:
		ctx.fatalf("task %q: property args must be an array of strings", name)
		return nil
	}
	delete(entry, "args")

	t.command = resolveCommand(entry, ctx)
	if ctx.status.IsFatal() {
		return nil
	}

	switch bg, bgState := boolField(entry, "isBackground"); bgState {
	case fieldSet:
		t.isBackground = &bg
	case fieldInvalid:
		ctx.errorf("property isBackground must be of type boolean")
	}

	switch prompt, promptState := boolField(entry, "promptOnClose"); promptState {
	case fieldSet:
		t.promptOnClose = &prompt
	case fieldInvalid:
		ctx.errorf("property promptOnClose must be of type boolean")
	}

	switch suppress, suppressState := boolField(entry, "suppressTaskName"); suppressState {
	case fieldSet:
		t.suppressTaskName = &suppress
	case fieldInvalid:
		ctx.errorf("property suppressTaskName must be of type boolean")
	}

	t.showOutput = showOutputField(entry, ctx)

	// A task with its own command does not need its name passed as an
	// argument, whatever else is configured.
	if t.command.HasName() {
		t.suppressTaskName = boolPtr(true)
	}

	// Inherit from globals. The command merges only when the task's own
	// command is empty or carries nothing but an echo flag; the fill
	// semantics of the merge keep that echo value intact.
	if t.command.IsEmpty() || t.command.onlyEcho() {
		t.command = mergeCommand(t.command, globals.command)
	}
	if t.promptOnClose == nil && t.isBackground == nil {
		t.promptOnClose = globals.promptOnClose
	}
	if t.suppressTaskName == nil {
		t.suppressTaskName = globals.suppressTaskName
	}
	if t.showOutput == nil {
		t.showOutput = globals.showOutput
	}

	t.fillDefaults()

	if ctx.engine == EngineTerminal && t.command.Shell().IsShellCommand() &&
		(len(t.command.Args()) > 0 || len(t.args) > 0) {
		ctx.warnf("task %q: for a shell command the arguments should be part of the command itself; separate arguments are subject to quoting problems", name)
	}

	t.command.freeze()

	return t
}

// scoreCandidates updates the build and test candidates for a freshly
// added task. The first task to reach a given score keeps the
// designation; a later task takes it only with a strictly higher score.
func scoreCandidates(set *taskSet, t *Task, entry map[string]any, ctx *parseContext) {
	buildScore := scoreNone
	switch v, state := boolField(entry, "isBuildCommand"); state {
	case fieldSet:
		if v {
			buildScore = scoreExplicit
		}
	case fieldInvalid:
		ctx.errorf("property isBuildCommand must be of type boolean")
	}
	if buildScore == scoreNone && t.name == "build" {
		buildScore = scoreName
	}
	if buildScore > set.build.score {
		set.build = candidate{id: t.id, score: buildScore}
	}

	testScore := scoreNone
	switch v, state := boolField(entry, "isTestCommand"); state {
	case fieldSet:
		if v {
			testScore = scoreExplicit
		}
	case fieldInvalid:
		ctx.errorf("property isTestCommand must be of type boolean")
	}
	if testScore == scoreNone && t.name == "test" {
		testScore = scoreName
	}
	if testScore > set.test.score {
		set.test = candidate{id: t.id, score: testScore}
	}
}

// mergeTaskSets merges the incoming source set (the platform layer)
// into target (the base layer) by task name: a source task fully
// replaces a same-named target task, identifier included. The build and
// test designations fill in from source only when target left them
// unset; a designation pointing at a replaced task follows to its
// replacement.
func mergeTaskSets(target, source *taskSet) *taskSet {
	for name, srcID := range source.byName {
		if oldID, ok := target.byName[name]; ok {
			delete(target.tasks, oldID)
			if target.build.id == oldID {
				target.build.id = srcID
			}
			if target.test.id == oldID {
				target.test.id = srcID
			}
		}
		target.tasks[srcID] = source.tasks[srcID]
		target.byName[name] = srcID
	}

	if target.build.id == "" {
		target.build = source.build
	}
	if target.test.id == "" {
		target.test = source.test
	}

	return target
}
