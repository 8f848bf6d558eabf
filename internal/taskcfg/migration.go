package taskcfg

// Deprecated properties are migrated to their current spelling before
// the main resolution pass, so the merge and default-filling logic only
// ever sees current names. Each rule is a pure rewrite of one raw
// object; rules run in order.

// migration rewrites one deprecated property on a raw object.
type migration struct {
	// description says what the rule migrates.
	description string

	// apply rewrites the object in place.
	apply func(raw map[string]any)
}

var migrations = []migration{
	{
		description: "isWatching is deprecated in favor of isBackground",
		apply: func(raw map[string]any) {
			v, ok := raw["isWatching"]
			if !ok {
				return
			}
			// An explicit isBackground wins over the legacy flag.
			if _, set := raw["isBackground"]; !set {
				raw["isBackground"] = v
			}
			delete(raw, "isWatching")
		},
	},
}

// applyMigrations rewrites deprecated properties on a document: the
// base shape, each platform sub-object, and every task entry in each.
func applyMigrations(doc map[string]any) {
	migrateObject(doc)
	migrateTaskList(doc)

	for _, platform := range []Platform{PlatformWindows, PlatformMac, PlatformLinux} {
		sub, state := objectField(doc, platform.String())
		if state != fieldSet {
			continue
		}
		migrateObject(sub)
		migrateTaskList(sub)
	}
}

func migrateObject(raw map[string]any) {
	for _, m := range migrations {
		m.apply(raw)
	}
}

func migrateTaskList(raw map[string]any) {
	list, state := listField(raw, "tasks")
	if state != fieldSet {
		return
	}
	for _, entry := range list {
		if obj, ok := entry.(map[string]any); ok {
			migrateObject(obj)
		}
	}
}
