package taskcfg

import (
	"fmt"
	"runtime"

	"taskwright/internal/problem"
)

// Platform identifies the operating system a resolution run targets.
// It is passed explicitly rather than read from ambient state so tests
// can exercise all three overlay branches from one process.
type Platform uint8

const (
	// platformUnset is the zero value; the Parser substitutes the
	// platform of the running process.
	platformUnset Platform = iota
	// PlatformLinux targets Linux.
	PlatformLinux
	// PlatformMac targets macOS.
	PlatformMac
	// PlatformWindows targets Windows.
	PlatformWindows
)

// String returns the platform key used in configuration documents.
func (p Platform) String() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformMac:
		return "osx"
	case PlatformWindows:
		return "windows"
	default:
		return "unknown"
	}
}

// CurrentPlatform returns the platform of the running process.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return PlatformWindows
	case "darwin":
		return PlatformMac
	default:
		return PlatformLinux
	}
}

// Engine identifies the execution engine a document targets. The
// document's _runner property selects it; shell configuration objects
// are only fully honored by the terminal engine.
type Engine uint8

const (
	// EngineProcess is the legacy output-window runner.
	EngineProcess Engine = iota
	// EngineTerminal runs tasks in an integrated terminal.
	EngineTerminal
)

// parseContext carries the run-scoped state every resolver needs: the
// target platform and engine, the diagnostic sinks, the matcher lookup
// tables, and the identifier generator.
type parseContext struct {
	platform Platform
	engine   Engine
	logger   Logger
	status   *ValidationStatus

	// registry holds the built-in named matchers (read-only).
	registry *problem.Registry

	// named holds the matchers declared by this document, keyed by name.
	named map[string]*problem.Matcher

	newID func() string
}

// warnf records a warning and logs the message.
func (c *parseContext) warnf(format string, args ...any) {
	c.status.Update(SeverityWarning)
	c.logger.Log(fmt.Sprintf(format, args...))
}

// errorf records an error and logs the message.
func (c *parseContext) errorf(format string, args ...any) {
	c.status.Update(SeverityError)
	c.logger.Log(fmt.Sprintf(format, args...))
}

// fatalf records a fatal problem and logs the message.
func (c *parseContext) fatalf(format string, args ...any) {
	c.status.Update(SeverityFatal)
	c.logger.Log(fmt.Sprintf(format, args...))
}
