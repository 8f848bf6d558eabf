// Package main is the entry point for the taskwright CLI, which
// resolves a task configuration file and prints the resulting tasks.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"taskwright/internal/taskcfg"
	"taskwright/internal/taskfile"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	path     string
	platform string
	watch    bool
	quiet    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	platform, err := parsePlatform(opts.platform)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if !opts.watch {
		return resolveOnce(opts, platform)
	}

	code := resolveOnce(opts, platform)
	if code != 0 {
		return code
	}

	watcher, err := taskfile.NewWatcher(opts.path, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to watch %s: %v\n", opts.path, err)
		return 1
	}
	defer watcher.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-signals:
			return 0
		case err, ok := <-watcher.Errors():
			if !ok {
				return 0
			}
			fmt.Fprintf(os.Stderr, "Warning: watcher: %v\n", err)
		case _, ok := <-watcher.Changes():
			if !ok {
				return 0
			}
			fmt.Printf("--- %s changed ---\n", opts.path)
			resolveOnce(opts, platform)
		}
	}
}

func resolveOnce(opts options, platform taskcfg.Platform) int {
	doc, err := taskfile.ForPath(opts.path).LoadFrom(opts.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if doc == nil {
		fmt.Fprintf(os.Stderr, "Error: %s does not exist\n", opts.path)
		return 1
	}

	logger := taskcfg.LoggerFunc(func(msg string) {
		if !opts.quiet {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
		}
	})

	parser := &taskcfg.Parser{Platform: platform, Logger: logger}
	cfg, status := parser.Parse(doc)
	if cfg == nil {
		fmt.Fprintf(os.Stderr, "Error: %s could not be resolved (%s)\n", opts.path, status.State())
		return 1
	}

	printConfiguration(cfg)

	if status.State() >= taskcfg.SeverityError {
		return 1
	}
	return 0
}

func printConfiguration(cfg *taskcfg.Configuration) {
	tasks := make([]*taskcfg.Task, 0, len(cfg.Tasks()))
	for _, t := range cfg.Tasks() {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Name() < tasks[j].Name() })

	buildID := ""
	if ids := cfg.BuildTasks(); len(ids) > 0 {
		buildID = ids[0]
	}
	testID := ""
	if ids := cfg.TestTasks(); len(ids) > 0 {
		testID = ids[0]
	}

	fmt.Printf("%d task(s)\n", len(tasks))
	for _, t := range tasks {
		var tags []string
		if t.ID() == buildID {
			tags = append(tags, "build")
		}
		if t.ID() == testID {
			tags = append(tags, "test")
		}
		if t.IsBackground() {
			tags = append(tags, "background")
		}

		line := "  " + t.Name()
		if len(tags) > 0 {
			line += " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Println(line)

		if cmd := t.Command(); cmd.HasName() {
			parts := append([]string{cmd.Name()}, cmd.Args()...)
			if !t.SuppressTaskName() {
				if sel := cmd.TaskSelector(); sel != "" {
					parts = append(parts, sel+t.Name())
				} else {
					parts = append(parts, t.Name())
				}
			}
			parts = append(parts, t.Args()...)
			shell := ""
			if cmd.Shell().IsShellCommand() {
				shell = " (shell)"
			}
			fmt.Printf("    %s%s\n", strings.Join(parts, " "), shell)
		}
		if len(t.ProblemMatchers()) > 0 {
			fmt.Printf("    matchers: %d\n", len(t.ProblemMatchers()))
		}
	}
}

func parsePlatform(name string) (taskcfg.Platform, error) {
	switch name {
	case "":
		return taskcfg.CurrentPlatform(), nil
	case "linux":
		return taskcfg.PlatformLinux, nil
	case "osx", "darwin":
		return taskcfg.PlatformMac, nil
	case "windows":
		return taskcfg.PlatformWindows, nil
	default:
		return 0, fmt.Errorf("invalid platform %q (must be linux, osx, or windows)", name)
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.path, "file", "tasks.json", "Path to the task configuration file")
	flag.StringVar(&opts.path, "f", "tasks.json", "Path to the task configuration file (shorthand)")
	flag.StringVar(&opts.platform, "platform", "", "Resolve for a platform (linux, osx, windows)")
	flag.BoolVar(&opts.watch, "watch", false, "Re-resolve whenever the file changes")
	flag.BoolVar(&opts.watch, "w", false, "Re-resolve whenever the file changes (shorthand)")
	flag.BoolVar(&opts.quiet, "quiet", false, "Suppress resolution diagnostics")
	flag.BoolVar(&opts.quiet, "q", false, "Suppress resolution diagnostics (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Taskwright - task configuration resolver\n\n")
		fmt.Fprintf(os.Stderr, "Usage: taskwright [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  taskwright tasks.json             Resolve a task file\n")
		fmt.Fprintf(os.Stderr, "  taskwright -platform windows      Resolve as if on Windows\n")
		fmt.Fprintf(os.Stderr, "  taskwright -w tasks.json          Re-resolve on every save\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Taskwright %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	if args := flag.Args(); len(args) > 0 {
		opts.path = args[0]
	}

	return opts
}
