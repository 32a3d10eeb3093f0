package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quill/interpreter-go/pkg/driver"
	"quill/interpreter-go/pkg/interpreter"
	"quill/interpreter-go/pkg/runtime"
)

const cliToolVersion = "quill-cli 0.1.0-dev"

var errManifestNotFound = errors.New("package.yml not found")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "deps":
		return runDeps(args[1:])
	default:
		return runEntry(args)
	}
}

func runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	var entry string
	manifest, manifestErr := loadManifestFrom(".")
	if manifestErr != nil && !errors.Is(manifestErr, errManifestNotFound) {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", manifestErr)
		return 1
	}

	if len(args) == 1 {
		entry = args[0]
	} else {
		if manifest == nil {
			fmt.Fprintln(os.Stderr, "quill run requires a source file (package.yml not found)")
			return 1
		}
		if manifest.Entry == "" {
			fmt.Fprintf(os.Stderr, "manifest %s does not declare an entry\n", manifest.Path)
			return 1
		}
		entry = filepath.Join(filepath.Dir(manifest.Path), filepath.FromSlash(manifest.Entry))
	}

	return executeEntry(entry, manifest)
}

func executeEntry(entry string, manifest *driver.Manifest) int {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		fmt.Fprintln(os.Stderr, "quill run requires a source file")
		return 1
	}

	module, err := driver.LoadModuleFile(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}

	var resolver *driver.Resolver
	if manifest != nil {
		resolver = driver.ResolverForManifest(manifest, depsDirFor(manifest))
	} else {
		if abs, absErr := filepath.Abs(entry); absErr == nil {
			resolver = driver.NewResolver([]string{filepath.Dir(abs)})
		}
	}

	opts := []interpreter.Option{}
	if resolver != nil {
		opts = append(opts, interpreter.WithModuleResolver(resolver))
	}
	interp := interpreter.New(opts...)
	registerPrint(interp)

	if _, err := interp.Run(module); err != nil {
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
		return 1
	}
	return 0
}

func registerPrint(interp *interpreter.Interpreter) {
	printFn := runtime.NativeFunctionValue{
		Name:  "print",
		Arity: -1,
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			parts := make([]string, 0, len(args))
			for _, arg := range args {
				parts = append(parts, runtime.ToString(arg))
			}
			fmt.Fprintln(os.Stdout, strings.Join(parts, " "))
			return runtime.NilValue{}, nil
		},
	}
	interp.DefineGlobal("print", printFn)
}

func runDeps(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "quill deps requires a subcommand (install, update)")
		return 1
	}
	switch args[0] {
	case "install":
		return runDepsInstall(false)
	case "update":
		return runDepsInstall(true)
	default:
		fmt.Fprintf(os.Stderr, "unknown deps subcommand %q\n", args[0])
		return 1
	}
}

func runDepsInstall(refresh bool) int {
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to locate package.yml: %v\n", err)
		return 1
	}

	depsDir := depsDirFor(manifest)
	lockPath := filepath.Join(filepath.Dir(manifest.Path), driver.LockFileName)
	lock, err := driver.LoadLockfile(lockPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read lockfile: %v\n", err)
		return 1
	}
	if refresh {
		lock.Packages = nil
	}

	fmt.Fprintf(os.Stdout, "Manifest: %s\n", manifest.Path)
	fmt.Fprintf(os.Stdout, "Dependencies: %d\n", len(manifest.Dependencies))

	fetcher := newGitFetcher(depsDir)
	changed := false
	for _, name := range manifest.GitDependencies() {
		spec := manifest.Dependencies[name]
		pinned, _ := lock.Lookup(name)
		dep, err := fetcher.Fetch(name, spec, pinned)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to fetch %s: %v\n", name, err)
			return 1
		}
		if dep != pinned {
			lock.Pin(dep)
			changed = true
		}
		fmt.Fprintf(os.Stdout, "  %s -> %s\n", name, dep.Commit)
	}

	if changed {
		if err := lock.Save(lockPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write lockfile: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stdout, "Updated %s\n", lockPath)
	} else {
		fmt.Fprintln(os.Stdout, "Dependencies already up to date.")
	}
	return 0
}

func depsDirFor(manifest *driver.Manifest) string {
	return filepath.Join(filepath.Dir(manifest.Path), ".quill", "deps")
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	absStart, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolve manifest search path %q: %w", start, err)
	}
	manifestPath, err := findManifest(absStart)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(manifestPath)
}

func findManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, driver.ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no package.yml found from %s upwards: %w", origin, errManifestNotFound)
		}
		dir = parent
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  quill run [file.quill.yml]")
	fmt.Fprintln(os.Stderr, "  quill <file.quill.yml>")
	fmt.Fprintln(os.Stderr, "  quill deps install")
	fmt.Fprintln(os.Stderr, "  quill deps update")
	fmt.Fprintln(os.Stderr, "  quill --version")
}
