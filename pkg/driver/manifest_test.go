package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestFull(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
name: geometry
version: 0.3.1
license: MIT
authors:
  - Ada Lovelace
  - Grace Hopper
entry: main.quill.yml
sources:
  - src
  - generated
dependencies:
  colors: "~> 1.2"
  shapes:
    git: https://example.com/shapes.git
    tag: v2.0.0
  local-math:
    path: ../math
`)
	m, err := LoadManifestDir(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if m.Name != "geometry" || m.Version != "0.3.1" || m.License != "MIT" {
		t.Fatalf("unexpected header fields: %+v", m)
	}
	if len(m.Authors) != 2 || m.Authors[1] != "Grace Hopper" {
		t.Fatalf("unexpected authors: %v", m.Authors)
	}
	if m.Entry != "main.quill.yml" {
		t.Fatalf("unexpected entry: %q", m.Entry)
	}
	colors := m.Dependencies["colors"]
	if colors == nil || colors.Version != "~> 1.2" {
		t.Fatalf("shorthand dependency not parsed: %+v", colors)
	}
	shapes := m.Dependencies["shapes"]
	if shapes == nil || shapes.Git != "https://example.com/shapes.git" || shapes.Tag != "v2.0.0" {
		t.Fatalf("git dependency not parsed: %+v", shapes)
	}
	local := m.Dependencies["local-math"]
	if local == nil || local.Path != "../math" {
		t.Fatalf("path dependency not parsed: %+v", local)
	}
}

func TestLoadManifestScalarAuthorAndSources(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "name: tiny\nauthors: Solo Dev\nsources: lib\n")
	m, err := LoadManifestDir(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(m.Authors) != 1 || m.Authors[0] != "Solo Dev" {
		t.Fatalf("scalar author not promoted to list: %v", m.Authors)
	}
	if len(m.Sources) != 1 || m.Sources[0] != "lib" {
		t.Fatalf("scalar source not promoted to list: %v", m.Sources)
	}
}

func TestLoadManifestRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "name: typo\nlicence: MIT\n")
	if _, err := LoadManifestDir(dir); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestManifestValidation(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		want     string
	}{
		{"missing name", "version: 1.0.0\n", "name must be provided"},
		{"git plus version", "name: x\ndependencies:\n  d: {git: u, version: \"1.0\"}\n", "cannot also specify version"},
		{"pin without git", "name: x\ndependencies:\n  d: {version: \"1.0\", rev: abc}\n", "require a git source"},
		{"two pins", "name: x\ndependencies:\n  d: {git: u, rev: abc, tag: v1}\n", "at most one of rev, tag, branch"},
		{"empty dependency", "name: x\ndependencies:\n  d: {}\n", "must specify version, git, or path"},
		{"bad constraint", "name: x\ndependencies:\n  d: \"not-a-version\"\n", "invalid version constraint"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tc.contents)
			_, err := LoadManifestDir(dir)
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(verr.Error(), tc.want) {
				t.Fatalf("expected issue containing %q, got %v", tc.want, verr)
			}
		})
	}
}

func TestVersionConstraints(t *testing.T) {
	valid := []string{"1.0.0", "~> 1.2", ">= 0.4, < 1.0", "^2.1", "*"}
	for _, v := range valid {
		if !isValidVersionConstraint(v) {
			t.Fatalf("expected %q to be valid", v)
		}
	}
	invalid := []string{"", "banana", ">=", "1.0 ,"}
	for _, v := range invalid {
		if isValidVersionConstraint(v) {
			t.Fatalf("expected %q to be invalid", v)
		}
	}
}

func TestSourceRootsDefault(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "name: roots\n")
	m, err := LoadManifestDir(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	roots := m.SourceRoots()
	if len(roots) != 1 || roots[0] != filepath.Join(dir, "src") {
		t.Fatalf("expected default src root under %s, got %v", dir, roots)
	}
}

func TestGitDependenciesSorted(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
name: sorted
dependencies:
  zebra: {git: z}
  apple: {git: a}
  local: {path: ../local}
`)
	m, err := LoadManifestDir(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	got := m.GitDependencies()
	if len(got) != 2 || got[0] != "apple" || got[1] != "zebra" {
		t.Fatalf("expected [apple zebra], got %v", got)
	}
}
