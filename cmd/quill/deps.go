package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"quill/interpreter-go/pkg/driver"
)

type gitFetcher struct {
	depsDir string
}

func newGitFetcher(depsDir string) *gitFetcher {
	return &gitFetcher{depsDir: depsDir}
}

// Fetch makes sure the dependency's checkout exists under depsDir/<name> and
// returns the lock entry pinning it. A pinned commit that is already checked
// out is reused without touching the network.
func (g *gitFetcher) Fetch(name string, spec *driver.DependencySpec, pinned driver.LockedDep) (driver.LockedDep, error) {
	url := strings.TrimSpace(spec.Git)
	if url == "" {
		return driver.LockedDep{}, fmt.Errorf("dependency %q: git URL required", name)
	}

	checkoutDir := filepath.Join(g.depsDir, name)
	if pinned.Commit != "" && pinned.Git == url {
		if _, err := os.Stat(checkoutDir); err == nil {
			return pinned, nil
		}
	}

	commit, err := g.checkout(checkoutDir, url, spec, pinned.Commit)
	if err != nil {
		return driver.LockedDep{}, err
	}
	return driver.LockedDep{Name: name, Git: url, Commit: commit}, nil
}

func (g *gitFetcher) checkout(checkoutDir, url string, spec *driver.DependencySpec, pinnedCommit string) (string, error) {
	if err := os.MkdirAll(g.depsDir, 0o755); err != nil {
		return "", err
	}
	tmpDir, err := os.MkdirTemp(g.depsDir, "git-fetch-*")
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{
		URL:               url,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("git clone %s: %w", url, err)
	}

	revision := gitRevisionFromSpec(spec, pinnedCommit)
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("git checkout %s: %w", revision, err)
	}

	if err := os.RemoveAll(checkoutDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	if err := os.Rename(tmpDir, checkoutDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	return hash.String(), nil
}

func gitRevisionFromSpec(spec *driver.DependencySpec, pinnedCommit string) plumbing.Revision {
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev)
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag)
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch)
	}
	if pinnedCommit != "" {
		return plumbing.Revision(pinnedCommit)
	}
	return plumbing.Revision("HEAD")
}
