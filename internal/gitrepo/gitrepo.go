// Copyright 2026 The crategem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gitrepo lists release tags of a remote repository.
package gitrepo

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sys/execabs"
)

// TagLister reports the tags published on a remote repository.
type TagLister interface {
	// Tags returns all tags from the remote repository.
	Tags(ctx context.Context, remote string) ([]string, error)
}

// Git lists tags with the git executable.
type Git struct {
	git string
}

// Option configures Git.
type Option func(*Git)

// WithGitPath sets a custom git executable path.
func WithGitPath(path string) Option {
	return func(g *Git) {
		g.git = path
	}
}

// NewGit creates a git-backed tag lister.
func NewGit(opts ...Option) *Git {
	g := &Git{git: "git"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Tags returns all tags from the remote repository, without cloning.
func (g *Git) Tags(ctx context.Context, remote string) ([]string, error) {
	out, err := g.output(ctx, "ls-remote", "--tags", "--refs", remote)
	if err != nil {
		return nil, fmt.Errorf("list remote tags: %w", err)
	}
	return parseTags(out), nil
}

// parseTags extracts tag names from ls-remote output lines of the
// form "<hash>\trefs/tags/<tag>".
func parseTags(out string) []string {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil
	}
	var tags []string
	for _, line := range strings.Split(out, "\n") {
		hash, ref, ok := strings.Cut(line, "\t")
		if !ok || hash == "" {
			continue
		}
		if tag, ok := strings.CutPrefix(ref, "refs/tags/"); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (g *Git) output(ctx context.Context, args ...string) (string, error) {
	cmd := execabs.CommandContext(ctx, g.git, args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s", msg)
		}
		return "", err
	}
	return stdout.String(), nil
}
