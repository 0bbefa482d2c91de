// Package vcs commits and pushes saved posts with the git command line.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Result is the outcome of one command invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner runs a version control command in a fixed working directory.
// A non-zero exit code is reported in Result, not as an error; the error is
// reserved for commands that could not be started or were cancelled.
type Runner interface {
	Run(ctx context.Context, args ...string) (Result, error)
}

// GitRunner runs the git binary.
type GitRunner struct {
	Binary string
	Dir    string
}

// NewGitRunner returns a runner for the repository at dir.
func NewGitRunner(dir string) *GitRunner {
	return &GitRunner{Binary: "git", Dir: dir}
}

// Run executes git with args in Dir. A non-zero exit is reported through
// Result.ExitCode with a nil error.
func (g *GitRunner) Run(ctx context.Context, args ...string) (Result, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, fmt.Errorf("run %s: %w", bin, err)
}
