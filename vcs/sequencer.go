package vcs

import (
	"context"
	"log/slog"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes for the step that failed.
const (
	CodeStageFailed  = "VCS_STAGE_FAILED"
	CodeCommitFailed = "VCS_COMMIT_FAILED"
	CodeBranchFailed = "VCS_BRANCH_FAILED"
	CodePushFailed   = "VCS_PUSH_FAILED"
)

// DefaultRemote is pushed to when no remote is configured.
const DefaultRemote = "origin"

// Request describes what to do after a post was written.
type Request struct {
	Path    string // repository-relative path to stage
	Message string
	Title   string // used for the default commit message
	Commit  bool
	Push    bool
}

// Outcome reports the steps that completed.
type Outcome struct {
	Committed bool
	Pushed    bool
	Branch    string
}

// Sequencer runs stage, commit and push in order, stopping at the first
// failing step.
type Sequencer struct {
	runner Runner
	remote string
	logger *slog.Logger
}

// NewSequencer creates a Sequencer. An empty remote means DefaultRemote.
func NewSequencer(runner Runner, remote string, logger *slog.Logger) *Sequencer {
	if remote == "" {
		remote = DefaultRemote
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sequencer{runner: runner, remote: remote, logger: logger}
}

// CommitMessage returns msg, or "post: <title>" when msg is blank.
func CommitMessage(msg, title string) string {
	if m := strings.TrimSpace(msg); m != "" {
		return m
	}
	return "post: " + title
}

// CommitAndPush stages and commits req.Path when req.Commit is set, then
// pushes the current branch when req.Push is set.
func (s *Sequencer) CommitAndPush(ctx context.Context, req Request) (Outcome, error) {
	var out Outcome
	if req.Commit {
		if _, err := s.run(ctx, CodeStageFailed, "add", req.Path); err != nil {
			return out, err
		}
		if _, err := s.run(ctx, CodeCommitFailed, "commit", "-m", CommitMessage(req.Message, req.Title)); err != nil {
			return out, err
		}
		out.Committed = true
		s.logger.Info("post committed", "path", req.Path)
	}
	if !req.Push {
		return out, nil
	}

	res, err := s.run(ctx, CodeBranchFailed, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return out, err
	}
	branch := strings.TrimSpace(res.Stdout)
	if branch == "" {
		return out, goerrors.New("could not resolve current branch", goerrors.CategoryExternal).
			WithTextCode(CodeBranchFailed)
	}
	if _, err := s.run(ctx, CodePushFailed, "push", s.remote, branch); err != nil {
		return out, err
	}
	out.Pushed = true
	out.Branch = branch
	s.logger.Info("post pushed", "remote", s.remote, "branch", branch)
	return out, nil
}

func (s *Sequencer) run(ctx context.Context, code string, args ...string) (Result, error) {
	res, err := s.runner.Run(ctx, args...)
	if err != nil {
		s.logger.Error("git command did not run", "args", args, "error", err)
		return res, goerrors.Wrap(err, goerrors.CategoryExternal, "git "+strings.Join(args, " ")).
			WithTextCode(code)
	}
	if res.ExitCode != 0 {
		s.logger.Warn("git command failed", "args", args, "exit_code", res.ExitCode)
		return res, commandError(code, args, res)
	}
	return res, nil
}

// commandError prefers the command's stderr, then its stdout, as the message.
func commandError(code string, args []string, res Result) error {
	msg := strings.TrimSpace(res.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(res.Stdout)
	}
	if msg == "" {
		msg = "git " + strings.Join(args, " ") + " failed"
	}
	return goerrors.New(msg, goerrors.CategoryExternal).
		WithTextCode(code).
		WithMetadata(map[string]any{
			"command":   strings.Join(args, " "),
			"exit_code": res.ExitCode,
		})
}
