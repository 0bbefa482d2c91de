package posts

import (
	"context"
	"log/slog"
	"sync"

	goerrors "github.com/goliatone/go-errors"

	"github.com/eringen/blogeditor/layout"
	"github.com/eringen/blogeditor/vcs"
)

// Committer records a written post in version control.
type Committer interface {
	CommitAndPush(ctx context.Context, req vcs.Request) (vcs.Outcome, error)
}

// Service is the editor's use-case layer: it lists, reads and saves posts
// and runs the optional git steps after a save.
type Service struct {
	store  *Store
	vcs    Committer
	logger *slog.Logger

	// mu serializes saves so two git sequences never interleave.
	mu sync.Mutex
}

// NewService creates a Service. committer may be nil when git steps are
// never requested.
func NewService(store *Store, committer Committer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, vcs: committer, logger: logger}
}

// Layout returns the active repository layout.
func (s *Service) Layout() layout.Layout {
	return s.store.Layout()
}

// List returns post summaries, newest first.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.store.List()
}

// Read loads one post by file name from the content directory.
func (s *Service) Read(ctx context.Context, name string) (Post, error) {
	return s.store.Read(name)
}

// Check reports the validation error Save would return for req, if any.
func (s *Service) Check(req SaveRequest) error {
	if req.Push && !req.Commit {
		return validationError("push requires commit", CodePushRequiresCommit)
	}
	return s.store.Check(req.Slug, req.Metadata)
}

// Save writes the post and, when asked, commits and pushes it. If a git step
// fails the file stays on disk and the returned result still names it.
func (s *Service) Save(ctx context.Context, req SaveRequest) (SaveResult, error) {
	if req.Push && !req.Commit {
		return SaveResult{}, validationError("push requires commit", CodePushRequiresCommit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := s.store.Write(req.Slug, req.Metadata, req.Content)
	if err != nil {
		return SaveResult{}, err
	}
	res := SaveResult{File: name, Saved: true}
	if !req.Commit {
		return res, nil
	}
	if s.vcs == nil {
		return res, goerrors.New("version control is not configured", goerrors.CategoryInternal).
			WithTextCode("VCS_UNAVAILABLE")
	}

	out, err := s.vcs.CommitAndPush(ctx, vcs.Request{
		Path:    s.store.RelPath(name),
		Message: req.CommitMessage,
		Title:   req.Title,
		Commit:  req.Commit,
		Push:    req.Push,
	})
	res.Committed = out.Committed
	res.Pushed = out.Pushed
	res.Branch = out.Branch
	if err != nil {
		s.logger.Error("post saved but git failed", "file", name, "error", err)
		return res, err
	}
	return res, nil
}
