package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ludo-technologies/add-skills/internal/logging"
)

// DefaultCloneTimeout bounds a single clone when the config does not set one.
const DefaultCloneTimeout = 60 * time.Second

// GitExecFunc runs git with args in dir and returns its combined output.
type GitExecFunc func(ctx context.Context, dir string, args ...string) ([]byte, error)

func defaultGitExec(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	return cmd.CombinedOutput()
}

// Fetcher retrieves remote sources into a local directory.
type Fetcher struct {
	execGit GitExecFunc
	timeout time.Duration
	logger  *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithGitExec replaces the git runner.
func WithGitExec(fn GitExecFunc) FetcherOption {
	return func(f *Fetcher) { f.execGit = fn }
}

// WithCloneTimeout sets the per-clone timeout. Non-positive values keep the default.
func WithCloneTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithFetchLogger sets the logger used for clone diagnostics.
func WithFetchLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = logger }
}

// NewFetcher creates a Fetcher that shells out to git.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		execGit: defaultGitExec,
		timeout: DefaultCloneTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.OrDiscard(f.logger)
	return f
}

// Fetch shallow-clones src into targetDir and returns the directory to scan:
// targetDir itself, or targetDir joined with the source's subpath.
//
// Local sources are rejected with ErrInvalidSource. Clone failures are
// returned as *CloneError; a missing subpath wraps ErrSubpathNotFound.
// The caller owns targetDir and removes it.
func (f *Fetcher) Fetch(ctx context.Context, src *ParsedSource, targetDir string) (string, error) {
	if src == nil || !src.IsRemote() {
		return "", fmt.Errorf("fetching %s: %w: only remote sources can be fetched", describe(src), ErrInvalidSource)
	}

	url := src.CloneURL()
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	f.logger.Debug("cloning repository", "url", url, "branch", src.Branch, "dest", targetDir)
	start := time.Now()

	out, err := f.execGit(ctx, "", cloneArgs(url, src.Branch, targetDir)...)
	if err != nil {
		raw := string(out)
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			raw = fmt.Sprintf("command timed out after %s", f.timeout)
		case errors.Is(err, exec.ErrNotFound):
			raw = err.Error()
		case strings.TrimSpace(raw) == "":
			raw = err.Error()
		}
		cloneErr := ClassifyCloneError(url, FormatCommand(url, src.Branch), raw)
		f.logger.Debug("clone failed", "url", url, "kind", cloneErr.Kind.String(), "output", cloneErr.RawOutput)
		return "", cloneErr
	}
	f.logger.Debug("cloned repository", "url", url, "elapsed", time.Since(start).Round(time.Millisecond))

	return resolveSubPath(targetDir, src.SubPath)
}

// resolveSubPath joins subPath onto root and checks that the result is an
// existing directory inside root.
func resolveSubPath(root, subPath string) (string, error) {
	rel := strings.Trim(subPath, "/")
	if rel == "" {
		return root, nil
	}

	joined := filepath.Join(root, filepath.FromSlash(rel))
	if r, err := filepath.Rel(root, joined); err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s escapes the repository", ErrSubpathNotFound, subPath)
	}
	if !dirExists(joined) {
		return "", fmt.Errorf("%w: %s", ErrSubpathNotFound, subPath)
	}
	return joined, nil
}

func describe(src *ParsedSource) string {
	if src == nil {
		return "<nil>"
	}
	if src.Original != "" {
		return src.Original
	}
	return src.LocalPath
}
