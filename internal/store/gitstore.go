package store

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chronocode/chrono/internal/progress"
	"github.com/chronocode/chrono/internal/vcs"
	"github.com/chronocode/chrono/pkg/models"
)

// GitStore reads commit history through go-git.
type GitStore struct {
	opener  vcs.Opener
	days    int
	spinner *progress.Tracker
}

// GitOption is a functional option for configuring GitStore.
type GitOption func(*GitStore)

// WithOpener sets the VCS opener (useful for testing).
func WithOpener(opener vcs.Opener) GitOption {
	return func(s *GitStore) {
		s.opener = opener
	}
}

// WithDays limits history to the last n days. Zero means unlimited.
func WithDays(days int) GitOption {
	return func(s *GitStore) {
		if days > 0 {
			s.days = days
		}
	}
}

// WithSpinner sets a progress spinner for history walks.
func WithSpinner(spinner *progress.Tracker) GitOption {
	return func(s *GitStore) {
		s.spinner = spinner
	}
}

// NewGitStore creates a commit store backed by a local git repository.
func NewGitStore(opts ...GitOption) *GitStore {
	s := &GitStore{
		opener: vcs.DefaultOpener(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadCommits walks the repository log and returns commits sorted
// ascending by author date. Merge commits are skipped since their stats
// duplicate the merged work.
func (s *GitStore) LoadCommits(ctx context.Context, repoPath string) ([]models.Commit, error) {
	repo, err := s.opener.PlainOpenWithDetect(repoPath)
	if err != nil {
		return nil, &RepoOpenError{Path: repoPath, Err: err}
	}

	repoName := repoDisplayName(repoPath)
	opts := &vcs.LogOptions{}
	if s.days > 0 {
		since := time.Now().AddDate(0, 0, -s.days)
		opts.Since = &since
	}

	iter, err := repo.Log(opts)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var commits []models.Commit
	err = iter.ForEach(func(c vcs.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if s.spinner != nil {
			s.spinner.Tick()
		}
		if c.NumParents() > 1 {
			return nil
		}

		title, description := splitMessage(c.Message())
		commit := models.Commit{
			SHA:         c.Hash().String(),
			RepoName:    repoName,
			Author:      c.Author().Name,
			AuthorEmail: c.Author().Email,
			Date:        c.Author().When.UTC(),
			Message:     title,
			Description: description,
		}

		// Stats can fail on the root commit in shallow clones; the
		// commit still counts, just without file detail.
		if stats, err := c.Stats(); err == nil {
			commit.FilesChanged = make([]models.FileChange, 0, len(stats))
			for _, fs := range stats {
				commit.FilesChanged = append(commit.FilesChanged, models.FileChange{
					Path:      fs.Name,
					Additions: fs.Addition,
					Deletions: fs.Deletion,
				})
			}
		}

		commits = append(commits, commit)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Date.Before(commits[j].Date)
	})
	return commits, nil
}

// splitMessage separates a commit message into its title line and body.
func splitMessage(msg string) (title, description string) {
	msg = strings.TrimSpace(msg)
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return strings.TrimSpace(msg[:i]), strings.TrimSpace(msg[i+1:])
	}
	return msg, ""
}

func repoDisplayName(repoPath string) string {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		abs = repoPath
	}
	return filepath.Base(abs)
}
