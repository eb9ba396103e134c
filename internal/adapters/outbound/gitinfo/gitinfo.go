package gitinfo

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultAuthor signs commits when no git identity is configured.
var DefaultAuthor = object.Signature{Name: "camelgen", Email: "camelgen@localhost"}

// Initializer implements domain.RepoInitializer using go-git.
type Initializer struct {
	now func() time.Time
}

func New() *Initializer {
	return &Initializer{now: time.Now}
}

// IsGitRepo reports whether path is inside a git working tree.
func (g *Initializer) IsGitRepo(path string) bool {
	_, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// InitAndCommit creates a repository at path, stages every file and commits
// them. It returns the new commit hash.
func (g *Initializer) InitAndCommit(path, message string) (string, error) {
	repo, err := git.PlainInit(path, false)
	if err != nil {
		return "", fmt.Errorf("initializing git repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("opening worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("staging files: %w", err)
	}

	author := g.author(repo)
	hash, err := wt.Commit(message, &git.CommitOptions{Author: &author})
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	return hash.String(), nil
}

func (g *Initializer) author(repo *git.Repository) object.Signature {
	sig := DefaultAuthor
	if cfg, err := repo.ConfigScoped(config.GlobalScope); err == nil {
		if cfg.User.Name != "" {
			sig.Name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			sig.Email = cfg.User.Email
		}
	}
	sig.When = g.now()
	return sig
}
