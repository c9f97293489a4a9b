// Package github resolves repository metadata for imported projects.
package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/mkessy/devbench/internal/models"
	"golang.org/x/oauth2"
)

// ParseRepoURL extracts the owner and repository name from a GitHub URL.
// Accepted forms: https://github.com/owner/repo(.git), github.com/owner/repo,
// git@github.com:owner/repo.git.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "git@github.com:")
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "github.com/")
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")

	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("github: %q is not a GitHub repository URL", raw)
	}
	return parts[0], parts[1], nil
}

// CanonicalURL returns the https form of a repository address.
func CanonicalURL(owner, repo string) string {
	return fmt.Sprintf("https://github.com/%s/%s", owner, repo)
}

// NewClient returns a GitHub API client, authenticated when token is
// non-empty.
func NewClient(ctx context.Context, token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts))
}

// RepoMetadata fetches repository details and returns them as a project
// metadata document.
func RepoMetadata(ctx context.Context, client *github.Client, owner, repo string) (models.Document, error) {
	r, _, err := client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("github: get %s/%s: %w", owner, repo, err)
	}

	doc := models.Document{
		"default_branch": r.GetDefaultBranch(),
		"private":        r.GetPrivate(),
		"stars":          r.GetStargazersCount(),
	}
	if d := r.GetDescription(); d != "" {
		doc["description"] = d
	}
	if l := r.GetLanguage(); l != "" {
		doc["language"] = l
	}
	return doc, nil
}
