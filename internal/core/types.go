// Package core provides the business logic for add-skills.
// It has zero UI dependencies and is independently testable.
package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourceType indicates the kind of skill source.
type SourceType string

const (
	SourceTypeLocal  SourceType = "local"
	SourceTypeGitHub SourceType = "github"
	SourceTypeGitLab SourceType = "gitlab"
)

// Host returns the git host serving a remote source type.
func (t SourceType) Host() string {
	switch t {
	case SourceTypeGitHub:
		return "github.com"
	case SourceTypeGitLab:
		return "gitlab.com"
	default:
		return ""
	}
}

// ParsedSource is the classification of a user-supplied source string.
// Exactly one of LocalPath or (Owner, Repo) is populated, depending on Type.
type ParsedSource struct {
	Type      SourceType
	LocalPath string // Absolute path, only for SourceTypeLocal
	Owner     string // Repository owner, remote types only
	Repo      string // Repository name, remote types only
	Branch    string // Optional branch override; empty means the remote default
	SubPath   string // Optional path within the clone to treat as the root
	Original  string // Raw input, kept for messages

	// cloneURLOverride replaces the derived clone URL when set.
	cloneURLOverride string
}

// IsRemote reports whether the source must be fetched before discovery.
func (s *ParsedSource) IsRemote() bool {
	return s.Type == SourceTypeGitHub || s.Type == SourceTypeGitLab
}

// CloneURL returns https://{host}/{owner}/{repo}.git for remote sources and
// an empty string for local ones.
func (s *ParsedSource) CloneURL() string {
	if !s.IsRemote() {
		return ""
	}
	if s.cloneURLOverride != "" {
		return s.cloneURLOverride
	}
	return fmt.Sprintf("https://%s/%s/%s.git", s.Type.Host(), s.Owner, s.Repo)
}

// RepoKey returns "owner/repo" for remote sources.
func (s *ParsedSource) RepoKey() string {
	if !s.IsRemote() {
		return ""
	}
	return s.Owner + "/" + s.Repo
}

// ApplyCloneURLOverride swaps the clone URL when overrides has an entry for
// this source's owner/repo (matched case-insensitively).
func (s *ParsedSource) ApplyCloneURLOverride(overrides map[string]string) {
	if !s.IsRemote() || len(overrides) == 0 {
		return
	}
	key := s.RepoKey()
	for k, v := range overrides {
		if strings.EqualFold(k, key) && v != "" {
			s.cloneURLOverride = v
			return
		}
	}
}

// AgentDef defines an AI coding agent and its skill directory conventions.
type AgentDef struct {
	Name            string // Stable id, e.g. "claude-code"
	DisplayName     string // Human label, e.g. "Claude Code"
	SkillsDir       string // Project-relative skill directory (e.g. ".claude/skills")
	GlobalSkillsDir string // Global skill directory template (e.g. "~/.claude/skills")
}

// Skill is one skill discovered on disk.
type Skill struct {
	Name        string         // From front-matter, defaults to the directory name
	Path        string         // Absolute directory containing SKILL.md
	Description string         // Empty when absent
	Globs       []string       // File patterns the skill applies to
	Agents      []string       // Agent ids the skill declares itself for
	Metadata    map[string]any // Remaining front-matter keys, verbatim
}

// SkillFile returns the path of the skill's SKILL.md.
func (s Skill) SkillFile() string {
	return filepath.Join(s.Path, skillFileName)
}

// InstallScope selects between project-local and user-global installs.
type InstallScope int

const (
	ScopeLocal InstallScope = iota
	ScopeGlobal
)

// String returns a label for the scope.
func (s InstallScope) String() string {
	if s == ScopeGlobal {
		return "global"
	}
	return "local"
}

// RegistryEntry is one record of the curated skill registry.
type RegistryEntry struct {
	Name        string   `json:"name"`
	Repo        string   `json:"repo"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Matches reports whether keyword appears, case-insensitively, in the
// entry's name, description or any tag.
func (e RegistryEntry) Matches(keyword string) bool {
	kw := strings.ToLower(keyword)
	if strings.Contains(strings.ToLower(e.Name), kw) ||
		strings.Contains(strings.ToLower(e.Description), kw) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), kw) {
			return true
		}
	}
	return false
}
