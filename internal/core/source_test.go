package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseSource_Remote(t *testing.T) {
	tests := []struct {
		input      string
		wantType   SourceType
		wantOwner  string
		wantRepo   string
		wantBranch string
		wantSub    string
		wantClone  string
	}{
		{
			input:     "vercel-labs/agent-skills",
			wantType:  SourceTypeGitHub,
			wantOwner: "vercel-labs",
			wantRepo:  "agent-skills",
			wantClone: "https://github.com/vercel-labs/agent-skills.git",
		},
		{
			input:      "owner/repo#branchname",
			wantType:   SourceTypeGitHub,
			wantOwner:  "owner",
			wantRepo:   "repo",
			wantBranch: "branchname",
			wantClone:  "https://github.com/owner/repo.git",
		},
		{
			input:     "my.org/some_repo.v2",
			wantType:  SourceTypeGitHub,
			wantOwner: "my.org",
			wantRepo:  "some_repo.v2",
			wantClone: "https://github.com/my.org/some_repo.v2.git",
		},
		{
			input:      "https://github.com/o/r/tree/dev/sub/dir",
			wantType:   SourceTypeGitHub,
			wantOwner:  "o",
			wantRepo:   "r",
			wantBranch: "dev",
			wantSub:    "/sub/dir",
			wantClone:  "https://github.com/o/r.git",
		},
		{
			input:      "https://github.com/o/r/tree/main",
			wantType:   SourceTypeGitHub,
			wantOwner:  "o",
			wantRepo:   "r",
			wantBranch: "main",
			wantClone:  "https://github.com/o/r.git",
		},
		{
			input:     "https://github.com/vercel-labs/agent-skills.git",
			wantType:  SourceTypeGitHub,
			wantOwner: "vercel-labs",
			wantRepo:  "agent-skills",
			wantClone: "https://github.com/vercel-labs/agent-skills.git",
		},
		{
			input:     "http://github.com/owner/repo",
			wantType:  SourceTypeGitHub,
			wantOwner: "owner",
			wantRepo:  "repo",
			wantClone: "https://github.com/owner/repo.git",
		},
		{
			input:     "git@github.com:pandadoc/skill-registry.git",
			wantType:  SourceTypeGitHub,
			wantOwner: "pandadoc",
			wantRepo:  "skill-registry",
			wantClone: "https://github.com/pandadoc/skill-registry.git",
		},
		{
			input:     "git@github.com:owner/repo",
			wantType:  SourceTypeGitHub,
			wantOwner: "owner",
			wantRepo:  "repo",
			wantClone: "https://github.com/owner/repo.git",
		},
		{
			input:     "https://gitlab.com/org/repo",
			wantType:  SourceTypeGitLab,
			wantOwner: "org",
			wantRepo:  "repo",
			wantClone: "https://gitlab.com/org/repo.git",
		},
		{
			input:      "https://gitlab.com/org/repo/-/tree/release/skills/a",
			wantType:   SourceTypeGitLab,
			wantOwner:  "org",
			wantRepo:   "repo",
			wantBranch: "release",
			wantSub:    "/skills/a",
			wantClone:  "https://gitlab.com/org/repo.git",
		},
		{
			input:     "git@gitlab.com:org/repo.git",
			wantType:  SourceTypeGitLab,
			wantOwner: "org",
			wantRepo:  "repo",
			wantClone: "https://gitlab.com/org/repo.git",
		},
	}

	// Run from an empty directory so no relative path can shadow a short form.
	t.Chdir(t.TempDir())

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			src, err := ParseSource(tt.input)
			if err != nil {
				t.Fatalf("ParseSource(%q) error: %v", tt.input, err)
			}
			if src.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", src.Type, tt.wantType)
			}
			if src.Owner != tt.wantOwner {
				t.Errorf("Owner = %q, want %q", src.Owner, tt.wantOwner)
			}
			if src.Repo != tt.wantRepo {
				t.Errorf("Repo = %q, want %q", src.Repo, tt.wantRepo)
			}
			if src.Branch != tt.wantBranch {
				t.Errorf("Branch = %q, want %q", src.Branch, tt.wantBranch)
			}
			if src.SubPath != tt.wantSub {
				t.Errorf("SubPath = %q, want %q", src.SubPath, tt.wantSub)
			}
			if got := src.CloneURL(); got != tt.wantClone {
				t.Errorf("CloneURL() = %q, want %q", got, tt.wantClone)
			}
			if src.LocalPath != "" {
				t.Errorf("LocalPath = %q, want empty for remote source", src.LocalPath)
			}
			if src.Original != tt.input {
				t.Errorf("Original = %q, want %q", src.Original, tt.input)
			}
		})
	}
}

func TestParseSource_LocalPath(t *testing.T) {
	dir, _ := filepath.EvalSymlinks(t.TempDir())

	src, err := ParseSource(dir)
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if src.Type != SourceTypeLocal {
		t.Errorf("Type = %q, want %q", src.Type, SourceTypeLocal)
	}
	if src.LocalPath != dir {
		t.Errorf("LocalPath = %q, want %q", src.LocalPath, dir)
	}
	if src.CloneURL() != "" {
		t.Errorf("CloneURL() = %q, want empty for local source", src.CloneURL())
	}
}

func TestParseSource_LocalRelativePath(t *testing.T) {
	// Resolve symlinks (macOS /tmp -> /private/var)
	dir, _ := filepath.EvalSymlinks(t.TempDir())
	subDir := filepath.Join(dir, "skills")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	src, err := ParseSource("./skills")
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if src.Type != SourceTypeLocal {
		t.Errorf("Type = %q, want %q", src.Type, SourceTypeLocal)
	}
	if src.LocalPath != subDir {
		t.Errorf("LocalPath = %q, want %q", src.LocalPath, subDir)
	}
}

func TestParseSource_HomePath(t *testing.T) {
	home, _ := filepath.EvalSymlinks(t.TempDir())
	t.Setenv("HOME", home)
	if err := os.MkdirAll(filepath.Join(home, "my-skills"), 0o755); err != nil {
		t.Fatal(err)
	}

	src, err := ParseSource("~/my-skills")
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if src.Type != SourceTypeLocal {
		t.Errorf("Type = %q, want %q", src.Type, SourceTypeLocal)
	}
	if want := filepath.Join(home, "my-skills"); src.LocalPath != want {
		t.Errorf("LocalPath = %q, want %q", src.LocalPath, want)
	}
}

func TestParseSource_ExistingRelativeDirBeatsShortForm(t *testing.T) {
	dir, _ := filepath.EvalSymlinks(t.TempDir())
	if err := os.MkdirAll(filepath.Join(dir, "owner", "repo"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	src, err := ParseSource("owner/repo")
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if src.Type != SourceTypeLocal {
		t.Fatalf("Type = %q, want %q", src.Type, SourceTypeLocal)
	}
	if want := filepath.Join(dir, "owner", "repo"); src.LocalPath != want {
		t.Errorf("LocalPath = %q, want %q", src.LocalPath, want)
	}
	if src.Owner != "" || src.Repo != "" {
		t.Errorf("Owner/Repo = %q/%q, want empty for local source", src.Owner, src.Repo)
	}
}

func TestParseSource_MissingLocalPath(t *testing.T) {
	t.Chdir(t.TempDir())

	for _, input := range []string{"./does-not-exist", "/definitely/not/here", "~/no-such-dir-for-add-skills"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSource(input)
			var spe *SourceParseError
			if !errors.As(err, &spe) {
				t.Fatalf("ParseSource(%q) error = %v, want *SourceParseError", input, err)
			}
		})
	}
}

func TestParseSource_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	for _, input := range []string{"", "   ", "not a valid source !!", "just-a-word", "-owner/repo", "a/b/c"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSource(input)
			var spe *SourceParseError
			if !errors.As(err, &spe) {
				t.Fatalf("ParseSource(%q) error = %v, want *SourceParseError", input, err)
			}
		})
	}
}

func TestParsedSource_ApplyCloneURLOverride(t *testing.T) {
	src := &ParsedSource{Type: SourceTypeGitHub, Owner: "Acme", Repo: "skills"}

	src.ApplyCloneURLOverride(map[string]string{"other/repo": "file:///nope"})
	if got := src.CloneURL(); got != "https://github.com/Acme/skills.git" {
		t.Errorf("CloneURL() = %q, want default", got)
	}

	src.ApplyCloneURLOverride(map[string]string{"acme/skills": "file:///srv/skills"})
	if got := src.CloneURL(); got != "file:///srv/skills" {
		t.Errorf("CloneURL() = %q, want override", got)
	}

	local := &ParsedSource{Type: SourceTypeLocal, LocalPath: "/x"}
	local.ApplyCloneURLOverride(map[string]string{"": "file:///x"})
	if local.CloneURL() != "" {
		t.Errorf("local CloneURL() = %q, want empty", local.CloneURL())
	}
}
