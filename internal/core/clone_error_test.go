package core

import (
	"fmt"
	"testing"
)

func TestClassifyOutput(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		wantKind CloneErrorKind
	}{
		// Repository not found, including private repositories.
		{
			name:     "github repo not found",
			output:   "remote: Repository not found.\nfatal: repository 'https://github.com/owner/repo.git/' not found",
			wantKind: CloneErrRepoNotFound,
		},
		{
			name:     "not a git repository",
			output:   "fatal: 'https://example.com/foo' does not appear to be a git repository\nfatal: Could not read from remote repository.",
			wantKind: CloneErrRepoNotFound,
		},
		{
			name:     "gitlab project not found",
			output:   "remote: The project you were looking for could not be found.\nfatal: repository 'https://gitlab.com/owner/repo.git/' not found",
			wantKind: CloneErrRepoNotFound,
		},
		{
			name:     "credential prompt disabled",
			output:   "fatal: could not read Username for 'https://github.com': terminal prompts disabled",
			wantKind: CloneErrRepoNotFound,
		},

		// Branch.
		{
			name:     "missing branch",
			output:   "Cloning into '/tmp/x'...\nwarning: Could not find remote branch nope to clone.\nfatal: Remote branch nope not found in upstream origin",
			wantKind: CloneErrBranchNotFound,
		},

		// Network errors.
		{
			name:     "could not resolve host",
			output:   "fatal: unable to access 'https://github.com/owner/repo.git/': Could not resolve host: github.com",
			wantKind: CloneErrNetwork,
		},
		{
			name:     "connection refused",
			output:   "fatal: unable to access 'https://github.com/owner/repo.git/': Failed to connect to github.com port 443: Connection refused",
			wantKind: CloneErrNetwork,
		},
		{
			name:     "connection timed out is a network error",
			output:   "fatal: unable to access 'https://github.com/o/r.git/': Connection timed out",
			wantKind: CloneErrNetwork,
		},

		// Timeout.
		{
			name:     "our timeout",
			output:   "command timed out after 1m0s",
			wantKind: CloneErrTimeout,
		},

		// Git missing.
		{
			name:     "git missing",
			output:   `exec: "git": executable file not found in $PATH`,
			wantKind: CloneErrGitMissing,
		},

		// Unknown.
		{
			name:     "unknown error",
			output:   "fatal: something unexpected happened",
			wantKind: CloneErrUnknown,
		},
		{
			name:     "empty output",
			output:   "",
			wantKind: CloneErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyOutput(tt.output)
			if got != tt.wantKind {
				t.Errorf("classifyOutput(%q) = %v, want %v", tt.output, got, tt.wantKind)
			}
		})
	}
}

func TestClassifyCloneError(t *testing.T) {
	ce := ClassifyCloneError(
		"https://github.com/owner/repo.git",
		FormatCommand("https://github.com/owner/repo.git", "dev"),
		"Cloning into '/tmp/foo'...\nremote: Repository not found.\n",
	)

	if ce.Kind != CloneErrRepoNotFound {
		t.Errorf("Kind = %v, want CloneErrRepoNotFound", ce.Kind)
	}
	if ce.URL != "https://github.com/owner/repo.git" {
		t.Errorf("URL = %q, want %q", ce.URL, "https://github.com/owner/repo.git")
	}
	wantCmd := "git clone --depth 1 --single-branch --branch dev https://github.com/owner/repo.git"
	if ce.Command != wantCmd {
		t.Errorf("Command = %q, want %q", ce.Command, wantCmd)
	}
	if len(ce.Hints) == 0 {
		t.Error("expected non-empty hints")
	}
	if got, want := ce.Error(), "git clone failed (Repository Not Found): remote: Repository not found."; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsCloneError(t *testing.T) {
	ce := ClassifyCloneError("u", "c", "boom")
	wrapped := fmt.Errorf("fetching: %w", ce)

	got, ok := IsCloneError(wrapped)
	if !ok || got != ce {
		t.Fatalf("IsCloneError(wrapped) = %v, %v; want original error", got, ok)
	}
	if _, ok := IsCloneError(fmt.Errorf("plain")); ok {
		t.Error("IsCloneError(plain) = true, want false")
	}
	if _, ok := IsCloneError(nil); ok {
		t.Error("IsCloneError(nil) = true, want false")
	}
}

func TestCloneErrorKindString(t *testing.T) {
	tests := []struct {
		kind CloneErrorKind
		want string
	}{
		{CloneErrRepoNotFound, "Repository Not Found"},
		{CloneErrBranchNotFound, "Branch Not Found"},
		{CloneErrNetwork, "Network Error"},
		{CloneErrTimeout, "Timeout"},
		{CloneErrGitMissing, "Git Not Installed"},
		{CloneErrUnknown, "Unknown Error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
