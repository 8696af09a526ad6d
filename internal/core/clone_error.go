package core

import (
	"errors"
	"fmt"
	"strings"
)

// CloneErrorKind classifies why a git clone failed.
type CloneErrorKind int

const (
	// CloneErrUnknown is an unclassified clone failure.
	CloneErrUnknown CloneErrorKind = iota
	// CloneErrRepoNotFound means the repository does not exist or is private.
	CloneErrRepoNotFound
	// CloneErrBranchNotFound means the requested branch does not exist.
	CloneErrBranchNotFound
	// CloneErrNetwork means the host could not be reached (DNS, connectivity).
	CloneErrNetwork
	// CloneErrTimeout means the clone operation timed out.
	CloneErrTimeout
	// CloneErrGitMissing means the git executable is not available.
	CloneErrGitMissing
)

// String returns a human-readable label for the error kind.
func (k CloneErrorKind) String() string {
	switch k {
	case CloneErrRepoNotFound:
		return "Repository Not Found"
	case CloneErrBranchNotFound:
		return "Branch Not Found"
	case CloneErrNetwork:
		return "Network Error"
	case CloneErrTimeout:
		return "Timeout"
	case CloneErrGitMissing:
		return "Git Not Installed"
	default:
		return "Unknown Error"
	}
}

// CloneError is a structured error returned when git clone fails.
// It wraps the raw git output with classification and actionable hints.
type CloneError struct {
	Kind      CloneErrorKind
	URL       string   // The clone URL that was attempted
	Command   string   // The full git command that was run (for display)
	RawOutput string   // Raw stderr/stdout from git
	Hints     []string // Actionable suggestions for the user
}

// Error implements the error interface.
func (e *CloneError) Error() string {
	return fmt.Sprintf("git clone failed (%s): %s", e.Kind, e.firstLine())
}

// firstLine returns the first meaningful line of git output.
func (e *CloneError) firstLine() string {
	for _, line := range strings.Split(e.RawOutput, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "Cloning into") {
			return line
		}
	}
	return "clone failed"
}

// IsCloneError checks whether err wraps a *CloneError and returns it.
func IsCloneError(err error) (*CloneError, bool) {
	var ce *CloneError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ClassifyCloneError examines git clone output and returns a structured CloneError.
func ClassifyCloneError(cloneURL, command, rawOutput string) *CloneError {
	kind := classifyOutput(rawOutput)
	return &CloneError{
		Kind:      kind,
		URL:       cloneURL,
		Command:   command,
		RawOutput: strings.TrimSpace(rawOutput),
		Hints:     hintsForError(kind),
	}
}

// classifyOutput pattern-matches git stderr to determine the error kind.
func classifyOutput(output string) CloneErrorKind {
	lower := strings.ToLower(output)

	// Set by us, not git.
	if strings.Contains(lower, "timed out after") {
		return CloneErrTimeout
	}

	if strings.Contains(lower, "executable file not found") {
		return CloneErrGitMissing
	}

	if strings.Contains(lower, "remote branch") && strings.Contains(lower, "not found") {
		return CloneErrBranchNotFound
	}

	// Credential prompts count as not found: private repositories are unsupported.
	if strings.Contains(lower, "repository not found") ||
		strings.Contains(lower, "does not appear to be a git repository") ||
		strings.Contains(lower, "could not be found") ||
		(strings.Contains(lower, "fatal: repository") && strings.Contains(lower, "not found")) ||
		strings.Contains(lower, "could not read username") ||
		strings.Contains(lower, "authentication failed") ||
		strings.Contains(lower, "returned error: 404") {
		return CloneErrRepoNotFound
	}

	if strings.Contains(lower, "could not resolve host") ||
		strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "connection timed out") ||
		strings.Contains(lower, "network is unreachable") ||
		strings.Contains(lower, "no route to host") ||
		strings.Contains(lower, "name or service not known") {
		return CloneErrNetwork
	}

	return CloneErrUnknown
}

// hintsForError returns actionable suggestions for the error kind.
func hintsForError(kind CloneErrorKind) []string {
	switch kind {
	case CloneErrRepoNotFound:
		return []string{
			"Verify the owner and repository name",
			"Private repositories are not supported",
		}
	case CloneErrBranchNotFound:
		return []string{
			"Check the branch name after '#' or '/tree/'",
			"Omit the branch to use the repository's default branch",
		}
	case CloneErrNetwork:
		return []string{
			"Check your internet connection",
			"If behind a proxy, ensure git is configured to use it",
		}
	case CloneErrTimeout:
		return []string{
			"The repository may be very large or the network slow",
			"Raise cloneTimeout in the config file and try again",
		}
	case CloneErrGitMissing:
		return []string{"Install git and make sure it is on your PATH"}
	default:
		return []string{"Try cloning manually: `git clone <url>` to diagnose the issue"}
	}
}

// FormatCommand builds the display string for a shallow clone command.
func FormatCommand(url, branch string) string {
	return strings.Join(append([]string{"git"}, cloneArgs(url, branch, "")...), " ")
}

// cloneArgs returns the git arguments for a shallow single-branch clone.
// dest is omitted when empty.
func cloneArgs(url, branch, dest string) []string {
	args := []string{"clone", "--depth", "1", "--single-branch"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, url)
	if dest != "" {
		args = append(args, dest)
	}
	return args
}
