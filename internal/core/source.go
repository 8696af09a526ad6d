package core

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Remote source shapes, tried in order. Full URLs before SSH before short form.
var (
	githubPatterns = []*regexp.Regexp{
		// https://github.com/owner/repo[.git][/tree/branch[/subpath]]
		regexp.MustCompile(`^https?://github\.com/(?P<owner>[^/]+)/(?P<repo>[^/]+?)(?:\.git)?(?:/tree/(?P<branch>[^/]+)(?P<subpath>/.*)?)?$`),
		// git@github.com:owner/repo[.git]
		regexp.MustCompile(`^git@github\.com:(?P<owner>[^/]+)/(?P<repo>[^/]+?)(?:\.git)?$`),
		// owner/repo[#branch]
		regexp.MustCompile(`^(?P<owner>[A-Za-z0-9][-A-Za-z0-9._]*)/(?P<repo>[A-Za-z0-9][-A-Za-z0-9._]*)(?:#(?P<branch>.+))?$`),
	}

	gitlabPatterns = []*regexp.Regexp{
		// https://gitlab.com/owner/repo[.git][/-/tree/branch[/subpath]]
		regexp.MustCompile(`^https?://gitlab\.com/(?P<owner>[^/]+)/(?P<repo>[^/]+?)(?:\.git)?(?:/-/tree/(?P<branch>[^/]+)(?P<subpath>/.*)?)?$`),
		// git@gitlab.com:owner/repo[.git]
		regexp.MustCompile(`^git@gitlab\.com:(?P<owner>[^/]+)/(?P<repo>[^/]+?)(?:\.git)?$`),
	}
)

// ParseSource classifies a source string.
//
// Supported formats, first match wins:
//   - "./dir", "/abs/dir", "~/dir" or any existing path → local directory
//   - "https://github.com/owner/repo/tree/branch/sub"  → GitHub URL
//   - "git@github.com:owner/repo.git"                   → GitHub SSH
//   - "owner/repo" or "owner/repo#branch"               → GitHub short form
//   - "https://gitlab.com/owner/repo/-/tree/branch/sub" → GitLab URL
//   - "git@gitlab.com:owner/repo.git"                   → GitLab SSH
//
// A relative path that exists on disk wins over the owner/repo short form.
func ParseSource(input string) (*ParsedSource, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, &SourceParseError{Input: input, Reason: "empty source"}
	}

	if isLocalPath(input) || exists(expandHome(input)) {
		return parseLocalSource(input)
	}

	if src := matchRemote(input, SourceTypeGitHub, githubPatterns); src != nil {
		return src, nil
	}
	if src := matchRemote(input, SourceTypeGitLab, gitlabPatterns); src != nil {
		return src, nil
	}

	return nil, &SourceParseError{
		Input: input,
		Reason: fmt.Sprintf("invalid source format: %q. Expected: local path, owner/repo[#branch], "+
			"or a full GitHub/GitLab URL", input),
	}
}

func isLocalPath(input string) bool {
	return strings.HasPrefix(input, ".") ||
		strings.HasPrefix(input, "/") ||
		strings.HasPrefix(input, "~")
}

func parseLocalSource(input string) (*ParsedSource, error) {
	expanded := expandHome(input)
	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return nil, &SourceParseError{Input: input, Reason: fmt.Sprintf("resolving local path %s: %v", input, err)}
	}
	if !exists(absPath) {
		return nil, &SourceParseError{Input: input, Reason: fmt.Sprintf("local path does not exist: %s", input)}
	}
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = resolved
	}

	return &ParsedSource{
		Type:      SourceTypeLocal,
		LocalPath: absPath,
		Original:  input,
	}, nil
}

// matchRemote tries each pattern in order and builds a remote source from
// the first match.
func matchRemote(input string, sourceType SourceType, patterns []*regexp.Regexp) *ParsedSource {
	for _, re := range patterns {
		m := re.FindStringSubmatch(input)
		if m == nil {
			continue
		}
		return &ParsedSource{
			Type:     sourceType,
			Owner:    group(re, m, "owner"),
			Repo:     group(re, m, "repo"),
			Branch:   group(re, m, "branch"),
			SubPath:  group(re, m, "subpath"),
			Original: input,
		}
	}
	return nil
}

// group returns the named capture or "" when the pattern lacks it or it
// did not participate in the match.
func group(re *regexp.Regexp, match []string, name string) string {
	idx := re.SubexpIndex(name)
	if idx < 0 || idx >= len(match) {
		return ""
	}
	return match[idx]
}

// expandHome expands a leading "~" or "~/" to the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
