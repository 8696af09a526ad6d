package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	// ErrInvalidSource is returned when an operation needs a remote source
	// but got a local one.
	ErrInvalidSource = errors.New("invalid source")

	// ErrSubpathNotFound is returned when a source's subpath does not exist
	// in the fetched tree.
	ErrSubpathNotFound = errors.New("subpath not found in repository")
)

// SourceParseError is returned when a source string is malformed or names
// a local path that does not exist.
type SourceParseError struct {
	Input  string
	Reason string
}

func (e *SourceParseError) Error() string {
	return e.Reason
}

// InstallError is returned when installing or uninstalling a skill fails:
// a collision at the install path, an OS-level failure, or a refused removal.
type InstallError struct {
	Skill string
	Path  string
	Msg   string
	Err   error
}

func (e *InstallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *InstallError) Unwrap() error { return e.Err }

// RegistryFetchError is a transport-level failure while fetching the registry.
type RegistryFetchError struct {
	URL string
	Msg string
	Err error
}

func (e *RegistryFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *RegistryFetchError) Unwrap() error { return e.Err }

// RegistryParseError is returned when the registry payload is malformed.
type RegistryParseError struct {
	Index int // Offending element, -1 for document-level problems
	Msg   string
	Err   error
}

func (e *RegistryParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *RegistryParseError) Unwrap() error { return e.Err }

// AgentNotFoundError is returned for an unknown agent id.
type AgentNotFoundError struct {
	Name        string
	Known       []string
	Suggestions []string
}

func (e *AgentNotFoundError) Error() string {
	msg := fmt.Sprintf("unknown agent %q; available: %s", e.Name, strings.Join(e.Known, ", "))
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// SkillNotFoundError is returned when a named skill is not among the
// discovered ones.
type SkillNotFoundError struct {
	Name        string
	Available   []string
	Suggestions []string
}

func (e *SkillNotFoundError) Error() string {
	msg := fmt.Sprintf("skill %q not found", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	} else if len(e.Available) > 0 {
		msg += ". Available: " + strings.Join(e.Available, ", ")
	}
	return msg
}
