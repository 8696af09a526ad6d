package core

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store keeps persistent copies of skills fetched from remote sources, laid
// out as <root>/<host>/<owner>/<repo>/<skill>. Installed links point into the
// store because the clone they came from is temporary.
type Store struct {
	root string
}

// NewStore creates a Store rooted at root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the store directory.
func (s *Store) Root() string { return s.root }

// Dir returns where skillName from src is kept.
func (s *Store) Dir(src *ParsedSource, skillName string) string {
	return filepath.Join(s.root, src.Type.Host(), sanitizeName(src.Owner), sanitizeName(src.Repo), skillName)
}

// Put copies skill into the store and returns it with Path pointing at the
// stored copy. An existing copy is replaced as a whole, so links to it
// never observe a half-written directory.
func (s *Store) Put(src *ParsedSource, skill Skill) (Skill, error) {
	if src == nil || !src.IsRemote() {
		return Skill{}, fmt.Errorf("storing %q: %w", skill.Name, ErrInvalidSource)
	}
	if !validSkillDirName(skill.Name) {
		return Skill{}, &InstallError{Skill: skill.Name, Msg: fmt.Sprintf("invalid skill name %q", skill.Name)}
	}

	dst := s.Dir(src, skill.Name)
	parent := filepath.Dir(dst)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return Skill{}, fmt.Errorf("creating store dir: %w", err)
	}

	staging, err := os.MkdirTemp(parent, "."+skill.Name+"-*")
	if err != nil {
		return Skill{}, fmt.Errorf("creating staging dir: %w", err)
	}
	if err := copyDirectory(skill.Path, staging); err != nil {
		_ = os.RemoveAll(staging)
		return Skill{}, fmt.Errorf("copying %q to store: %w", skill.Name, err)
	}
	// MkdirTemp creates 0700 directories.
	if err := os.Chmod(staging, 0o755); err != nil {
		_ = os.RemoveAll(staging)
		return Skill{}, fmt.Errorf("copying %q to store: %w", skill.Name, err)
	}

	if err := os.RemoveAll(dst); err != nil {
		_ = os.RemoveAll(staging)
		return Skill{}, fmt.Errorf("replacing stored %q: %w", skill.Name, err)
	}
	if err := os.Rename(staging, dst); err != nil {
		_ = os.RemoveAll(staging)
		return Skill{}, fmt.Errorf("replacing stored %q: %w", skill.Name, err)
	}

	stored := skill
	stored.Path = dst
	return stored, nil
}
