package core

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const skillFileName = "SKILL.md"

// reservedKeys are front-matter keys mapped onto Skill fields rather than
// carried in Skill.Metadata.
var reservedKeys = map[string]bool{
	"name":        true,
	"description": true,
	"globs":       true,
	"agents":      true,
}

// ParseSkill reads dir/SKILL.md and builds a Skill from its front-matter.
//
// A file without a front-matter block yields a Skill with only the default
// name. An error means dir is not a usable skill: the file is missing or
// unreadable, or the front-matter is unterminated or not a YAML mapping.
func ParseSkill(dir string) (*Skill, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	path := filepath.Join(absDir, skillFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	fields, err := parseFrontmatter(data)
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter in %s: %w", path, err)
	}

	skill := &Skill{
		Name:     filepath.Base(absDir),
		Path:     absDir,
		Globs:    stringList(fields["globs"]),
		Agents:   stringList(fields["agents"]),
		Metadata: make(map[string]any),
	}
	if name, ok := fields["name"].(string); ok && strings.TrimSpace(name) != "" {
		skill.Name = strings.TrimSpace(name)
	}
	if desc, ok := fields["description"].(string); ok {
		skill.Description = desc
	}
	for k, v := range fields {
		if !reservedKeys[k] {
			skill.Metadata[k] = v
		}
	}

	return skill, nil
}

// parseFrontmatter extracts the YAML block delimited by "---" lines at the
// top of data. No opening delimiter means no front-matter.
func parseFrontmatter(data []byte) (map[string]any, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// Look for opening ---
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return map[string]any{}, nil
	}

	// Collect frontmatter lines until closing ---
	var frontmatter strings.Builder
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			closed = true
			break
		}
		frontmatter.WriteString(line)
		frontmatter.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !closed {
		return nil, fmt.Errorf("unterminated frontmatter")
	}

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(frontmatter.String()), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// stringList coerces a front-matter value into a list of strings.
// A single string becomes a one-element list, a list of strings is kept,
// and anything else yields an empty list.
func stringList(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return []string{}
			}
			out = append(out, s)
		}
		return out
	default:
		return []string{}
	}
}

// DiscoverSkills walks root and parses every directory holding a SKILL.md.
// Candidates that fail to parse are skipped. The result is sorted by name.
//
// Symlinked directories are not followed, so skills reachable only through
// a link are not found.
func DiscoverSkills(root string) ([]Skill, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var skills []Skill
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			if d.Name() == ".git" && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != skillFileName {
			return nil
		}

		skill, err := ParseSkill(filepath.Dir(path))
		if err != nil {
			return nil // not a skill
		}
		skills = append(skills, *skill)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Name < skills[j].Name
	})
	return skills, nil
}

// SkillBody returns the markdown of a SKILL.md with its front-matter block
// removed. Data without a complete block is returned unchanged.
func SkillBody(data []byte) string {
	text := strings.TrimPrefix(string(data), "\ufeff")
	first, rest, ok := strings.Cut(text, "\n")
	if !ok || strings.TrimSpace(first) != "---" {
		return text
	}
	for rest != "" {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		if strings.TrimSpace(line) == "---" {
			return strings.TrimLeft(rest, "\r\n")
		}
	}
	return text
}

// FindSkill returns the skill named name. An unknown name yields a
// *SkillNotFoundError listing the available names.
func FindSkill(skills []Skill, name string) (Skill, error) {
	available := make([]string, 0, len(skills))
	for _, s := range skills {
		if s.Name == name {
			return s, nil
		}
		available = append(available, s.Name)
	}
	return Skill{}, &SkillNotFoundError{
		Name:        name,
		Available:   available,
		Suggestions: suggest(name, available),
	}
}
