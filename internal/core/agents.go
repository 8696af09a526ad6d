package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"
)

// DefaultAgent is the agent used when none is given on the command line
// or in the config file.
const DefaultAgent = "claude-code"

// agents is the fixed agent table. Order is the display order for ListAgents.
// Global directories may use ~, $VAR and $XDG_CONFIG; they are expanded at
// use time by ResolveAgentGlobalSkillsDir.
var agents = []AgentDef{
	{Name: "claude-code", DisplayName: "Claude Code", SkillsDir: ".claude/skills", GlobalSkillsDir: "~/.claude/skills"},
	{Name: "cursor", DisplayName: "Cursor", SkillsDir: ".cursor/skills", GlobalSkillsDir: "~/.cursor/skills"},
	{Name: "codex", DisplayName: "Codex", SkillsDir: ".codex/skills", GlobalSkillsDir: "$CODEX_HOME/skills"},
	{Name: "gemini-cli", DisplayName: "Gemini CLI", SkillsDir: ".gemini/skills", GlobalSkillsDir: "~/.gemini/skills"},
	{Name: "github-copilot", DisplayName: "GitHub Copilot", SkillsDir: ".github/skills", GlobalSkillsDir: "~/.copilot/skills"},
	{Name: "goose", DisplayName: "Goose", SkillsDir: ".goose/skills", GlobalSkillsDir: "$XDG_CONFIG/goose/skills"},
	{Name: "opencode", DisplayName: "OpenCode", SkillsDir: ".opencode/skills", GlobalSkillsDir: "$XDG_CONFIG/opencode/skills"},
	{Name: "windsurf", DisplayName: "Windsurf", SkillsDir: ".windsurf/skills", GlobalSkillsDir: "~/.codeium/windsurf/skills"},
	{Name: "cline", DisplayName: "Cline", SkillsDir: ".cline/skills", GlobalSkillsDir: "~/.cline/skills"},
	{Name: "roo", DisplayName: "Roo Code", SkillsDir: ".roo/skills", GlobalSkillsDir: "~/.roo/skills"},
	{Name: "continue", DisplayName: "Continue", SkillsDir: ".continue/skills", GlobalSkillsDir: "~/.continue/skills"},
	{Name: "amazon-q", DisplayName: "Amazon Q", SkillsDir: ".amazonq/skills", GlobalSkillsDir: "~/.aws/amazonq/skills"},
	{Name: "kiro", DisplayName: "Kiro", SkillsDir: ".kiro/skills", GlobalSkillsDir: "~/.kiro/skills"},
	{Name: "universal", DisplayName: "Universal (.agents)", SkillsDir: ".agents/skills", GlobalSkillsDir: "~/.agents/skills"},
}

// ListAgents returns every supported agent in display order.
// The returned slice is a copy and may be modified by the caller.
func ListAgents() []AgentDef {
	out := make([]AgentDef, len(agents))
	copy(out, agents)
	return out
}

// AgentNames returns the ids of every supported agent in display order.
func AgentNames() []string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name
	}
	return names
}

// GetAgent looks up an agent by id.
// Unknown ids yield an *AgentNotFoundError listing the known ids and the
// closest matches.
func GetAgent(name string) (AgentDef, error) {
	for _, a := range agents {
		if a.Name == name {
			return a, nil
		}
	}
	known := AgentNames()
	return AgentDef{}, &AgentNotFoundError{
		Name:        name,
		Known:       known,
		Suggestions: suggest(name, known),
	}
}

// ResolveAgentSkillsDir resolves the project-level skill directory for an agent,
// relative to the given base directory.
func ResolveAgentSkillsDir(agent AgentDef, baseDir string) string {
	return filepath.Join(baseDir, agent.SkillsDir)
}

// ResolveAgentGlobalSkillsDir resolves the global skill directory for an agent,
// expanding ~ and environment variables.
func ResolveAgentGlobalSkillsDir(agent AgentDef) string {
	return expandPath(agent.GlobalSkillsDir)
}

// suggest returns up to three candidates that fuzzy-match input, best first.
func suggest(input string, candidates []string) []string {
	if input == "" {
		return nil
	}
	matches := fuzzy.Find(strings.ToLower(input), candidates)
	var out []string
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// expandPath expands ~ to home directory and $VAR / $XDG_CONFIG to env values.
func expandPath(p string) string {
	// Handle $XDG_CONFIG
	if strings.Contains(p, "$XDG_CONFIG") {
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig == "" {
			home, _ := os.UserHomeDir()
			xdgConfig = filepath.Join(home, ".config")
		}
		p = strings.ReplaceAll(p, "$XDG_CONFIG", xdgConfig)
	}

	// $CODEX_HOME falls back to ~/.codex when unset.
	if strings.Contains(p, "$CODEX_HOME") && os.Getenv("CODEX_HOME") == "" {
		p = strings.ReplaceAll(p, "$CODEX_HOME", "~/.codex")
	}

	if strings.Contains(p, "$") {
		p = os.Expand(p, os.Getenv)
	}

	// Handle ~
	if strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		p = filepath.Join(home, p[2:])
	} else if p == "~" {
		home, _ := os.UserHomeDir()
		p = home
	}

	return p
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
