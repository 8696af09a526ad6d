package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ludo-technologies/add-skills/internal/logging"
)

// Orchestrator runs the add flow: obtain the source tree, discover its
// skills, and install them one by one.
type Orchestrator struct {
	fetcher *Fetcher
	store   *Store
	logger  *slog.Logger
}

// NewOrchestrator creates an Orchestrator. A nil logger discards output.
func NewOrchestrator(fetcher *Fetcher, store *Store, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		fetcher: fetcher,
		store:   store,
		logger:  logging.OrDiscard(logger),
	}
}

// PreparedSource is a source whose files are available on disk.
// Close must be called once the flow is finished.
type PreparedSource struct {
	Source *ParsedSource
	Root   string // Directory to discover skills in
	tmpDir string
}

// Close removes the temporary clone, if any. It is safe to call more than once.
func (p *PreparedSource) Close() error {
	if p == nil || p.tmpDir == "" {
		return nil
	}
	err := os.RemoveAll(p.tmpDir)
	p.tmpDir = ""
	return err
}

// Prepare makes src available on disk. Local sources are used in place;
// remote sources are cloned into a fresh temporary directory.
func (o *Orchestrator) Prepare(ctx context.Context, src *ParsedSource) (*PreparedSource, error) {
	if !src.IsRemote() {
		return &PreparedSource{Source: src, Root: src.LocalPath}, nil
	}

	tmpDir, err := os.MkdirTemp("", "add-skills-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}

	root, err := o.fetcher.Fetch(ctx, src, tmpDir)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, err
	}
	return &PreparedSource{Source: src, Root: root, tmpDir: tmpDir}, nil
}

// Discover lists the skills in a prepared source. A non-empty only narrows
// the result to that skill and fails with *SkillNotFoundError if absent.
func (o *Orchestrator) Discover(p *PreparedSource, only string) ([]Skill, error) {
	skills, err := DiscoverSkills(p.Root)
	if err != nil {
		return nil, fmt.Errorf("discovering skills: %w", err)
	}
	o.logger.Debug("discovered skills", "root", p.Root, "count", len(skills))

	if only == "" || len(skills) == 0 {
		return skills, nil
	}
	skill, err := FindSkill(skills, only)
	if err != nil {
		return nil, err
	}
	return []Skill{skill}, nil
}

// InstallResult is the outcome for one skill.
type InstallResult struct {
	Skill Skill
	Path  string // Install path, empty on failure
	Err   error
}

// InstallSkills installs each skill for agent. Failures are recorded per
// skill and do not stop the remaining installs. A name already used earlier
// in the batch fails instead of replacing the first skill. Skills from
// remote sources are copied into the store first so their links outlive
// the clone.
func (o *Orchestrator) InstallSkills(src *ParsedSource, skills []Skill, agent AgentDef, scope InstallScope, projectDir string) []InstallResult {
	results := make([]InstallResult, 0, len(skills))
	seen := make(map[string]string, len(skills))
	for _, skill := range skills {
		res := InstallResult{Skill: skill}

		if first, dup := seen[skill.Name]; dup {
			res.Err = &InstallError{
				Skill: skill.Name,
				Msg:   fmt.Sprintf("duplicate skill name %q (also defined in %s)", skill.Name, first),
			}
			o.logger.Warn("skipping duplicate skill", "skill", skill.Name, "path", skill.Path)
			results = append(results, res)
			continue
		}
		seen[skill.Name] = skill.Path

		target := skill
		if src.IsRemote() {
			// The stored copy is only written once the install path is known
			// to be free or already linked into the store.
			if err := o.checkStoreTarget(src, skill, agent, scope, projectDir); err != nil {
				res.Err = err
				o.logger.Warn("installing skill failed", "skill", skill.Name, "agent", agent.Name, "err", err)
				results = append(results, res)
				continue
			}
			stored, err := o.store.Put(src, skill)
			if err != nil {
				res.Err = err
				o.logger.Warn("storing skill failed", "skill", skill.Name, "err", err)
				results = append(results, res)
				continue
			}
			target = stored
		}

		path, err := Install(target, agent, scope, projectDir)
		if err != nil {
			res.Err = err
			o.logger.Warn("installing skill failed", "skill", skill.Name, "agent", agent.Name, "err", err)
		} else {
			res.Path = path
			o.logger.Debug("installed skill", "skill", skill.Name, "path", path, "scope", scope.String())
		}
		results = append(results, res)
	}
	return results
}

// checkStoreTarget fails when the install path of skill is taken by
// anything other than a link to its stored copy.
func (o *Orchestrator) checkStoreTarget(src *ParsedSource, skill Skill, agent AgentDef, scope InstallScope, projectDir string) error {
	path, err := ResolveInstallPath(skill, agent, scope, projectDir)
	if err != nil {
		return err
	}
	_, err = checkInstallPath(path, skill.Name, o.store.Dir(src, skill.Name))
	return err
}

// CountInstalled returns how many results succeeded.
func CountInstalled(results []InstallResult) int {
	n := 0
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}
