package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Skills are installed by symlink: the install path is a link to the skill
// directory. A link that already resolves to the skill is left in place, and
// anything else at the install path is a collision.

// ResolveInstallPath returns where skill would be installed for agent.
//
// Local scope uses projectDir (the working directory when empty) joined with
// the agent's project skills dir. Global scope uses the agent's global skills
// dir with ~ and environment variables expanded.
func ResolveInstallPath(skill Skill, agent AgentDef, scope InstallScope, projectDir string) (string, error) {
	return installPath(skill.Name, agent, scope, projectDir)
}

func installPath(name string, agent AgentDef, scope InstallScope, projectDir string) (string, error) {
	if !validSkillDirName(name) {
		return "", &InstallError{Skill: name, Msg: fmt.Sprintf("invalid skill name %q", name)}
	}

	var base string
	switch scope {
	case ScopeGlobal:
		base = ResolveAgentGlobalSkillsDir(agent)
	default:
		if projectDir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return "", &InstallError{Skill: name, Msg: "determining working directory", Err: err}
			}
			projectDir = cwd
		}
		base = ResolveAgentSkillsDir(agent, projectDir)
	}

	abs, err := filepath.Abs(filepath.Join(base, name))
	if err != nil {
		return "", &InstallError{Skill: name, Msg: "resolving install path", Err: err}
	}
	return abs, nil
}

// Install links skill into the agent's skills directory and returns the
// install path.
//
// Re-installing a skill whose link already resolves to skill.Path succeeds
// without changes. Any other file, directory or link at the install path is
// an *InstallError, as is a failure creating the parent directories or link.
func Install(skill Skill, agent AgentDef, scope InstallScope, projectDir string) (string, error) {
	path, err := ResolveInstallPath(skill, agent, scope, projectDir)
	if err != nil {
		return "", err
	}

	linked, err := checkInstallPath(path, skill.Name, skill.Path)
	if err != nil {
		return "", err
	}
	if linked {
		return path, nil
	}

	parent := filepath.Dir(path)
	created, err := mkdirAllTracked(parent)
	if err != nil {
		return "", &InstallError{Skill: skill.Name, Path: path, Msg: "creating " + parent, Err: err}
	}

	if err := os.Symlink(skill.Path, path); err != nil {
		// Leave no empty directories behind from this attempt.
		for i := len(created) - 1; i >= 0; i-- {
			cleanupEmptyDir(created[i])
		}
		return "", &InstallError{Skill: skill.Name, Path: path, Msg: "creating symlink", Err: err}
	}

	return path, nil
}

// checkInstallPath inspects the install path of a skill whose files live
// at target. It reports true when path is already a link resolving to
// target, false when path is free, and an *InstallError for anything else.
func checkInstallPath(path, name, target string) (bool, error) {
	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, &InstallError{Skill: name, Path: path, Msg: "checking install path", Err: err}
	case info.Mode()&fs.ModeSymlink != 0 && linksTo(path, target):
		return true, nil
	default:
		return false, &InstallError{
			Skill: name,
			Path:  path,
			Msg:   fmt.Sprintf("%s already exists (%s)", path, describeEntry(info)),
		}
	}
}

// linksTo reports whether link resolves to the same location as target.
func linksTo(link, target string) bool {
	resolved, err := filepath.EvalSymlinks(link)
	if err != nil {
		return false
	}
	want, err := filepath.EvalSymlinks(target)
	if err != nil {
		return false
	}
	return resolved == want
}

// mkdirAllTracked is os.MkdirAll that also returns the directories it
// created, outermost first.
func mkdirAllTracked(dir string) ([]string, error) {
	var missing []string
	for p := dir; ; p = filepath.Dir(p) {
		if _, err := os.Lstat(p); err == nil {
			break
		}
		missing = append(missing, p)
		if filepath.Dir(p) == p {
			break
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	created := make([]string, 0, len(missing))
	for i := len(missing) - 1; i >= 0; i-- {
		created = append(created, missing[i])
	}
	return created, nil
}

func describeEntry(info fs.FileInfo) string {
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return "symlink to another location"
	case info.IsDir():
		return "directory"
	default:
		return "file"
	}
}
