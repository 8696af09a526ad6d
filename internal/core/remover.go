package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Uninstall removes the link for skillName from the agent's skills directory.
//
// It returns false when nothing is installed under that name. Only symlinks
// are removed: a real file or directory at the install path was not created
// by Install and yields an *InstallError instead.
func Uninstall(skillName string, agent AgentDef, scope InstallScope, projectDir string) (bool, error) {
	path, err := installPath(skillName, agent, scope, projectDir)
	if err != nil {
		return false, err
	}

	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &InstallError{Skill: skillName, Path: path, Msg: "checking install path", Err: err}
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		return false, &InstallError{
			Skill: skillName,
			Path:  path,
			Msg:   fmt.Sprintf("%s is not a symlink. Manual removal required for safety", path),
		}
	}

	if err := os.Remove(path); err != nil {
		return false, &InstallError{Skill: skillName, Path: path, Msg: "removing symlink", Err: err}
	}

	// Clean up the agent skills dir if we emptied it.
	cleanupEmptyDir(filepath.Dir(path))

	return true, nil
}
