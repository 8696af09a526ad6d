package core

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// excludedFiles are files/dirs excluded when copying skills.
var excludedFiles = map[string]bool{
	".git":      true,
	".DS_Store": true,
}

var sanitizeRegexp = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// copyDirectory copies the contents of src to dst, excluding certain files.
// Symlinks inside src are recreated as links, not followed.
func copyDirectory(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		// Skip excluded files
		if rel != "." && excludedFiles[d.Name()] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		dstPath := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(dstPath, 0o755)
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(target, dstPath)
		default:
			return copyFile(path, dstPath)
		}
	})
}

// copyFile copies a single file from src to dst.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer func() { _ = dstFile.Close() }()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// sanitizeName normalizes a name for use as a single path segment.
func sanitizeName(name string) string {
	name = strings.ToLower(name)
	name = sanitizeRegexp.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if len(name) > 255 {
		name = name[:255]
	}
	if name == "" {
		name = "unnamed"
	}
	return name
}

// validSkillDirName reports whether name can be used verbatim as the last
// segment of an install path.
func validSkillDirName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}

// cleanupEmptyDir removes a directory if it is empty.
func cleanupEmptyDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	if len(entries) == 0 {
		_ = os.Remove(dir)
	}
}
