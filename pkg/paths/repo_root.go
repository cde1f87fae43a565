package paths

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jupyterlite/pkmext/pkg/pkmerrors"
)

// FindClosestManifest returns the path of the closest file called name,
// searching from path upward until root. It will not resolve outside root.
func FindClosestManifest(root, path, name string) (string, error) {
	dir, err := findClosestFile(root, path, func(s string) (bool, error) {
		checkPath := filepath.Join(s, name)
		fi, err := os.Stat(checkPath)
		if err != nil {
			return false, fmt.Errorf("%s: %w", checkPath, err)
		}

		return !fi.IsDir(), nil
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	return filepath.Join(dir, name), nil
}

// FindRepoRoot returns the closest (innermost) git repository root for the
// provided path by searching bottom-up from path toward /. This matches the
// behavior of git rev-parse --show-toplevel, correctly resolving worktrees
// nested inside a parent repository. If no git repository is found, it will
// return an error.
func FindRepoRoot(path string) (string, error) {
	// Look for a `.git` directory containing a `HEAD` file.
	target1 := ".git"
	target2 := "HEAD"

	f, err := findClosestFile("/", path, func(s string) (bool, error) {
		checkPath1 := filepath.Join(s, target1)
		fi1, err := os.Lstat(checkPath1)
		if err != nil {
			return false, fmt.Errorf("%s: %w", checkPath1, err)
		}

		var headPath string

		switch {
		case fi1.IsDir():
			headPath = filepath.Join(checkPath1, target2)
		default:
			gitDir, gitFileErr := resolveGitFile(checkPath1, s)
			if gitFileErr != nil {
				return false, nil //nolint:nilerr // Intentionally skip malformed .git files.
			}

			headPath = filepath.Join(gitDir, target2)
		}

		fi2, err := os.Lstat(headPath)
		if err != nil {
			return false, fmt.Errorf("%s: %w", headPath, err)
		}

		return !fi2.IsDir(), nil
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", filepath.Join(target1, target2), err)
	}

	return f, nil
}

// resolveGitFile reads a `.git` file (as used in git worktrees) and resolves
// the gitdir path it points to. Relative paths are resolved against baseDir.
func resolveGitFile(dotGitPath, baseDir string) (string, error) {
	f, err := os.Open(dotGitPath) //nolint:gosec // dotGitPath is constructed from filepath.Join, not user input.
	if err != nil {
		return "", fmt.Errorf("open git file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Best-effort close.

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", errors.New("empty git file")
	}

	line := strings.TrimSpace(scanner.Text())

	gitDir, found := strings.CutPrefix(line, "gitdir: ")
	if !found {
		return "", errors.New("missing gitdir prefix")
	}

	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(baseDir, gitDir)
	}

	return filepath.Clean(gitDir), nil
}

// findClosestFile walks from path upward toward root, returning the first
// directory where test returns true.
func findClosestFile(root, path string, test func(string) (bool, error)) (string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	pathAbs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	rel, err := filepath.Rel(rootAbs, pathAbs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", pkmerrors.ErrResolvedOutsideRepo
	}

	currentDir := pathAbs
	for {
		match, err := test(currentDir)
		if err == nil && match {
			return currentDir, nil
		}

		if currentDir == rootAbs {
			break
		}

		currentDir = filepath.Dir(currentDir)
	}

	return "", pkmerrors.ErrFileNotFound
}
