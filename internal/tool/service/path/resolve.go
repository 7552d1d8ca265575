package path

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/confine/internal/tool/errutil"
)

// maxSymlinkHops bounds how many symlinks a single resolution may traverse.
// Loops are reported as a chain that is too long.
const maxSymlinkHops = 64

// FileSystem is the minimal filesystem surface needed to inspect symlinks.
type FileSystem interface {
	Lstat(path string) (os.FileInfo, error)
	Readlink(path string) (string, error)
}

// Resolver provides path resolution within a workspace boundary.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	workspaceRoot string
	fs            FileSystem
}

// NewResolver creates a new path resolver for the given workspace.
// workspaceRoot must already be canonical (see CanonicaliseRoot).
func NewResolver(workspaceRoot string, fs FileSystem) *Resolver {
	return &Resolver{
		workspaceRoot: workspaceRoot,
		fs:            fs,
	}
}

// Root returns the workspace root the resolver is bound to.
func (r *Resolver) Root() string {
	return r.workspaceRoot
}

// CanonicaliseRoot canonicalises a workspace root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &WorkspaceRootError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &WorkspaceRootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &WorkspaceRootError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Abs resolves path against the workspace root and proves containment.
//
// Relative paths are joined to the root, absolute paths are taken as-is, and the
// result is cleaned. The cleaned path must be the root or nested under it,
// compared component-wise. Every existing component is then walked; a symlink
// whose target leaves the root rejects the whole path. Components that do not
// exist yet are accepted so that callers can create them.
//
// The returned path is the lexical one. An *OutsideWorkspaceError carries it too.
func (r *Resolver) Abs(path string) (string, error) {
	if r.workspaceRoot == "" {
		return "", ErrWorkspaceRootNotSet
	}

	abs := r.Join(path)
	if !isWithinWorkspace(abs, r.workspaceRoot) {
		return "", &OutsideWorkspaceError{Path: abs}
	}

	if err := r.checkSymlinks(abs); err != nil {
		return "", err
	}

	return abs, nil
}

// Join returns the lexical absolute form of path without checking containment.
// Error messages name this form, so it is available even when Abs rejects path.
func (r *Resolver) Join(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(r.workspaceRoot, path)
}

// Rel resolves path like Abs and returns it relative to the root with forward slashes.
// The root itself is returned as "".
func (r *Resolver) Rel(path string) (string, error) {
	abs, err := r.Abs(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(r.workspaceRoot, abs)
	if err != nil {
		return "", &OutsideWorkspaceError{Path: abs}
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// checkSymlinks walks abs component by component from the root and fails if
// any symlink on the way points outside the workspace.
func (r *Resolver) checkSymlinks(abs string) error {
	hops := 0
	if _, _, err := r.walk(abs, &hops); err != nil {
		if _, ok := err.(*OutsideWorkspaceError); ok {
			return &OutsideWorkspaceError{Path: abs}
		}
		return err
	}
	return nil
}

// walk returns the real location of abs, which must be lexically inside the root,
// and whether it exists. Each symlink target is checked against the root and then
// walked again from the root, so links hidden inside a target's own directories
// are followed as well. hops is shared across the recursion and bounds loops.
func (r *Resolver) walk(abs string, hops *int) (resolvedPath string, exists bool, err error) {
	rel, err := filepath.Rel(r.workspaceRoot, abs)
	if err != nil {
		return "", false, &OutsideWorkspaceError{Path: abs}
	}
	if rel == "." {
		return r.workspaceRoot, true, nil
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	current := r.workspaceRoot
	for i, part := range parts {
		next := filepath.Join(current, part)

		info, err := r.fs.Lstat(next)
		if err != nil {
			if errutil.IsNotExist(err) {
				return filepath.Join(append([]string{next}, parts[i+1:]...)...), false, nil
			}
			return "", false, &LstatError{Path: next, Cause: err}
		}

		if info.Mode()&os.ModeSymlink == 0 {
			current = next
			continue
		}

		*hops++
		if *hops > maxSymlinkHops {
			return "", false, &SymlinkChainTooLongError{MaxHops: maxSymlinkHops}
		}

		target, err := r.fs.Readlink(next)
		if err != nil {
			return "", false, &ReadlinkError{Path: next, Cause: err}
		}
		if filepath.IsAbs(target) {
			target = filepath.Clean(target)
		} else {
			target = filepath.Join(current, target)
		}
		if !isWithinWorkspace(target, r.workspaceRoot) {
			return "", false, &OutsideWorkspaceError{Path: target}
		}

		resolved, ok, err := r.walk(target, hops)
		if err != nil {
			return "", false, err
		}
		if !ok {
			// Dangling link: nothing below it can exist either.
			return filepath.Join(append([]string{resolved}, parts[i+1:]...)...), false, nil
		}
		current = resolved
	}
	return current, true, nil
}

// isWithinWorkspace reports whether path is root or lies beneath it.
// The comparison is component-wise: /work does not contain /work2.
func isWithinWorkspace(path, root string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	if filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
