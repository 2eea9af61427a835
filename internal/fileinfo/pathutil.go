package fileinfo

import (
	"path"
	"strings"
)

// IsSMBDisplay reports whether the path is a canonical smb display path (smb://...).
func IsSMBDisplay(p string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(p)), "smb://")
}

// SplitPath returns the components of a slash-separated path after cleaning.
// The root has no components.
func SplitPath(p string) []string {
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// RelativePath returns the path that leads from base to target, using ".."
// for every base component beyond their common ancestor:
//
//	RelativePath("/foo/bar", "/")        == "foo/bar"
//	RelativePath("/foo/bar", "/foo/bar") == ""
//	RelativePath("/foo/bar", "/foo/baz") == "../bar"
//	RelativePath("/foo/bar", "/baz/bla") == "../../foo/bar"
//
// Joining the result onto base yields target again.
func RelativePath(target, base string) string {
	t := SplitPath(target)
	b := SplitPath(base)

	common := 0
	for common < len(t) && common < len(b) && t[common] == b[common] {
		common++
	}

	parts := make([]string, 0, len(b)-common+len(t)-common)
	for range b[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, t[common:]...)
	return strings.Join(parts, "/")
}

// HasPathPrefix reports whether base is p or one of its ancestors, compared
// component by component so that /foo/barbaz is not inside /foo/bar.
func HasPathPrefix(p, base string) bool {
	pc := SplitPath(p)
	bc := SplitPath(base)
	if len(bc) > len(pc) {
		return false
	}
	for i := range bc {
		if pc[i] != bc[i] {
			return false
		}
	}
	return true
}
