//go:build !windows
// +build !windows

package fileinfo

// hasHiddenAttribute reports a filesystem-level hidden flag. Unix has none;
// hidden means a leading dot.
func hasHiddenAttribute(nativePath string) bool {
	return false
}
