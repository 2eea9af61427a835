//go:build windows
// +build windows

package fileinfo

import (
	"syscall"
)

// hasHiddenAttribute checks FILE_ATTRIBUTE_HIDDEN.
func hasHiddenAttribute(nativePath string) bool {
	p, err := syscall.UTF16PtrFromString(nativePath)
	if err != nil {
		return false
	}
	attrs, err := syscall.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&syscall.FILE_ATTRIBUTE_HIDDEN != 0
}
