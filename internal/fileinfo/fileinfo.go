package fileinfo

import (
	"fmt"
	"time"

	"fileref/internal/constants"
)

// FileType represents the display category of an item
type FileType int

const (
	FileTypeRegular FileType = iota
	FileTypeDirectory
	FileTypeSymlink
	FileTypeHidden
)

func (t FileType) String() string {
	switch t {
	case FileTypeDirectory:
		return "directory"
	case FileTypeSymlink:
		return "symlink"
	case FileTypeHidden:
		return "hidden"
	default:
		return "regular"
	}
}

// FileInfo is a snapshot of an item's resource properties taken by
// Resolver.Describe. It goes stale as soon as the filesystem changes.
type FileInfo struct {
	Reference Reference
	Name      string
	IsDir     bool
	IsSymlink bool
	IsHidden  bool
	Size      int64 // valid when HasSize
	HasSize   bool  // regular files only
	Modified  time.Time
	Type      string // type identifier
	FileType  FileType
}

// DetermineFileType determines the file type based on file attributes
func DetermineFileType(info FileInfo) FileType {
	// Symlink first, so a link to a directory is still shown as a link
	if info.IsSymlink {
		return FileTypeSymlink
	}
	if info.IsDir {
		return FileTypeDirectory
	}
	if info.IsHidden {
		return FileTypeHidden
	}
	return FileTypeRegular
}

// FormatFileSize formats file size in human-readable format
func FormatFileSize(size int64) string {
	const unit = constants.FileSizeUnit
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), constants.FileSizeUnits[exp])
}
