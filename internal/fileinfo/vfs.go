package fileinfo

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

// Capabilities describes what a provider can answer.
type Capabilities struct {
	// Symlinks is set when Lstat reports links instead of following them.
	Symlinks bool
	// FileIdentity is set when os.SameFile works on the provider's FileInfo.
	FileIdentity bool
}

// VFS is the metadata provider behind a Resolver. Paths are provider-native.
type VFS interface {
	Stat(path string) (os.FileInfo, error)
	Lstat(path string) (os.FileInfo, error)
	Open(path string) (io.ReadCloser, error)
	Capabilities() Capabilities
}

// LocalFS implements VFS on an afero filesystem; the OS filesystem in
// production, a memory filesystem in tests.
type LocalFS struct {
	fs afero.Fs
}

// NewLocalFS wraps fs. A nil fs means the OS filesystem.
func NewLocalFS(fs afero.Fs) LocalFS {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return LocalFS{fs: fs}
}

func (l LocalFS) Stat(path string) (os.FileInfo, error) { return l.fs.Stat(path) }

func (l LocalFS) Lstat(path string) (os.FileInfo, error) {
	if lst, ok := l.fs.(afero.Lstater); ok {
		fi, _, err := lst.LstatIfPossible(path)
		return fi, err
	}
	return l.fs.Stat(path)
}

func (l LocalFS) Open(path string) (io.ReadCloser, error) { return l.fs.Open(path) }

func (l LocalFS) Capabilities() Capabilities {
	_, osfs := l.fs.(*afero.OsFs)
	_, lstat := l.fs.(afero.Lstater)
	return Capabilities{Symlinks: lstat, FileIdentity: osfs}
}
