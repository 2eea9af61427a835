//go:build !linux
// +build !linux

package fileinfo

import (
	"errors"
	"io"
	"os"
	"time"
)

var errUnsupportedSMB = errors.New("direct smb access is not supported on this platform; mount the share first")

// unsupportedSMB answers every call with errUnsupportedSMB.
type unsupportedSMB struct{}

func (unsupportedSMB) Stat(string) (os.FileInfo, error)   { return nil, errUnsupportedSMB }
func (unsupportedSMB) Lstat(string) (os.FileInfo, error)  { return nil, errUnsupportedSMB }
func (unsupportedSMB) Open(string) (io.ReadCloser, error) { return nil, errUnsupportedSMB }
func (unsupportedSMB) Capabilities() Capabilities         { return Capabilities{} }

func newSMBProvider(host, share string, creds *CredentialChain, timeout time.Duration) VFS {
	return unsupportedSMB{}
}
