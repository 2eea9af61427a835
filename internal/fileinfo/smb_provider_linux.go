//go:build linux
// +build linux

package fileinfo

import "time"

func newSMBProvider(host, share string, creds *CredentialChain, timeout time.Duration) VFS {
	return NewSMBFS(host, share, creds, timeout)
}
