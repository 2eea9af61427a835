//go:build linux
// +build linux

package fileinfo

import (
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/hirochachacha/go-smb2"

	"fileref/internal/constants"
)

// SMBFS implements VFS for direct SMB access on Linux. Every call opens its
// own session and closes it before returning.
type SMBFS struct {
	host    string
	share   string
	creds   *CredentialChain
	timeout time.Duration
}

// NewSMBFS returns a provider for host/share. creds may be nil for guest access.
func NewSMBFS(host, share string, creds *CredentialChain, timeout time.Duration) SMBFS {
	if timeout <= 0 {
		timeout = constants.DefaultSMBDialTimeout
	}
	return SMBFS{host: host, share: share, creds: creds, timeout: timeout}
}

func (SMBFS) Capabilities() Capabilities { return Capabilities{Symlinks: true} }

// Stat returns file info for a path relative to the share (leading separators allowed).
func (s SMBFS) Stat(relPath string) (os.FileInfo, error) {
	var fi os.FileInfo
	err := s.withShare(relPath, func(share *smb2.Share, p string) error {
		var err error
		fi, err = share.Stat(p)
		return err
	})
	return fi, err
}

func (s SMBFS) Lstat(relPath string) (os.FileInfo, error) {
	var fi os.FileInfo
	err := s.withShare(relPath, func(share *smb2.Share, p string) error {
		var err error
		fi, err = share.Lstat(p)
		return err
	})
	return fi, err
}

// Open keeps the session alive until the returned file is closed.
func (s SMBFS) Open(relPath string) (io.ReadCloser, error) {
	share, closeAll, err := s.mount(relPath)
	if err != nil {
		return nil, err
	}
	f, err := share.Open(sharePath(relPath))
	if err != nil {
		closeAll()
		s.checkAuth(err)
		return nil, err
	}
	return &smbFile{File: f, closeAll: closeAll}, nil
}

type smbFile struct {
	*smb2.File
	closeAll func()
}

func (f *smbFile) Close() error {
	err := f.File.Close()
	f.closeAll()
	return err
}

func (s SMBFS) withShare(relPath string, fn func(*smb2.Share, string) error) error {
	share, closeAll, err := s.mount(relPath)
	if err != nil {
		return err
	}
	defer closeAll()
	if err := fn(share, sharePath(relPath)); err != nil {
		s.checkAuth(err)
		return err
	}
	return nil
}

func (s SMBFS) mount(relPath string) (*smb2.Share, func(), error) {
	creds := s.creds.Lookup(s.host, s.share, relPath)

	d := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     creds.Username,
			Password: creds.Password,
			Domain:   creds.Domain,
		},
	}

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(s.host, constants.SMBPort), s.timeout)
	if err != nil {
		return nil, nil, err
	}

	sess, err := d.Dial(conn)
	if err != nil {
		conn.Close()
		s.checkAuth(err)
		return nil, nil, err
	}

	share, err := sess.Mount(s.share)
	if err != nil {
		sess.Logoff()
		conn.Close()
		s.checkAuth(err)
		return nil, nil, err
	}

	s.creds.Remember(s.host, s.share, creds)

	return share, func() {
		share.Umount()
		sess.Logoff()
		conn.Close()
	}, nil
}

func (s SMBFS) checkAuth(err error) {
	if isAuthError(err) {
		s.creds.Forget(s.host, s.share)
	}
}

// sharePath converts a share-relative path to go-smb2 form: no leading
// separator, and "." for the share root.
func sharePath(p string) string {
	p = strings.TrimLeft(strings.ReplaceAll(p, "/", `\`), `\`)
	if p == "" {
		return "."
	}
	return p
}

func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	e := strings.ToLower(err.Error())
	return strings.Contains(e, "logon is invalid") ||
		strings.Contains(e, "bad username") ||
		strings.Contains(e, "authentication") ||
		strings.Contains(e, "status_logon_failure") ||
		strings.Contains(e, "access is denied")
}
