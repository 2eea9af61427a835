//go:build windows
// +build windows

package fileinfo

import (
	"errors"
	"io"
	"os"
	"syscall"
	"unsafe"

	apperrors "fileref/internal/errors"
)

// Windows API constants
const (
	RESOURCETYPE_DISK                 = 0x00000001
	CONNECT_TEMPORARY                 = 0x00000004
	NO_ERROR                          = 0
	ERROR_ACCESS_DENIED               = 5
	ERROR_LOGON_FAILURE               = 1326
	ERROR_SESSION_CREDENTIAL_CONFLICT = 1219
)

type netResource struct {
	DwScope       uint32
	DwType        uint32
	DwDisplayType uint32
	DwUsage       uint32
	LpLocalName   *uint16
	LpRemoteName  *uint16
	LpComment     *uint16
	LpProvider    *uint16
}

var (
	modMpr                  = syscall.NewLazyDLL("mpr.dll")
	procWNetAddConnection2W = modMpr.NewProc("WNetAddConnection2W")
)

// uncFS serves UNC paths through the local filesystem and establishes a
// session with stored credentials when Windows denies access.
type uncFS struct {
	VFS
	host, share string
	creds       *CredentialChain
	connect     func(host, share string, creds *CredentialChain) error
}

func newUNCFS(local VFS, host, share string, creds *CredentialChain) VFS {
	return uncFS{VFS: local, host: host, share: share, creds: creds, connect: ensureWindowsConnection}
}

func (u uncFS) Stat(p string) (os.FileInfo, error) {
	return withConnection(u, func() (os.FileInfo, error) { return u.VFS.Stat(p) })
}

func (u uncFS) Lstat(p string) (os.FileInfo, error) {
	return withConnection(u, func() (os.FileInfo, error) { return u.VFS.Lstat(p) })
}

func (u uncFS) Open(p string) (io.ReadCloser, error) {
	return withConnection(u, func() (io.ReadCloser, error) { return u.VFS.Open(p) })
}

// withConnection retries op once after connecting to the share. A session
// already open with other credentials is reported as a credentials error.
func withConnection[T any](u uncFS, op func() (T, error)) (T, error) {
	v, err := op()
	if !isWinAccessError(err) {
		return v, err
	}
	if cerr := u.connect(u.host, u.share, u.creds); cerr != nil {
		if IsWindowsCredentialConflict(cerr) {
			return v, apperrors.NewCredentialsError("connect",
				`\\`+u.host+`\`+u.share+" is already connected with other credentials", cerr)
		}
		return v, err
	}
	return op()
}

func addConnection(host, share, username, password string) (uint32, error) {
	remote := `\\` + host + `\` + share
	remotePtr, _ := syscall.UTF16PtrFromString(remote)
	userPtr, _ := syscall.UTF16PtrFromString(username)
	passPtr, _ := syscall.UTF16PtrFromString(password)

	nr := netResource{DwType: RESOURCETYPE_DISK, LpRemoteName: remotePtr}
	r1, _, e1 := procWNetAddConnection2W.Call(
		uintptr(unsafe.Pointer(&nr)),
		uintptr(unsafe.Pointer(passPtr)),
		uintptr(unsafe.Pointer(userPtr)),
		uintptr(CONNECT_TEMPORARY),
	)
	ret := uint32(r1)
	if ret != NO_ERROR {
		if e1 != syscall.Errno(0) {
			return ret, e1
		}
		return ret, syscall.Errno(ret)
	}
	return ret, nil
}

func errnoOf(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

func isWinAccessError(err error) bool {
	errno, ok := errnoOf(err)
	return ok && (errno == ERROR_ACCESS_DENIED || errno == ERROR_LOGON_FAILURE)
}

// ensureWindowsConnection establishes a temporary connection to
// \\host\share with credentials from the chain. It never disconnects
// existing sessions; a credential conflict (1219) is returned as is.
func ensureWindowsConnection(host, share string, creds *CredentialChain) error {
	cred := creds.Lookup(host, share, "")
	if cred.empty() {
		return errors.New("no credentials provided")
	}
	user := cred.Username
	if cred.Domain != "" {
		user = cred.Domain + "\\" + user
	}
	ret, err := addConnection(host, share, user, cred.Password)
	if ret == NO_ERROR && err == nil {
		creds.Remember(host, share, cred)
		return nil
	}
	if isWinAccessError(err) {
		creds.Forget(host, share)
	}
	return err
}

// IsWindowsCredentialConflict reports whether the error is a credential conflict (ERROR_SESSION_CREDENTIAL_CONFLICT=1219).
func IsWindowsCredentialConflict(err error) bool {
	errno, ok := errnoOf(err)
	return ok && uint32(errno) == ERROR_SESSION_CREDENTIAL_CONFLICT
}
