package fileinfo

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"github.com/samber/lo"

	"fileref/internal/uti"
)

// Reference identifies a location on a volume: the local filesystem or an SMB
// share. It is an immutable value; metadata is resolved through a Resolver.
type Reference struct {
	scheme Scheme
	host   string
	share  string
	volume string // drive of a local Windows path, e.g. "C:"
	path   string // cleaned, absolute, slash-separated; "/" is the volume root
}

// NewReference returns a reference to a local path. Relative paths are made
// absolute against the working directory.
func NewReference(p string) Reference {
	if p == "" {
		p = "."
	}
	if runtime.GOOS == "windows" {
		if vol, rest := splitDrive(filepath.ToSlash(p)); vol != "" {
			p = vol + rest // /C:/x as found in file URLs
		}
	}
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	vol, logical := toLogical(p)
	return Reference{scheme: SchemeFile, volume: vol, path: logical}
}

// NewSMBReference returns a reference inside host/share.
func NewSMBReference(host, share string, segments ...string) Reference {
	return Reference{
		scheme: SchemeSMB,
		host:   host,
		share:  share,
		path:   path.Clean("/" + path.Join(segments...)),
	}
}

// FromFileSystemRepresentation builds a reference from a native path as the
// OS hands it out, possibly NUL-terminated.
func FromFileSystemRepresentation(rep []byte) Reference {
	if i := bytes.IndexByte(rep, 0); i >= 0 {
		rep = rep[:i]
	}
	return NewReference(string(rep))
}

// ParseReference accepts local paths, file:// URLs, smb://host/share/...
// (or //host/share/...) URLs and UNC paths. Credentials embedded in an smb URL
// are not part of the reference; see CredentialsFromURL.
func ParseReference(s string) (Reference, error) {
	raw := strings.TrimSpace(s)
	switch {
	case raw == "":
		return Reference{}, errors.New("empty reference")
	case isUNC(raw):
		ref, ok := parseUNC(raw)
		if !ok {
			return Reference{}, fmt.Errorf("UNC path %q needs a host and a share", raw)
		}
		return ref, nil
	case IsSMBDisplay(raw) || strings.HasPrefix(raw, "//"):
		host, share, segs, _, _, _ := parseSMBURL(raw)
		if host == "" || share == "" {
			return Reference{}, fmt.Errorf("smb reference %q needs a host and a share", raw)
		}
		return NewSMBReference(host, share, segs...), nil
	case strings.HasPrefix(strings.ToLower(raw), "file:"):
		u, err := storage.ParseURI(raw)
		if err != nil {
			return Reference{}, fmt.Errorf("parse %q: %w", raw, err)
		}
		return FromURI(u)
	}
	return NewReference(raw), nil
}

// FromURI converts a fyne storage URI with a file or smb scheme.
func FromURI(u fyne.URI) (Reference, error) {
	if u == nil {
		return Reference{}, errors.New("nil URI")
	}
	switch Scheme(strings.ToLower(u.Scheme())) {
	case SchemeFile:
		return NewReference(u.Path()), nil
	case SchemeSMB:
		return ParseReference(u.String())
	}
	return Reference{}, fmt.Errorf("unsupported URI scheme %q", u.Scheme())
}

// URI converts the reference to a fyne storage URI.
func (r Reference) URI() (fyne.URI, error) {
	if r.scheme == SchemeSMB {
		return storage.ParseURI(r.String())
	}
	return storage.NewFileURI(r.FileSystemRepresentation()), nil
}

// IsZero reports whether r was never initialised.
func (r Reference) IsZero() bool { return r.path == "" }

func (r Reference) Scheme() Scheme { return r.scheme }
func (r Reference) Host() string   { return r.host }
func (r Reference) Share() string  { return r.share }

// Volume returns the drive of a local Windows reference, or "".
func (r Reference) Volume() string { return r.volume }

// Path returns the slash-separated path inside the volume.
func (r Reference) Path() string { return r.path }

// FileSystemRepresentation returns the native path for local references and
// the share-relative path for SMB references.
func (r Reference) FileSystemRepresentation() string {
	if r.scheme == SchemeSMB {
		return r.path
	}
	return toNative(r.volume, r.path)
}

// String returns the display form: a native path, or smb://host/share/...
func (r Reference) String() string {
	if r.scheme != SchemeSMB {
		return r.FileSystemRepresentation()
	}
	disp := "smb://" + r.host + "/" + r.share
	if r.path != "/" {
		disp += r.path
	}
	return disp
}

// Name returns the last path component. A local root is named by its native
// path ("/" or `C:\`) and an SMB share root is named after the share.
func (r Reference) Name() string {
	if r.IsRoot() {
		if r.scheme == SchemeSMB {
			return r.share
		}
		return r.FileSystemRepresentation()
	}
	return path.Base(r.path)
}

// Extension returns the last filename extension without the dot.
func (r Reference) Extension() string {
	if r.IsRoot() {
		return ""
	}
	return uti.Extension(r.Name())
}

// IsRoot reports whether r is the root of its volume.
func (r Reference) IsRoot() bool { return r.path == "/" }

// Components returns the path components below the volume root.
func (r Reference) Components() []string { return SplitPath(r.path) }

// Depth is the number of components below the volume root.
func (r Reference) Depth() int { return len(r.Components()) }

// Parent returns the enclosing directory. The root is its own parent.
func (r Reference) Parent() Reference {
	r.path = path.Dir(r.rooted())
	return r
}

// Append returns r with p appended. ".." components are resolved, never
// climbing above the volume root.
func (r Reference) Append(p string) Reference {
	r.path = path.Join(r.rooted(), filepath.ToSlash(p))
	return r
}

// rooted returns r's path, treating the zero value as the volume root.
func (r Reference) rooted() string {
	if r.path == "" {
		return "/"
	}
	return r.path
}

// AppendPaths appends each of paths to r, preserving order.
func (r Reference) AppendPaths(paths []string) []Reference {
	return lo.Map(paths, func(p string, _ int) Reference {
		return r.Append(p)
	})
}

// ComponentURLs returns r followed by each of its ancestors, ending with the
// volume root. The zero Reference has no components.
func (r Reference) ComponentURLs() []Reference {
	if r.IsZero() {
		return nil
	}
	out := make([]Reference, 0, r.Depth()+1)
	for cur := r; ; cur = cur.Parent() {
		out = append(out, cur)
		if cur.IsRoot() {
			return out
		}
	}
}

// SameVolume reports whether r and o live on the same volume.
func (r Reference) SameVolume(o Reference) bool {
	return r.scheme == o.scheme &&
		strings.EqualFold(r.host, o.host) &&
		strings.EqualFold(r.share, o.share) &&
		strings.EqualFold(r.volume, o.volume)
}

// Equal reports whether r and o name the same location.
func (r Reference) Equal(o Reference) bool {
	return r.SameVolume(o) && r.path == o.path
}

// IsBasedIn reports whether base is r or one of its ancestors.
func (r Reference) IsBasedIn(base Reference) bool {
	return r.SameVolume(base) && HasPathPrefix(r.path, base.path)
}

// PathRelativeTo returns the path that, appended to base, yields r. When the
// two are on different volumes no such path exists and r's display form is
// returned instead.
func (r Reference) PathRelativeTo(base Reference) string {
	if !r.SameVolume(base) {
		return r.String()
	}
	return RelativePath(r.path, base.path)
}

// toLogical splits a native path into its drive (Windows only) and the
// slash-separated path below it.
func toLogical(native string) (string, string) {
	s := filepath.ToSlash(native)
	vol := ""
	if runtime.GOOS == "windows" {
		vol, s = splitDrive(s)
	}
	return vol, path.Clean("/" + s)
}

func toNative(vol, logical string) string {
	return filepath.FromSlash(vol + logical)
}

// splitDrive splits a leading drive letter off a slash-separated path, in
// either the C:/x or the /C:/x form.
func splitDrive(s string) (string, string) {
	t := strings.TrimPrefix(s, "/")
	if len(t) >= 2 && t[1] == ':' && isDriveLetter(t[0]) {
		return strings.ToUpper(t[:2]), t[2:]
	}
	return "", s
}

func isDriveLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
