package fileinfo

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	apperrors "fileref/internal/errors"
)

// Property names a resource property of a reference.
type Property int

const (
	PropertyName Property = iota
	PropertyLocalizedName
	PropertyParentDirectory
	PropertyIsDirectory
	PropertyIsSymbolicLink
	PropertyIsHidden
	PropertyIsReachable
	PropertyModificationDate
	PropertyFileSize
	PropertyTypeIdentifier
)

var propertyNames = map[Property]string{
	PropertyName:             "name",
	PropertyLocalizedName:    "localized-name",
	PropertyParentDirectory:  "parent",
	PropertyIsDirectory:      "directory",
	PropertyIsSymbolicLink:   "symlink",
	PropertyIsHidden:         "hidden",
	PropertyIsReachable:      "reachable",
	PropertyModificationDate: "modified",
	PropertyFileSize:         "size",
	PropertyTypeIdentifier:   "type",
}

func (p Property) String() string {
	if s, ok := propertyNames[p]; ok {
		return s
	}
	return "unknown"
}

// Properties lists every property in declaration order.
func Properties() []Property {
	return []Property{
		PropertyName, PropertyLocalizedName, PropertyParentDirectory, PropertyIsDirectory,
		PropertyIsSymbolicLink, PropertyIsHidden, PropertyIsReachable, PropertyModificationDate,
		PropertyFileSize, PropertyTypeIdentifier,
	}
}

// ParseProperty maps a property name as printed by String back to a Property.
func ParseProperty(s string) (Property, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range propertyNames {
		if name == s {
			return p, true
		}
	}
	return 0, false
}

// Value is the variant result of a property lookup. Only the accessor
// matching Property's kind carries meaning.
type Value struct {
	Property Property
	text     string
	flag     bool
	when     time.Time
	size     int64
	ref      Reference
}

func (v Value) Text() string         { return v.text }
func (v Value) Bool() bool           { return v.flag }
func (v Value) Time() time.Time      { return v.when }
func (v Value) Int() int64           { return v.size }
func (v Value) Reference() Reference { return v.ref }

// String formats the value for display.
func (v Value) String() string {
	switch v.Property {
	case PropertyName, PropertyLocalizedName, PropertyTypeIdentifier:
		return v.text
	case PropertyParentDirectory:
		return v.ref.String()
	case PropertyIsDirectory, PropertyIsSymbolicLink, PropertyIsHidden, PropertyIsReachable:
		return strconv.FormatBool(v.flag)
	case PropertyModificationDate:
		return v.when.Format(time.RFC3339)
	case PropertyFileSize:
		return strconv.FormatInt(v.size, 10)
	}
	return fmt.Sprintf("%v", v.text)
}

// Stat returns the provider's metadata for ref, following symbolic links.
// Unlike the property accessors it reports why a lookup failed.
func (r *Resolver) Stat(ref Reference) (os.FileInfo, error) {
	vfs, native := r.providerFor(ref)
	fi, err := vfs.Stat(native)
	if err != nil {
		return nil, apperrors.NewMetadataError("stat", ref.String(), "", err)
	}
	return fi, nil
}

// Lstat is Stat without following a final symbolic link.
func (r *Resolver) Lstat(ref Reference) (os.FileInfo, error) {
	vfs, native := r.providerFor(ref)
	fi, err := vfs.Lstat(native)
	if err != nil {
		return nil, apperrors.NewMetadataError("lstat", ref.String(), "", err)
	}
	return fi, nil
}

// Open opens ref for reading.
func (r *Resolver) Open(ref Reference) (io.ReadCloser, error) {
	vfs, native := r.providerFor(ref)
	rc, err := vfs.Open(native)
	if err != nil {
		return nil, apperrors.NewMetadataError("open", ref.String(), "", err)
	}
	return rc, nil
}

// lstat absorbs the failure of Lstat into ok=false.
func (r *Resolver) lstat(ref Reference) (os.FileInfo, bool) {
	fi, err := r.Lstat(ref)
	if err != nil {
		r.logger(ref).WithError(err).Debug("resource value unavailable")
		return nil, false
	}
	return fi, true
}

// ResourceValue returns property p of ref, or false if it cannot be
// retrieved for any reason. Properties describe the item itself: a symbolic
// link is reported as a link, not as its target. Callers that need the
// failure reason should use Stat or Lstat.
func (r *Resolver) ResourceValue(ref Reference, p Property) (Value, bool) {
	if p == PropertyIsReachable {
		return Value{Property: p, flag: r.IsReachable(ref)}, true
	}
	fi, ok := r.lstat(ref)
	if !ok {
		return Value{}, false
	}
	return r.valueOf(ref, fi, p)
}

func (r *Resolver) valueOf(ref Reference, fi os.FileInfo, p Property) (Value, bool) {
	v := Value{Property: p}
	switch p {
	case PropertyName:
		v.text = ref.Name()
	case PropertyLocalizedName:
		v.text = localizedName(ref)
	case PropertyParentDirectory:
		if ref.IsRoot() {
			return Value{}, false
		}
		v.ref = ref.Parent()
	case PropertyIsDirectory:
		v.flag = fi.IsDir()
	case PropertyIsSymbolicLink:
		v.flag = fi.Mode()&os.ModeSymlink != 0
	case PropertyIsHidden:
		v.flag = r.isHidden(ref)
	case PropertyIsReachable:
		v.flag = true
	case PropertyModificationDate:
		v.when = fi.ModTime()
	case PropertyFileSize:
		if !fi.Mode().IsRegular() {
			return Value{}, false
		}
		v.size = fi.Size()
	case PropertyTypeIdentifier:
		v.text = r.typeOf(ref, fi)
	default:
		return Value{}, false
	}
	return v, true
}

func (r *Resolver) isHidden(ref Reference) bool {
	if strings.HasPrefix(ref.Name(), ".") && !ref.IsRoot() {
		return true
	}
	vfs, native := r.providerFor(ref)
	if _, local := vfs.(LocalFS); local {
		return hasHiddenAttribute(native)
	}
	return false
}

// Name returns the item's name.
func (r *Resolver) Name(ref Reference) (string, bool) {
	v, ok := r.ResourceValue(ref, PropertyName)
	return v.Text(), ok
}

// LocalizedName returns the name for display: NFC-normalized, since some
// filesystems hand out decomposed names.
func (r *Resolver) LocalizedName(ref Reference) (string, bool) {
	v, ok := r.ResourceValue(ref, PropertyLocalizedName)
	return v.Text(), ok
}

func localizedName(ref Reference) string {
	return norm.NFC.String(ref.Name())
}

// ParentDirectory returns the directory containing the item.
func (r *Resolver) ParentDirectory(ref Reference) (Reference, bool) {
	v, ok := r.ResourceValue(ref, PropertyParentDirectory)
	return v.Reference(), ok
}

// IsDirectory reports whether ref is a directory.
func (r *Resolver) IsDirectory(ref Reference) bool {
	v, _ := r.ResourceValue(ref, PropertyIsDirectory)
	return v.Bool()
}

// IsSymbolicLink reports whether ref is a symbolic link.
func (r *Resolver) IsSymbolicLink(ref Reference) bool {
	v, _ := r.ResourceValue(ref, PropertyIsSymbolicLink)
	return v.Bool()
}

// IsHidden reports whether ref is hidden: a dot file, or one carrying the
// platform's hidden attribute.
func (r *Resolver) IsHidden(ref Reference) bool {
	v, _ := r.ResourceValue(ref, PropertyIsHidden)
	return v.Bool()
}

// IsReachable reports whether the item ref points to can be reached,
// following symbolic links. Attempting the real operation and handling its
// failure is cheaper than asking first.
func (r *Resolver) IsReachable(ref Reference) bool {
	_, err := r.Stat(ref)
	return err == nil
}

// ModificationDate returns the content modification time.
func (r *Resolver) ModificationDate(ref Reference) (time.Time, bool) {
	v, ok := r.ResourceValue(ref, PropertyModificationDate)
	return v.Time(), ok
}

// FileSize returns the size in bytes of a regular file.
func (r *Resolver) FileSize(ref Reference) (int64, bool) {
	v, ok := r.ResourceValue(ref, PropertyFileSize)
	return v.Int(), ok
}

// SameResource reports whether a and b reference the same item, e.g. two
// hard links to one file. It is false if either cannot be resolved. Providers
// without file identity (SMB, memory filesystems) compare locations instead.
func (r *Resolver) SameResource(a, b Reference) bool {
	va, na := r.providerFor(a)
	vb, nb := r.providerFor(b)
	fa, err := va.Stat(na)
	if err != nil {
		r.logger(a).WithError(err).Debug("same-resource check failed")
		return false
	}
	fb, err := vb.Stat(nb)
	if err != nil {
		r.logger(b).WithError(err).Debug("same-resource check failed")
		return false
	}
	if va.Capabilities().FileIdentity && vb.Capabilities().FileIdentity {
		return os.SameFile(fa, fb)
	}
	return a.Equal(b)
}

// Describe resolves every property of ref from a single provider call.
func (r *Resolver) Describe(ref Reference) (FileInfo, bool) {
	fi, ok := r.lstat(ref)
	if !ok {
		return FileInfo{}, false
	}
	info := FileInfo{
		Reference: ref,
		Name:      ref.Name(),
		IsDir:     fi.IsDir(),
		IsSymlink: fi.Mode()&os.ModeSymlink != 0,
		IsHidden:  r.isHidden(ref),
		Modified:  fi.ModTime(),
		Type:      r.typeOf(ref, fi),
	}
	if fi.Mode().IsRegular() {
		info.Size = fi.Size()
		info.HasSize = true
	}
	info.FileType = DetermineFileType(info)
	return info, true
}

// logger returns r's logger with ref attached.
func (r *Resolver) logger(ref Reference) log.FieldLogger {
	return r.log.WithField("ref", ref.String())
}
