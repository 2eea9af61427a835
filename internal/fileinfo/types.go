package fileinfo

import (
	"context"
	"os"

	"github.com/samber/lo"

	"fileref/internal/uti"
)

// typeOf picks the type identifier for an item whose Lstat result is fi.
// Directories are folders unless their name marks them as a bundle-like
// directory type; regular files fall back to their content when the name
// says nothing.
func (r *Resolver) typeOf(ref Reference, fi os.FileInfo) string {
	byName, named := r.registry.TypeForFilename(ref.Name())
	switch {
	case fi.Mode()&os.ModeSymlink != 0:
		return uti.TypeSymlink
	case fi.IsDir():
		if named && r.registry.ConformsTo(byName, uti.TypeDirectory) {
			return byName
		}
		return uti.TypeFolder
	case named:
		return byName
	}
	if fi.Mode().IsRegular() && r.sniff {
		if id, ok := r.SniffType(context.Background(), ref); ok {
			return id
		}
	}
	return uti.TypeData
}

// TypeIdentifier returns the registry type of the item ref points to.
func (r *Resolver) TypeIdentifier(ref Reference) (string, bool) {
	v, ok := r.ResourceValue(ref, PropertyTypeIdentifier)
	return v.Text(), ok
}

// SniffType identifies ref from its leading bytes. It requires a registry
// that implements Sniffer.
func (r *Resolver) SniffType(ctx context.Context, ref Reference) (string, bool) {
	sniffer, ok := r.registry.(Sniffer)
	if !ok {
		return "", false
	}
	rc, err := r.Open(ref)
	if err != nil {
		r.logger(ref).WithError(err).Debug("content sniffing skipped")
		return "", false
	}
	defer rc.Close()
	return sniffer.Sniff(ctx, rc)
}

// candidateTypes returns the identifiers ref can be matched by: its resolved
// type identifier, then the type derived from its filename.
func (r *Resolver) candidateTypes(ref Reference) []string {
	var ids []string
	if id, ok := r.TypeIdentifier(ref); ok {
		ids = append(ids, id)
	}
	if !ref.IsRoot() {
		if id, ok := r.registry.TypeForFilename(ref.Name()); ok {
			ids = append(ids, id)
		}
	}
	return lo.Uniq(ids)
}

// ConformsToType reports whether ref's type conforms to typeID. Either the
// item's resolved type or the type implied by its filename is enough, so an
// unreadable photo.jpg still conforms to public.image.
func (r *Resolver) ConformsToType(ref Reference, typeID string) bool {
	return r.conformsAny(r.candidateTypes(ref), typeID)
}

// MatchingType returns the first of candidates that ref conforms to.
func (r *Resolver) MatchingType(ref Reference, candidates []string) (string, bool) {
	ids := r.candidateTypes(ref)
	return lo.Find(candidates, func(c string) bool {
		return r.conformsAny(ids, c)
	})
}

func (r *Resolver) conformsAny(ids []string, typeID string) bool {
	return lo.SomeBy(ids, func(id string) bool {
		return r.registry.ConformsTo(id, typeID)
	})
}

// PreferredExtension returns the extension preferred for typeID.
func (r *Resolver) PreferredExtension(typeID string) (string, bool) {
	return r.registry.PreferredExtension(typeID)
}

// TypeForExtension returns the type declared for ext.
func (r *Resolver) TypeForExtension(ext string) (string, bool) {
	return r.registry.TypeForExtension(ext)
}
