package fileinfo

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileref/internal/uti"
)

// stubRegistry is a fixed inheritance graph without content sniffing.
type stubRegistry struct {
	parents map[string][]string
	exts    map[string]string
}

func newStubRegistry() stubRegistry {
	return stubRegistry{
		parents: map[string][]string{
			"public.jpeg":   {"public.image"},
			"public.png":    {"public.image"},
			"public.image":  {"public.data"},
			"public.text":   {"public.data"},
			"public.data":   {"public.item"},
			"public.folder": {"public.directory"},
		},
		exts: map[string]string{"jpg": "public.jpeg", "jpeg": "public.jpeg", "png": "public.png", "txt": "public.text"},
	}
}

func (s stubRegistry) ConformsTo(id, parent string) bool {
	if id == parent {
		return true
	}
	for _, p := range s.parents[id] {
		if s.ConformsTo(p, parent) {
			return true
		}
	}
	return false
}

func (s stubRegistry) PreferredExtension(id string) (string, bool) {
	if id == "public.jpeg" {
		return "jpeg", true
	}
	return "", false
}

func (s stubRegistry) TypeForExtension(ext string) (string, bool) {
	id, ok := s.exts[ext]
	return id, ok
}

func (s stubRegistry) TypeForFilename(name string) (string, bool) {
	return s.TypeForExtension(uti.Extension(name))
}

func newTypeResolver(t *testing.T) *Resolver {
	t.Helper()
	r, fs := newMemResolver(t, WithRegistry(newStubRegistry()))
	require.NoError(t, afero.WriteFile(fs, "/data/photo.jpg", []byte{0xff, 0xd8, 0xff}, 0o644))
	return r
}

func TestMatchingType(t *testing.T) {
	r := newTypeResolver(t)
	photo := NewReference("/data/photo.jpg")

	got, ok := r.MatchingType(photo, []string{"public.text", "public.image", "public.jpeg"})
	require.True(t, ok)
	assert.Equal(t, "public.image", got, "first candidate in input order wins")

	got, ok = r.MatchingType(photo, []string{"public.jpeg", "public.image"})
	require.True(t, ok)
	assert.Equal(t, "public.jpeg", got)

	_, ok = r.MatchingType(photo, []string{"public.text", "public.png"})
	assert.False(t, ok)

	_, ok = r.MatchingType(photo, nil)
	assert.False(t, ok)
}

func TestConformsToType(t *testing.T) {
	r := newTypeResolver(t)
	photo := NewReference("/data/photo.jpg")

	assert.True(t, r.ConformsToType(photo, "public.image"))
	assert.True(t, r.ConformsToType(photo, "public.item"))
	assert.False(t, r.ConformsToType(photo, "public.text"))

	// The filename alone decides for items that cannot be resolved.
	assert.True(t, r.ConformsToType(NewReference("/data/missing.png"), "public.image"))
	assert.False(t, r.ConformsToType(NewReference("/data/missing"), "public.item"))

	assert.True(t, r.ConformsToType(NewReference("/data/sub"), "public.directory"))
}

func TestStubRegistryDoesNotSniff(t *testing.T) {
	r := newTypeResolver(t)
	_, ok := r.SniffType(t.Context(), NewReference("/data/photo.jpg"))
	assert.False(t, ok)
}

func TestExtensionDelegation(t *testing.T) {
	r := newTypeResolver(t)

	ext, ok := r.PreferredExtension("public.jpeg")
	require.True(t, ok)
	assert.Equal(t, "jpeg", ext)

	id, ok := r.TypeForExtension("png")
	require.True(t, ok)
	assert.Equal(t, "public.png", id)

	_, ok = r.TypeForExtension("zzz")
	assert.False(t, ok)
}
