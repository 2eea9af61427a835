package fileinfo

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fileref/internal/errors"
	"fileref/internal/uti"
)

func newMemResolver(t *testing.T, opts ...Option) (*Resolver, afero.Fs) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("memory filesystem paths are slash-rooted")
	}
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data/sub", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/data/notes.txt", []byte("hello world"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/data/.env", []byte("A=1"), 0o600))
	return NewResolver(append([]Option{WithLocalFS(fs)}, opts...)...), fs
}

func TestResourceValueMissingIsAbsent(t *testing.T) {
	r, _ := newMemResolver(t)
	ref := NewReference("/data/missing.txt")

	for _, p := range Properties() {
		v, ok := r.ResourceValue(ref, p)
		if p == PropertyIsReachable {
			assert.True(t, ok)
			assert.False(t, v.Bool())
			continue
		}
		assert.False(t, ok, p.String())
	}

	_, ok := r.FileSize(ref)
	assert.False(t, ok)
	assert.False(t, r.IsDirectory(ref))
	assert.False(t, r.IsReachable(ref))
	_, ok = r.Describe(ref)
	assert.False(t, ok)
}

func TestResourceValuesOfFile(t *testing.T) {
	r, fs := newMemResolver(t)
	ref := NewReference("/data/notes.txt")
	mod := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fs.Chtimes("/data/notes.txt", mod, mod))

	name, ok := r.Name(ref)
	require.True(t, ok)
	assert.Equal(t, "notes.txt", name)

	parent, ok := r.ParentDirectory(ref)
	require.True(t, ok)
	assert.Equal(t, "/data", parent.Path())

	size, ok := r.FileSize(ref)
	require.True(t, ok)
	assert.EqualValues(t, 11, size)

	when, ok := r.ModificationDate(ref)
	require.True(t, ok)
	assert.True(t, when.Equal(mod))

	id, ok := r.TypeIdentifier(ref)
	require.True(t, ok)
	assert.Equal(t, uti.TypePlainText, id)

	assert.False(t, r.IsDirectory(ref))
	assert.False(t, r.IsSymbolicLink(ref))
	assert.False(t, r.IsHidden(ref))
	assert.True(t, r.IsReachable(ref))
	assert.True(t, r.IsHidden(NewReference("/data/.env")))
}

func TestLocalizedNameIsComposed(t *testing.T) {
	r, fs := newMemResolver(t)
	decomposed := "/data/cafe\u0301.txt"
	require.NoError(t, afero.WriteFile(fs, decomposed, []byte("x"), 0o644))

	name, ok := r.LocalizedName(NewReference(decomposed))
	require.True(t, ok)
	assert.Equal(t, "caf\u00e9.txt", name)

	raw, ok := r.Name(NewReference(decomposed))
	require.True(t, ok)
	assert.Equal(t, "cafe\u0301.txt", raw)
}

func TestResourceValuesOfDirectory(t *testing.T) {
	r, _ := newMemResolver(t)
	ref := NewReference("/data/sub")

	assert.True(t, r.IsDirectory(ref))
	_, ok := r.FileSize(ref)
	assert.False(t, ok)

	id, ok := r.TypeIdentifier(ref)
	require.True(t, ok)
	assert.Equal(t, uti.TypeFolder, id)
	assert.True(t, r.ConformsToType(ref, uti.TypeDirectory))

	root := NewReference("/")
	assert.True(t, r.IsDirectory(root))
	_, ok = r.ParentDirectory(root)
	assert.False(t, ok)
	assert.False(t, r.IsHidden(root))
}

func TestValueString(t *testing.T) {
	r, _ := newMemResolver(t)
	ref := NewReference("/data/notes.txt")

	v, ok := r.ResourceValue(ref, PropertyFileSize)
	require.True(t, ok)
	assert.Equal(t, "11", v.String())

	v, ok = r.ResourceValue(ref, PropertyIsDirectory)
	require.True(t, ok)
	assert.Equal(t, "false", v.String())

	v, ok = r.ResourceValue(ref, PropertyParentDirectory)
	require.True(t, ok)
	assert.Equal(t, "/data", v.String())
}

func TestParseProperty(t *testing.T) {
	for _, p := range Properties() {
		got, ok := ParseProperty(p.String())
		require.True(t, ok, p.String())
		assert.Equal(t, p, got)
	}
	_, ok := ParseProperty("colour")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Property(99).String())
}

func TestStatReportsMetadataError(t *testing.T) {
	r, _ := newMemResolver(t)
	_, err := r.Stat(NewReference("/nope"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeMetadata))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = r.Open(NewReference("/nope"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeMetadata))
}

func TestContentSniffing(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("a.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	r, fs := newMemResolver(t)
	require.NoError(t, afero.WriteFile(fs, "/data/blob", buf.Bytes(), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/data/unknown", []byte("plain"), 0o644))

	id, ok := r.TypeIdentifier(NewReference("/data/blob"))
	require.True(t, ok)
	assert.Equal(t, uti.TypeZip, id)

	id, ok = r.TypeIdentifier(NewReference("/data/unknown"))
	require.True(t, ok)
	assert.Equal(t, uti.TypeData, id)

	off := NewResolver(WithLocalFS(fs), WithContentSniffing(false))
	id, ok = off.TypeIdentifier(NewReference("/data/blob"))
	require.True(t, ok)
	assert.Equal(t, uti.TypeData, id)
}

func TestSameResourceByLocation(t *testing.T) {
	r, _ := newMemResolver(t)
	a := NewReference("/data/notes.txt")

	assert.True(t, r.SameResource(a, NewReference("/data/sub/../notes.txt")))
	assert.False(t, r.SameResource(a, NewReference("/data/.env")))
	assert.False(t, r.SameResource(a, NewReference("/data/missing")))
	assert.False(t, r.SameResource(NewReference("/data/missing"), NewReference("/data/missing")))
}

func TestDescribe(t *testing.T) {
	r, _ := newMemResolver(t)

	info, ok := r.Describe(NewReference("/data/notes.txt"))
	require.True(t, ok)
	assert.Equal(t, "notes.txt", info.Name)
	assert.EqualValues(t, 11, info.Size)
	assert.True(t, info.HasSize)
	assert.Equal(t, uti.TypePlainText, info.Type)
	assert.Equal(t, FileTypeRegular, info.FileType)

	info, ok = r.Describe(NewReference("/data/.env"))
	require.True(t, ok)
	assert.Equal(t, FileTypeHidden, info.FileType)

	info, ok = r.Describe(NewReference("/data/sub"))
	require.True(t, ok)
	assert.Equal(t, FileTypeDirectory, info.FileType)
	assert.Zero(t, info.Size)
	assert.False(t, info.HasSize)
}

func TestOSSymlinkAndHardLink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling")))
	require.NoError(t, os.Link(target, filepath.Join(dir, "hard.txt")))

	r := NewResolver()
	link := NewReference(filepath.Join(dir, "link"))
	dangling := NewReference(filepath.Join(dir, "dangling"))

	assert.True(t, r.IsSymbolicLink(link))
	assert.True(t, r.IsReachable(link))
	id, ok := r.TypeIdentifier(link)
	require.True(t, ok)
	assert.Equal(t, uti.TypeSymlink, id)

	assert.True(t, r.IsSymbolicLink(dangling))
	assert.False(t, r.IsReachable(dangling))

	hard := NewReference(filepath.Join(dir, "hard.txt"))
	assert.True(t, r.SameResource(NewReference(target), hard))
	assert.True(t, r.SameResource(NewReference(target), link))
	assert.False(t, r.SameResource(NewReference(target), dangling))

	info, ok := r.Describe(link)
	require.True(t, ok)
	assert.Equal(t, FileTypeSymlink, info.FileType)
}
