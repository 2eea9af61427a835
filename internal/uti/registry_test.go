package uti_test

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fileref/internal/errors"
	"fileref/internal/uti"
)

func TestConformsTo(t *testing.T) {
	t.Parallel()

	r := uti.Default()

	tcs := map[string]struct {
		id     string
		parent string
		want   bool
	}{
		"reflexive":             {id: uti.TypeJPEG, parent: uti.TypeJPEG, want: true},
		"direct parent":         {id: uti.TypeJPEG, parent: uti.TypeImage, want: true},
		"transitive":            {id: uti.TypeJPEG, parent: uti.TypeItem, want: true},
		"second parent branch":  {id: "public.svg-image", parent: uti.TypeText, want: true},
		"sibling":               {id: uti.TypeJPEG, parent: uti.TypePNG, want: false},
		"child of parent":       {id: uti.TypeImage, parent: uti.TypeJPEG, want: false},
		"undeclared reflexive":  {id: "com.example.unknown", parent: "com.example.unknown", want: true},
		"undeclared to root":    {id: "com.example.unknown", parent: uti.TypeItem, want: false},
		"folder is a directory": {id: uti.TypeFolder, parent: uti.TypeDirectory, want: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, r.ConformsTo(tc.id, tc.parent))
		})
	}
}

func TestAncestorsNearestFirst(t *testing.T) {
	t.Parallel()

	r := uti.Default()
	ancestors := r.Ancestors(uti.TypeJPEG)
	require.NotEmpty(t, ancestors)
	assert.Equal(t, uti.TypeImage, ancestors[0])
	assert.Contains(t, ancestors, uti.TypeData)
	assert.Contains(t, ancestors, uti.TypeContent)
	assert.Equal(t, uti.TypeItem, ancestors[len(ancestors)-1])
}

func TestDeclareRejectsCycles(t *testing.T) {
	t.Parallel()

	r := uti.New()
	require.NoError(t, r.Declare(uti.Declaration{Identifier: "a"}))
	require.NoError(t, r.Declare(uti.Declaration{Identifier: "b", ConformsTo: []string{"a"}}))
	require.NoError(t, r.Declare(uti.Declaration{Identifier: "c", ConformsTo: []string{"b"}}))

	err := r.Declare(uti.Declaration{Identifier: "a", ConformsTo: []string{"c"}})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRegistry))

	err = r.Declare(uti.Declaration{Identifier: "self", ConformsTo: []string{"self"}})
	require.Error(t, err)

	// The rejected redeclaration must leave the original in place.
	d, ok := r.Lookup("a")
	require.True(t, ok)
	assert.Empty(t, d.ConformsTo)
}

func TestDeclareValidation(t *testing.T) {
	t.Parallel()

	r := uti.New()
	require.Error(t, r.Declare(uti.Declaration{Identifier: "  "}))
	require.Error(t, r.Declare(uti.Declaration{Identifier: "bad.pattern", Patterns: []string{"[unclosed"}}))
}

func TestDeclareReplacesExtensions(t *testing.T) {
	t.Parallel()

	r := uti.New()
	require.NoError(t, r.Declare(uti.Declaration{Identifier: "com.example.game", Extensions: []string{".GBX"}}))

	id, ok := r.TypeForExtension("gbx")
	require.True(t, ok)
	assert.Equal(t, "com.example.game", id)

	require.NoError(t, r.Declare(uti.Declaration{Identifier: "com.example.game", Extensions: []string{"boxer"}}))
	_, ok = r.TypeForExtension("gbx")
	assert.False(t, ok)

	ext, ok := r.PreferredExtension("com.example.game")
	require.True(t, ok)
	assert.Equal(t, "boxer", ext)
	assert.Equal(t, []string{"com.example.game"}, r.Identifiers())
}

func TestExtensionMapping(t *testing.T) {
	t.Parallel()

	r := uti.Default()

	ext, ok := r.PreferredExtension(uti.TypeJPEG)
	require.True(t, ok)
	assert.Equal(t, "jpeg", ext)

	_, ok = r.PreferredExtension(uti.TypeImage)
	assert.False(t, ok)

	_, ok = r.PreferredExtension("com.example.unknown")
	assert.False(t, ok)

	for _, in := range []string{"jpg", ".JPG", "Jpeg"} {
		id, ok := r.TypeForExtension(in)
		require.True(t, ok, in)
		assert.Equal(t, uti.TypeJPEG, id, in)
	}

	_, ok = r.TypeForExtension("")
	assert.False(t, ok)
	_, ok = r.TypeForExtension("nosuchext")
	assert.False(t, ok)
}

func TestFirstDeclaredExtensionWins(t *testing.T) {
	t.Parallel()

	r := uti.New()
	require.NoError(t, r.Declare(uti.Declaration{Identifier: "first", Extensions: []string{"dat"}}))
	require.NoError(t, r.Declare(uti.Declaration{Identifier: "second", Extensions: []string{"dat"}}))

	id, ok := r.TypeForExtension("dat")
	require.True(t, ok)
	assert.Equal(t, "first", id)
}

func TestTypeForFilename(t *testing.T) {
	t.Parallel()

	r := uti.Default()

	tcs := map[string]struct {
		name string
		want string
		ok   bool
	}{
		"simple":          {name: "photo.JPG", want: uti.TypeJPEG, ok: true},
		"path":            {name: "/tmp/dir/notes.txt", want: uti.TypePlainText, ok: true},
		"compound":        {name: "backup.tar.gz", want: "org.gnu.gnu-zip-tar-archive", ok: true},
		"last extension":  {name: "release.1.2.zip", want: uti.TypeZip, ok: true},
		"pattern":         {name: "/src/Makefile", want: "public.make-source", ok: true},
		"hidden no ext":   {name: ".bashrc", ok: false},
		"hidden with ext": {name: ".config.yaml", want: "public.yaml", ok: true},
		"no extension":    {name: "README", ok: false},
		"unknown":         {name: "file.unknownext", ok: false},
		"root":            {name: "/", ok: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, ok := r.TypeForFilename(tc.name)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"tar.gz", "gz"}, uti.Extensions("a.tar.gz"))
	assert.Empty(t, uti.Extensions(".hidden"))
	assert.Empty(t, uti.Extensions("trailing."))
	assert.Equal(t, "gz", uti.Extension("/x/a.tar.gz"))
	assert.Equal(t, "", uti.Extension("noext"))
}

func TestSniff(t *testing.T) {
	t.Parallel()

	r := uti.Default()
	ctx := context.Background()

	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	w, err := zw.Create("hello.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	id, ok := r.Sniff(ctx, bytes.NewReader(zipBuf.Bytes()))
	require.True(t, ok)
	assert.Equal(t, uti.TypeZip, id)

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	_, err = gw.Write([]byte("plain text payload"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	id, ok = r.Sniff(ctx, bytes.NewReader(gzBuf.Bytes()))
	require.True(t, ok)
	assert.True(t, r.ConformsTo(id, uti.TypeArchive), id)

	_, ok = r.Sniff(ctx, strings.NewReader("just some text"))
	assert.False(t, ok)

	_, ok = r.Sniff(ctx, nil)
	assert.False(t, ok)
}

func TestConcurrentDeclareAndLookup(t *testing.T) {
	t.Parallel()

	r := uti.Default()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, r.Declare(uti.Declaration{Identifier: "com.example.x", ConformsTo: []string{uti.TypeData}, Extensions: []string{"xx"}}))
		}()
		go func() {
			defer wg.Done()
			r.ConformsTo(uti.TypeJPEG, uti.TypeItem)
			r.TypeForFilename("a.xx")
		}()
	}
	wg.Wait()

	id, ok := r.TypeForExtension("xx")
	require.True(t, ok)
	assert.Equal(t, "com.example.x", id)
}
