package uti

import (
	"context"
	"io"
	"strings"

	"github.com/mholt/archives"
)

// Sniff identifies archive and compression formats from the head of stream
// and maps the detected format's extension to a declared type.
func (r *Registry) Sniff(ctx context.Context, stream io.Reader) (string, bool) {
	if stream == nil {
		return "", false
	}
	format, _, err := archives.Identify(ctx, "", stream)
	if err != nil {
		return "", false
	}
	ext := strings.TrimPrefix(format.Extension(), ".")
	if ext == "" {
		return "", false
	}
	// ".tar.gz" is tried whole before "gz".
	for _, candidate := range append([]string{ext}, Extensions(ext)...) {
		if id, ok := r.TypeForExtension(candidate); ok {
			return id, true
		}
	}
	return "", false
}
