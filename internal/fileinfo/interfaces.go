package fileinfo

import (
	"context"
	"io"
)

// TypeRegistry is the type-identifier service a Resolver delegates to.
// *uti.Registry implements it.
type TypeRegistry interface {
	ConformsTo(identifier, parent string) bool
	PreferredExtension(identifier string) (string, bool)
	TypeForExtension(ext string) (string, bool)
	TypeForFilename(name string) (string, bool)
}

// Sniffer is implemented by registries that can identify content.
type Sniffer interface {
	Sniff(ctx context.Context, stream io.Reader) (string, bool)
}

// CredentialsProvider can interactively or programmatically provide credentials.
type CredentialsProvider interface {
	Get(host, share, relPath string) (Credentials, error)
}
