package config

import (
	"embed"
	"io/fs"
)

// Built-in profiles and the profile schema ship inside the binary.
//
//go:embed data/profiles/*.json
//go:embed data/schema/profile.schema.json
var embeddedFS embed.FS

// embeddedDataProvider implements DataProvider using embed.FS.
type embeddedDataProvider struct {
	fs embed.FS
}

// NewEmbeddedDataProvider returns the DataProvider backed by the embedded files.
func NewEmbeddedDataProvider() DataProvider {
	return &embeddedDataProvider{fs: embeddedFS}
}

func (p *embeddedDataProvider) ReadFile(name string) ([]byte, error) {
	return p.fs.ReadFile(name)
}

func (p *embeddedDataProvider) ReadDir(name string) ([]fs.DirEntry, error) {
	return p.fs.ReadDir(name)
}
