package config

import "io/fs"

// DataProvider gives access to the built-in profile data. Names are relative
// to the data root, e.g. "data/profiles/html.json".
//
// Implementations:
//   - embeddedDataProvider: embed.FS, used in production
//   - MockDataProvider: in-memory map, used in tests
type DataProvider interface {
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}

const (
	profilesDir = "data/profiles"
	schemaFile  = "data/schema/profile.schema.json"
)
