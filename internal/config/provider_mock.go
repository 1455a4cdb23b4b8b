package config

import (
	"io/fs"
	"path"
	"sort"
)

// MockDataProvider implements DataProvider for tests with an in-memory map.
type MockDataProvider struct {
	files map[string][]byte
}

// NewMockDataProvider creates an empty mock provider.
func NewMockDataProvider() *MockDataProvider {
	return &MockDataProvider{files: make(map[string][]byte)}
}

// AddFile stores content under name.
func (m *MockDataProvider) AddFile(name string, content []byte) {
	m.files[name] = content
}

func (m *MockDataProvider) ReadFile(name string) ([]byte, error) {
	content, ok := m.files[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return content, nil
}

// ReadDir lists the files stored directly under name.
func (m *MockDataProvider) ReadDir(name string) ([]fs.DirEntry, error) {
	var entries []fs.DirEntry
	for filePath := range m.files {
		if path.Dir(filePath) == name {
			entries = append(entries, mockDirEntry(path.Base(filePath)))
		}
	}
	if len(entries) == 0 {
		return nil, fs.ErrNotExist
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// mockDirEntry is a regular file entry.
type mockDirEntry string

func (e mockDirEntry) Name() string               { return string(e) }
func (e mockDirEntry) IsDir() bool                { return false }
func (e mockDirEntry) Type() fs.FileMode          { return 0 }
func (e mockDirEntry) Info() (fs.FileInfo, error) { return nil, fs.ErrInvalid }
