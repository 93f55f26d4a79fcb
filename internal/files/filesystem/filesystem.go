package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// File represents an individual file with its metadata
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the walked root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree in lexical order, calling fn for each
	// file and directory. Returning fs.SkipDir from fn for a directory skips
	// its contents; any other error stops the walk.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is the read side of a filesystem
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// OpenFile opens a file for streaming reads
	OpenFile(path string) (io.ReadCloser, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// ReadDir returns the entries of a directory sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// Glob returns the paths matching a filepath.Match pattern, sorted.
	Glob(pattern string) ([]string, error)
}

// WritableFileSystem adds the operations copy and move need.
type WritableFileSystem interface {
	FileSystemProvider

	// Create creates or truncates a file. Data is visible once the writer is closed.
	Create(path string) (io.WriteCloser, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string) error

	// Rename moves a file, replacing any existing target.
	Rename(oldPath, newPath string) error

	// Remove deletes a file.
	Remove(path string) error
}
