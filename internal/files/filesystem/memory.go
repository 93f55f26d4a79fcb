package filesystem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile implements File interface for in-memory files
type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    *memoryFileInfo
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.getEntriesUnder(d.absPath)

	// Order like filepath.Walk: lexical per directory level
	slices.SortFunc(entries, func(a, b *memoryFile) int {
		return slices.Compare(strings.Split(a.absPath, "/"), strings.Split(b.absPath, "/"))
	})

	skipPrefix := ""
	for _, entry := range entries {
		if skipPrefix != "" && strings.HasPrefix(entry.absPath, skipPrefix) {
			continue
		}

		rel, err := filepath.Rel(d.absPath, entry.absPath)
		if err != nil {
			rel = entry.absPath
		}
		view := &memoryFile{absPath: entry.absPath, relPath: filepath.ToSlash(rel), info: entry.info}

		// Recover from panics in callback to prevent crashing the entire walk
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()

			callbackErr = fn(view, nil)
		}()

		if errors.Is(callbackErr, fs.SkipDir) {
			if entry.info.isDir {
				skipPrefix = entry.absPath + "/"
			} else {
				skipPrefix = path.Dir(entry.absPath) + "/"
			}
			continue
		}
		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

// MemoryFileSystem implements WritableFileSystem for in-memory testing
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memoryFile // map of absolute path -> file
	root  string                 // root directory path
}

var _ WritableFileSystem = (*MemoryFileSystem)(nil)

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem
// consistency. Relative paths given to any method resolve against it.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.files[root] = newMemoryDir(root)

	return mfs
}

func newMemoryDir(absPath string) *memoryFile {
	return &memoryFile{
		absPath: absPath,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0o755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

// abs resolves p against the root
func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Join(mfs.root, p)
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.putFile(mfs.abs(filePath), []byte(content), modTime)
}

// AddDir adds an empty directory.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	absPath := mfs.abs(dirPath)
	if _, exists := mfs.files[absPath]; !exists {
		mfs.files[absPath] = newMemoryDir(absPath)
	}
	mfs.ensureDirectoriesExist(absPath)
}

func (mfs *MemoryFileSystem) putFile(absPath string, content []byte, modTime time.Time) {
	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0o644,
			modTime: modTime,
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" || dir == filePath {
		return
	}
	if _, exists := mfs.files[dir]; exists {
		return
	}
	mfs.files[dir] = newMemoryDir(dir)
	mfs.ensureDirectoriesExist(dir)
}

// getEntriesUnder returns all files and directories under the given path
func (mfs *MemoryFileSystem) getEntriesUnder(basePath string) []*memoryFile {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var entries []*memoryFile
	for p, file := range mfs.files {
		var matched bool
		if basePath == "/" {
			matched = strings.HasPrefix(p, "/")
		} else {
			matched = p == basePath || strings.HasPrefix(p, basePath+"/")
		}
		if matched {
			entries = append(entries, file)
		}
	}
	return entries
}

func (mfs *MemoryFileSystem) lookup(op, p string) (*memoryFile, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	file, exists := mfs.files[mfs.abs(p)]
	if !exists {
		return nil, &fs.PathError{Op: op, Path: p, Err: fs.ErrNotExist}
	}
	return file, nil
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	file, err := mfs.lookup("open", openPath)
	if err != nil {
		return nil, fmt.Errorf("directory not found: %w", err)
	}
	if !file.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: file.absPath, fs: mfs}, nil
}

// OpenFile implements FileSystemProvider.OpenFile
func (mfs *MemoryFileSystem) OpenFile(filePath string) (io.ReadCloser, error) {
	content, err := mfs.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	file, err := mfs.lookup("read", filePath)
	if err != nil {
		return nil, err
	}
	if file.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return file.content, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	dir, err := mfs.lookup("readdir", dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	if !dir.info.isDir {
		return nil, fmt.Errorf("failed to read directory: %s is not a directory", dirPath)
	}

	mfs.mu.RLock()
	var result []FileInfo
	for p, file := range mfs.files {
		if p != dir.absPath && path.Dir(p) == dir.absPath {
			result = append(result, file.info)
		}
	}
	mfs.mu.RUnlock()

	slices.SortFunc(result, func(a, b FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	file, err := mfs.lookup("stat", statPath)
	if err != nil {
		return nil, err
	}
	return file.info, nil
}

// Glob implements FileSystemProvider.Glob. Relative patterns return paths
// relative to the root, as filepath.Glob does for the working directory.
func (mfs *MemoryFileSystem) Glob(pattern string) ([]string, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("bad glob %q: %w", pattern, err)
	}
	absPattern := mfs.abs(pattern)
	relative := !path.IsAbs(filepath.ToSlash(pattern))

	mfs.mu.RLock()
	var matches []string
	for p := range mfs.files {
		if ok, _ := path.Match(absPattern, p); !ok {
			continue
		}
		if relative {
			p = strings.TrimPrefix(p, mfs.root+"/")
		}
		matches = append(matches, p)
	}
	mfs.mu.RUnlock()

	slices.Sort(matches)
	return matches, nil
}

// memoryWriter buffers writes and commits the file on Close
type memoryWriter struct {
	buf     bytes.Buffer
	absPath string
	fs      *MemoryFileSystem
	closed  bool
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fs.ErrClosed
	}
	return w.buf.Write(p)
}

func (w *memoryWriter) Close() error {
	if w.closed {
		return fs.ErrClosed
	}
	w.closed = true
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()
	w.fs.putFile(w.absPath, w.buf.Bytes(), time.Now())
	return nil
}

func (mfs *MemoryFileSystem) requireParent(op, p string) error {
	parent, err := mfs.lookup(op, path.Dir(mfs.abs(p)))
	if err != nil {
		return &fs.PathError{Op: op, Path: p, Err: fs.ErrNotExist}
	}
	if !parent.info.isDir {
		return &fs.PathError{Op: op, Path: p, Err: fmt.Errorf("parent is not a directory")}
	}
	return nil
}

// Create implements WritableFileSystem.Create
func (mfs *MemoryFileSystem) Create(filePath string) (io.WriteCloser, error) {
	if err := mfs.requireParent("create", filePath); err != nil {
		return nil, err
	}
	if file, err := mfs.lookup("create", filePath); err == nil && file.info.isDir {
		return nil, &fs.PathError{Op: "create", Path: filePath, Err: fmt.Errorf("is a directory")}
	}
	// Creating truncates, as os.Create does
	mfs.mu.Lock()
	mfs.putFile(mfs.abs(filePath), nil, time.Now())
	mfs.mu.Unlock()
	return &memoryWriter{absPath: mfs.abs(filePath), fs: mfs}, nil
}

// MkdirAll implements WritableFileSystem.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	if file, err := mfs.lookup("mkdir", dirPath); err == nil {
		if !file.info.isDir {
			return &fs.PathError{Op: "mkdir", Path: dirPath, Err: fmt.Errorf("not a directory")}
		}
		return nil
	}
	mfs.AddDir(dirPath)
	return nil
}

// Rename implements WritableFileSystem.Rename
func (mfs *MemoryFileSystem) Rename(oldPath, newPath string) error {
	file, err := mfs.lookup("rename", oldPath)
	if err != nil {
		return err
	}
	if file.info.isDir {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fmt.Errorf("renaming directories is not supported")}
	}
	if err := mfs.requireParent("rename", newPath); err != nil {
		return err
	}

	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	delete(mfs.files, file.absPath)
	mfs.putFile(mfs.abs(newPath), file.content, file.info.modTime)
	return nil
}

// Remove implements WritableFileSystem.Remove
func (mfs *MemoryFileSystem) Remove(filePath string) error {
	file, err := mfs.lookup("remove", filePath)
	if err != nil {
		return err
	}
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if file.info.isDir {
		for p := range mfs.files {
			if strings.HasPrefix(p, file.absPath+"/") {
				return &fs.PathError{Op: "remove", Path: filePath, Err: fmt.Errorf("directory not empty")}
			}
		}
	}
	delete(mfs.files, file.absPath)
	return nil
}
