/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mapfs provides an in-memory FileSystem for tests, backed by
// fstest.MapFS. Paths are absolute; directories exist implicitly when a
// file lives beneath them.
package mapfs

import (
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
	"testing/fstest"
	"time"

	"gitlab.com/tozd/go/errors"

	twfs "bennypowers.dev/twsort/fs"
)

var errNotDir = errors.Base("not a directory")

var _ twfs.FileSystem = (*MapFileSystem)(nil)

// MapFileSystem is a concurrency-safe in-memory FileSystem.
type MapFileSystem struct {
	mu       sync.RWMutex
	files    fstest.MapFS
	modTime  time.Time
	failures map[string]error
	writes   []string
}

// New creates an empty filesystem.
func New() *MapFileSystem {
	return &MapFileSystem{
		files:    make(fstest.MapFS),
		modTime:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		failures: make(map[string]error),
	}
}

// FromFiles creates a filesystem holding files, keyed by absolute path.
func FromFiles(files map[string]string) *MapFileSystem {
	mfs := New()
	for p, content := range files {
		mfs.AddFile(p, content, 0644)
	}
	return mfs
}

// AddFile stores a file without recording it as a write.
func (mfs *MapFileSystem) AddFile(p string, content string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[key(p)] = &fstest.MapFile{Data: []byte(content), Mode: mode, ModTime: mfs.modTime}
}

// FailWrites makes every later WriteFile to p return err.
func (mfs *MapFileSystem) FailWrites(p string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.failures[key(p)] = err
}

// WriteFile implements FileSystem.
func (mfs *MapFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	k := key(name)
	if err := mfs.failures[k]; err != nil {
		return &fs.PathError{Op: "write", Path: name, Err: err}
	}
	if parent, ok := mfs.files[path.Dir(k)]; ok && !parent.Mode.IsDir() {
		return &fs.PathError{Op: "write", Path: name, Err: errNotDir}
	}

	mfs.files[k] = &fstest.MapFile{Data: slices.Clone(data), Mode: perm, ModTime: mfs.modTime}
	mfs.writes = append(mfs.writes, "/"+k)
	return nil
}

// Writes returns the paths passed to successful WriteFile calls, sorted.
func (mfs *MapFileSystem) Writes() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	out := slices.Clone(mfs.writes)
	slices.Sort(out)
	return out
}

// ReadFile implements FileSystem.
func (mfs *MapFileSystem) ReadFile(name string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return fs.ReadFile(mfs.files, key(name))
}

// Stat implements FileSystem.
func (mfs *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return fs.Stat(mfs.files, key(name))
}

// Exists reports whether p is a file or has files beneath it.
func (mfs *MapFileSystem) Exists(p string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	k := key(p)
	if _, ok := mfs.files[k]; ok {
		return true
	}
	for name := range mfs.files {
		if strings.HasPrefix(name, k+"/") {
			return true
		}
	}
	return false
}

// ReadDir implements FileSystem.
func (mfs *MapFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return fs.ReadDir(mfs.files, key(name))
}

// Open implements FileSystem.
func (mfs *MapFileSystem) Open(name string) (fs.File, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.files.Open(key(name))
}

// Paths returns the sorted absolute paths of all files.
func (mfs *MapFileSystem) Paths() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	paths := make([]string, 0, len(mfs.files))
	for p := range mfs.files {
		paths = append(paths, "/"+p)
	}
	slices.Sort(paths)
	return paths
}

// key maps an absolute path to its fstest.MapFS name, which has no
// leading slash. The root maps to ".".
func key(p string) string {
	k := strings.TrimPrefix(path.Clean("/"+p), "/")
	if k == "" {
		return "."
	}
	return k
}
