/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mapfs

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestFromFiles(t *testing.T) {
	mfs := FromFiles(map[string]string{
		"/project/src/Main.elm":   "module Main exposing (..)",
		"/project/src/Page/A.elm": "module Page.A exposing (..)",
	})

	data, err := mfs.ReadFile("/project/src/Main.elm")
	require.NoError(t, err)
	assert.Equal(t, "module Main exposing (..)", string(data))

	assert.True(t, mfs.Exists("/project/src"))
	assert.True(t, mfs.Exists("/project/src/Page/A.elm"))
	assert.False(t, mfs.Exists("/project/lib"))
	assert.False(t, mfs.Exists("/project/sr"))
}

func TestWalkDir(t *testing.T) {
	mfs := FromFiles(map[string]string{
		"/project/a.elm":     "",
		"/project/sub/b.elm": "",
	})

	var walked []string
	err := fs.WalkDir(mfs, "/project", func(p string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		if !d.IsDir() {
			walked = append(walked, p)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/project/a.elm", "/project/sub/b.elm"}, walked)
}

func TestWriteFile(t *testing.T) {
	mfs := New()
	require.NoError(t, mfs.WriteFile("/out/x.elm", []byte("x"), 0600))

	info, err := mfs.Stat("/out/x.elm")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0600), info.Mode().Perm())
	assert.Equal(t, []string{"/out/x.elm"}, mfs.Writes())
}

func TestWriteFile_UnderFile(t *testing.T) {
	mfs := FromFiles(map[string]string{"/file": "x"})
	err := mfs.WriteFile("/file/child.elm", nil, 0644)
	assert.ErrorIs(t, err, errNotDir)
	assert.Empty(t, mfs.Writes())
}

func TestFailWrites(t *testing.T) {
	boom := errors.New("disk full")
	mfs := FromFiles(map[string]string{"/a.elm": "a"})
	mfs.FailWrites("/a.elm", boom)

	err := mfs.WriteFile("/a.elm", []byte("b"), 0644)
	assert.ErrorIs(t, err, boom)

	data, err := mfs.ReadFile("/a.elm")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestPaths(t *testing.T) {
	mfs := FromFiles(map[string]string{"/b.elm": "", "/a/c.elm": ""})
	assert.Equal(t, []string{"/a/c.elm", "/b.elm"}, mfs.Paths())
}
