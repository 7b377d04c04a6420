/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil provides fixture and golden-file helpers for twsort tests.
// Paths are relative to the repository's testdata directory, which is
// searched for from the test's package directory upward.
package testutil

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/twsort/internal/mapfs"
)

// ProjectRoot is where NewProjectFS mounts the sample Elm project.
const ProjectRoot = "/project"

var updateGolden = flag.Bool("update", false, "update golden files with actual output")

// testdataDirs are the candidate testdata locations for packages up to two
// levels below the module root.
var testdataDirs = []string{
	"testdata",
	filepath.Join("..", "testdata"),
	filepath.Join("..", "..", "testdata"),
}

// locate returns the first candidate for rel whose parent directory exists,
// or "" when none does.
func locate(rel string, wantFile bool) string {
	for _, dir := range testdataDirs {
		candidate := filepath.Join(dir, rel)
		probe := candidate
		if !wantFile {
			probe = filepath.Dir(candidate)
		}
		if _, err := os.Stat(probe); err == nil {
			return candidate
		}
	}
	return ""
}

// NewFixtureFS copies the fixture tree at testdata/fixtureDir into an
// in-memory filesystem rooted at rootPath.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	src := locate(fixtureDir, true)
	if src == "" {
		t.Fatalf("fixture directory %s not found under testdata", fixtureDir)
	}

	mfs := mapfs.New()
	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		mfs.AddFile(filepath.Join(rootPath, rel), string(content), 0644)
		return nil
	})
	if err != nil {
		t.Fatalf("loading fixtures from %s: %v", fixtureDir, err)
	}
	return mfs
}

// NewProjectFS mounts the sample Elm project at ProjectRoot.
func NewProjectFS(t *testing.T) *mapfs.MapFileSystem {
	t.Helper()
	return NewFixtureFS(t, "fixtures/project", ProjectRoot)
}

// LoadFixtureFile reads a single file from testdata.
func LoadFixtureFile(t *testing.T, fixturePath string) []byte {
	t.Helper()

	p := locate(fixturePath, true)
	if p == "" {
		t.Fatalf("fixture %s not found under testdata", fixturePath)
	}
	content, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("reading fixture %s: %v", fixturePath, err)
	}
	return content
}

// UpdateGoldenFile writes actual to testdata/goldenPath when the test
// binary runs with -update. It is a no-op otherwise.
func UpdateGoldenFile(t *testing.T, goldenPath string, actual []byte) {
	t.Helper()
	if !*updateGolden {
		return
	}

	target := locate(goldenPath, false)
	if target == "" {
		target = filepath.Join(testdataDirs[0], goldenPath)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		t.Fatalf("creating golden directory for %s: %v", goldenPath, err)
	}
	if err := os.WriteFile(target, actual, 0644); err != nil {
		t.Fatalf("writing golden file %s: %v", goldenPath, err)
	}
	t.Logf("updated golden file %s", target)
}

// Golden updates the golden file when requested and returns its contents.
func Golden(t *testing.T, goldenPath string, actual []byte) []byte {
	t.Helper()
	UpdateGoldenFile(t, goldenPath, actual)
	return LoadFixtureFile(t, goldenPath)
}
