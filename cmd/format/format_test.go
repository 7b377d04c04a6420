/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package format

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"bennypowers.dev/twsort/order"
	"bennypowers.dev/twsort/printer"
	"bennypowers.dev/twsort/splice"
	"bennypowers.dev/twsort/testutil"
)

func fallbackPipeline() *printer.Pipeline {
	return &printer.Pipeline{Printer: printer.New(splice.SourceFunc(order.Order))}
}

var projectFiles = []string{
	"/project/src/Main.elm",
	"/project/src/Page/Home.elm",
	"/project/src/Sorted.elm",
}

func TestFiles_Print(t *testing.T) {
	mfs := testutil.NewProjectFS(t)
	var out bytes.Buffer

	err := Files(context.Background(), mfs, fallbackPipeline(), []string{"/project/src/Main.elm"}, Print, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	golden := testutil.Golden(t, "golden/Main.elm", out.Bytes())
	if out.String() != string(golden) {
		t.Errorf("output mismatch\nwant:\n%s\ngot:\n%s", golden, out.String())
	}
}

func TestFiles_Check(t *testing.T) {
	mfs := testutil.NewProjectFS(t)
	var out bytes.Buffer

	err := Files(context.Background(), mfs, fallbackPipeline(), projectFiles, Check, &out)
	if !errors.Is(err, ErrUnsorted) {
		t.Fatalf("expected ErrUnsorted, got %v", err)
	}

	want := "/project/src/Main.elm\n/project/src/Page/Home.elm\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestFiles_CheckClean(t *testing.T) {
	mfs := testutil.NewProjectFS(t)
	var out bytes.Buffer

	err := Files(context.Background(), mfs, fallbackPipeline(), []string{"/project/src/Sorted.elm"}, Check, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestFiles_Write(t *testing.T) {
	mfs := testutil.NewProjectFS(t)
	sorted, err := mfs.ReadFile("/project/src/Sorted.elm")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer

	if err := Files(context.Background(), mfs, fallbackPipeline(), projectFiles, Write, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "/project/src/Main.elm\n/project/src/Page/Home.elm\n"; out.String() != want {
		t.Errorf("expected written files %q, got %q", want, out.String())
	}

	home, err := mfs.ReadFile("/project/src/Page/Home.elm")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(home), `class "base-styles" ++ "flex p-4 bg-blue-500 text-lg"`) {
		t.Errorf("Home.elm not sorted:\n%s", home)
	}

	after, err := mfs.ReadFile("/project/src/Sorted.elm")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sorted, after) {
		t.Error("already sorted file was modified")
	}
	if got := mfs.Writes(); len(got) != 2 {
		t.Errorf("expected 2 writes, got %v", got)
	}

	// A second run finds nothing to do.
	out.Reset()
	if err := Files(context.Background(), mfs, fallbackPipeline(), projectFiles, Check, &out); err != nil {
		t.Errorf("expected clean check after write, got %v", err)
	}
}

func TestFiles_CollectsErrors(t *testing.T) {
	mfs := testutil.NewProjectFS(t)
	var out bytes.Buffer

	paths := []string{"/project/src/Missing.elm", "/project/src/Main.elm", "/project/src/Gone.elm"}
	err := Files(context.Background(), mfs, fallbackPipeline(), paths, Print, &out)
	if err == nil {
		t.Fatal("expected error for missing files")
	}
	for _, name := range []string{"Missing.elm", "Gone.elm"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("expected error to mention %s, got %v", name, err)
		}
	}
	if !strings.Contains(out.String(), `class "flex p-4 bg-blue-500 text-lg"`) {
		t.Errorf("expected readable file to be formatted, got %q", out.String())
	}
}

func TestFiles_WriteFailure(t *testing.T) {
	mfs := testutil.NewProjectFS(t)
	boom := errors.New("read-only filesystem")
	mfs.FailWrites("/project/src/Main.elm", boom)
	var out bytes.Buffer

	err := Files(context.Background(), mfs, fallbackPipeline(), projectFiles, Write, &out)
	if !errors.Is(err, boom) {
		t.Fatalf("expected write failure, got %v", err)
	}
	if want := "/project/src/Page/Home.elm\n"; out.String() != want {
		t.Errorf("expected only Home.elm written, got %q", out.String())
	}
}

func TestStdin(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader(`div [ classList [ ( "text-lg flex p-4 bg-blue-500", True ) ] ] []`)

	if err := Stdin(context.Background(), fallbackPipeline(), in, Print, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `div [ classList [ ( "flex p-4 bg-blue-500 text-lg", True ) ] ] []`
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestStdin_Check(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader(`div [ class "text-lg flex" ] []`)

	err := Stdin(context.Background(), fallbackPipeline(), in, Check, &out)
	if !errors.Is(err, ErrUnsorted) {
		t.Fatalf("expected ErrUnsorted, got %v", err)
	}
	if out.String() != StdinName+"\n" {
		t.Errorf("expected %q, got %q", StdinName+"\n", out.String())
	}

	out.Reset()
	in = strings.NewReader(`div [ class "flex text-lg" ] []`)
	if err := Stdin(context.Background(), fallbackPipeline(), in, Check, &out); err != nil {
		t.Errorf("expected clean check, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output for sorted stdin, got %q", out.String())
	}
}

func TestStdin_WriteRejected(t *testing.T) {
	var out bytes.Buffer
	err := Stdin(context.Background(), fallbackPipeline(), strings.NewReader(`class "b a"`), Write, &out)
	if !errors.Is(err, ErrStdinWrite) {
		t.Fatalf("expected ErrStdinWrite, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}
