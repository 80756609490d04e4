package toc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeNotebook(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(`{"cells": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildDir_ExcludesIndex(t *testing.T) {
	dir := t.TempDir()
	writeNotebook(t, dir, "A.ipynb")
	writeNotebook(t, dir, "B.ipynb")
	writeNotebook(t, dir, "Index.ipynb")

	got, err := BuildDir(dir)
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}
	want := Header + "\n" +
		"<li><a href='A.ipynb' target='_blank'>A</a></li>\n" +
		"<li><a href='B.ipynb' target='_blank'>B</a></li>"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "Index.ipynb") {
		t.Error("index notebook must not be listed")
	}
}

func TestBuildDir_TitleStripsExtension(t *testing.T) {
	dir := t.TempDir()
	writeNotebook(t, dir, "My Notebook.ipynb")

	got, err := BuildDir(dir)
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}
	item := "<li><a href='My Notebook.ipynb' target='_blank'>My Notebook</a></li>"
	if !strings.Contains(got, item) {
		t.Errorf("missing %q in:\n%s", item, got)
	}
}

func TestBuildDir_EmptyShelfIsHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	got, err := BuildDir(dir)
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}
	if got != Header {
		t.Errorf("got %q, want bare header", got)
	}
}

func TestBuildDir_AlwaysStartsWithHeader(t *testing.T) {
	dir := t.TempDir()
	writeNotebook(t, dir, "Only.ipynb")
	got, err := BuildDir(dir)
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}
	if !strings.HasPrefix(got, Header) {
		t.Errorf("output does not start with header: %q", got)
	}
}

func TestBuildDir_ExclusionIsExactMatch(t *testing.T) {
	dir := t.TempDir()
	writeNotebook(t, dir, "Index.ipynb")
	writeNotebook(t, dir, "Index2.ipynb")

	got, err := BuildDir(dir)
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}
	if !strings.Contains(got, "Index2.ipynb") {
		t.Error("Index2.ipynb should be listed")
	}
	if strings.Contains(got, "'Index.ipynb'") {
		t.Error("Index.ipynb should not be listed")
	}
}

func TestBuildDir_SortedAndIdempotent(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.ipynb", "a.ipynb", "b.ipynb"} {
		writeNotebook(t, dir, name)
	}

	first, err := BuildDir(dir)
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}
	ia := strings.Index(first, "'a.ipynb'")
	ib := strings.Index(first, "'b.ipynb'")
	ic := strings.Index(first, "'c.ipynb'")
	if ia < 0 || ib < 0 || ic < 0 || !(ia < ib && ib < ic) {
		t.Errorf("entries not in filename order:\n%s", first)
	}

	second, err := BuildDir(dir)
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}
	if first != second {
		t.Error("repeated builds over an unchanged directory differ")
	}
}

func TestBuildDir_IgnoresNonNotebooks(t *testing.T) {
	dir := t.TempDir()
	writeNotebook(t, dir, "kept.ipynb")
	if err := os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "Folder.ipynb"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := BuildDir(dir)
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}
	if !strings.Contains(got, "kept.ipynb") {
		t.Error("kept.ipynb missing")
	}
	if strings.Contains(got, "readme.md") || strings.Contains(got, "Folder.ipynb") {
		t.Errorf("non-notebook entries leaked into:\n%s", got)
	}
}

func TestBuildDir_MissingDirPropagatesError(t *testing.T) {
	_, err := BuildDir(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestBuild_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeNotebook(t, dir, "Here.ipynb")
	t.Chdir(dir)

	got, err := Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(got, "Here.ipynb") {
		t.Errorf("working-directory notebook missing from:\n%s", got)
	}
}

func TestTitle(t *testing.T) {
	cases := map[string]string{
		"My Notebook.ipynb": "My Notebook",
		"A.ipynb":           "A",
		"noext":             "noext",
	}
	for in, want := range cases {
		if got := Title(in); got != want {
			t.Errorf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}
