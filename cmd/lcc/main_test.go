package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetFlags() {
	defineFlags = nil
	undefineFlags = nil
	includePaths = nil
	systemPaths = nil
	useExternalPP = false
	outputPath = ""
}

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestPreprocessWritesExpandedMacroToStdout(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.c")
	content := "#define WIDTH 80\nint x = WIDTH;\n"
	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{testFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(out.String(), "int x = 80;") {
		t.Errorf("expected output to contain the expanded line, got %q", out.String())
	}
}

func TestDefineFlagDefinesMacro(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.c")
	if err := os.WriteFile(testFile, []byte("VERSION\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"-D", "VERSION=3", testFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if strings.TrimSpace(out.String()) != "3" {
		t.Errorf("got %q, want \"3\"", strings.TrimSpace(out.String()))
	}
}

func TestOutputFlagWritesToFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.c")
	outFile := filepath.Join(tmpDir, "test.i")
	if err := os.WriteFile(testFile, []byte("#define X 1\nX\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"-o", outFile, testFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if out.String() != "" {
		t.Errorf("expected no stdout output when -o is set, got %q", out.String())
	}
	got, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if strings.TrimSpace(string(got)) != "1" {
		t.Errorf("output file contains %q, want \"1\"", strings.TrimSpace(string(got)))
	}
}

func TestMissingFileArgumentIsRejected(t *testing.T) {
	resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error when no file argument is given")
	}
}

func TestNonexistentFileProducesError(t *testing.T) {
	resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"does-not-exist.c"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for a nonexistent file")
	}
	if !strings.Contains(errOut.String(), "preprocessing error") {
		t.Errorf("expected stderr to mention the preprocessing error, got %q", errOut.String())
	}
}
