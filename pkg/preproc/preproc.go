// Package preproc handles C preprocessing.
// It provides both an internal preprocessor implementation and fallback
// to an external system preprocessor (cc -E). The internal preprocessor
// only handles object-like and function-like macro expansion; anything
// that needs #include or conditional compilation must go through the
// external path.
package preproc

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lcc-lang/lcc/pkg/cpp"
)

// Options configures the preprocessing step.
type Options struct {
	IncludePaths []string          // -I directories, external preprocessor only
	SystemPaths  []string          // -isystem directories, external preprocessor only
	Defines      map[string]string // -D macros (name -> value, empty string for simple define)
	Undefines    []string          // -U macros
	UseExternal  bool              // force use of the external preprocessor
}

// Preprocess runs the C preprocessor on the given source file and returns
// the preprocessed source code as a string.
// By default, it uses the internal preprocessor. Set UseExternal to force
// use of the system preprocessor, which is required for any source that
// relies on #include or conditional compilation.
func Preprocess(filename string, opts *Options) (string, error) {
	if opts != nil && opts.UseExternal {
		return preprocessExternal(filename, opts)
	}
	return preprocessInternal(filename, opts)
}

// preprocessInternal uses our internal pkg/cpp preprocessor.
func preprocessInternal(filename string, opts *Options) (string, error) {
	ppOpts := cpp.Options{}
	if opts != nil {
		ppOpts.Undefines = opts.Undefines
		for name, value := range opts.Defines {
			if value == "" {
				ppOpts.Defines = append(ppOpts.Defines, name)
			} else {
				ppOpts.Defines = append(ppOpts.Defines, name+"="+value)
			}
		}
	}

	pp, err := cpp.NewPreprocessor(ppOpts)
	if err != nil {
		return "", err
	}
	return pp.PreprocessFile(filename)
}

// preprocessExternal uses the system C preprocessor (cc -E).
func preprocessExternal(filename string, opts *Options) (string, error) {
	args := []string{"-E"}

	if opts != nil {
		for _, path := range opts.IncludePaths {
			args = append(args, "-I"+path)
		}
		for _, path := range opts.SystemPaths {
			args = append(args, "-isystem", path)
		}
		for name, value := range opts.Defines {
			if value == "" {
				args = append(args, "-D"+name)
			} else {
				args = append(args, "-D"+name+"="+value)
			}
		}
		for _, name := range opts.Undefines {
			args = append(args, "-U"+name)
		}
	}

	args = append(args, filename)

	cppCmd := findPreprocessor()
	if cppCmd == "" {
		return "", fmt.Errorf("no C preprocessor found (tried: cc, gcc, clang)")
	}

	cmd := exec.Command(cppCmd, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Dir = filepath.Dir(filename)

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("preprocessing failed: %v\n%s", err, stderr.String())
	}

	return stdout.String(), nil
}

// PreprocessString preprocesses C source code provided as a string.
// It writes the source to a temporary file, preprocesses it, then cleans up.
func PreprocessString(source, filename string, opts *Options) (string, error) {
	tmpDir := os.TempDir()
	baseName := filepath.Base(filename)
	if baseName == "" {
		baseName = "source.c"
	}
	tmpFile := filepath.Join(tmpDir, "lcc-"+baseName)

	if err := os.WriteFile(tmpFile, []byte(source), 0644); err != nil {
		return "", fmt.Errorf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile)

	return Preprocess(tmpFile, opts)
}

// NeedsPreprocessing returns true if the file might need preprocessing.
// Files ending in .i or .p are considered already preprocessed.
func NeedsPreprocessing(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext != ".i" && ext != ".p"
}

// findPreprocessor searches for a C preprocessor on the system.
func findPreprocessor() string {
	candidates := []string{"cc", "gcc", "clang"}
	for _, cmd := range candidates {
		if path, err := exec.LookPath(cmd); err == nil {
			return path
		}
	}
	return ""
}
