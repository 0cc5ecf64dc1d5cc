package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue/cuecontext"

	"github.com/wiretype/wiretype/internal/compiler"
	"github.com/wiretype/wiretype/internal/ir"
)

// LoadError represents an error that occurred during definition loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadResult contains the modules loaded from a definitions directory.
type LoadResult struct {
	Modules   []*ir.Module
	FileCount int
}

// LoadDefinitions compiles every .cue definition file in dir into an
// IR module, one module per file, in lexical file order so output is
// deterministic across runs. All compile errors are collected.
func LoadDefinitions(dir string) (*LoadResult, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("definitions directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeGeneric, Message: err.Error()}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.cue"))
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeGeneric, Message: err.Error()}}
	}
	if len(paths) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoDefinitions, Message: fmt.Sprintf("no .cue files in %s", dir)}}
	}
	sort.Strings(paths)

	ctx := cuecontext.New()
	result := &LoadResult{FileCount: len(paths)}
	var errs []error

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("reading %s: %v", path, err)})
			continue
		}

		value := ctx.CompileBytes(data)
		mod, err := compiler.CompileModule(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		result.Modules = append(result.Modules, mod)
	}

	return result, errs
}
