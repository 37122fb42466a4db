package shader

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"gl-practice/gpu"
)

// ErrProgramNotActive is recorded when a uniform is set on a program that is
// not the one currently bound.
var ErrProgramNotActive = errors.New("shader: program is not active")

// SourceReadError reports a shader source file that could not be read.
type SourceReadError struct {
	Stage gpu.Stage
	Path  string
	Err   error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read %s shader %q: %v", e.Stage, e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// CompileError carries the compiler log of the stage that failed.
type CompileError struct {
	Stage gpu.Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compile failed: %s", e.Stage, e.Log)
}

// LinkError carries the linker log.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program link failed: %s", e.Log)
}

// UniformNotFoundError is recorded when a name has no active uniform in the
// program. It never stops a frame.
type UniformNotFoundError struct {
	Program uint32
	Name    string
}

func (e *UniformNotFoundError) Error() string {
	return fmt.Sprintf("uniform %q not found in program %d", e.Name, e.Program)
}
