package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRequest           = errors.New("invalid scaffold request")
	ErrInvalidPackageName       = errors.New("invalid package name")
	ErrIncompatibleDSL          = errors.New("incompatible Camel DSL")
	ErrArtifactNotFound         = errors.New("wsdl2rest converter artifact not found")
	ErrAmbiguousArtifact        = errors.New("ambiguous wsdl2rest converter artifact")
	ErrConverterExecutionFailed = errors.New("wsdl2rest converter failed")
	ErrFragmentMerge            = errors.New("merging build fragment failed")
	ErrProjectExists            = errors.New("project already exists")
)

// ConverterError reports a failed converter process. ExitCode is -1 when the
// process could not be started or was killed before it exited.
type ConverterError struct {
	Command  []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ConverterError) Error() string {
	var b strings.Builder
	b.WriteString(ErrConverterExecutionFailed.Error())
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " (exit code %d)", e.ExitCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		fmt.Fprintf(&b, "\n%s", s)
	}
	return b.String()
}

func (e *ConverterError) Unwrap() error { return e.Err }

func (e *ConverterError) Is(target error) bool {
	return target == ErrConverterExecutionFailed
}
