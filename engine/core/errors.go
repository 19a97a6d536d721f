package core

import (
	"errors"
	"fmt"
)

var (
	ErrCapacityExceeded = errors.New("resource table capacity exceeded")
	ErrAssetLoad        = errors.New("asset load failed")
	ErrCompile          = errors.New("shader compilation failed")
	ErrLink             = errors.New("shader program link failed")
	ErrInvalidMesh      = errors.New("invalid mesh description")
	ErrInvalidHandle    = errors.New("invalid resource handle")
	ErrRendererActive   = errors.New("a renderer is already initialized in this process")
	ErrNotInitialized   = errors.New("renderer not initialized")
)

// AssetError reports a file that could not be read or decoded.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("couldn't load '%s': %v", e.Path, e.Err)
}

func (e *AssetError) Unwrap() []error {
	return []error{ErrAssetLoad, e.Err}
}

// ShaderError carries the driver diagnostic of a failed compile or link step.
// Kind is either ErrCompile or ErrLink.
type ShaderError struct {
	Kind  error
	Stage string
	Path  string
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%v (%s stage, '%s'): %s", e.Kind, e.Stage, e.Path, e.Log)
	}
	return fmt.Sprintf("%v (%s stage): %s", e.Kind, e.Stage, e.Log)
}

func (e *ShaderError) Unwrap() error {
	return e.Kind
}
