//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Check mg.Namespace

// Validates every GLSL stage under assets/shaders against OpenGL 4.1.
func (Check) Shaders() error {
	sources, err := shaderSources(filepath.Join("assets", "shaders"))
	if err != nil {
		return err
	}
	for _, src := range sources {
		if _, err := executeCmd("glslangValidator", withArgs(filepath.Base(src)), withDir(filepath.Dir(src))); err != nil {
			return err
		}
	}
	return nil
}

// Runs the unit tests.
func (Check) Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}
