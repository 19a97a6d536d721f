//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the game binary into bin/.
func (Build) Game() error {
	mg.Deps(Check.Shaders)
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/arkanoop", "."), withStream()); err != nil {
		return err
	}
	return nil
}
