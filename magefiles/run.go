//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Checks the shaders and runs the game with assets/game.toml.
func (Run) Game() error {
	mg.Deps(Check.Shaders)
	fmt.Println("Run game...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "assets/game.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
