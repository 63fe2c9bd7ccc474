//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
var Default = Build

// Build compiles the project binaries into the bin/ directory.
func Build() error {
	fmt.Println("Building...")
	return sh.Run("go", "build", "-o", "./bin", "./...")
}

// Install copies the loadsqlite binary to /usr/local/bin.
func Install() error {
	mg.Deps(Build)
	fmt.Println("Installing...")
	return sh.Run("cp", "bin/loadsqlite", "/usr/local/bin/loadsqlite")
}

// Test runs all tests in the project with verbose output.
func Test() error {
	fmt.Println("Running Tests...")
	return sh.Run("go", "test", "-v", "./...")
}

// Clean removes the bin directory and test outputs.
func Clean() error {
	fmt.Println("Cleaning...")
	return os.RemoveAll("bin")
}
