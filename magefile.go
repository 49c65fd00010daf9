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

const (
	binary       = "tranx"
	lambdaBinary = "bootstrap"
)

// Build builds the tranx binary
func Build() error {
	fmt.Println("Building tranx...")
	return sh.RunV("go", "build", "-o", binary, "./cmd/tranx")
}

// Lambda builds the Lambda bootstrap binary for the provided.al2023 runtime
func Lambda() error {
	fmt.Println("Building Lambda bootstrap...")
	env := map[string]string{"GOOS": "linux", "GOARCH": "arm64", "CGO_ENABLED": "0"}
	return sh.RunWithV(env, "go", "build", "-tags", "lambda.norpc", "-o", lambdaBinary, "./cmd/lambda")
}

// Install installs tranx into $GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/tranx")
}

// Test runs the unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs the unit tests with the race detector
func Race() error {
	return sh.RunV("go", "test", "-race", "./internal/...")
}

// Integration runs the tests that talk to the real APIs
func Integration() error {
	if os.Getenv("OPENAI_API_KEY") == "" {
		return fmt.Errorf("OPENAI_API_KEY must be set for integration tests")
	}
	return sh.RunV("go", "test", "-run", "Integration", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// All runs vet and tests, then builds everything
func All() {
	mg.SerialDeps(Vet, Test, Build, Lambda)
}

// Clean removes build artifacts
func Clean() error {
	for _, f := range []string{binary, lambdaBinary} {
		if err := sh.Rm(f); err != nil {
			return err
		}
	}
	return nil
}
