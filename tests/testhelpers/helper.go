// Package testhelpers wires database containers for the integration suites.
package testhelpers

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// GetTestDataFile resolves a file in the testdata directory next to this
// package, independent of the test's working directory.
func GetTestDataFile(name string) (*os.File, error) {
	_, caller, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("unable to resolve caller path")
	}

	path := filepath.Join(filepath.Dir(caller), "testdata", name)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}

	return file, nil
}
