package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0 // Bundle loaded / served without problems
	ExitBundleError = 1 // The bundle failed structural validation
	ExitError       = 2 // Configuration or runtime error
)

// BundleInvalidError indicates the tool ran successfully but the supplied
// bundle failed structural validation.
type BundleInvalidError struct {
	Message string
}

func (e *BundleInvalidError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var bundleErr *BundleInvalidError
		if errors.As(err, &bundleErr) {
			os.Exit(ExitBundleError)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
