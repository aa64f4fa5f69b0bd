package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aigit-dev/examboard/internal/datasource"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <bundle.json>",
		Short: "Validate an exported bundle's structure",
		Long: `Validate an exported bundle's structure.

Runs the same top-level shape check the dashboard applies at load time: the
bundle must be a JSON object carrying a schema_version string and an entries
array. Nested transcript contents are not validated; sparse per-entry data
is accepted.

Exit codes: 0 valid, 1 invalid bundle, 2 runtime error.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}
	return cmd
}

func runCheck(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading bundle: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &BundleInvalidError{Message: fmt.Sprintf("%s: not valid JSON: %v", path, err)}
	}

	if errs := datasource.ValidationErrors(doc); len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "%s: invalid bundle:\n", path)
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
		return &BundleInvalidError{Message: fmt.Sprintf("%d structural error(s)", len(errs))}
	}

	data, err := datasource.Parse(raw)
	if err != nil {
		return &BundleInvalidError{Message: err.Error()}
	}

	fmt.Printf("%s: ok (%d entries, schema %s)\n", path, len(data.Entries), data.SchemaVersion)
	return nil
}
