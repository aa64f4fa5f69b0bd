package datasource

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// bundleSchemaJSON is the structural contract for an exported bundle. Only
// the top-level keys are constrained; entry contents are deliberately left
// open so sparse exports keep loading.
const bundleSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["schema_version", "entries"],
  "properties": {
    "schema_version": {"type": "string"},
    "entries": {"type": "array"}
  }
}`

// defaultPrinter formats schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// bundleSchema is the compiled JSON Schema for exported bundles.
var bundleSchema *jsonschema.Schema

func init() {
	bundleSchema = mustCompileSchema(bundleSchemaJSON, "bundle.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// Validate checks the top-level bundle shape: a keyed record carrying at
// least a schema_version string and an entries array. Nested transcript
// shape is not validated. Returns a *DataSourceError listing every violation.
func Validate(doc any) error {
	errs := ValidationErrors(doc)
	if len(errs) == 0 {
		return nil
	}
	return &DataSourceError{Op: "validate", Err: errors.New(strings.Join(errs, "; "))}
}

// ValidationErrors returns every structural violation in the document, one
// message per violation, or nil for a well-formed bundle.
func ValidationErrors(doc any) []string {
	err := bundleSchema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
