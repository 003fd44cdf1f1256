package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todolist/internal/utils"
)

const schemaURL = "tasks.schema.json"

// fileSchema describes the persisted list. Only title, due_date, priority
// and tags are required; older files may lack completed.
const fileSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "due_date", "priority", "tags"],
    "properties": {
      "title": {"type": "string"},
      "due_date": {"type": "string"},
      "priority": {"type": "string"},
      "tags": {"type": "array", "items": {"type": "string"}},
      "recurring": {"type": "boolean"},
      "progress": {"type": "integer"},
      "completed": {"type": "boolean"}
    }
  }
}`

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(fileSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// decodeDocument parses raw JSON into the generic form the validator expects.
func decodeDocument(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid JSON: unexpected data after top-level value")
	}
	return doc, nil
}

// validateDocument checks the shape of a decoded tasks file.
func validateDocument(doc interface{}) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile tasks schema: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ParseError{Err: err}
	}

	var leaves []*ParseError
	collectSchemaErrors(&leaves, ve)
	switch len(leaves) {
	case 0:
		return &ParseError{Err: errors.New(ve.Message)}
	case 1:
		return leaves[0]
	default:
		first := leaves[0]
		return &ParseError{
			Path: first.Path,
			Err:  fmt.Errorf("%w (and %d more)", first.Err, len(leaves)-1),
		}
	}
}

func collectSchemaErrors(out *[]*ParseError, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*out = append(*out, &ParseError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}
