package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed device.schema.json
var deviceSchemaJSON string

const deviceSchemaURL = "device.schema.json"

func compileDeviceSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(deviceSchemaURL, strings.NewReader(deviceSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add device schema: %w", err)
	}
	schema, err := compiler.Compile(deviceSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile device schema: %w", err)
	}
	return schema, nil
}

// schemaViolations flattens a validation error into one message per leaf
// cause, each prefixed with the offending location.
func schemaViolations(err error) []string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	var out []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, instancePath(e.InstanceLocation)+": "+e.Message)
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return out
}

// instancePath turns a JSON pointer such as /io/parameters/0/name into
// io.parameters[0].name.
func instancePath(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return "(root)"
	}
	var b strings.Builder
	for i, token := range strings.Split(pointer, "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		if _, err := strconv.Atoi(token); err == nil {
			b.WriteString("[" + token + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(token)
	}
	return b.String()
}
