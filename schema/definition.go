package schema

import (
	"github.com/invopop/jsonschema"
)

// Definition reflects the JSON schema for a payload type, used as the
// parameter schema when a tool is registered with an LLM provider.
func Definition(v Schema) *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return reflector.Reflect(v)
}
