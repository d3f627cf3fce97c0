package agents

import (
	genai "github.com/google/generative-ai-go/genai"
	"github.com/invopop/jsonschema"
)

// geminiSchema converts a reflected JSON schema into the Schema type the
// Gemini API expects for function declarations.
func geminiSchema(src *jsonschema.Schema) *genai.Schema {
	if src == nil {
		return nil
	}
	dist := &genai.Schema{
		Description: src.Description,
	}
	switch src.Type {
	case "object":
		dist.Type = genai.TypeObject
		dist.Required = src.Required
		if src.Properties != nil && src.Properties.Len() > 0 {
			dist.Properties = make(map[string]*genai.Schema, src.Properties.Len())
			for pair := src.Properties.Oldest(); pair != nil; pair = pair.Next() {
				dist.Properties[pair.Key] = geminiSchema(pair.Value)
			}
		}
	case "array":
		dist.Type = genai.TypeArray
		dist.Items = geminiSchema(src.Items)
	case "integer":
		dist.Type = genai.TypeInteger
	case "number":
		dist.Type = genai.TypeNumber
	case "boolean":
		dist.Type = genai.TypeBoolean
	default:
		dist.Type = genai.TypeString
		for _, enum := range src.Enum {
			if v, ok := enum.(string); ok {
				dist.Enum = append(dist.Enum, v)
			}
		}
	}
	return dist
}
