// internal/webhook/validation.go
package webhook

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// requestSchema pins the webhook contract: intent name required, parameters
// optional strings. Unknown extra fields are tolerated since the platform
// sends more than we consume.
const requestSchema = `{
	"type": "object",
	"required": ["queryResult"],
	"properties": {
		"session": {"type": "string"},
		"queryResult": {
			"type": "object",
			"required": ["intent"],
			"properties": {
				"queryText": {"type": "string"},
				"parameters": {
					"type": "object",
					"properties": {
						"product": {"type": "string"},
						"location": {"type": "string"}
					},
					"additionalProperties": {"type": "string"}
				},
				"intent": {
					"type": "object",
					"required": ["displayName"],
					"properties": {
						"displayName": {"type": "string", "minLength": 1}
					}
				}
			}
		}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(requestSchema)

// ValidateRequest checks the raw payload against the webhook schema and
// returns one message per violation.
func ValidateRequest(body []byte) []string {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return []string{fmt.Sprintf("payload is not valid JSON: %v", err)}
	}

	if result.Valid() {
		return nil
	}

	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return errs
}
