// internal/webhook/models.go
package webhook

// Request is the fulfillment webhook payload the conversational platform
// posts. Only the fields this service consumes are modeled.
type Request struct {
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult"`
}

type QueryResult struct {
	QueryText  string            `json:"queryText"`
	Parameters map[string]string `json:"parameters"`
	Intent     Intent            `json:"intent"`
}

type Intent struct {
	DisplayName string `json:"displayName"`
}

// Response carries the one field the platform requires.
type Response struct {
	FulfillmentText string `json:"fulfillmentText"`
}

// ErrorResponse is returned for payloads that fail schema validation.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
