package validation

import (
	"encoding/json"
	"io"
	"net/http"
)

// Issues maps a field name to the list of human-readable rule violations raised for it.
// An empty Issues value means the input passed every rule.
type Issues map[string][]string

// Add appends a violation message to the given field
func (issues Issues) Add(field, message string) {
	issues[field] = append(issues[field], message)
}

// Merge copies all violations of other into issues
func (issues Issues) Merge(other Issues) {
	for field, messages := range other {
		issues[field] = append(issues[field], messages...)
	}
}

// DecodeBody parses a JSON request body into the given target type.
// Malformed input is a normal, expected outcome and is reported through the returned
// Issues value rather than an error; the error return is reserved for I/O failures.
func DecodeBody[T any](request *http.Request) (*T, Issues, error) {
	body, err := io.ReadAll(request.Body)
	if err != nil {
		return nil, nil, err
	}

	target := new(T)
	if err := json.Unmarshal(body, target); err != nil {
		issues := Issues{}
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok && typeErr.Field != "" {
			issues.Add(typeErr.Field, "Field could not be assigned to the required type ("+typeErr.Type.String()+").")
		} else {
			issues.Add("body", "Request body is not a valid JSON input.")
		}
		return nil, issues, nil
	}

	return target, nil, nil
}
