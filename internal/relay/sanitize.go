package relay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"travelmitra-backend/internal/types"
)

// Sanitize strips markdown code fences the model wraps around JSON even
// when told not to. Every "```json" and every bare "```" is removed.
func Sanitize(raw string) string {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ParsePlan checks that text is JSON and returns it compacted. With
// strict set, the value must also be an object matching types.TripPlan.
func ParsePlan(text string, strict bool) (json.RawMessage, error) {
	data := []byte(text)
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, &MalformedPlanError{Err: err}
	}
	if strict {
		if err := validatePlan(buf.Bytes()); err != nil {
			return nil, &MalformedPlanError{Err: err}
		}
	}
	return json.RawMessage(buf.Bytes()), nil
}

func validatePlan(data []byte) error {
	if len(data) == 0 || data[0] != '{' {
		return errors.New("plan is not a JSON object")
	}
	var plan types.TripPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("field %q should be %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
		}
		return err
	}
	return nil
}
