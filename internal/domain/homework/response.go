// internal/domain/homework/response.go
package homework

import (
	"encoding/json"
	"fmt"
	"math"

	"homework_status_bot/internal/domain/failure"
)

const (
	fieldHomeworks   = "homeworks"
	fieldCurrentDate = "current_date"
)

// CheckResponse validates the decoded API payload and returns its raw
// homework records. An empty list is a valid result.
func CheckResponse(payload any) ([]any, error) {
	const op = "homework.CheckResponse"

	response, ok := payload.(map[string]any)
	if !ok {
		return nil, failure.New(failure.KindSchemaError, op, fmt.Sprintf("response is %T, want an object", payload))
	}
	raw, ok := response[fieldHomeworks]
	if !ok {
		return nil, failure.New(failure.KindSchemaError, op, "response has no homeworks key")
	}
	homeworks, ok := raw.([]any)
	if !ok {
		return nil, failure.New(failure.KindSchemaError, op, fmt.Sprintf("homeworks is %T, want a list", raw))
	}
	return homeworks, nil
}

// CurrentDate extracts the server-supplied current_date from the payload.
// ok is false when the field is absent or not an integer.
func CurrentDate(payload any) (ts int64, present bool, ok bool) {
	response, isMap := payload.(map[string]any)
	if !isMap {
		return 0, false, false
	}
	raw, present := response[fieldCurrentDate]
	if !present {
		return 0, false, false
	}

	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, true, false
		}
		return n, true, true
	case float64:
		if v != math.Trunc(v) {
			return 0, true, false
		}
		return int64(v), true, true
	case int64:
		return v, true, true
	case int:
		return int64(v), true, true
	default:
		return 0, true, false
	}
}
