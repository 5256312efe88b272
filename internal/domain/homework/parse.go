// internal/domain/homework/parse.go
package homework

import (
	"fmt"

	"homework_status_bot/internal/domain/failure"
)

const (
	fieldName   = "homework_name"
	fieldStatus = "status"
)

// StatusOf reads the status of one raw homework record without
// checking it against the known statuses.
func StatusOf(record any) (Status, error) {
	const op = "homework.StatusOf"

	fields, ok := record.(map[string]any)
	if !ok {
		return "", &failure.Error{Kind: failure.KindMissingField, Op: op, Field: fieldStatus, Msg: fmt.Sprintf("record is %T, want an object", record)}
	}
	raw, ok := fields[fieldStatus]
	if !ok {
		return "", &failure.Error{Kind: failure.KindMissingField, Op: op, Field: fieldStatus, Msg: "record has no status"}
	}
	status, ok := raw.(string)
	if !ok {
		return "", failure.New(failure.KindUnknownStatus, op, fmt.Sprintf("status %v is not a string", raw))
	}
	return Status(status), nil
}

// ParseStatus builds the chat message for a homework record whose status changed.
func ParseStatus(record any) (string, error) {
	const op = "homework.ParseStatus"

	fields, ok := record.(map[string]any)
	if !ok {
		return "", &failure.Error{Kind: failure.KindMissingField, Op: op, Msg: fmt.Sprintf("record is %T, want an object", record)}
	}
	for _, key := range []string{fieldName, fieldStatus} {
		if _, ok := fields[key]; !ok {
			return "", &failure.Error{Kind: failure.KindMissingField, Op: op, Field: key, Msg: "record has no " + key}
		}
	}

	var name string
	switch v := fields[fieldName].(type) {
	case nil:
		return "", failure.New(failure.KindEmptyName, op, "homework_name is null")
	case string:
		if v == "" {
			return "", failure.New(failure.KindEmptyName, op, "homework_name is empty")
		}
		name = v
	default:
		return "", failure.New(failure.KindSchemaError, op, fmt.Sprintf("homework_name is %T, want a string", v))
	}

	status, err := StatusOf(fields)
	if err != nil {
		return "", err
	}
	verdict, ok := status.Verdict()
	if !ok {
		return "", failure.New(failure.KindUnknownStatus, op, fmt.Sprintf("undocumented status %q", status))
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}
