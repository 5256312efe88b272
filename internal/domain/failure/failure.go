// internal/domain/failure/failure.go
package failure

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies every failure the bot can run into.
type Kind int

const (
	KindUnknown Kind = iota
	KindConnectionFailure
	KindUnexpectedStatusCode
	KindMalformedPayload
	KindSchemaError
	KindMissingField
	KindEmptyName
	KindUnknownStatus
	KindNotificationDeliveryFailure
	KindMissingCredential
)

var kindNames = map[Kind]string{
	KindUnknown:                     "Unknown",
	KindConnectionFailure:           "ConnectionFailure",
	KindUnexpectedStatusCode:        "UnexpectedStatusCode",
	KindMalformedPayload:            "MalformedPayload",
	KindSchemaError:                 "SchemaError",
	KindMissingField:                "MissingField",
	KindEmptyName:                   "EmptyName",
	KindUnknownStatus:               "UnknownStatus",
	KindNotificationDeliveryFailure: "NotificationDeliveryFailure",
	KindMissingCredential:           "MissingCredential",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error type returned by the bot's components.
// Only the fields relevant to Kind are set.
type Error struct {
	Kind       Kind
	Op         string // component operation, e.g. "practicum.FetchStatuses"
	Msg        string
	StatusCode int    // KindUnexpectedStatusCode
	Field      string // KindMissingField, KindMissingCredential
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an *Error of the given kind.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Wrap builds an *Error of the given kind around a cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain,
// or KindUnknown when there is none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
