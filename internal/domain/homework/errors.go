// internal/domain/homework/errors.go
package homework

import (
	"fmt"
	"net/url"

	"github.com/cockroachdb/errors"
)

// Kind classifies every failure a poll cycle can produce.
type Kind int

const (
	KindUnclassified Kind = iota
	KindTransport
	KindRemoteStatus
	KindDecode
	KindShape
	KindMissingField
	KindUnknownStatus
	KindNotification
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRemoteStatus:
		return "remote_status"
	case KindDecode:
		return "decode"
	case KindShape:
		return "shape"
	case KindMissingField:
		return "missing_field"
	case KindUnknownStatus:
		return "unknown_status"
	case KindNotification:
		return "notification"
	default:
		return "unclassified"
	}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnclassified
}

// TransportError is a network-level failure talking to the review API.
type TransportError struct {
	Endpoint string
	Params   url.Values
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ошибка при запросе к API %s (%s): %v", e.Endpoint, e.Params.Encode(), e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
func (e *TransportError) Kind() Kind    { return KindTransport }

// RemoteStatusError is a non-2xx answer from the review API.
type RemoteStatusError struct {
	StatusCode int
	Reason     string
	Body       string
	Params     url.Values
}

func (e *RemoteStatusError) Error() string {
	return fmt.Sprintf("эндпоинт вернул %d %s (%s)", e.StatusCode, e.Reason, e.Params.Encode())
}

func (e *RemoteStatusError) Kind() Kind { return KindRemoteStatus }

// DecodeError means the response body is not valid JSON.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ответ API не является JSON: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
func (e *DecodeError) Kind() Kind    { return KindDecode }

// ShapeError means the decoded response does not have the expected structure.
type ShapeError struct {
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Field == "" {
		return "некорректный ответ API: " + e.Reason
	}
	return fmt.Sprintf("некорректный ответ API, поле %q: %s", e.Field, e.Reason)
}

func (e *ShapeError) Kind() Kind { return KindShape }

// MissingFieldError means a homework record lacks a required key.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("в домашней работе отсутствует ключ %q", e.Field)
}

func (e *MissingFieldError) Kind() Kind { return KindMissingField }

// UnknownStatusError means the record's status is not in the catalog.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("неизвестный статус домашней работы: %q", e.Status)
}

func (e *UnknownStatusError) Kind() Kind { return KindUnknownStatus }

// NotificationError wraps a bot API failure.
type NotificationError struct {
	ChatID int64
	Err    error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("не удалось отправить сообщение в чат %d: %v", e.ChatID, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }
func (e *NotificationError) Kind() Kind    { return KindNotification }
