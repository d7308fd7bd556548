// internal/domain/homework/render.go
package homework

import "fmt"

// Render builds the notification text for a single homework record.
func Render(rec Record) (string, error) {
	name, err := stringField(rec, KeyName)
	if err != nil {
		return "", err
	}
	status, err := stringField(rec, KeyStatus)
	if err != nil {
		return "", err
	}

	verdict, ok := Verdict(Status(status))
	if !ok {
		return "", &UnknownStatusError{Status: status}
	}
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}

func stringField(rec Record, key string) (string, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return "", &MissingFieldError{Field: key}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ShapeError{Field: key, Reason: fmt.Sprintf("ожидалась строка, получен %T", v)}
	}
	return s, nil
}
