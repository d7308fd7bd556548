// internal/domain/homework/validate.go
package homework

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// Validate checks the decoded body of a review API answer and converts it
// into a Response. It never returns a partially filled Response.
func Validate(raw any) (*Response, error) {
	body, ok := raw.(map[string]any)
	if !ok {
		return nil, &ShapeError{Reason: fmt.Sprintf("ответ пришел не в виде словаря, а %T", raw)}
	}

	hw, ok := body[KeyHomeworks]
	if !ok || hw == nil {
		return nil, &ShapeError{Field: KeyHomeworks, Reason: "отсутствует список заданий"}
	}
	cd, ok := body[KeyCurrentDate]
	if !ok || cd == nil {
		return nil, &ShapeError{Field: KeyCurrentDate, Reason: "отсутствует значение"}
	}

	list, ok := hw.([]any)
	if !ok {
		return nil, &ShapeError{Field: KeyHomeworks, Reason: fmt.Sprintf("ожидался список, получен %T", hw)}
	}
	records := make([]Record, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &ShapeError{
				Field:  fmt.Sprintf("%s[%d]", KeyHomeworks, i),
				Reason: fmt.Sprintf("ожидался словарь, получен %T", item),
			}
		}
		records = append(records, Record(obj))
	}

	cursor, err := toInt64(cd)
	if err != nil {
		return nil, &ShapeError{Field: KeyCurrentDate, Reason: err.Error()}
	}

	return &Response{Homeworks: records, CurrentDate: cursor}, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, errors.Newf("ожидалось целое число, получено %q", n.String())
		}
		return i, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, errors.Newf("ожидалось целое число, получено %v", n)
		}
		// float64(math.MaxInt64) rounds up to 2^63, hence >=.
		if n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, errors.Newf("число %v вне диапазона int64", n)
		}
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, errors.Newf("ожидалось целое число, получен %T", v)
	}
}
