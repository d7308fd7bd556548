// internal/domain/homework/homework.go
package homework

// JSON keys of the review API payload.
const (
	KeyHomeworks   = "homeworks"
	KeyCurrentDate = "current_date"
	KeyName        = "homework_name"
	KeyStatus      = "status"
)

// Record is one raw homework object from the API. Fields are kept untyped so
// that Render can tell an absent key from a present one.
type Record map[string]any

// Response is a validated API answer.
type Response struct {
	Homeworks   []Record
	CurrentDate int64 // next cursor, unix seconds
}
