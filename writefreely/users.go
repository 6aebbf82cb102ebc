package writefreely

import "time"

// User describes an account on the instance. Email and Created may be absent
// depending on instance settings and the request that produced the value.
type User struct {
	Username string     `json:"username"`
	Email    string     `json:"email,omitempty"`
	Created  *time.Time `json:"created,omitempty"`
}
