package clickup

import "strings"

// Millis is an epoch-milliseconds timestamp. ClickUp serializes these as
// decimal strings ("1700000000000") but bare numbers have been observed on
// some field configurations, so both are accepted.
type Millis string

// UnmarshalJSON implements the json.Unmarshaler interface for Millis.
func (m *Millis) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	*m = Millis(s)
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Millis.
func (m Millis) MarshalJSON() ([]byte, error) {
	return []byte(`"` + string(m) + `"`), nil
}

type Status struct {
	Status string `json:"status"`
	Type   string `json:"type,omitempty"`
}

type Assignee struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CustomField is a user-defined task attribute. Value's shape depends on
// the field type, so it stays untyped until extraction.
type CustomField struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value any    `json:"value"`
}

// Task mirrors the ClickUp v2 task export. Only the fields the sync reads
// are declared; everything else in the payload is ignored.
type Task struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Status       Status        `json:"status"`
	Archived     bool          `json:"archived"`
	Assignees    []Assignee    `json:"assignees"`
	CustomFields []CustomField `json:"custom_fields"`
	DateClosed   Millis        `json:"date_closed"`
	DateDone     Millis        `json:"date_done"`
	URL          string        `json:"url"`
}

type tasksResponse struct {
	Tasks []Task `json:"tasks"`
}
