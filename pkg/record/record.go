package record

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/tasksheet/pkg/clickup"
)

// Columns is the sheet header, in the exact order Record.Row emits cells.
// Column A holds the task id; the reconciler keys on it.
var Columns = []string{"task_id", "task_name", "status", "assignees", "page_url", "date_closed", "url"}

// Record is one sheet row for a completed task. Every field is a plain
// string; absent source data becomes "".
type Record struct {
	TaskID     string
	TaskName   string
	Status     string
	Assignees  string
	PageURL    string
	DateClosed string
	URL        string
}

// Row renders the record as an ordered cell slice matching Columns.
func (r Record) Row() []string {
	return []string{r.TaskID, r.TaskName, r.Status, r.Assignees, r.PageURL, r.DateClosed, r.URL}
}

// DoneStatuses is the closed set of status labels that count as finished.
// Matching is against the lower-cased, trimmed label.
type DoneStatuses map[string]struct{}

// NewDoneStatuses builds a set from labels, normalizing each one.
func NewDoneStatuses(labels ...string) DoneStatuses {
	s := make(DoneStatuses, len(labels))
	for _, l := range labels {
		s[strings.ToLower(strings.TrimSpace(l))] = struct{}{}
	}
	return s
}

// DefaultDoneStatuses covers the terminal labels in common use across
// ClickUp spaces.
var DefaultDoneStatuses = NewDoneStatuses("complete", "completed", "done", "published", "finalized", "closed")

// IsDone reports whether a task counts as finished: its status label is in
// the set, or the task has been archived.
func IsDone(task clickup.Task, done DoneStatuses) bool {
	if task.Archived {
		return true
	}
	_, ok := done[strings.ToLower(strings.TrimSpace(task.Status.Status))]
	return ok
}

// ExtractField returns the value of the named custom field as a string.
// Name matching ignores case and surrounding whitespace; the first match
// wins. ClickUp does not guarantee that a URL-typed field arrives as a
// plain string across all field configurations, so values go through an
// ordered coercion chain and anything unusable degrades to "" rather than
// failing the run.
func ExtractField(task clickup.Task, name string) string {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, f := range task.CustomFields {
		if strings.ToLower(strings.TrimSpace(f.Name)) == want {
			return coerce(f.Value)
		}
	}
	return ""
}

func coerce(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]any:
		if u, ok := val["url"].(string); ok {
			return u
		}
		if s, ok := val["value"].(string); ok {
			return s
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Normalize keeps the finished tasks and flattens each into a Record,
// preserving input order. Records that end up without a task id are
// dropped; every other field defaults to "".
func Normalize(tasks []clickup.Task, done DoneStatuses, pageURLField string) []Record {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		if !IsDone(t, done) {
			continue
		}
		if t.ID == "" {
			continue
		}
		records = append(records, Record{
			TaskID:     t.ID,
			TaskName:   t.Name,
			Status:     t.Status.Status,
			Assignees:  joinAssignees(t.Assignees),
			PageURL:    ExtractField(t, pageURLField),
			DateClosed: closedAt(t),
			URL:        t.URL,
		})
	}
	return records
}

func joinAssignees(assignees []clickup.Assignee) string {
	names := make([]string, 0, len(assignees))
	for _, a := range assignees {
		switch {
		case a.Username != "":
			names = append(names, a.Username)
		case a.Email != "":
			names = append(names, a.Email)
		default:
			names = append(names, strconv.FormatInt(a.ID, 10))
		}
	}
	return strings.Join(names, ", ")
}

const closedLayout = "2006-01-02T15:04:05.000Z"

// closedAt derives the completion timestamp from date_closed, falling back
// to date_done. Zero or unparsable values render as "".
func closedAt(t clickup.Task) string {
	raw := string(t.DateClosed)
	if raw == "" {
		raw = string(t.DateDone)
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(closedLayout)
}
