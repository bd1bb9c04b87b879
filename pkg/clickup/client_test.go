package clickup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageOf(ids ...string) []Task {
	tasks := make([]Task, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, Task{ID: id})
	}
	return tasks
}

func TestFetchAllPaginates(t *testing.T) {
	pages := [][]Task{
		pageOf("1", "2"),
		pageOf("3", "4"),
		pageOf("5"),
		nil,
	}

	var requests int
	fetch := func(ctx context.Context, page int) ([]Task, error) {
		requests++
		require.Less(t, page, len(pages), "requested past the empty page")
		require.Equal(t, requests-1, page, "pages must be requested in order")
		return pages[page], nil
	}

	tasks, err := FetchAll(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 4, requests)
	require.Len(t, tasks, 5)
	for i, id := range []string{"1", "2", "3", "4", "5"} {
		assert.Equal(t, id, tasks[i].ID)
	}
}

func TestFetchAllPageCap(t *testing.T) {
	var requests int
	fetch := func(ctx context.Context, page int) ([]Task, error) {
		requests++
		return pageOf(fmt.Sprintf("t%d", page)), nil
	}

	tasks, err := FetchAll(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, maxPages, requests)
	assert.Len(t, tasks, maxPages)
}

func TestFetchAllPropagatesError(t *testing.T) {
	fetch := func(ctx context.Context, page int) ([]Task, error) {
		if page == 1 {
			return nil, fmt.Errorf("boom")
		}
		return pageOf("1"), nil
	}

	_, err := FetchAll(context.Background(), fetch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 1")
}

func TestListTasksRequests(t *testing.T) {
	pages := [][]Task{pageOf("a"), nil}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "/list/901/task", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("include_closed"))

		page := 0
		fmt.Sscanf(r.URL.Query().Get("page"), "%d", &page)

		w.Header().Set("Content-Type", "application/json")
		if page >= len(pages) {
			json.NewEncoder(w).Encode(tasksResponse{})
			return
		}
		json.NewEncoder(w).Encode(tasksResponse{Tasks: pages[page]})
	}))
	defer server.Close()

	client := NewClient("token-123")
	client.http.SetBaseURL(server.URL)

	tasks, err := FetchAll(context.Background(), client.ListTasks("901"))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "a", tasks[0].ID)
}

func TestTeamTasksErrorIncludesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"err":"Token invalid","ECODE":"OAUTH_025"}`)
	}))
	defer server.Close()

	client := NewClient("bad-token")
	client.http.SetBaseURL(server.URL)

	_, err := client.TeamTasks("333")(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OAUTH_025")
}

func TestMillisUnmarshal(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","date_closed":"1700000000000"}`), &task))
	assert.Equal(t, Millis("1700000000000"), task.DateClosed)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","date_closed":1700000000000}`), &task))
	assert.Equal(t, Millis("1700000000000"), task.DateClosed)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","date_closed":null}`), &task))
	assert.Equal(t, Millis(""), task.DateClosed)
}
