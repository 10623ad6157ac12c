package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/search/jql", r.URL.Path)
		assert.Equal(t, `project = TCP AND status = "Open"`, r.URL.Query().Get("jql"))
		assert.Equal(t, "50", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "summary,reporter,customfield_10401", r.URL.Query().Get("fields"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "ops@example.edu", user)
		assert.Equal(t, "token", pass)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"issues": [
				{
					"key": "TCP-1",
					"fields": {
						"summary": "New account request",
						"reporter": {"accountId": "acc-1", "displayName": "Alex Req", "emailAddress": "a@x.edu"},
						"customfield_10401": {"value": "labX"}
					}
				}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ops@example.edu", "token")
	issues, err := client.Search(context.Background(),
		`project = TCP AND status = "Open"`,
		[]string{"summary", "reporter", "customfield_10401"}, 50)

	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "TCP-1", issues[0].Key)
	assert.Equal(t, "labX", issues[0].SelectField("customfield_10401"))
	assert.Equal(t, "a@x.edu", issues[0].Reporter().EmailAddress)
}

func TestClient_SearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errorMessages":["auth failed"]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ops@example.edu", "bad")
	_, err := client.Search(context.Background(), "project = TCP", []string{"summary"}, 50)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "auth failed")
}

func TestClient_Myself(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/myself", r.URL.Path)
		w.Write([]byte(`{"accountId": "acc-ops", "displayName": "Ops Bot", "emailAddress": "ops@example.edu"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ops@example.edu", "token")
	me, err := client.Myself(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "acc-ops", me.AccountID)
	assert.Equal(t, "Ops Bot", me.DisplayName)
}

func TestClient_TransitionByName(t *testing.T) {
	var transitioned string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/rest/api/3/issue/TCP-1/transitions":
			w.Write([]byte(`{"transitions": [
				{"id": "11", "name": "Start work"},
				{"id": "21", "name": "Waiting for customer"}
			]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/rest/api/3/issue/TCP-1/transitions":
			var payload struct {
				Transition struct {
					ID string `json:"id"`
				} `json:"transition"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			transitioned = payload.Transition.ID
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ops@example.edu", "token")
	err := client.TransitionByName(context.Background(), "TCP-1", "waiting for customer")

	require.NoError(t, err)
	assert.Equal(t, "21", transitioned)
}

func TestClient_TransitionByName_NotAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transitions": [{"id": "11", "name": "Start work"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ops@example.edu", "token")
	err := client.TransitionByName(context.Background(), "TCP-1", "Waiting for customer")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Waiting for customer")
	assert.Contains(t, err.Error(), "Start work")
}

func TestClient_Assign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/rest/api/3/issue/TCP-1/assignee", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "acc-ops", payload["accountId"])
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ops@example.edu", "token")
	assert.NoError(t, client.Assign(context.Background(), "TCP-1", "acc-ops"))
}

func TestClient_ListFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/field", r.URL.Path)
		w.Write([]byte(`[{"id": "customfield_10401", "name": "PIRG"}, {"id": "summary", "name": "Summary"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ops@example.edu", "token")
	fields, err := client.ListFields(context.Background())

	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "PIRG", fields[0].Name)
}
