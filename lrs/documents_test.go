package lrs

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xapigo/xapi"
)

func stateFixtures(t *testing.T) (*xapi.Activity, *xapi.Agent) {
	t.Helper()
	activity, err := xapi.NewActivity("http://example.com/activity")
	require.NoError(t, err)
	agent, err := xapi.NewAgentWithMbox("tyler@example.com")
	require.NoError(t, err)
	return activity, agent
}

func TestRetrieveState(t *testing.T) {
	var gotQuery url.Values
	_, l := stubLRS(t, func(r chi.Router) {
		r.Get("/activities/state", func(w http.ResponseWriter, req *http.Request) {
			gotQuery = req.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("ETag", `"abc123"`)
			w.Header().Set("Last-Modified", "Tue, 02 Apr 2024 09:30:00 GMT")
			w.Write([]byte(`{"page": 4}`))
		})
	})

	activity, agent := stateFixtures(t)
	resp, err := l.RetrieveState(context.Background(), activity, agent, "bookmark", nil)
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Content)

	assert.Equal(t, "http://example.com/activity", gotQuery.Get("activityId"))
	assert.Equal(t, "bookmark", gotQuery.Get("stateId"))
	assert.Contains(t, gotQuery.Get("agent"), `"mbox":"mailto:tyler@example.com"`)

	doc := resp.Content
	assert.Equal(t, "bookmark", doc.ID)
	assert.Equal(t, []byte(`{"page": 4}`), doc.Content)
	assert.Equal(t, "application/json", doc.ContentType)
	assert.Equal(t, `"abc123"`, doc.Etag)
	require.NotNil(t, doc.Timestamp)
}

func TestRetrieveStateAbsent(t *testing.T) {
	_, l := stubLRS(t, func(r chi.Router) {
		r.Get("/activities/state", func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, "no such state", http.StatusNotFound)
		})
	})

	activity, agent := stateFixtures(t)
	resp, err := l.RetrieveState(context.Background(), activity, agent, "bookmark", nil)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Content)
}

func TestSaveState(t *testing.T) {
	var calls int
	var gotMethod, gotContentType, gotIfMatch string
	var gotBody []byte
	_, l := stubLRS(t, func(r chi.Router) {
		r.Put("/activities/state", func(w http.ResponseWriter, req *http.Request) {
			calls++
			gotMethod = req.Method
			gotContentType = req.Header.Get("Content-Type")
			gotIfMatch = req.Header.Get("If-Match")
			gotBody, _ = io.ReadAll(req.Body)
			w.WriteHeader(http.StatusNoContent)
		})
	})

	activity, agent := stateFixtures(t)
	doc := &xapi.StateDocument{
		Document: xapi.Document{ID: "bookmark", Content: []byte(`{"page": 4}`), Etag: `"abc123"`},
		Activity: activity,
		Agent:    agent,
	}
	resp, err := l.SaveState(context.Background(), doc)
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, 1, calls)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "application/octet-stream", gotContentType)
	assert.Equal(t, `"abc123"`, gotIfMatch)
	assert.Equal(t, []byte(`{"page": 4}`), gotBody)
}

func TestSaveStateKeepsContentType(t *testing.T) {
	var gotContentType string
	_, l := stubLRS(t, func(r chi.Router) {
		r.Put("/activities/state", func(w http.ResponseWriter, req *http.Request) {
			gotContentType = req.Header.Get("Content-Type")
			w.WriteHeader(http.StatusNoContent)
		})
	})

	activity, agent := stateFixtures(t)
	doc := &xapi.StateDocument{
		Document: xapi.Document{ID: "bookmark", ContentType: "application/json", Content: []byte(`{}`)},
		Activity: activity,
		Agent:    agent,
	}
	_, err := l.SaveState(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
}

func TestDeleteState(t *testing.T) {
	var gotQuery url.Values
	_, l := stubLRS(t, func(r chi.Router) {
		r.Delete("/activities/state", func(w http.ResponseWriter, req *http.Request) {
			gotQuery = req.URL.Query()
			w.WriteHeader(http.StatusNoContent)
		})
	})

	activity, agent := stateFixtures(t)
	doc := &xapi.StateDocument{
		Document: xapi.Document{ID: "bookmark"},
		Activity: activity,
		Agent:    agent,
	}
	resp, err := l.DeleteState(context.Background(), doc)
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, "bookmark", gotQuery.Get("stateId"))
}

func TestClearStateOmitsStateID(t *testing.T) {
	var gotQuery url.Values
	_, l := stubLRS(t, func(r chi.Router) {
		r.Delete("/activities/state", func(w http.ResponseWriter, req *http.Request) {
			gotQuery = req.URL.Query()
			w.WriteHeader(http.StatusNoContent)
		})
	})

	activity, agent := stateFixtures(t)
	resp, err := l.ClearState(context.Background(), activity, agent, nil)
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.False(t, gotQuery.Has("stateId"))
	assert.Equal(t, "http://example.com/activity", gotQuery.Get("activityId"))
}

func TestRetrieveStateIDs(t *testing.T) {
	_, l := stubLRS(t, func(r chi.Router) {
		r.Get("/activities/state", func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`["bookmark", "progress"]`))
		})
	})

	activity, agent := stateFixtures(t)
	resp, err := l.RetrieveStateIDs(context.Background(), activity, agent, nil, nil)
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, []string{"bookmark", "progress"}, resp.Content)
}

func TestActivityProfileLifecycle(t *testing.T) {
	store := map[string][]byte{}
	_, l := stubLRS(t, func(r chi.Router) {
		r.Put("/activities/profile", func(w http.ResponseWriter, req *http.Request) {
			body, _ := io.ReadAll(req.Body)
			store[req.URL.Query().Get("profileId")] = body
			w.WriteHeader(http.StatusNoContent)
		})
		r.Get("/activities/profile", func(w http.ResponseWriter, req *http.Request) {
			body, ok := store[req.URL.Query().Get("profileId")]
			if !ok {
				http.Error(w, "no such profile", http.StatusNotFound)
				return
			}
			w.Header().Set("ETag", `"v1"`)
			w.Write(body)
		})
		r.Delete("/activities/profile", func(w http.ResponseWriter, req *http.Request) {
			delete(store, req.URL.Query().Get("profileId"))
			w.WriteHeader(http.StatusNoContent)
		})
	})

	activity, _ := stateFixtures(t)
	doc := &xapi.ActivityProfileDocument{
		Document: xapi.Document{ID: "highscores", Content: []byte(`[100, 92]`)},
		Activity: activity,
	}
	saveResp, err := l.SaveActivityProfile(context.Background(), doc)
	require.NoError(t, err)
	require.True(t, saveResp.Success)

	getResp, err := l.RetrieveActivityProfile(context.Background(), activity, "highscores")
	require.NoError(t, err)
	require.True(t, getResp.Success)
	require.NotNil(t, getResp.Content)
	assert.Equal(t, []byte(`[100, 92]`), getResp.Content.Content)
	assert.Equal(t, `"v1"`, getResp.Content.Etag)

	delResp, err := l.DeleteActivityProfile(context.Background(), getResp.Content)
	require.NoError(t, err)
	require.True(t, delResp.Success)

	goneResp, err := l.RetrieveActivityProfile(context.Background(), activity, "highscores")
	require.NoError(t, err)
	assert.True(t, goneResp.Success)
	assert.Nil(t, goneResp.Content)
}

func TestAgentProfileLifecycle(t *testing.T) {
	store := map[string][]byte{}
	_, l := stubLRS(t, func(r chi.Router) {
		r.Put("/agents/profile", func(w http.ResponseWriter, req *http.Request) {
			body, _ := io.ReadAll(req.Body)
			store[req.URL.Query().Get("profileId")] = body
			w.WriteHeader(http.StatusNoContent)
		})
		r.Get("/agents/profile", func(w http.ResponseWriter, req *http.Request) {
			body, ok := store[req.URL.Query().Get("profileId")]
			if !ok {
				http.Error(w, "no such profile", http.StatusNotFound)
				return
			}
			w.Write(body)
		})
	})

	_, agent := stateFixtures(t)
	doc := &xapi.AgentProfileDocument{
		Document: xapi.Document{ID: "prefs", Content: []byte(`{"theme": "dark"}`)},
		Agent:    agent,
	}
	saveResp, err := l.SaveAgentProfile(context.Background(), doc)
	require.NoError(t, err)
	require.True(t, saveResp.Success)

	getResp, err := l.RetrieveAgentProfile(context.Background(), agent, "prefs")
	require.NoError(t, err)
	require.True(t, getResp.Success)
	require.NotNil(t, getResp.Content)
	assert.Equal(t, []byte(`{"theme": "dark"}`), getResp.Content.Content)
}

func TestRetrieveAgentProfileIDs(t *testing.T) {
	_, l := stubLRS(t, func(r chi.Router) {
		r.Get("/agents/profile", func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`["prefs"]`))
		})
	})

	_, agent := stateFixtures(t)
	resp, err := l.RetrieveAgentProfileIDs(context.Background(), agent, nil)
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, []string{"prefs"}, resp.Content)
}

func TestStateRequiresActivityAndAgent(t *testing.T) {
	_, l := stubLRS(t, func(r chi.Router) {
		r.Get("/activities/state", func(w http.ResponseWriter, req *http.Request) {
			t.Error("request should not have been sent")
		})
	})

	_, agent := stateFixtures(t)
	_, err := l.RetrieveState(context.Background(), nil, agent, "bookmark", nil)
	assert.ErrorIs(t, err, xapi.ErrInvalidValue)

	activity, _ := stateFixtures(t)
	_, err = l.RetrieveState(context.Background(), activity, nil, "bookmark", nil)
	assert.ErrorIs(t, err, xapi.ErrInvalidValue)
}
