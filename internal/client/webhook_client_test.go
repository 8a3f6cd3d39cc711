package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taskboard/taskboard/internal/events"
)

func TestWebhookClient_DeliverPostsEventJSON(t *testing.T) {
	var (
		gotMethod      string
		gotContentType string
		got            events.Event
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewWebhookClient(srv.URL, time.Second, zap.NewNop())
	err := c.Deliver(context.Background(), events.Event{
		ID:        "e1",
		Type:      events.EventTaskDeleted,
		SubjectID: "t1",
		Payload:   events.TaskDeletedPayload{UserID: "u1"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Contains(t, gotContentType, "application/json")
	assert.Equal(t, "e1", got.ID)
	assert.Equal(t, events.EventTaskDeleted, got.Type)
	assert.Equal(t, "t1", got.SubjectID)
	assert.Equal(t, map[string]any{"user_id": "u1"}, got.Payload)
}

func TestWebhookClient_RejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewWebhookClient(srv.URL, time.Second, nil)
	err := c.Deliver(context.Background(), events.Event{Type: events.EventUserCreated, SubjectID: "u1"})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
}

func TestWebhookClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewWebhookClient(url, 500*time.Millisecond, zap.NewNop())
	assert.Error(t, c.Deliver(context.Background(), events.Event{Type: events.EventUserCreated, SubjectID: "u1"}))
}
