package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lansignal/internal/app/directory"
	"lansignal/internal/configs"
	"lansignal/internal/pkg/errs"
	"lansignal/internal/pkg/resp"
)

func newTestDeps() *AppDeps {
	return &AppDeps{
		Directory: directory.New(),
		Config: &configs.AppConfig{
			Environment:    "development",
			Port:           8080,
			AllowedOrigins: []string{},
		},
	}
}

func postSignal(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, resp.JSONResponse) {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/signal", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	var parsed resp.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

// registerUser registers a name through the handler and returns the assigned id.
func registerUser(t *testing.T, h http.Handler, name string) string {
	t.Helper()

	w, parsed := postSignal(t, h, `{"register":{"name":"`+name+`"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, parsed.Code)

	data, err := json.Marshal(parsed.Data)
	require.NoError(t, err)

	var result directory.RegisterResult
	require.NoError(t, json.Unmarshal(data, &result))
	return result.Self.ID
}

func TestHandleSignal_Register(t *testing.T) {
	req := require.New(t)
	deps := newTestDeps()
	h := HandleSignal(deps)

	w, parsed := postSignal(t, h, `{"register":{"name":"alice"}}`)
	req.Equal(http.StatusOK, w.Code)
	req.Equal(0, parsed.Code)

	data, err := json.Marshal(parsed.Data)
	req.NoError(err)

	var result directory.RegisterResult
	req.NoError(json.Unmarshal(data, &result))
	req.NotEmpty(result.Self.ID)
	req.Equal("alice", result.Self.Name)
	req.Len(result.AllUsers, 1)
}

func TestHandleSignal_RegisterEmptyName(t *testing.T) {
	req := require.New(t)
	h := HandleSignal(newTestDeps())

	w, parsed := postSignal(t, h, `{"register":{"name":"  "}}`)
	req.Equal(http.StatusBadRequest, w.Code)
	req.Equal(errs.ErrNameEmpty, parsed.Code)
}

func TestHandleSignal_UnknownOperation(t *testing.T) {
	req := require.New(t)
	h := HandleSignal(newTestDeps())

	w, parsed := postSignal(t, h, `{"subscribe":{"name":"alice"}}`)
	req.Equal(http.StatusBadRequest, w.Code)
	req.Equal(errs.ErrUnknownOperation, parsed.Code)
	req.Equal("unknown request parameters", parsed.Message)
}

func TestHandleSignal_DispatchPriorityOrder(t *testing.T) {
	req := require.New(t)
	deps := newTestDeps()
	h := HandleSignal(deps)

	// An envelope carrying both register and wait must execute register:
	// the fixed priority order decides, not key order in the document.
	w, parsed := postSignal(t, h, `{"wait":{"id":"nobody"},"register":{"name":"alice"}}`)
	req.Equal(http.StatusOK, w.Code)
	req.Equal(0, parsed.Code)
	req.Equal(1, deps.Directory.Len())
}

func TestHandleSignal_InvalidJSON(t *testing.T) {
	req := require.New(t)
	h := HandleSignal(newTestDeps())

	w, parsed := postSignal(t, h, `{"register":`)
	req.Equal(http.StatusBadRequest, w.Code)
	req.Equal(errs.ErrInvalidJSONFormat, parsed.Code)
}

func TestHandleSignal_BodyTooLarge(t *testing.T) {
	req := require.New(t)
	h := HandleSignal(newTestDeps())

	oversized := bytes.Repeat([]byte("a"), (1<<20)+1)
	body := `{"register":{"name":"` + string(oversized) + `"}}`

	w, parsed := postSignal(t, h, body)
	req.Equal(http.StatusRequestEntityTooLarge, w.Code)
	req.Equal(errs.ErrRequestEntityTooLarge, parsed.Code)
}

func TestHandleSignal_WaitUnknownUser(t *testing.T) {
	req := require.New(t)
	h := HandleSignal(newTestDeps())

	w, parsed := postSignal(t, h, `{"wait":{"id":"ghost"}}`)
	req.Equal(http.StatusBadRequest, w.Code)
	req.Equal(errs.ErrUnknownUserID, parsed.Code)
}

func TestHandleSignal_WaitReturnsQueuedMessagesImmediately(t *testing.T) {
	req := require.New(t)
	deps := newTestDeps()
	h := HandleSignal(deps)

	aliceID := registerUser(t, h, "alice")
	bobID := registerUser(t, h, "bob")

	// Drain the register event bob's arrival queued for alice.
	w, _ := postSignal(t, h, `{"wait":{"id":"`+aliceID+`"}}`)
	req.Equal(http.StatusOK, w.Code)

	_, parsed := postSignal(t, h, `{"offer":{"id":"`+bobID+`","name":"alice","offer":{"type":"offer","sdp":"v=0"}}}`)
	req.Equal(0, parsed.Code)

	w, parsed = postSignal(t, h, `{"wait":{"id":"`+aliceID+`"}}`)
	req.Equal(http.StatusOK, w.Code)

	data, err := json.Marshal(parsed.Data)
	req.NoError(err)

	var result directory.WaitResult
	req.NoError(json.Unmarshal(data, &result))
	req.Len(result.Messages, 1)

	var relayed struct {
		Offer json.RawMessage `json:"offer"`
		Name  string          `json:"name"`
	}
	req.NoError(json.Unmarshal(result.Messages[0], &relayed))
	req.Equal("bob", relayed.Name)
}

func TestHandleSignal_WaitBlocksUntilDelivery(t *testing.T) {
	req := require.New(t)
	deps := newTestDeps()
	h := HandleSignal(deps)

	aliceID := registerUser(t, h, "alice")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/signal", strings.NewReader(`{"wait":{"id":"`+aliceID+`"}}`))
	r.Header.Set("Content-Type", "application/json")

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(w, r)
	}()

	// Give the handler time to park the long-poll before relaying.
	time.Sleep(50 * time.Millisecond)

	opErr := deps.Directory.Enqueue(aliceID, directory.Message{
		Kind:    directory.KindReject,
		Payload: json.RawMessage(`{"reject":{"name":"bob"}}`),
	})
	req.Nil(opErr)
	req.Nil(deps.Directory.Deliver(aliceID))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("held-open wait was never fulfilled")
	}

	req.Equal(http.StatusOK, w.Code)

	var parsed resp.JSONResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &parsed))
	req.Equal(0, parsed.Code)
}

func TestHandleSignal_WaitCancelledOnDisconnect(t *testing.T) {
	req := require.New(t)
	deps := newTestDeps()
	h := HandleSignal(deps)

	aliceID := registerUser(t, h, "alice")

	ctx, cancel := context.WithCancel(context.Background())
	r := httptest.NewRequest(http.MethodPost, "/signal", strings.NewReader(`{"wait":{"id":"`+aliceID+`"}}`))
	r = r.WithContext(ctx)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(w, r)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after context cancellation")
	}

	// With the slot cleared, later relays stay queued for the next wait.
	req.Nil(deps.Directory.Enqueue(aliceID, directory.Message{
		Kind:    directory.KindOffer,
		Payload: json.RawMessage(`{}`),
	}))
	req.Nil(deps.Directory.Deliver(aliceID))

	_, parsed := postSignal(t, h, `{"wait":{"id":"`+aliceID+`"}}`)
	data, err := json.Marshal(parsed.Data)
	req.NoError(err)

	var result directory.WaitResult
	req.NoError(json.Unmarshal(data, &result))
	req.Len(result.Messages, 1)
}

func TestHandleSignal_UnregisterIsIdempotent(t *testing.T) {
	req := require.New(t)
	deps := newTestDeps()
	h := HandleSignal(deps)

	aliceID := registerUser(t, h, "alice")

	w, parsed := postSignal(t, h, `{"unregister":{"id":"`+aliceID+`"}}`)
	req.Equal(http.StatusOK, w.Code)
	req.Equal(0, parsed.Code)
	req.Equal(0, deps.Directory.Len())

	w, parsed = postSignal(t, h, `{"unregister":{"id":"`+aliceID+`"}}`)
	req.Equal(http.StatusOK, w.Code)
	req.Equal(0, parsed.Code)
}

func TestHandleSignal_UnregisterMissingID(t *testing.T) {
	req := require.New(t)
	h := HandleSignal(newTestDeps())

	w, parsed := postSignal(t, h, `{"unregister":{}}`)
	req.Equal(http.StatusBadRequest, w.Code)
	req.Equal(errs.ErrInvalidParams, parsed.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	req := require.New(t)
	router := Router(newTestDeps())

	r := httptest.NewRequest(http.MethodGet, "/no-such-route", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	req.Equal(http.StatusNotFound, w.Code)

	var parsed resp.JSONResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &parsed))
	req.Equal(errs.ErrRouteNotFound, parsed.Code)
}

func TestRouter_Health(t *testing.T) {
	req := require.New(t)
	router := Router(newTestDeps())

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)
}
