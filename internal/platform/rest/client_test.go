package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, nil, nil)
}

func TestDoNoContentSkipsBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	raw, err := client.Do(context.Background(), Request{Method: http.MethodDelete, Path: "/tables/7/seat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected nil payload for 204, got %s", raw)
	}
}

func TestDoBackendErrorWinsRegardlessOfStatus(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusInternalServerError} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			io.WriteString(w, `{"error":"reservation cannot be seated"}`)
		})

		_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/reservations"})
		var backendErr *BackendError
		if !errors.As(err, &backendErr) {
			t.Fatalf("status %d: expected BackendError, got %v", status, err)
		}
		if backendErr.Message != "reservation cannot be seated" {
			t.Fatalf("status %d: unexpected message %q", status, backendErr.Message)
		}
	}
}

func TestDoErrorTakesPrecedenceOverData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{"id":1},"error":"conflict"}`)
	})

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/reservations"})
	var backendErr *BackendError
	if !errors.As(err, &backendErr) || backendErr.Message != "conflict" {
		t.Fatalf("expected error precedence, got %v", err)
	}
}

func TestDoUnwrapsData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[{"id":1},{"id":2}]}`)
	})

	raw, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/reservations"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 items, got %d", len(decoded))
	}
}

func TestDoMissingDataFieldIsValid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})

	raw, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/tables"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("expected empty payload, got %s", raw)
	}
}

func TestDoSetsContentTypeAndEnvelopesBody(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"data":{"ok":true}}`)
	})

	_, err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/reservations",
		Body:   map[string]any{"first_name": "Ann", "people": 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type %q", gotContentType)
	}

	var parsed map[string]map[string]any
	if err := json.Unmarshal(gotBody, &parsed); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	data := parsed["data"]
	if data["first_name"] != "Ann" || data["people"] != float64(2) {
		t.Fatalf("unexpected request body: %s", gotBody)
	}
}

func TestDoMalformedJSONSurfacesError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": [`)
	})

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/reservations"})
	if err == nil {
		t.Fatal("expected decode error")
	}
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		t.Fatalf("decode failure must not masquerade as backend error: %v", err)
	}
}

func TestFetchResolvesFallbackOnCancellation(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	fallback := []string{}
	result, err := Fetch(ctx, client, Request{Method: http.MethodGet, Path: "/reservations"}, fallback)
	if err != nil {
		t.Fatalf("cancellation must not be an error, got %v", err)
	}
	if result == nil || len(result) != 0 {
		t.Fatalf("expected empty fallback slice, got %v", result)
	}
}

func TestFetchDecodesTypedResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{"table_name":"Bar #1","capacity":4}}`)
	})

	type table struct {
		TableName string `json:"table_name"`
		Capacity  int    `json:"capacity"`
	}

	result, err := Fetch(context.Background(), client, Request{Method: http.MethodGet, Path: "/tables/1"}, table{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(result, table{TableName: "Bar #1", Capacity: 4}) {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestFetchNullDataResolvesToZeroValue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":null}`)
	})

	result, err := Fetch(context.Background(), client, Request{Method: http.MethodGet, Path: "/tables"}, []int{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected zero value for null data, got %v", result)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("", 0, nil, nil)
	if client.baseURL != "http://localhost:5001" {
		t.Fatalf("unexpected default base URL: %s", client.baseURL)
	}
	if client.client.Timeout != 10*time.Second {
		t.Fatalf("unexpected default timeout: %s", client.client.Timeout)
	}

	trimmed := NewClient("http://backend:5001///", time.Second, nil, nil)
	if trimmed.baseURL != "http://backend:5001" {
		t.Fatalf("expected trailing slashes trimmed, got %s", trimmed.baseURL)
	}
}
