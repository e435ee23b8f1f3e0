package loopmessage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer auth-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if sec := r.Header.Get("X-API-Secret"); sec != "secret-key" {
			t.Errorf("X-API-Secret = %q", sec)
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		recipients, _ := body["recipients"].([]interface{})
		if len(recipients) != 2 {
			t.Errorf("recipients = %v", body["recipients"])
		}
		if body["content"] != "hello there" {
			t.Errorf("content = %v", body["content"])
		}
		if _, present := body["media_url"]; present {
			t.Error("media_url should be omitted when empty")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(MessageResponse{ID: "msg-1", Status: "queued"})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("auth-key", "secret-key", srv.URL)
	res, err := c.Send(context.Background(), []string{"+14155551234", "+14155556789"}, "hello there", "")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.ID != "msg-1" || res.Status != "queued" {
		t.Errorf("response = %+v", res)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "json body with message", body: `{"message":"invalid recipient"}`, want: "invalid recipient"},
		{name: "html body", body: "<!DOCTYPE html><html><body>502</body></html>", want: "HTML instead of JSON"},
		{name: "empty body", body: "", want: "empty error body"},
		{name: "plain text body", body: "service unavailable", want: "service unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &APIError{StatusCode: 400, Body: tt.body}
			if got := e.Error(); !strings.Contains(got, tt.want) {
				t.Errorf("Error() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestGetStatusUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"message not found"}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("auth-key", "secret-key", srv.URL)
	_, err := c.GetStatus(context.Background(), "missing")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Error(), "message not found") {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/status" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("auth-key", "secret-key", srv.URL)
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
