package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chatstat/chatstat/internal/logger"
	"github.com/chatstat/chatstat/pkg/analyzer"
	"github.com/chatstat/chatstat/pkg/config"
	"github.com/chatstat/chatstat/pkg/output"
)

func newTestReport() *output.Report {
	return &output.Report{
		Summary: output.Summary{
			Messages:     42,
			Words:        310,
			Participants: 3,
			FirstDate:    "2023-03-01",
			LastDate:     "2023-04-02",
			MostActive:   "Alice",
		},
		Statistics: &analyzer.Result{
			Overview: analyzer.Overview{Messages: 42, Words: 310},
		},
		Metadata: output.Metadata{
			ConfigFile: "chatstat.yaml",
			Sources:    []string{"chat.txt"},
			AnalyzedAt: time.Now(),
			Duration:   time.Second,
		},
	}
}

func TestClient_Send_Success(t *testing.T) {
	var receivedBody []byte
	var receivedContentType string
	var receivedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedContentType = r.Header.Get("Content-Type")
		receivedAuth = r.Header.Get("Authorization")
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(WithLogger(logger.Discard()))
	report := newTestReport()

	resp := client.Send(context.Background(), report, SendOptions{
		URL: server.URL,
	})

	if !resp.Success() {
		t.Errorf("expected success, got error: %v", resp.Error)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	if resp.Body != `{"status":"ok"}` {
		t.Errorf("unexpected body: %s", resp.Body)
	}

	if receivedContentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", receivedContentType)
	}

	if receivedAuth != "" {
		t.Errorf("expected no auth header, got %s", receivedAuth)
	}

	// Verify payload is valid JSON containing expected fields
	var payload map[string]interface{}
	if err := json.Unmarshal(receivedBody, &payload); err != nil {
		t.Errorf("failed to parse received payload: %v", err)
	}

	summary, ok := payload["summary"].(map[string]interface{})
	if !ok {
		t.Fatal("payload missing summary field")
	}
	if summary["messages"] != float64(42) {
		t.Errorf("summary.messages = %v, want 42", summary["messages"])
	}
}

func TestClient_Send_WithBearerToken(t *testing.T) {
	var receivedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithLogger(logger.Discard()))
	report := newTestReport()

	resp := client.Send(context.Background(), report, SendOptions{
		URL:   server.URL,
		Token: "secret-token-123",
	})

	if !resp.Success() {
		t.Errorf("expected success, got error: %v", resp.Error)
	}

	if receivedAuth != "Bearer secret-token-123" {
		t.Errorf("expected Bearer token, got %s", receivedAuth)
	}
}

func TestClient_Send_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
	}))
	defer server.Close()

	client := NewClient(WithLogger(logger.Discard()))
	report := newTestReport()

	resp := client.Send(context.Background(), report, SendOptions{
		URL: server.URL,
	})

	if resp.Success() {
		t.Error("expected failure, got success")
	}

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", resp.StatusCode)
	}

	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}

func TestClient_Send_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithLogger(logger.Discard()))
	report := newTestReport()

	resp := client.Send(context.Background(), report, SendOptions{
		URL:     server.URL,
		Timeout: 50 * time.Millisecond,
	})

	if resp.Success() {
		t.Error("expected failure due to timeout")
	}

	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}

func TestClient_Send_InvalidURL(t *testing.T) {
	client := NewClient(WithLogger(logger.Discard()))
	report := newTestReport()

	resp := client.Send(context.Background(), report, SendOptions{
		URL: "://invalid-url",
	})

	if resp.Success() {
		t.Error("expected failure for invalid URL")
	}

	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}

func TestClient_Send_ConnectionRefused(t *testing.T) {
	client := NewClient(WithLogger(logger.Discard()))
	report := newTestReport()

	resp := client.Send(context.Background(), report, SendOptions{
		URL:     "http://127.0.0.1:59999", // Unlikely to be listening
		Timeout: 100 * time.Millisecond,
	})

	if resp.Success() {
		t.Error("expected failure for connection refused")
	}

	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}

func TestResponse_Success(t *testing.T) {
	tests := []struct {
		name        string
		resp        Response
		wantSuccess bool
	}{
		{"200 OK", Response{StatusCode: 200}, true},
		{"201 Created", Response{StatusCode: 201}, true},
		{"204 No Content", Response{StatusCode: 204}, true},
		{"400 Bad Request", Response{StatusCode: 400}, false},
		{"500 Server Error", Response{StatusCode: 500}, false},
		{"With Error", Response{StatusCode: 200, Error: io.EOF}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.Success(); got != tt.wantSuccess {
				t.Errorf("Success() = %v, want %v", got, tt.wantSuccess)
			}
		})
	}
}

func TestClient_Send_LargeResponseTruncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(strings.Repeat("x", maxResponseBody+100)))
	}))
	defer server.Close()

	resp := NewClient(WithLogger(logger.Discard())).Send(context.Background(), newTestReport(), SendOptions{URL: server.URL})

	if !resp.Success() {
		t.Fatalf("expected success, got %v", resp.Error)
	}
	if len(resp.Body) != maxResponseBody {
		t.Errorf("body length = %d, want %d", len(resp.Body), maxResponseBody)
	}
}

func TestClient_Dispatch(t *testing.T) {
	var hits atomic.Int32
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ok.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()

	hooks := []config.WebhookConfig{
		{Name: "first", URL: ok.URL},
		{Name: "broken", URL: failing.URL, Timeout: time.Second},
		{Name: "second", URL: ok.URL, Token: "t"},
	}

	client := NewClient(WithLogger(logger.Discard()))
	responses := client.Dispatch(context.Background(), newTestReport(), hooks)

	if len(responses) != 3 {
		t.Fatalf("Dispatch() returned %d responses, want 3", len(responses))
	}
	if hits.Load() != 3 {
		t.Errorf("server hits = %d, want 3", hits.Load())
	}
	for i, want := range []bool{true, false, true} {
		if responses[i].Name != hooks[i].Name {
			t.Errorf("responses[%d].Name = %q, want %q", i, responses[i].Name, hooks[i].Name)
		}
		if responses[i].Success() != want {
			t.Errorf("responses[%d].Success() = %v, want %v", i, responses[i].Success(), want)
		}
	}
}

func TestClient_Dispatch_NoHooks(t *testing.T) {
	responses := NewClient().Dispatch(context.Background(), newTestReport(), nil)
	if len(responses) != 0 {
		t.Errorf("Dispatch(nil) = %d responses", len(responses))
	}
}
