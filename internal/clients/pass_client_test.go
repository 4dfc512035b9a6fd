package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skypass/internal/models"
)

var testRequest = models.PassRequest{SatelliteID: "25544", Lat: "37.7749", Lng: "-122.4194"}

const twoPasses = `[
	{"startTime":"2025-02-14T18:00:00Z","endTime":"2025-02-14T18:07:00Z","maxElevation":77,"duration":420,"azimuthStart":310,"azimuthEnd":120},
	{"startTime":"2025-02-14T16:00:00Z","endTime":"2025-02-14T16:05:00Z","maxElevation":20,"duration":300,"azimuthStart":200,"azimuthEnd":90}
]`

// TestFetchPassesRequestShape verifies method, headers and body of the
// outbound request.
func TestFetchPassesRequestShape(t *testing.T) {
	var got models.PassRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/passes" {
			t.Errorf("path = %s, want /api/passes", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(twoPasses))
	}))
	defer server.Close()

	client := NewPassClient(server.URL+"/api/passes", 0)
	passes, err := client.FetchPasses(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != testRequest {
		t.Errorf("request body = %+v, want %+v", got, testRequest)
	}
	if len(passes) != 2 {
		t.Fatalf("got %d passes, want 2", len(passes))
	}
	// Source order, not chronological order.
	if passes[0].MaxElevation != 77 || passes[1].MaxElevation != 20 {
		t.Errorf("passes reordered: %+v", passes)
	}
}

func TestFetchPassesEmptyArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	passes, err := NewPassClient(server.URL, 0).FetchPasses(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if passes == nil || len(passes) != 0 {
		t.Errorf("passes = %#v, want empty slice", passes)
	}
}

func TestFetchPassesFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, ErrStatus},
		{"not found", http.StatusNotFound, ``, ErrStatus},
		{"redirect status", http.StatusNotModified, ``, ErrStatus},
		{"malformed json", http.StatusOK, `[{"startTime":`, ErrDecode},
		{"object not array", http.StatusOK, `{"passes":[]}`, ErrDecode},
		{"null body", http.StatusOK, `null`, ErrDecode},
		{"invariant violation", http.StatusOK, `[{"startTime":"2025-02-14T18:07:00Z","endTime":"2025-02-14T18:00:00Z","maxElevation":10,"duration":1}]`, ErrDecode},
		{"oversized body", http.StatusOK, "[" + strings.Repeat(" ", maxPassResponseBytes) + "]", ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewPassClient(server.URL, 0).FetchPasses(context.Background(), testRequest)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetchPassesTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewPassClient(url, 0).FetchPasses(context.Background(), testRequest)
	if !errors.Is(err, ErrTransport) {
		t.Errorf("error = %v, want ErrTransport", err)
	}
}
