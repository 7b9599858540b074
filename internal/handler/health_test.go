package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingStub struct {
	err error
}

func (p *pingStub) Ping(ctx context.Context) error {
	return p.err
}

func TestHealthHandler_Healthz(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Healthz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readyz(t *testing.T) {
	tests := []struct {
		name     string
		store    HealthChecker
		cache    HealthChecker
		wantCode int
		want     map[string]string
	}{
		{
			name:     "all healthy",
			store:    &pingStub{},
			cache:    &pingStub{},
			wantCode: http.StatusOK,
			want:     map[string]string{"store": "ok", "cache": "ok"},
		},
		{
			name:     "store down",
			store:    &pingStub{err: errors.New("timeout")},
			cache:    &pingStub{},
			wantCode: http.StatusServiceUnavailable,
			want:     map[string]string{"store": "unreachable", "cache": "ok"},
		},
		{
			name:     "cache not configured",
			store:    &pingStub{},
			cache:    nil,
			wantCode: http.StatusServiceUnavailable,
			want:     map[string]string{"store": "ok", "cache": "not configured"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.store, tt.cache)

			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			rec := httptest.NewRecorder()
			h.Readyz(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, rec.Code)
			}

			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			for name, want := range tt.want {
				if resp.Checks[name] != want {
					t.Errorf("check %s = %q, want %q", name, resp.Checks[name], want)
				}
			}
		})
	}
}
