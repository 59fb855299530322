package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MikhailRaia/readme-cards/internal/card"
	"github.com/MikhailRaia/readme-cards/internal/upstream"
)

type mockCardService struct {
	statsFunc    func(ctx context.Context, query url.Values) (string, error)
	topLangsFunc func(ctx context.Context, query url.Values) (string, error)
}

func (m *mockCardService) Stats(ctx context.Context, query url.Values) (string, error) {
	return m.statsFunc(ctx, query)
}

func (m *mockCardService) TopLangs(ctx context.Context, query url.Values) (string, error) {
	return m.topLangsFunc(ctx, query)
}

func TestHandler_handleStats(t *testing.T) {
	tests := []struct {
		name       string
		requestURL string
		mockBody   string
		mockErr    error
		wantStatus int
		wantBody   string
		wantSVG    bool
	}{
		{
			name:       "Valid request",
			requestURL: "/api?username=alice",
			mockBody:   "<svg/>",
			wantStatus: http.StatusOK,
			wantBody:   "<svg/>",
			wantSVG:    true,
		},
		{
			name:       "Missing username",
			requestURL: "/api?theme=dark",
			mockErr:    card.ErrUsernameRequired,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Username is required"}`,
		},
		{
			name:       "Upstream failure is hidden",
			requestURL: "/api?username=alice",
			mockErr:    fmt.Errorf("error fetching stats card: %w", &upstream.Error{StatusCode: 503}),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery url.Values
			mockService := &mockCardService{
				statsFunc: func(ctx context.Context, query url.Values) (string, error) {
					gotQuery = query
					return tt.mockBody, tt.mockErr
				},
			}

			handler := NewHandler(mockService, 0)

			req := httptest.NewRequest(http.MethodGet, tt.requestURL, nil)
			rr := httptest.NewRecorder()

			handler.handleStats(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("handler.handleStats() status = %v, want %v", rr.Code, tt.wantStatus)
			}

			if strings.TrimSpace(rr.Body.String()) != tt.wantBody {
				t.Errorf("handler.handleStats() body = %v, want %v", rr.Body.String(), tt.wantBody)
			}

			wantQuery, _ := url.ParseQuery(strings.SplitN(tt.requestURL, "?", 2)[1])
			if gotQuery.Encode() != wantQuery.Encode() {
				t.Errorf("handler.handleStats() forwarded query = %v, want %v", gotQuery, wantQuery)
			}

			assertContentHeaders(t, rr, tt.wantSVG)
		})
	}
}

func TestHandler_handleTopLangs(t *testing.T) {
	tests := []struct {
		name       string
		mockBody   string
		mockErr    error
		wantStatus int
		wantBody   string
		wantSVG    bool
	}{
		{
			name:       "Valid request",
			mockBody:   "<svg><image/></svg>",
			wantStatus: http.StatusOK,
			wantBody:   "<svg><image/></svg>",
			wantSVG:    true,
		},
		{
			name:       "Missing username",
			mockErr:    card.ErrUsernameRequired,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Username is required"}`,
		},
		{
			name:       "Upstream message is surfaced",
			mockErr:    &upstream.Error{StatusCode: 404},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"upstream responded with status 404"}`,
		},
		{
			name:       "Wrapped upstream message is surfaced",
			mockErr:    fmt.Errorf("error fetching top languages card: %w", &upstream.Error{StatusCode: 502}),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"error fetching top languages card: upstream responded with status 502"}`,
		},
		{
			name:       "Transport failure is hidden",
			mockErr:    fmt.Errorf("error fetching top languages card: %w", errors.New(`Get "https://upstream/?username=bob": dial tcp: connection refused`)),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
		{
			name:       "Empty message falls back",
			mockErr:    errors.New(""),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mockCardService{
				topLangsFunc: func(ctx context.Context, query url.Values) (string, error) {
					return tt.mockBody, tt.mockErr
				},
			}

			handler := NewHandler(mockService, 0)

			req := httptest.NewRequest(http.MethodGet, "/api/top-langs?username=bob", nil)
			rr := httptest.NewRecorder()

			handler.handleTopLangs(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("handler.handleTopLangs() status = %v, want %v", rr.Code, tt.wantStatus)
			}

			if strings.TrimSpace(rr.Body.String()) != tt.wantBody {
				t.Errorf("handler.handleTopLangs() body = %v, want %v", rr.Body.String(), tt.wantBody)
			}

			assertContentHeaders(t, rr, tt.wantSVG)
		})
	}
}

func TestHandler_RegisterRoutes(t *testing.T) {
	mockService := &mockCardService{
		statsFunc: func(ctx context.Context, query url.Values) (string, error) {
			return "stats", nil
		},
		topLangsFunc: func(ctx context.Context, query url.Values) (string, error) {
			return "top-langs", nil
		},
	}

	router := NewHandler(mockService, 0).RegisterRoutes()

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{method: http.MethodGet, path: "/api?username=a", wantStatus: http.StatusOK, wantBody: "stats"},
		{method: http.MethodGet, path: "/api/stats?username=a", wantStatus: http.StatusOK, wantBody: "stats"},
		{method: http.MethodGet, path: "/api/top-langs?username=a", wantStatus: http.StatusOK, wantBody: "top-langs"},
		{method: http.MethodGet, path: "/api/top-langs/?username=a", wantStatus: http.StatusOK, wantBody: "top-langs"},
		{method: http.MethodGet, path: "/ping", wantStatus: http.StatusOK},
		{method: http.MethodPost, path: "/api?username=a", wantStatus: http.StatusMethodNotAllowed},
		{method: http.MethodGet, path: "/unknown", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("router status = %v, want %v", rr.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && rr.Body.String() != tt.wantBody {
				t.Errorf("router body = %v, want %v", rr.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandler_PanicReturnsJSON(t *testing.T) {
	mockService := &mockCardService{
		statsFunc: func(ctx context.Context, query url.Values) (string, error) {
			panic("boom")
		},
	}

	router := NewHandler(mockService, 0).RegisterRoutes()

	req := httptest.NewRequest(http.MethodGet, "/api?username=alice", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("router status = %v, want %v", rr.Code, http.StatusInternalServerError)
	}
	if rr.Body.String() != `{"error":"Internal server error"}` {
		t.Errorf("router body = %v", rr.Body.String())
	}
}

func assertContentHeaders(t *testing.T, rr *httptest.ResponseRecorder, wantSVG bool) {
	t.Helper()

	if !wantSVG {
		if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %v, want application/json", ct)
		}
		if cc := rr.Header().Get("Cache-Control"); cc != "" {
			t.Errorf("Cache-Control = %v, want none on errors", cc)
		}
		return
	}

	if ct := rr.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %v, want image/svg+xml", ct)
	}
	if cc := rr.Header().Get("Cache-Control"); cc != "s-maxage=3600, stale-while-revalidate" {
		t.Errorf("Cache-Control = %v, want s-maxage=3600, stale-while-revalidate", cc)
	}
	if origin := rr.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Access-Control-Allow-Origin = %v, want *", origin)
	}
}

type statusRecorder struct {
	*httptest.ResponseRecorder
	statuses []int
}

func (s *statusRecorder) WriteHeader(statusCode int) {
	s.statuses = append(s.statuses, statusCode)
	s.ResponseRecorder.WriteHeader(statusCode)
}

func TestHandler_RequestTimeout(t *testing.T) {
	mockService := &mockCardService{
		topLangsFunc: func(ctx context.Context, query url.Values) (string, error) {
			<-ctx.Done()
			return "", fmt.Errorf("error fetching top languages card: %w", ctx.Err())
		},
	}

	router := NewHandler(mockService, 20*time.Millisecond).RegisterRoutes()

	req := httptest.NewRequest(http.MethodGet, "/api/top-langs?username=bob", nil)
	rr := &statusRecorder{ResponseRecorder: httptest.NewRecorder()}

	router.ServeHTTP(rr, req)

	if len(rr.statuses) != 1 || rr.statuses[0] != http.StatusInternalServerError {
		t.Errorf("router WriteHeader calls = %v, want [%v]", rr.statuses, http.StatusInternalServerError)
	}
	if rr.Body.String() != `{"error":"Internal server error"}` {
		t.Errorf("router body = %v", rr.Body.String())
	}
}
