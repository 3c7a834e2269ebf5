package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amaumene/cinefront/internal/config"
	apperrors "github.com/amaumene/cinefront/internal/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, mutate func(cfg *config.Config)) *Client {
	t.Helper()
	cfg := &config.Config{BackendURL: baseURL, RequestTimeout: 2 * time.Second}
	if mutate != nil {
		mutate(cfg)
	}
	logger, _ := test.NewNullLogger()
	client, err := NewClient(cfg, logger)
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresURL(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewClient(&config.Config{}, logger)
	assert.Error(t, err)
}

func TestFetchRecordsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/movies/title/The Matrix", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/hal+json")
		w.Write([]byte(`{"title":"The Matrix"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, func(cfg *config.Config) {
		cfg.BackendUsername = "editor"
		cfg.BackendPassword = "pw"
	})

	payload, err := client.FetchRecords(context.Background(), srv.URL+"/movies/title/The%20Matrix")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"The Matrix"}`, string(payload))
}

func TestFetchRecordsNotFound(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "Could not find movie with title: Nope", http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, nil)
	_, err := client.FetchRecords(context.Background(), srv.URL+"/movies/title/Nope")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeFetch))
	ce, _ := apperrors.As(err)
	assert.Equal(t, http.StatusNotFound, ce.Status)
	assert.Equal(t, "Could not find movie with title: Nope", ce.Message)
	assert.Equal(t, 1, calls)
}

func TestFetchRecordsJSONErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":400,"message":"Invalid year"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, nil)
	_, err := client.FetchRecords(context.Background(), srv.URL+"/movies/year/abc")

	ce, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid year", ce.Message)
}

func TestFetchRecordsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := newTestClient(t, url, nil)
	_, err := client.FetchRecords(context.Background(), url+"/movies/title/x")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNetwork))
}

func TestFetchRecordsTimeoutIsNetworkFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := newTestClient(t, srv.URL, func(cfg *config.Config) { cfg.RequestTimeout = 50 * time.Millisecond })
	_, err := client.FetchRecords(context.Background(), srv.URL+"/movies/title/x")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNetwork))
}

func TestFetchRecordsCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := newTestClient(t, srv.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.FetchRecords(ctx, srv.URL+"/movies/title/x")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeCancelled))
}

func TestCreateSendsJSONWithBasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/actors", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "editor", user)
		assert.Equal(t, "pw", pass)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Jane Doe", body["name"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"name":"Jane Doe","_links":{"self":{"href":"/actors/1"}}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, func(cfg *config.Config) {
		cfg.BackendUsername = "editor"
		cfg.BackendPassword = "pw"
	})

	created, err := client.Create(context.Background(), "/actors", map[string]string{"name": "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/actors/1", created.SelfHref())
}

func TestCreatePrefersBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"_links":{"self":{"href":"/movies/9"}}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, func(cfg *config.Config) {
		cfg.BackendToken = "tok"
		cfg.BackendUsername = "editor"
		cfg.BackendPassword = "pw"
	})

	created, err := client.Create(context.Background(), "/movies", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/movies/9", created.SelfHref())
}

func TestCreateResolvesSelfLink(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{"absolute path", "/api", "/actors/1", "/actors/1"},
		{"relative path", "/api", "actors/1", "/api/actors/1"},
		{"absolute url", "", "http://catalog.example/actors/1", "http://catalog.example/actors/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"_links":{"self":{"href":"` + tt.href + `"}}}`))
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL+tt.base, nil)
			created, err := client.Create(context.Background(), "/actors", map[string]string{})
			require.NoError(t, err)

			want := tt.want
			if !strings.HasPrefix(want, "http") {
				want = srv.URL + want
			}
			assert.Equal(t, want, created.SelfHref())
		})
	}
}

func TestCreateFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, "", "Unauthorized"},
		{"validation", http.StatusBadRequest, `{"message":"title must not be blank"}`, "title must not be blank"},
		{"no self link", http.StatusCreated, `{"name":"x"}`, "create response has no self link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL, nil)
			_, err := client.Create(context.Background(), "/movies", map[string]string{})

			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeWrite))
			ce, _ := apperrors.As(err)
			assert.Equal(t, tt.message, ce.Message)
			assert.Equal(t, tt.status, ce.Status)
		})
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, nil)
	status, err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)
}
