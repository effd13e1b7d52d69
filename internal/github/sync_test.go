package github

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSyncer(baseURL string) *Syncer {
	return &Syncer{
		token:   "tok",
		repo:    "owner/stepper",
		path:    "data.json",
		branch:  "main",
		baseURL: baseURL,
		hc:      &http.Client{Timeout: time.Second},
	}
}

func TestPushCreatesWhenFileMissing(t *testing.T) {
	var put updateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/owner/stepper/contents/data.json", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&put))
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer srv.Close()

	err := testSyncer(srv.URL).Push([]byte(`{"42":{}}`))
	require.NoError(t, err)

	assert.Empty(t, put.SHA, "create must not carry a sha")
	assert.Equal(t, "main", put.Branch)
	decoded, err := base64.StdEncoding.DecodeString(put.Content)
	require.NoError(t, err)
	assert.Equal(t, `{"42":{}}`, string(decoded))
}

func TestPushUpdatesExistingRevision(t *testing.T) {
	var put updateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "token tok", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(contentsResponse{SHA: "abc123"})
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&put))
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	err := testSyncer(srv.URL).Push([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, "abc123", put.SHA)
}

func TestPushReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := testSyncer(srv.URL).Push([]byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
