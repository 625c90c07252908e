package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

func TestFetch_Null(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/portfolio", r.URL.Path)
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	p, err := New(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFetch_MissingCollections(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"` + id.String() + `","name":"Ada"}`))
	}))
	defer srv.Close()

	p, err := New(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, id, *p.ID)
	assert.NotNil(t, p.Skills)
	assert.NotNil(t, p.Projects)
	assert.Equal(t, "", p.Contact.Phone)
}

func TestCreate_SendsBodyAndToken(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{"C", "Math"}, body["skills"])
		_, hasID := body["id"]
		assert.False(t, hasID)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"portfolio": map[string]any{"id": id.String(), "name": "Ada"}})
	}))
	defer srv.Close()

	out, err := New(srv.URL, time.Second, WithToken("secret")).Create(context.Background(), &portfolio.Portfolio{
		Name:   "Ada",
		Skills: []string{"C", "Math"},
	})
	require.NoError(t, err)
	assert.Equal(t, id, *out.ID)
}

func TestUpdate_PathAndError(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/portfolio/"+id.String(), r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found","message":"portfolio not found"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL+"/", time.Second).Update(context.Background(), id, &portfolio.Portfolio{Name: "Ada"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "portfolio not found", apiErr.Message)
}

func TestCreate_ResponseWithoutID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"portfolio":{"name":"Ada"}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Create(context.Background(), &portfolio.Portfolio{Name: "Ada"})
	assert.Error(t, err)
}
