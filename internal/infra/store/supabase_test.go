package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerStore_FindByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/customer"), r.URL.Path)
		assert.Equal(t, "id,email,first_name,last_name", r.URL.Query().Get("select"))
		assert.Equal(t, "Bearer service", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("id") == "eq.cus_1" {
			_, _ = w.Write([]byte(`[{"id":"cus_1","email":"sam@example.com","first_name":"Sam","last_name":null}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s := NewPostgrestCustomerStore(srv.URL, "customer", map[string]string{"Authorization": "Bearer service"})

	c, err := s.FindByID(context.Background(), "cus_1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "cus_1", c.ID)
	assert.Equal(t, "sam@example.com", c.Email)
	require.NotNil(t, c.FirstName)
	assert.Equal(t, "Sam", *c.FirstName)
	assert.Nil(t, c.LastName)

	c, err = s.FindByID(context.Background(), "cus_missing")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestCustomerStore_FindByIDError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"42P01","message":"relation \"public.customer\" does not exist"}`))
	}))
	defer srv.Close()

	s := NewPostgrestCustomerStore(srv.URL, "customer", nil)

	_, err := s.FindByID(context.Background(), "cus_1")
	assert.Error(t, err)
}
