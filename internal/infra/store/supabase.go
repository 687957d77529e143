package store

import (
	"context"
	"encoding/json"
	"fmt"

	"storemail/internal/domain/customer"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

const customerColumns = "id,email,first_name,last_name"

var _ customer.Store = (*CustomerStore)(nil)

// querier is satisfied by both *supa.Client and *postgrest.Client.
type querier interface {
	From(table string) *postgrest.QueryBuilder
}

// CustomerStore reads customers through Supabase PostgREST.
type CustomerStore struct {
	client querier
	table  string
}

// NewCustomerStore creates a Supabase-backed customer store.
func NewCustomerStore(supabaseURL, serviceKey, table string) (*CustomerStore, error) {
	client, err := supa.NewClient(supabaseURL, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating supabase client: %w", err)
	}
	return &CustomerStore{client: client, table: table}, nil
}

// NewPostgrestCustomerStore creates a customer store talking to a PostgREST
// endpoint directly.
func NewPostgrestCustomerStore(restURL, table string, headers map[string]string) *CustomerStore {
	return &CustomerStore{client: postgrest.NewClient(restURL, "", headers), table: table}
}

// FindByID retrieves a customer by its ID. Returns nil, nil if no record is found.
func (s *CustomerStore) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	data, _, err := s.client.From(s.table).Select(customerColumns, "", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching customer: %w", err)
	}

	var rows []customer.Customer
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing customer: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}
