package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/id"
	"boxfactory/internal/domain"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/filter"
)

func seedClients(t *testing.T, s *Store, n int) []*client.Client {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*client.Client, 0, n)
	for i := 0; i < n; i++ {
		c := client.NewClient(fmt.Sprintf("Client %02d", i), fmt.Sprintf("c%02d@example.com", i))
		c.StampCreated(base.Add(time.Duration(i) * time.Minute))
		if i%3 == 0 {
			c.Status = client.StatusInactive
		}
		require.NoError(t, s.Clients.Create(context.Background(), c))
		out = append(out, c)
	}
	return out
}

func TestRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	c := seedClients(t, s, 1)[0]

	got, err := s.Clients.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Name, got.Name)

	// returned records are copies
	got.Name = "Changed"
	again, err := s.Clients.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Client 00", again.Name)

	require.NoError(t, s.Clients.Update(ctx, got))
	assert.Equal(t, 2, got.Version)

	exists, err := s.Clients.Exists(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Clients.Delete(ctx, c.ID))
	_, err = s.Clients.GetByID(ctx, c.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, apperror.IsNotFound(s.Clients.Delete(ctx, c.ID)))
}

func TestRepo_UpdateVersionMismatch(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	c := seedClients(t, s, 1)[0]

	first, _ := s.Clients.GetByID(ctx, c.ID)
	second, _ := s.Clients.GetByID(ctx, c.ID)

	require.NoError(t, s.Clients.Update(ctx, first))
	err := s.Clients.Update(ctx, second)
	assert.True(t, apperror.IsConcurrentModification(err))
}

func TestRepo_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedClients(t, s, 1)

	dup := client.NewClient("Other", "c00@example.com")
	err := s.Clients.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicate(err))
	assert.Equal(t, "Client with this email already exists", err.(*apperror.AppError).Message)

	// updating a record to its own email is fine
	c, err := s.Clients.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.NoError(t, s.Clients.Update(ctx, c.Items[0]))
}

func TestRepo_ListPagesCoverEverything(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seeded := seedClients(t, s, 23)

	for _, limit := range []int{1, 5, 10, 23, 50} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			seen := make(map[id.ID]bool)
			var names []string
			for offset := 0; ; offset += limit {
				res, err := s.Clients.List(ctx, domain.ListFilter{OrderBy: "-created_at", Limit: limit, Offset: offset})
				require.NoError(t, err)
				assert.Equal(t, int64(23), res.TotalCount)
				if len(res.Items) == 0 {
					break
				}
				for _, c := range res.Items {
					assert.False(t, seen[c.ID], "duplicate %s", c.Name)
					seen[c.ID] = true
					names = append(names, c.Name)
				}
			}
			assert.Len(t, seen, len(seeded))
			assert.Equal(t, "Client 22", names[0])
			assert.Equal(t, "Client 00", names[len(names)-1])
		})
	}
}

func TestRepo_ListFilters(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedClients(t, s, 9)

	tests := []struct {
		name   string
		filter domain.ListFilter
		want   int64
	}{
		{"status eq", domain.ListFilter{}.Where(filter.Eq("status", client.StatusInactive)), 3},
		{"status neq", domain.ListFilter{}.Where(filter.Item{Field: "status", Operator: filter.NotEqual, Value: "inactive"}), 6},
		{"status in", domain.ListFilter{}.Where(filter.Item{Field: "status", Operator: filter.InList, Value: []string{"active", "pending"}}), 6},
		{"search", domain.ListFilter{Search: "client 0"}, 9},
		{"search narrow", domain.ListFilter{Search: "NT 05"}, 1},
		{"unknown column", domain.ListFilter{}.Where(filter.Eq("nope", "x")), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Clients.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.TotalCount)
		})
	}
}

func TestOrderRepo_FindByItemID(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	o := order.NewOrder(id.New(), time.Now())
	item := order.Item{ID: id.New(), ProductID: id.New(), Quantity: 2, UnitPrice: 5}
	o.Items = append(o.Items, item)
	require.NoError(t, s.Orders.Create(ctx, o))

	found, err := s.Orders.FindByItemID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, found.ID)

	_, err = s.Orders.FindByItemID(ctx, id.New())
	require.Error(t, err)
	assert.Equal(t, "Order item not found", err.(*apperror.AppError).Message)
}

func TestMatches_ClientIDFilter(t *testing.T) {
	cid := id.New()
	row := map[string]any{"client_id": cid, "invoice_id": (*id.ID)(nil)}

	assert.True(t, matches(row, filter.Eq("client_id", cid)))
	assert.True(t, matches(row, filter.Eq("client_id", cid.String())))
	assert.False(t, matches(row, filter.Eq("client_id", id.New())))
	assert.False(t, matches(row, filter.Eq("invoice_id", cid)))
}
