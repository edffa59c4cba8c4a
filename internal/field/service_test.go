package field

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu     sync.Mutex
	seq    int
	fields map[string]*Field
}

func newMemRepo() *memRepo {
	return &memRepo{fields: make(map[string]*Field)}
}

func (r *memRepo) Create(ctx context.Context, f *Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	f.ID = fmt.Sprintf("field-%d", r.seq)
	stored := *f
	r.fields[f.ID] = &stored
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.fields[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *f
	return &copied, nil
}

func (r *memRepo) List(ctx context.Context, filter Filter) ([]*Field, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Field
	for _, f := range r.fields {
		copied := *f
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *memRepo) Update(ctx context.Context, f *Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fields[f.ID]; !ok {
		return ErrNotFound
	}
	stored := *f
	r.fields[f.ID] = &stored
	return nil
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fields[id]; !ok {
		return ErrNotFound
	}
	delete(r.fields, id)
	return nil
}

func validCreate() CreateRequest {
	return CreateRequest{
		Name:         "Main Football Field",
		SportType:    SportFootball,
		Capacity:     22,
		PricePerHour: decimal.NewFromInt(200),
	}
}

func TestCreateField(t *testing.T) {
	svc := NewService(newMemRepo(), nil, nil)
	ctx := context.Background()

	f, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	assert.NotEmpty(t, f.ID)
	assert.Equal(t, StatusAvailable, f.Status, "new fields start available")
	assert.True(t, f.Bookable())
}

func TestCreateFieldValidation(t *testing.T) {
	svc := NewService(newMemRepo(), nil, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{
			name:    "Blank name",
			mutate:  func(r *CreateRequest) { r.Name = "   " },
			wantErr: ErrEmptyName,
		},
		{
			name:    "Unknown sport type",
			mutate:  func(r *CreateRequest) { r.SportType = "curling" },
			wantErr: ErrInvalidSportType,
		},
		{
			name:    "Zero capacity",
			mutate:  func(r *CreateRequest) { r.Capacity = 0 },
			wantErr: ErrInvalidCapacity,
		},
		{
			name:    "Negative price",
			mutate:  func(r *CreateRequest) { r.PricePerHour = decimal.NewFromInt(-1) },
			wantErr: ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateFieldStatus(t *testing.T) {
	svc := NewService(newMemRepo(), nil, nil)
	ctx := context.Background()

	f, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	maintenance := StatusMaintenance
	f, err = svc.Update(ctx, f.ID, UpdateRequest{Status: &maintenance})
	require.NoError(t, err)
	assert.False(t, f.Bookable(), "fields under maintenance must not be bookable")

	bogus := Status("closed")
	_, err = svc.Update(ctx, f.ID, UpdateRequest{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateFieldNotFound(t *testing.T) {
	svc := NewService(newMemRepo(), nil, nil)

	name := "Renamed"
	_, err := svc.Update(context.Background(), "missing", UpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidSportType(t *testing.T) {
	for _, s := range ValidSportTypes {
		assert.True(t, ValidSportType(s), "%s should be valid", s)
	}
	assert.False(t, ValidSportType("cricket"))
	assert.False(t, ValidSportType(""))
}
