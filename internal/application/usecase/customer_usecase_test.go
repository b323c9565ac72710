package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jdramirez/farmapos-api/internal/application/dto"
	"github.com/jdramirez/farmapos-api/internal/application/usecase"
	"github.com/jdramirez/farmapos-api/internal/domain"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
	"github.com/jdramirez/farmapos-api/internal/domain/segment"
)

// fakeCustomerRepo implementa lo mínimo para ejercitar las operaciones de
// segmento; ApplyPurchase pertenece al pipeline de ventas y aquí no se usa.
type fakeCustomerRepo struct {
	customers   map[string]*entity.Customer
	updateCalls int
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(customer *entity.Customer) error {
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(customer *entity.Customer) error {
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) ApplyPurchase(customerID string, total decimal.Decimal, points int64, when time.Time) (*entity.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) UpdateSegment(customerID string, seg segment.Segment) error {
	r.updateCalls++
	c, ok := r.customers[customerID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Segment = seg
	return nil
}

func (r *fakeCustomerRepo) Delete(id string) error {
	delete(r.customers, id)
	return nil
}

func TestCustomerUseCase_TodoClienteNaceEnSegmentoNew(t *testing.T) {
	repo := newFakeCustomerRepo()
	uc := usecase.NewCustomerUseCase(repo)

	resp, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:       "María Gómez",
		DocumentID: "1020304050",
	})
	require.NoError(t, err)
	assert.Equal(t, string(segment.SegmentNew), resp.Segment)
	assert.True(t, resp.TotalSpent.IsZero())
	assert.Zero(t, resp.TotalOrders)

	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el nombre es obligatorio")
}

func TestCustomerUseCase_OverrideSegment(t *testing.T) {
	repo := newFakeCustomerRepo(&entity.Customer{ID: "C1", Segment: segment.SegmentNew})
	uc := usecase.NewCustomerUseCase(repo)

	resp, err := uc.OverrideSegment(context.Background(), "C1", dto.OverrideSegmentRequest{Segment: "vip"})
	require.NoError(t, err)
	assert.Equal(t, "vip", resp.Segment)
	assert.Equal(t, segment.SegmentVIP, repo.customers["C1"].Segment)

	_, err = uc.OverrideSegment(context.Background(), "C1", dto.OverrideSegmentRequest{Segment: "platino"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "segmento desconocido")

	_, err = uc.OverrideSegment(context.Background(), "no-existe", dto.OverrideSegmentRequest{Segment: "vip"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerUseCase_RecomputeSegment(t *testing.T) {
	lastWeek := time.Now().AddDate(0, 0, -7)

	t.Run("persiste cuando las reglas dan otro segmento", func(t *testing.T) {
		repo := newFakeCustomerRepo(&entity.Customer{
			ID:            "C1",
			Segment:       segment.SegmentNew,
			TotalSpent:    decimal.NewFromInt(2_000_000),
			TotalOrders:   1,
			LastOrderDate: &lastWeek,
		})
		uc := usecase.NewCustomerUseCase(repo)

		resp, err := uc.RecomputeSegment(context.Background(), "C1")
		require.NoError(t, err)
		assert.Equal(t, "vip", resp.Segment)
		assert.Equal(t, 1, repo.updateCalls)
	})

	t.Run("no escribe si el segmento ya es el derivado", func(t *testing.T) {
		repo := newFakeCustomerRepo(&entity.Customer{
			ID:      "C1",
			Segment: segment.SegmentNew,
		})
		uc := usecase.NewCustomerUseCase(repo)

		resp, err := uc.RecomputeSegment(context.Background(), "C1")
		require.NoError(t, err)
		assert.Equal(t, "new", resp.Segment)
		assert.Zero(t, repo.updateCalls)
	})

	t.Run("cliente inexistente", func(t *testing.T) {
		uc := usecase.NewCustomerUseCase(newFakeCustomerRepo())

		_, err := uc.RecomputeSegment(context.Background(), "no-existe")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
