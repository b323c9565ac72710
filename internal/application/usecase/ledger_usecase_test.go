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
)

type fakeLedgerRepo struct {
	entries []*entity.LedgerEntry
}

func (r *fakeLedgerRepo) Create(entry *entity.LedgerEntry) error {
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeLedgerRepo) ListByReference(reference string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.entries {
		if e.Reference == reference {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) List(category string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.entries {
		if category != "" && e.Category != category {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func TestLedgerUseCase_RecordExpenseNiegaElMonto(t *testing.T) {
	repo := &fakeLedgerRepo{}
	uc := usecase.NewLedgerUseCase(repo)

	resp, err := uc.RecordExpense(context.Background(), dto.CreateExpenseRequest{
		Category:    "rent",
		Description: "Arriendo del local, agosto",
		Amount:      decimal.NewFromInt(1_200_000),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-1_200_000).Equal(resp.Amount),
		"el gasto llega positivo y se persiste negado")
	require.Len(t, repo.entries, 1)
	assert.Equal(t, "rent", repo.entries[0].Category)
}

func TestLedgerUseCase_RecordExpenseValidaCategoriaYMonto(t *testing.T) {
	uc := usecase.NewLedgerUseCase(&fakeLedgerRepo{})

	cases := []struct {
		name  string
		in    dto.CreateExpenseRequest
		field string
	}{
		{
			"categoría de pipeline reservada",
			dto.CreateExpenseRequest{Category: "sales", Description: "x", Amount: decimal.NewFromInt(100)},
			"category",
		},
		{
			"categoría desconocida",
			dto.CreateExpenseRequest{Category: "viajes", Description: "x", Amount: decimal.NewFromInt(100)},
			"category",
		},
		{
			"monto no positivo",
			dto.CreateExpenseRequest{Category: "other", Description: "x", Amount: decimal.NewFromInt(-5)},
			"amount",
		},
		{
			"sin descripción",
			dto.CreateExpenseRequest{Category: "other", Amount: decimal.NewFromInt(100)},
			"description",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RecordExpense(context.Background(), tc.in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestLedgerUseCase_ListByReferenceAgrupaVentaYDevolucion(t *testing.T) {
	repo := &fakeLedgerRepo{entries: []*entity.LedgerEntry{
		{ID: "a", Category: "sales", Amount: decimal.NewFromInt(5000), Reference: "REF-1000"},
		{ID: "b", Category: "refunds", Amount: decimal.NewFromInt(-5000), Reference: "REF-1000"},
		{ID: "c", Category: "sales", Amount: decimal.NewFromInt(9000), Reference: "REF-2000"},
	}}
	uc := usecase.NewLedgerUseCase(repo)

	resp, err := uc.ListByReference(context.Background(), "REF-1000")
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	balance := decimal.Zero
	for _, e := range resp.Items {
		balance = balance.Add(e.Amount)
	}
	assert.True(t, balance.IsZero(), "venta anulada: la referencia suma cero")
}
