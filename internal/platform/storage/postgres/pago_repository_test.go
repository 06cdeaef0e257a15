package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/ids"
)

func TestPagoRepository_CrearActualizarYListar(t *testing.T) {
	db := setupPostgres(t)
	repo := NewPagoRepository(db)
	ctx := context.Background()
	gen := ids.NewGenerator(nil, nil)
	base := time.Now().UTC()

	// Arrange
	viejo := domain.Pago{
		ID: gen.Pago(), Usuario: "Ana", Monto: decimal.RequireFromString("150.50"),
		Metodo: domain.MetodoEfectivo, FechaPago: base.Add(-24 * time.Hour), Estado: domain.EstadoPendiente,
	}
	nuevo := domain.Pago{
		ID: gen.Pago(), Usuario: "Luis", QuinielaID: "q1", Monto: decimal.NewFromInt(200),
		Metodo: domain.MetodoTransferencia, FechaPago: base, Estado: domain.EstadoPagado, Notas: "SPEI",
	}
	require.NoError(t, repo.Create(ctx, viejo))
	require.NoError(t, repo.Create(ctx, nuevo))

	// Act
	viejo.Estado = domain.EstadoPagado
	require.NoError(t, repo.Update(ctx, viejo))
	lista, err := repo.ListAll(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, lista, 2)
	assert.Equal(t, "Luis", lista[0].Usuario)
	assert.Equal(t, "SPEI", lista[0].Notas)
	assert.Equal(t, domain.EstadoPagado, lista[1].Estado)
	assert.True(t, decimal.RequireFromString("150.50").Equal(lista[1].Monto), "monto %s", lista[1].Monto)
}

func TestPagoRepository_CuandoNoExiste_DebeRetornarErrNotFound(t *testing.T) {
	db := setupPostgres(t)
	repo := NewPagoRepository(db)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, domain.Pago{ID: "no-existe"}), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "no-existe"), domain.ErrNotFound)
}

func TestPagoRepository_Delete(t *testing.T) {
	db := setupPostgres(t)
	repo := NewPagoRepository(db)
	ctx := context.Background()
	gen := ids.NewGenerator(nil, nil)

	p := domain.Pago{ID: gen.Pago(), Usuario: "Ana", Monto: decimal.NewFromInt(50),
		Metodo: domain.MetodoTarjeta, FechaPago: time.Now().UTC(), Estado: domain.EstadoPagado}
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
