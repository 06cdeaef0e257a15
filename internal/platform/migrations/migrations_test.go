package migrations

import (
	"testing"

	gormigrate "github.com/go-gormigrate/gormigrate/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRun_DebeCrearTablasYSerIdempotente(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Run(db))
	require.NoError(t, Run(db))

	for _, tabla := range []string{"quinielas_activas", "partidos", "respuestas_quinielas", "pagos", "config", "migrations"} {
		assert.True(t, db.Migrator().HasTable(tabla), "tabla %s deberia existir", tabla)
	}
	assert.True(t, db.Migrator().HasIndex("respuestas_quinielas", IndiceRespuestasPorQuiniela))
	assert.True(t, db.Migrator().HasIndex("pagos", IndicePagosPorFecha))
}

func TestRun_RollbackDeIndices_DebeQuitarlos(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Run(db))
	m := gormigrate.New(db, gormigrate.DefaultOptions, versiones())
	require.NoError(t, m.RollbackLast())

	assert.False(t, db.Migrator().HasIndex("respuestas_quinielas", IndiceRespuestasPorQuiniela))
	assert.True(t, db.Migrator().HasTable("respuestas_quinielas"))
}

func TestRun_CuandoDBNulo_DebeFallar(t *testing.T) {
	assert.Error(t, Run(nil))
}
