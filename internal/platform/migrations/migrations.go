// Paquete migrations centraliza las versiones gormigrate aplicadas al iniciar la API.
package migrations

import (
	"fmt"

	gormigrate "github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/marcelojr/quinielas/internal/platform/storage/postgres"
)

// Índices de los listados del panel; los mismos que el backend mongo crea en EnsureIndexes.
const (
	IndiceRespuestasPorQuiniela = "idx_respuestas_quiniela_enviada"
	IndicePagosPorFecha         = "idx_pagos_fecha_pago"
)

func versiones() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202403010001_init_quinielas",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(postgres.Modelos()...)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("config", "pagos", "respuestas_quinielas", "partidos", "quinielas_activas")
			},
		},
		{
			ID: "202403150002_indices_listados",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Exec("CREATE INDEX IF NOT EXISTS " + IndiceRespuestasPorQuiniela +
					" ON respuestas_quinielas (quiniela_id, enviada_en DESC)").Error; err != nil {
					return err
				}
				return tx.Exec("CREATE INDEX IF NOT EXISTS " + IndicePagosPorFecha + " ON pagos (fecha_pago DESC)").Error
			},
			Rollback: func(tx *gorm.DB) error {
				if err := tx.Exec("DROP INDEX IF EXISTS " + IndicePagosPorFecha).Error; err != nil {
					return err
				}
				return tx.Exec("DROP INDEX IF EXISTS " + IndiceRespuestasPorQuiniela).Error
			},
		},
	}
}

func Run(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrations: db nulo")
	}

	m := gormigrate.New(db, gormigrate.DefaultOptions, versiones())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrations: fallo al aplicar: %w", err)
	}
	return nil
}
