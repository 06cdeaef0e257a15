// Paquete postgres implementa el almacén de documentos de la quiniela sobre Postgres vía GORM.
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Opciones ajusta el pool y el nivel de log de GORM.
type Opciones struct {
	MaxConexiones int
	// Depurar registra cada sentencia SQL.
	Depurar bool
}

func Open(ctx context.Context, dsn string, opts Opciones) (*gorm.DB, error) {
	if opts.MaxConexiones <= 0 {
		opts.MaxConexiones = 10
	}
	nivel := logger.Warn
	if opts.Depurar {
		nivel = logger.Info
	}

	// TranslateError convierte violaciones de unicidad en gorm.ErrDuplicatedKey.
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(nivel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("postgres gorm: abrir conexion: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres gorm: obtener sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxConexiones)
	sqlDB.SetMaxIdleConns(opts.MaxConexiones / 2)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctxPing); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres gorm: ping fallo: %w", err)
	}
	return gormDB, nil
}

// Modelos lista las tablas que las migraciones deben crear.
func Modelos() []any {
	return []any{&quinielaModel{}, &partidoModel{}, &respuestaModel{}, &pagoModel{}, &configModel{}}
}
