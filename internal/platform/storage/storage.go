// Paquete storage elige el backend configurado y entrega sus repositorios ya conectados.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/config"
	"github.com/marcelojr/quinielas/internal/platform/health"
	"github.com/marcelojr/quinielas/internal/platform/logger"
	"github.com/marcelojr/quinielas/internal/platform/migrations"
	mongostorage "github.com/marcelojr/quinielas/internal/platform/storage/mongo"
	postgresstorage "github.com/marcelojr/quinielas/internal/platform/storage/postgres"
)

// Repositorios agrupa lo que los servicios necesitan de un backend.
type Repositorios struct {
	Quinielas  domain.QuinielaRepository
	Respuestas domain.RespuestaRepository
	Pagos      domain.PagoRepository
	Config     domain.ConfigRepository
	// Salud es la dependencia que /readyz revisa para este backend.
	Salud health.Dependencia
	cerrar func(ctx context.Context) error
}

func (r Repositorios) Close(ctx context.Context) error {
	if r.cerrar == nil {
		return nil
	}
	return r.cerrar(ctx)
}

func Abrir(ctx context.Context, cfg config.Config) (Repositorios, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		return abrirMongo(ctx, cfg)
	case config.BackendPostgres:
		return abrirPostgres(ctx, cfg)
	default:
		return Repositorios{}, fmt.Errorf("backend desconocido: %q", cfg.StoreBackend)
	}
}

func abrirPostgres(ctx context.Context, cfg config.Config) (Repositorios, error) {
	db, err := postgresstorage.Open(ctx, cfg.PostgresDSN(), postgresstorage.Opciones{
		Depurar: logger.ParseLevel(cfg.LogLevel) == slog.LevelDebug,
	})
	if err != nil {
		return Repositorios{}, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return Repositorios{}, fmt.Errorf("postgres sql.DB: %w", err)
	}
	if cfg.AutoMigrate {
		if err := migrations.Run(db); err != nil {
			_ = sqlDB.Close()
			return Repositorios{}, fmt.Errorf("migracion automatica: %w", err)
		}
	}
	logger.Info("almacen postgres listo", "host", cfg.PostgresHost, "db", cfg.PostgresDB)
	return Repositorios{
		Quinielas:  postgresstorage.NewQuinielaRepository(db),
		Respuestas: postgresstorage.NewRespuestaRepository(db),
		Pagos:      postgresstorage.NewPagoRepository(db),
		Config:     postgresstorage.NewConfigRepository(db),
		Salud:      health.SQL(sqlDB),
		cerrar:     func(context.Context) error { return sqlDB.Close() },
	}, nil
}

func abrirMongo(ctx context.Context, cfg config.Config) (Repositorios, error) {
	client, err := mongostorage.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return Repositorios{}, err
	}
	db := client.Database(cfg.MongoDB)
	if err := mongostorage.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return Repositorios{}, fmt.Errorf("mongo indices: %w", err)
	}
	logger.Info("almacen mongo listo", "db", cfg.MongoDB)
	return Repositorios{
		Quinielas:  mongostorage.NewQuinielaRepository(db),
		Respuestas: mongostorage.NewRespuestaRepository(db),
		Pagos:      mongostorage.NewPagoRepository(db),
		Config:     mongostorage.NewConfigRepository(db),
		Salud:      health.Mongo(client),
		cerrar:     client.Disconnect,
	}, nil
}
