package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marcelojr/quinielas/internal/domain"
)

const (
	docGeneral   = "general"
	docSeguridad = "security"
)

// ConfigRepository lee y escribe los documentos config/general y config/security.
type ConfigRepository struct {
	coll *mongo.Collection
}

func NewConfigRepository(db *mongo.Database) *ConfigRepository {
	return &ConfigRepository{coll: db.Collection(coleccionConfig)}
}

type generalDoc struct {
	ID            string    `bson:"_id"`
	JornadaActual string    `bson:"jornadaActual"`
	ActualizadaEn time.Time `bson:"actualizadaEn"`
}

type seguridadDoc struct {
	ID            string    `bson:"_id"`
	PinAdmin      string    `bson:"pinAdmin"`
	ActualizadaEn time.Time `bson:"actualizadaEn"`
}

func (r *ConfigRepository) ObtenerGeneral(ctx context.Context) (domain.ConfigGeneral, error) {
	var doc generalDoc
	if err := r.leer(ctx, docGeneral, &doc); err != nil {
		return domain.ConfigGeneral{}, err
	}
	return domain.ConfigGeneral{JornadaActual: doc.JornadaActual}, nil
}

func (r *ConfigRepository) GuardarGeneral(ctx context.Context, c domain.ConfigGeneral) error {
	return r.escribir(ctx, docGeneral, generalDoc{
		ID:            docGeneral,
		JornadaActual: c.JornadaActual,
		ActualizadaEn: time.Now().UTC(),
	})
}

func (r *ConfigRepository) ObtenerSeguridad(ctx context.Context) (domain.ConfigSeguridad, error) {
	var doc seguridadDoc
	if err := r.leer(ctx, docSeguridad, &doc); err != nil {
		return domain.ConfigSeguridad{}, err
	}
	return domain.ConfigSeguridad{PinAdmin: doc.PinAdmin}, nil
}

func (r *ConfigRepository) GuardarSeguridad(ctx context.Context, c domain.ConfigSeguridad) error {
	return r.escribir(ctx, docSeguridad, seguridadDoc{
		ID:            docSeguridad,
		PinAdmin:      c.PinAdmin,
		ActualizadaEn: time.Now().UTC(),
	})
}

func (r *ConfigRepository) leer(ctx context.Context, id string, destino any) error {
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(destino); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("mongo config: leer %s: %w", id, err)
	}
	return nil
}

func (r *ConfigRepository) escribir(ctx context.Context, id string, doc any) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc, opts); err != nil {
		return fmt.Errorf("mongo config: guardar %s: %w", id, err)
	}
	return nil
}

var _ domain.ConfigRepository = (*ConfigRepository)(nil)
