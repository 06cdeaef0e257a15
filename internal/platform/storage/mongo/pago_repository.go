package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marcelojr/quinielas/internal/domain"
)

type PagoRepository struct {
	coll *mongo.Collection
}

func NewPagoRepository(db *mongo.Database) *PagoRepository {
	return &PagoRepository{coll: db.Collection(coleccionPagos)}
}

// pagoDoc guarda el monto como texto decimal para no perder centavos en un double.
type pagoDoc struct {
	ID         string    `bson:"_id"`
	Usuario    string    `bson:"usuario"`
	QuinielaID string    `bson:"quinielaId,omitempty"`
	Monto      string    `bson:"monto"`
	Metodo     string    `bson:"metodo"`
	FechaPago  time.Time `bson:"fechaPago"`
	Estado     string    `bson:"estado"`
	Notas      string    `bson:"notas,omitempty"`
}

func (d pagoDoc) toDomain() (domain.Pago, error) {
	monto, err := decimal.NewFromString(d.Monto)
	if err != nil {
		return domain.Pago{}, fmt.Errorf("mongo pago: monto invalido %s: %w", d.ID, err)
	}
	return domain.Pago{
		ID:         domain.PagoID(d.ID),
		Usuario:    d.Usuario,
		QuinielaID: domain.QuinielaID(d.QuinielaID),
		Monto:      monto,
		Metodo:     domain.MetodoPago(d.Metodo),
		FechaPago:  d.FechaPago.UTC(),
		Estado:     domain.EstadoPago(d.Estado),
		Notas:      d.Notas,
	}, nil
}

func fromDomainPago(p domain.Pago) pagoDoc {
	return pagoDoc{
		ID:         string(p.ID),
		Usuario:    p.Usuario,
		QuinielaID: string(p.QuinielaID),
		Monto:      p.Monto.StringFixed(2),
		Metodo:     string(p.Metodo),
		FechaPago:  p.FechaPago,
		Estado:     string(p.Estado),
		Notas:      p.Notas,
	}
}

func (r *PagoRepository) Create(ctx context.Context, p domain.Pago) error {
	if _, err := r.coll.InsertOne(ctx, fromDomainPago(p)); err != nil {
		return fmt.Errorf("mongo pago: insertar: %w", err)
	}
	return nil
}

func (r *PagoRepository) Update(ctx context.Context, p domain.Pago) error {
	doc := fromDomainPago(p)
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc)
	if err != nil {
		return fmt.Errorf("mongo pago: actualizar: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PagoRepository) Delete(ctx context.Context, id domain.PagoID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: string(id)}})
	if err != nil {
		return fmt.Errorf("mongo pago: eliminar: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PagoRepository) FindByID(ctx context.Context, id domain.PagoID) (domain.Pago, error) {
	var doc pagoDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: string(id)}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Pago{}, domain.ErrNotFound
		}
		return domain.Pago{}, fmt.Errorf("mongo pago: buscar id: %w", err)
	}
	return doc.toDomain()
}

func (r *PagoRepository) ListAll(ctx context.Context) ([]domain.Pago, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fechaPago", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo pago: listar: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []pagoDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo pago: decodificar listado: %w", err)
	}

	result := make([]domain.Pago, 0, len(docs))
	for _, doc := range docs {
		p, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

var _ domain.PagoRepository = (*PagoRepository)(nil)
