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

// RespuestaRepository guarda cada envío en respuestas_quinielas; el folio tiene índice único.
type RespuestaRepository struct {
	coll *mongo.Collection
}

func NewRespuestaRepository(db *mongo.Database) *RespuestaRepository {
	return &RespuestaRepository{coll: db.Collection(coleccionRespuestas)}
}

type respuestaDoc struct {
	ID           string          `bson:"_id"`
	QuinielaID   string          `bson:"quinielaId"`
	Folio        string          `bson:"folio"`
	Participante participanteDoc `bson:"participante"`
	Predicciones []prediccionDoc `bson:"predicciones"`
	EnviadaEn    time.Time       `bson:"enviadaEn"`
}

type participanteDoc struct {
	Nombre   string `bson:"nombre"`
	Email    string `bson:"email,omitempty"`
	Telefono string `bson:"telefono,omitempty"`
}

type prediccionDoc struct {
	PartidoID       string `bson:"partidoId"`
	EquipoLocal     string `bson:"equipoLocal"`
	EquipoVisitante string `bson:"equipoVisitante"`
	Prediccion      string `bson:"prediccion"`
}

func (d respuestaDoc) toDomain() domain.Respuesta {
	r := domain.Respuesta{
		ID:         domain.RespuestaID(d.ID),
		QuinielaID: domain.QuinielaID(d.QuinielaID),
		Folio:      d.Folio,
		Participante: domain.Participante{
			Nombre:   d.Participante.Nombre,
			Email:    d.Participante.Email,
			Telefono: d.Participante.Telefono,
		},
		Predicciones: make([]domain.Prediccion, len(d.Predicciones)),
		EnviadaEn:    d.EnviadaEn.UTC(),
	}
	for i, p := range d.Predicciones {
		r.Predicciones[i] = domain.Prediccion{
			PartidoID:       domain.PartidoID(p.PartidoID),
			EquipoLocal:     p.EquipoLocal,
			EquipoVisitante: p.EquipoVisitante,
			Resultado:       domain.Resultado(p.Prediccion),
		}
	}
	return r
}

func fromDomainRespuesta(r domain.Respuesta) respuestaDoc {
	d := respuestaDoc{
		ID:         string(r.ID),
		QuinielaID: string(r.QuinielaID),
		Folio:      r.Folio,
		Participante: participanteDoc{
			Nombre:   r.Participante.Nombre,
			Email:    r.Participante.Email,
			Telefono: r.Participante.Telefono,
		},
		Predicciones: make([]prediccionDoc, len(r.Predicciones)),
		EnviadaEn:    r.EnviadaEn,
	}
	for i, p := range r.Predicciones {
		d.Predicciones[i] = prediccionDoc{
			PartidoID:       string(p.PartidoID),
			EquipoLocal:     p.EquipoLocal,
			EquipoVisitante: p.EquipoVisitante,
			Prediccion:      string(p.Resultado),
		}
	}
	return d
}

func (r *RespuestaRepository) Create(ctx context.Context, resp domain.Respuesta) error {
	if _, err := r.coll.InsertOne(ctx, fromDomainRespuesta(resp)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrFolioDuplicado
		}
		return fmt.Errorf("mongo respuesta: insertar: %w", err)
	}
	return nil
}

func (r *RespuestaRepository) FindByID(ctx context.Context, id domain.RespuestaID) (domain.Respuesta, error) {
	return r.buscar(ctx, bson.D{{Key: "_id", Value: string(id)}})
}

func (r *RespuestaRepository) FindByFolio(ctx context.Context, folio string) (domain.Respuesta, error) {
	return r.buscar(ctx, bson.D{{Key: "folio", Value: folio}})
}

func (r *RespuestaRepository) buscar(ctx context.Context, filtro bson.D) (domain.Respuesta, error) {
	var doc respuestaDoc
	if err := r.coll.FindOne(ctx, filtro).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Respuesta{}, domain.ErrNotFound
		}
		return domain.Respuesta{}, fmt.Errorf("mongo respuesta: buscar: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RespuestaRepository) ListByQuiniela(ctx context.Context, id domain.QuinielaID) ([]domain.Respuesta, error) {
	opts := options.Find().SetSort(bson.D{{Key: "enviadaEn", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "quinielaId", Value: string(id)}}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo respuesta: listar por quiniela: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []respuestaDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo respuesta: decodificar listado: %w", err)
	}

	result := make([]domain.Respuesta, len(docs))
	for i, doc := range docs {
		result[i] = doc.toDomain()
	}
	return result, nil
}

func (r *RespuestaRepository) CountByQuiniela(ctx context.Context, id domain.QuinielaID) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.D{{Key: "quinielaId", Value: string(id)}})
	if err != nil {
		return 0, fmt.Errorf("mongo respuesta: contar por quiniela: %w", err)
	}
	return total, nil
}

func (r *RespuestaRepository) CountAll(ctx context.Context) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongo respuesta: contar: %w", err)
	}
	return total, nil
}

func (r *RespuestaRepository) Delete(ctx context.Context, id domain.RespuestaID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: string(id)}})
	if err != nil {
		return fmt.Errorf("mongo respuesta: eliminar: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.RespuestaRepository = (*RespuestaRepository)(nil)
