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

// QuinielaRepository guarda cada quiniela como un documento con sus partidos embebidos.
type QuinielaRepository struct {
	coll *mongo.Collection
}

func NewQuinielaRepository(db *mongo.Database) *QuinielaRepository {
	return &QuinielaRepository{coll: db.Collection(coleccionQuinielas)}
}

type quinielaDoc struct {
	ID                string       `bson:"_id"`
	Nombre            string       `bson:"nombre"`
	Descripcion       string       `bson:"descripcion,omitempty"`
	Partidos          []partidoDoc `bson:"partidos"`
	Activa            bool         `bson:"activa"`
	FechaLimite       *time.Time   `bson:"fechaLimite,omitempty"`
	PermitirEdicion   bool         `bson:"permitirEdicion"`
	MostrarResultados bool         `bson:"mostrarResultados"`
	Respuestas        int64        `bson:"respuestas"`
	CreadaEn          time.Time    `bson:"creadaEn"`
	ActualizadaEn     time.Time    `bson:"actualizadaEn"`
}

type partidoDoc struct {
	ID        string `bson:"id"`
	Local     string `bson:"local"`
	Visitante string `bson:"visitante"`
	Fecha     string `bson:"fecha"`
	Hora      string `bson:"hora"`
	Estadio   string `bson:"estadio,omitempty"`
}

func (d quinielaDoc) toDomain() domain.Quiniela {
	q := domain.Quiniela{
		ID:                domain.QuinielaID(d.ID),
		Nombre:            d.Nombre,
		Descripcion:       d.Descripcion,
		Activa:            d.Activa,
		PermitirEdicion:   d.PermitirEdicion,
		MostrarResultados: d.MostrarResultados,
		Respuestas:        d.Respuestas,
		CreadaEn:          d.CreadaEn.UTC(),
		ActualizadaEn:     d.ActualizadaEn.UTC(),
		Partidos:          make([]domain.Partido, len(d.Partidos)),
	}
	if d.FechaLimite != nil {
		limite := d.FechaLimite.UTC()
		q.FechaLimite = &limite
	}
	for i, p := range d.Partidos {
		q.Partidos[i] = domain.Partido{
			ID:        domain.PartidoID(p.ID),
			Local:     p.Local,
			Visitante: p.Visitante,
			Fecha:     p.Fecha,
			Hora:      p.Hora,
			Estadio:   p.Estadio,
		}
	}
	return q
}

func fromDomainPartidos(partidos []domain.Partido) []partidoDoc {
	docs := make([]partidoDoc, len(partidos))
	for i, p := range partidos {
		docs[i] = partidoDoc{
			ID:        string(p.ID),
			Local:     p.Local,
			Visitante: p.Visitante,
			Fecha:     p.Fecha,
			Hora:      p.Hora,
			Estadio:   p.Estadio,
		}
	}
	return docs
}

func fromDomainQuiniela(q domain.Quiniela) quinielaDoc {
	return quinielaDoc{
		ID:                string(q.ID),
		Nombre:            q.Nombre,
		Descripcion:       q.Descripcion,
		Partidos:          fromDomainPartidos(q.Partidos),
		Activa:            q.Activa,
		FechaLimite:       q.FechaLimite,
		PermitirEdicion:   q.PermitirEdicion,
		MostrarResultados: q.MostrarResultados,
		Respuestas:        q.Respuestas,
		CreadaEn:          q.CreadaEn,
		ActualizadaEn:     q.ActualizadaEn,
	}
}

func (r *QuinielaRepository) Create(ctx context.Context, q domain.Quiniela) error {
	if _, err := r.coll.InsertOne(ctx, fromDomainQuiniela(q)); err != nil {
		return fmt.Errorf("mongo quiniela: insertar: %w", err)
	}
	return nil
}

// Update usa $set solo sobre los campos editables; respuestas y creadaEn no se tocan.
func (r *QuinielaRepository) Update(ctx context.Context, q domain.Quiniela) error {
	set := bson.D{
		{Key: "nombre", Value: q.Nombre},
		{Key: "descripcion", Value: q.Descripcion},
		{Key: "partidos", Value: fromDomainPartidos(q.Partidos)},
		{Key: "activa", Value: q.Activa},
		{Key: "permitirEdicion", Value: q.PermitirEdicion},
		{Key: "mostrarResultados", Value: q.MostrarResultados},
		{Key: "actualizadaEn", Value: q.ActualizadaEn},
	}
	if q.FechaLimite != nil {
		set = append(set, bson.E{Key: "fechaLimite", Value: *q.FechaLimite})
	}
	update := bson.D{{Key: "$set", Value: set}}
	if q.FechaLimite == nil {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "fechaLimite", Value: ""}}})
	}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: string(q.ID)}}, update)
	if err != nil {
		return fmt.Errorf("mongo quiniela: actualizar: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *QuinielaRepository) Delete(ctx context.Context, id domain.QuinielaID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: string(id)}})
	if err != nil {
		return fmt.Errorf("mongo quiniela: eliminar: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *QuinielaRepository) FindByID(ctx context.Context, id domain.QuinielaID) (domain.Quiniela, error) {
	var doc quinielaDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: string(id)}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Quiniela{}, domain.ErrNotFound
		}
		return domain.Quiniela{}, fmt.Errorf("mongo quiniela: buscar id: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *QuinielaRepository) ListAll(ctx context.Context) ([]domain.Quiniela, error) {
	opts := options.Find().SetSort(bson.D{{Key: "creadaEn", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo quiniela: listar: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []quinielaDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo quiniela: decodificar listado: %w", err)
	}

	result := make([]domain.Quiniela, len(docs))
	for i, doc := range docs {
		result[i] = doc.toDomain()
	}
	return result, nil
}

// IncrementarRespuestas aplica $inc en el servidor, así dos envíos simultáneos nunca se pisan.
func (r *QuinielaRepository) IncrementarRespuestas(ctx context.Context, id domain.QuinielaID, delta int64) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: string(id)}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "respuestas", Value: delta}}}},
	)
	if err != nil {
		return fmt.Errorf("mongo quiniela: incrementar respuestas: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *QuinielaRepository) DefinirRespuestas(ctx context.Context, id domain.QuinielaID, total int64) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: string(id)}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "respuestas", Value: total}}}},
	)
	if err != nil {
		return fmt.Errorf("mongo quiniela: definir respuestas: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.QuinielaRepository = (*QuinielaRepository)(nil)
