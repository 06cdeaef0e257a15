package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/marcelojr/quinielas/internal/domain"
)

const nsQuinielas = "quinielas.quinielas_activas"

func quinielaBSON(id string, creada time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "nombre", Value: "Quiniela Jornada 10"},
		{Key: "partidos", Value: bson.A{
			bson.D{{Key: "id", Value: "p1"}, {Key: "local", Value: "América"}, {Key: "visitante", Value: "Chivas"}, {Key: "fecha", Value: "2024-03-09"}, {Key: "hora", Value: "19:00"}},
			bson.D{{Key: "id", Value: "p2"}, {Key: "local", Value: "Pumas"}, {Key: "visitante", Value: "Toluca"}, {Key: "fecha", Value: "2024-03-10"}, {Key: "hora", Value: "21:05"}},
		}},
		{Key: "activa", Value: true},
		{Key: "mostrarResultados", Value: true},
		{Key: "respuestas", Value: int64(7)},
		{Key: "creadaEn", Value: primitive.NewDateTimeFromTime(creada)},
		{Key: "actualizadaEn", Value: primitive.NewDateTimeFromTime(creada)},
	}
}

func TestQuinielaRepository_FindByID_CuandoExiste_DebeMapearPartidosEnOrden(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodifica el documento", func(mt *mtest.T) {
		repo := NewQuinielaRepository(mt.DB)
		creada := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, nsQuinielas, mtest.FirstBatch, quinielaBSON("q1", creada)))

		q, err := repo.FindByID(context.Background(), "q1")
		require.NoError(mt, err)

		assert.Equal(mt, domain.QuinielaID("q1"), q.ID)
		assert.Equal(mt, int64(7), q.Respuestas)
		assert.True(mt, q.Activa)
		assert.Nil(mt, q.FechaLimite)
		assert.True(mt, creada.Equal(q.CreadaEn))
		require.Len(mt, q.Partidos, 2)
		assert.Equal(mt, "América vs Chivas", q.Partidos[0].Etiqueta())
		assert.Equal(mt, domain.PartidoID("p2"), q.Partidos[1].ID)
	})
}

func TestQuinielaRepository_FindByID_CuandoNoExiste_DebeRetornarErrNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sin documentos", func(mt *mtest.T) {
		repo := NewQuinielaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, nsQuinielas, mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), "q-x")
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})
}

func TestQuinielaRepository_ListAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("lista todas las quinielas", func(mt *mtest.T) {
		repo := NewQuinielaRepository(mt.DB)
		base := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, nsQuinielas, mtest.FirstBatch,
			quinielaBSON("q2", base.Add(time.Hour)),
			quinielaBSON("q1", base),
		))

		lista, err := repo.ListAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, lista, 2)
		assert.Equal(mt, domain.QuinielaID("q2"), lista[0].ID)
		assert.Equal(mt, domain.QuinielaID("q1"), lista[1].ID)
	})
}

func TestQuinielaRepository_IncrementarRespuestas(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("incrementa cuando la quiniela existe", func(mt *mtest.T) {
		repo := NewQuinielaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		assert.NoError(mt, repo.IncrementarRespuestas(context.Background(), "q1", 1))
	})

	mt.Run("sin coincidencias retorna ErrNotFound", func(mt *mtest.T) {
		repo := NewQuinielaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.IncrementarRespuestas(context.Background(), "q-x", 1)
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("error del servidor se envuelve", func(mt *mtest.T) {
		repo := NewQuinielaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
		}))

		err := repo.IncrementarRespuestas(context.Background(), "q1", 1)
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, domain.ErrNotFound)
		assert.Contains(mt, err.Error(), "mongo quiniela: incrementar respuestas")
	})
}

func TestQuinielaRepository_Update_CuandoNoExiste_DebeRetornarErrNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update sin coincidencias", func(mt *mtest.T) {
		repo := NewQuinielaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(context.Background(), domain.Quiniela{ID: "q-x", Nombre: "Nada"})
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})
}

func TestQuinielaRepository_Create_y_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("crea y elimina", func(mt *mtest.T) {
		repo := NewQuinielaRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		q := domain.Quiniela{
			ID:       "q1",
			Nombre:   "Jornada 10",
			Activa:   true,
			Partidos: []domain.Partido{{ID: "p1", Local: "América", Visitante: "Chivas", Fecha: "2024-03-09", Hora: "19:00"}},
			CreadaEn: time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC),
		}
		require.NoError(mt, repo.Create(context.Background(), q))
		assert.NoError(mt, repo.Delete(context.Background(), "q1"))
	})

	mt.Run("delete sin coincidencias", func(mt *mtest.T) {
		repo := NewQuinielaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(mt, repo.Delete(context.Background(), "q-x"), domain.ErrNotFound)
	})
}
