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

const nsRespuestas = "quinielas.respuestas_quinielas"

func respuestaDeEjemplo() domain.Respuesta {
	return domain.Respuesta{
		ID:           "r1",
		QuinielaID:   "q1",
		Folio:        "QUI-1709316000000-042",
		Participante: domain.Participante{Nombre: "Juan Pérez"},
		Predicciones: []domain.Prediccion{
			{PartidoID: "p1", EquipoLocal: "América", EquipoVisitante: "Chivas", Resultado: domain.ResultadoLocal},
		},
		EnviadaEn: time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC),
	}
}

func TestRespuestaRepository_Create_CuandoFolioDuplicado_DebeRetornarErrFolioDuplicado(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("indice unico rechaza el folio", func(mt *mtest.T) {
		repo := NewRespuestaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: quinielas.respuestas_quinielas index: folio_unico",
		}))

		err := repo.Create(context.Background(), respuestaDeEjemplo())
		assert.ErrorIs(mt, err, domain.ErrFolioDuplicado)
	})

	mt.Run("otros errores de escritura se envuelven", func(mt *mtest.T) {
		repo := NewRespuestaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "document failed validation",
		}))

		err := repo.Create(context.Background(), respuestaDeEjemplo())
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, domain.ErrFolioDuplicado)
		assert.Contains(mt, err.Error(), "mongo respuesta: insertar")
	})

	mt.Run("alta exitosa", func(mt *mtest.T) {
		repo := NewRespuestaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, repo.Create(context.Background(), respuestaDeEjemplo()))
	})
}

func TestRespuestaRepository_FindByFolio(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("encuentra el envio", func(mt *mtest.T) {
		repo := NewRespuestaRepository(mt.DB)
		enviada := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, nsRespuestas, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "r1"},
			{Key: "quinielaId", Value: "q1"},
			{Key: "folio", Value: "QUI-1709316000000-042"},
			{Key: "participante", Value: bson.D{{Key: "nombre", Value: "Juan Pérez"}, {Key: "email", Value: "juan@example.com"}}},
			{Key: "predicciones", Value: bson.A{
				bson.D{{Key: "partidoId", Value: "p1"}, {Key: "equipoLocal", Value: "América"}, {Key: "equipoVisitante", Value: "Chivas"}, {Key: "prediccion", Value: "empate"}},
			}},
			{Key: "enviadaEn", Value: primitive.NewDateTimeFromTime(enviada)},
		}))

		r, err := repo.FindByFolio(context.Background(), "QUI-1709316000000-042")
		require.NoError(mt, err)
		assert.Equal(mt, domain.QuinielaID("q1"), r.QuinielaID)
		assert.Equal(mt, "juan@example.com", r.Participante.Email)
		require.Len(mt, r.Predicciones, 1)
		assert.Equal(mt, domain.ResultadoEmpate, r.Predicciones[0].Resultado)
		assert.True(mt, enviada.Equal(r.EnviadaEn))
	})

	mt.Run("folio inexistente", func(mt *mtest.T) {
		repo := NewRespuestaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, nsRespuestas, mtest.FirstBatch))

		_, err := repo.FindByFolio(context.Background(), "QUI-0-000")
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})
}

func TestRespuestaRepository_CountByQuiniela(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("cuenta con agregacion", func(mt *mtest.T) {
		repo := NewRespuestaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, nsRespuestas, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: 1},
			{Key: "n", Value: int32(4)},
		}))

		total, err := repo.CountByQuiniela(context.Background(), "q1")
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), total)
	})
}

func TestRespuestaRepository_Delete_CuandoNoExiste_DebeRetornarErrNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("delete sin coincidencias", func(mt *mtest.T) {
		repo := NewRespuestaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(mt, repo.Delete(context.Background(), "r-x"), domain.ErrNotFound)
	})
}
