package health

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupValidDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	_, err = db.Exec("CREATE TABLE test (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func setupMockRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client
}

func servir(ctx context.Context, checker *Checker) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/readyz", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	checker.ReadyHandler().ServeHTTP(w, req)
	return w
}

func TestReadyHandler_CuandoTodoDisponible_DebeRetornar200(t *testing.T) {
	checker := NewChecker(SQL(setupValidDB(t)), Redis(setupMockRedis(t)))

	w := servir(context.Background(), checker)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestReadyHandler_CuandoDependenciasNil_DebeOmitirlas(t *testing.T) {
	checker := NewChecker(SQL(nil), Redis(nil), Mongo(nil))

	w := servir(context.Background(), checker)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestReadyHandler_CuandoDBCerrada_DebeRetornar503(t *testing.T) {
	db := setupValidDB(t)
	db.Close()
	checker := NewChecker(SQL(db), Redis(setupMockRedis(t)))

	w := servir(context.Background(), checker)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "database unavailable\n", w.Body.String())
}

func TestReadyHandler_CuandoRedisCerrado_DebeRetornar503(t *testing.T) {
	client := setupMockRedis(t)
	client.Close()
	checker := NewChecker(SQL(setupValidDB(t)), Redis(client))

	w := servir(context.Background(), checker)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "redis unavailable\n", w.Body.String())
}

func TestReadyHandler_CuandoAmbasFallan_DebeRetornarLaPrimera(t *testing.T) {
	db := setupValidDB(t)
	db.Close()
	client := setupMockRedis(t)
	client.Close()
	checker := NewChecker(SQL(db), Redis(client))

	w := servir(context.Background(), checker)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "database unavailable\n", w.Body.String())
}

func TestReadyHandler_CuandoMongoFalla_DebeRetornar503(t *testing.T) {
	mongoCaido := Dependencia{Mensaje: "mongo unavailable", Ping: func(context.Context) error {
		return errors.New("server selection timeout")
	}}
	checker := NewChecker(Redis(setupMockRedis(t)), mongoCaido)

	w := servir(context.Background(), checker)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "mongo unavailable\n", w.Body.String())
}

func TestReadyHandler_CuandoContextoCancelado_DebeInterrumpir(t *testing.T) {
	checker := NewChecker(SQL(setupValidDB(t)), Redis(setupMockRedis(t)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := servir(ctx, checker)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "database unavailable\n", w.Body.String())
}
