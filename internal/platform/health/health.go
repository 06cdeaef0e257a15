// Paquete health expone la verificación de disponibilidad de las dependencias.
package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Dependencia es algo que /readyz debe poder alcanzar; Mensaje se devuelve cuando falla.
type Dependencia struct {
	Mensaje string
	Ping    func(ctx context.Context) error
}

type Checker struct {
	deps []Dependencia
}

// NewChecker revisa las dependencias en orden; las nil se ignoran.
func NewChecker(deps ...Dependencia) *Checker {
	filtradas := make([]Dependencia, 0, len(deps))
	for _, d := range deps {
		if d.Ping != nil {
			filtradas = append(filtradas, d)
		}
	}
	return &Checker{deps: filtradas}
}

func SQL(db *sql.DB) Dependencia {
	if db == nil {
		return Dependencia{}
	}
	return Dependencia{Mensaje: "database unavailable", Ping: db.PingContext}
}

func Redis(client *redis.Client) Dependencia {
	if client == nil {
		return Dependencia{}
	}
	return Dependencia{Mensaje: "redis unavailable", Ping: func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}}
}

func Mongo(client *mongo.Client) Dependencia {
	if client == nil {
		return Dependencia{}
	}
	return Dependencia{Mensaje: "mongo unavailable", Ping: func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}}
}

func (c *Checker) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for _, d := range c.deps {
			if err := d.Ping(ctx); err != nil {
				http.Error(w, d.Mensaje, http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
