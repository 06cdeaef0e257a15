// Paquete mongo implementa el almacén de documentos de la quiniela sobre MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	coleccionQuinielas  = "quinielas_activas"
	coleccionRespuestas = "respuestas_quinielas"
	coleccionPagos      = "pagos"
	coleccionConfig     = "config"
)

// Connect abre el cliente y comprueba la conexión con un ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(20).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("mongo: conectar: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping fallo: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea el índice único de folio y los índices de orden de los listados.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	respuestas := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "folio", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("folio_unico"),
		},
		{
			Keys: bson.D{{Key: "quinielaId", Value: 1}, {Key: "enviadaEn", Value: -1}},
		},
	}
	if _, err := db.Collection(coleccionRespuestas).Indexes().CreateMany(ctx, respuestas); err != nil {
		return fmt.Errorf("mongo: indices respuestas: %w", err)
	}

	quinielas := mongo.IndexModel{Keys: bson.D{{Key: "creadaEn", Value: -1}}}
	if _, err := db.Collection(coleccionQuinielas).Indexes().CreateOne(ctx, quinielas); err != nil {
		return fmt.Errorf("mongo: indices quinielas: %w", err)
	}
	return nil
}
