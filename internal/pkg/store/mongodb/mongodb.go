// Package mongodb archives energy systems in a MongoDB collection, one
// document per system keyed by the rendered system Uid. The payload is the
// opaque snapshot encoding, so archived systems restore exactly.
package mongodb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gridmodel/esmt/internal/pkg/es"
	"github.com/gridmodel/esmt/internal/pkg/snapshot"
)

const collection = "energySystems"

// Config locates the archive database.
type Config struct {
	URI      string `json:"URI"`
	Database string `json:"Database"`
	Port     string `json:"Port"`
}

// ReadConfig loads a Config from a JSON file.
func ReadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("mongodb: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Store is a connected archive handle.
type Store struct {
	pid    uuid.UUID
	client *mongo.Client
	config Config
}

// Connect dials the archive database.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	uri := cfg.URI
	if cfg.Port != "" {
		uri = uri + ":" + cfg.Port
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect %s: %w", uri, err)
	}

	pid, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	return &Store{pid: pid, client: client, config: cfg}, nil
}

// PID is the store handle identity.
func (s *Store) PID() uuid.UUID {
	return s.pid
}

// Disconnect releases the client.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Archive upserts sys, keyed by its rendered Uid.
func (s *Store) Archive(ctx context.Context, sys *es.System) error {
	blob, err := snapshot.Bytes(sys)
	if err != nil {
		return err
	}

	opts := options.Update().SetUpsert(true)
	_, err = s.client.Database(s.config.Database).Collection(collection).UpdateOne(
		ctx,
		bson.M{"name": sys.UID.String()},
		bson.D{{Key: "$set", Value: bson.M{
			"name":       sys.UID.String(),
			"archivedAt": time.Now().UTC(),
			"snapshot":   primitive.Binary{Data: blob},
		}}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("mongodb: archive %q: %w", sys.UID.String(), err)
	}
	return nil
}

// Load restores the archived system with the given rendered Uid.
func (s *Store) Load(ctx context.Context, name string) (*es.System, error) {
	var doc struct {
		Name     string           `bson:"name"`
		Snapshot primitive.Binary `bson:"snapshot"`
	}
	err := s.client.Database(s.config.Database).Collection(collection).
		FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("mongodb: load %q: %w", name, err)
	}
	return snapshot.Restore(bytes.NewReader(doc.Snapshot.Data))
}
