package addressRepo

import (
	"context"
	"fmt"
	"time"

	"homely/database"
	"homely/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddressRepository supplies a user's selectable service addresses.
type AddressRepository interface {
	// ListByUser retrieves all saved addresses for a user.
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	// GetByID retrieves a single address by its ID.
	GetByID(ctx context.Context, id string) (*models.Address, error)
	// Create persists a newly entered address and returns it with its ID set.
	Create(ctx context.Context, addr models.Address) (*models.Address, error)
}

// MongoAddressRepo implements AddressRepository using MongoDB.
type MongoAddressRepo struct {
	coll *mongo.Collection
}

// NewMongoAddressRepo creates a new AddressRepository backed by MongoDB.
func NewMongoAddressRepo() AddressRepository {
	coll := database.MongoClient.Database("homely").Collection("addresses")
	repo := &MongoAddressRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAddressRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// ListByUser retrieves all saved addresses for a user.
func (r *MongoAddressRepo) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctxWithTimeout, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("error listing addresses for user %s: %w", userID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var addrs []models.Address
	if err := cursor.All(ctxWithTimeout, &addrs); err != nil {
		return nil, fmt.Errorf("error decoding addresses: %w", err)
	}
	return addrs, nil
}

// GetByID retrieves a single address by its ID.
func (r *MongoAddressRepo) GetByID(ctx context.Context, id string) (*models.Address, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var addr models.Address
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&addr)
	if err != nil {
		return nil, fmt.Errorf("address not found: %w", err)
	}
	return &addr, nil
}

// Create persists a newly entered address.
func (r *MongoAddressRepo) Create(ctx context.Context, addr models.Address) (*models.Address, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if addr.ID == "" {
		addr.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctxWithTimeout, addr); err != nil {
		return nil, fmt.Errorf("error creating address: %w", err)
	}
	return &addr, nil
}
