package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"homely/database"
	"homely/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogRepository is the read-only source of priced service line items.
// The checkout engine resolves every cart addition through it so unit
// prices can never be client-supplied.
type CatalogRepository interface {
	// GetByServiceID retrieves an active catalog entry by serviceId.
	GetByServiceID(ctx context.Context, serviceID string) (*models.ServiceItem, error)
	// ListByCategory retrieves active entries in a category.
	ListByCategory(ctx context.Context, categorySlug string) ([]models.ServiceItem, error)
}

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo creates a new CatalogRepository backed by MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	coll := database.MongoClient.Database("homely").Collection("services")
	repo := &MongoCatalogRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "service_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category_slug", Value: 1}, {Key: "active", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByServiceID retrieves an active catalog entry by serviceId.
func (r *MongoCatalogRepo) GetByServiceID(ctx context.Context, serviceID string) (*models.ServiceItem, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var item models.ServiceItem
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"service_id": serviceID, "active": true}).Decode(&item)
	if err != nil {
		return nil, fmt.Errorf("service not found: %w", err)
	}
	return &item, nil
}

// ListByCategory retrieves active entries in a category.
func (r *MongoCatalogRepo) ListByCategory(ctx context.Context, categorySlug string) ([]models.ServiceItem, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctxWithTimeout, bson.M{"category_slug": categorySlug, "active": true})
	if err != nil {
		return nil, fmt.Errorf("error listing services for category %s: %w", categorySlug, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var items []models.ServiceItem
	if err := cursor.All(ctxWithTimeout, &items); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return items, nil
}
