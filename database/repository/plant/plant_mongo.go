package plantRepo

import (
	"context"
	"fmt"
	"time"

	"verdant/database"
	"verdant/models"
	"verdant/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPlantRepo implements PlantRepository using MongoDB.
type MongoPlantRepo struct {
	coll *mongo.Collection
}

// NewMongoPlantRepo creates a new instance of PlantRepository using MongoDB.
func NewMongoPlantRepo() PlantRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("plants")
	repo := &MongoPlantRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPlantRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a plant by its unique ID.
func (r *MongoPlantRepo) GetByID(id string) (*models.Plant, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var plant models.Plant
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&plant); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("plant %s: %w", id, utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch plant with id %s: %w", id, err)
	}
	return &plant, nil
}

// GetByUser retrieves all plants owned by the given user.
func (r *MongoPlantRepo) GetByUser(userID string) ([]models.Plant, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve plants for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var plants []models.Plant
	for cursor.Next(ctx) {
		var p models.Plant
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode plant: %w", err)
		}
		plants = append(plants, p)
	}
	return plants, nil
}

// Create inserts a new plant document.
func (r *MongoPlantRepo) Create(plant *models.Plant) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	plant.CreatedAt = now
	plant.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, plant)
	if err != nil {
		return fmt.Errorf("failed to create plant: %w", err)
	}
	return nil
}

// Update modifies an existing plant document.
func (r *MongoPlantRepo) Update(plant *models.Plant) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	plant.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": plant.ID}, bson.M{"$set": plant})
	if err != nil {
		return fmt.Errorf("failed to update plant with id %s: %w", plant.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("plant %s: %w", plant.ID, utils.ErrNotFound)
	}
	return nil
}

// Delete removes a plant document by its ID.
func (r *MongoPlantRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete plant with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("plant %s: %w", id, utils.ErrNotFound)
	}
	return nil
}
