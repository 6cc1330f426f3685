package reminderRepo

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

// MongoReminderRepo implements ReminderRepository using MongoDB.
type MongoReminderRepo struct {
	coll *mongo.Collection
}

// NewMongoReminderRepo creates a new instance of ReminderRepository using MongoDB.
func NewMongoReminderRepo() ReminderRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("reminders")
	repo := &MongoReminderRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoReminderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "scheduledDate", Value: 1}}},
		// Serves the due scan: active + incomplete filtered by scheduledDate.
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "completed", Value: 1}, {Key: "scheduledDate", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a reminder by its unique ID.
func (r *MongoReminderRepo) GetByID(id string) (*models.Reminder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rem models.Reminder
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rem); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("reminder %s: %w", id, utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch reminder with id %s: %w", id, err)
	}
	return &rem, nil
}

// GetByUser retrieves all reminders owned by the given user.
func (r *MongoReminderRepo) GetByUser(userID string) ([]models.Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}})
	return r.find(bson.M{"userId": userID}, opts)
}

// FindUpcoming retrieves a user's incomplete reminders scheduled inside [from, to).
func (r *MongoReminderRepo) FindUpcoming(userID string, from, to time.Time) ([]models.Reminder, error) {
	filter := bson.M{
		"userId":        userID,
		"active":        true,
		"completed":     false,
		"scheduledDate": bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}})
	return r.find(filter, opts)
}

// FindDue retrieves all active, incomplete reminders due at or before now.
func (r *MongoReminderRepo) FindDue(now time.Time) ([]models.Reminder, error) {
	filter := bson.M{
		"active":        true,
		"completed":     false,
		"scheduledDate": bson.M{"$lte": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}})
	return r.find(filter, opts)
}

// FindDueForUser is FindDue scoped to one user.
func (r *MongoReminderRepo) FindDueForUser(userID string, now time.Time) ([]models.Reminder, error) {
	filter := bson.M{
		"userId":        userID,
		"active":        true,
		"completed":     false,
		"scheduledDate": bson.M{"$lte": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}})
	return r.find(filter, opts)
}

func (r *MongoReminderRepo) find(filter bson.M, opts *options.FindOptions) ([]models.Reminder, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	for cursor.Next(ctx) {
		var rem models.Reminder
		if err := cursor.Decode(&rem); err != nil {
			return nil, fmt.Errorf("failed to decode reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

// Create inserts a new reminder document.
func (r *MongoReminderRepo) Create(reminder *models.Reminder) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	reminder.CreatedAt = now
	reminder.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, reminder)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// Update modifies an existing reminder document.
func (r *MongoReminderRepo) Update(reminder *models.Reminder) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	reminder.UpdatedAt = time.Now()
	// Full replace so cleared fields (completedDate after a reschedule) do not
	// linger in the stored document.
	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": reminder.ID}, reminder)
	if err != nil {
		return fmt.Errorf("failed to update reminder with id %s: %w", reminder.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("reminder %s: %w", reminder.ID, utils.ErrNotFound)
	}
	return nil
}

// Delete removes a reminder document by its ID.
func (r *MongoReminderRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reminder with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("reminder %s: %w", id, utils.ErrNotFound)
	}
	return nil
}
