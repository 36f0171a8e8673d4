package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"primero/rentdesk/internal/models"
)

// PropertyInput carries the editable fields of a property.
type PropertyInput struct {
	Name        string  `json:"name" binding:"required"`
	Address     string  `json:"address" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	MonthlyRent float64 `json:"monthly_rent" binding:"required,gte=0"`
	FloorLevel  string  `json:"floor_level"`
	UnitNumber  string  `json:"unit_number"`
	RoomDetails string  `json:"room_details"`
}

// IPropertyService defines the interface for property operations.
type IPropertyService interface {
	CreateProperty(ctx context.Context, input PropertyInput) (*models.Property, error)
	FindPropertyByID(ctx context.Context, propertyID string) (*models.Property, error)
	ListProperties(ctx context.Context) ([]models.Property, error)
	UpdateProperty(ctx context.Context, propertyID string, input PropertyInput) (*models.Property, error)
	DeleteProperty(ctx context.Context, propertyID string) error
	SetPropertyStatus(ctx context.Context, propertyID, status string) error
}

const propertiesCollection = "properties"

// propertyService implements IPropertyService.
type propertyService struct {
	db *mongo.Database
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(db *mongo.Database) IPropertyService {
	return &propertyService{db: db}
}

// CreateProperty inserts a new property. New properties always start vacant.
func (s *propertyService) CreateProperty(ctx context.Context, input PropertyInput) (*models.Property, error) {
	property := &models.Property{
		Base:        models.NewBase(),
		Name:        input.Name,
		Address:     input.Address,
		Type:        input.Type,
		MonthlyRent: input.MonthlyRent,
		FloorLevel:  input.FloorLevel,
		UnitNumber:  input.UnitNumber,
		RoomDetails: input.RoomDetails,
		Status:      models.PropertyStatusVacant,
	}

	if _, err := s.db.Collection(propertiesCollection).InsertOne(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to insert property %q: %w", input.Name, err)
	}
	return property, nil
}

// FindPropertyByID finds a property by its ID.
func (s *propertyService) FindPropertyByID(ctx context.Context, propertyID string) (*models.Property, error) {
	var property models.Property
	err := s.db.Collection(propertiesCollection).FindOne(ctx, bson.M{"_id": propertyID}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding property %s: %w", propertyID, err)
	}
	return &property, nil
}

// ListProperties returns all properties, newest first.
func (s *propertyService) ListProperties(ctx context.Context) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(propertiesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return properties, nil
}

// UpdateProperty replaces the editable fields of a property. Status is managed
// through SetPropertyStatus only.
func (s *propertyService) UpdateProperty(ctx context.Context, propertyID string, input PropertyInput) (*models.Property, error) {
	update := bson.M{"$set": bson.M{
		"name":         input.Name,
		"address":      input.Address,
		"type":         input.Type,
		"monthly_rent": input.MonthlyRent,
		"floor_level":  input.FloorLevel,
		"unit_number":  input.UnitNumber,
		"room_details": input.RoomDetails,
		"updated_at":   time.Now().UTC(),
	}}

	result, err := s.db.Collection(propertiesCollection).UpdateOne(ctx, bson.M{"_id": propertyID}, update)
	if err != nil {
		return nil, fmt.Errorf("db error updating property %s: %w", propertyID, err)
	}
	if result.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return s.FindPropertyByID(ctx, propertyID)
}

// DeleteProperty removes a property permanently.
func (s *propertyService) DeleteProperty(ctx context.Context, propertyID string) error {
	result, err := s.db.Collection(propertiesCollection).DeleteOne(ctx, bson.M{"_id": propertyID})
	if err != nil {
		return fmt.Errorf("db error deleting property %s: %w", propertyID, err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetPropertyStatus flips a property between vacant and occupied.
func (s *propertyService) SetPropertyStatus(ctx context.Context, propertyID, status string) error {
	if status != models.PropertyStatusVacant && status != models.PropertyStatusOccupied {
		return fmt.Errorf("invalid property status %q", status)
	}

	result, err := s.db.Collection(propertiesCollection).UpdateOne(ctx,
		bson.M{"_id": propertyID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("db error setting property %s status: %w", propertyID, err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
