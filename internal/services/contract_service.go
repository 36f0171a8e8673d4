package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"primero/rentdesk/internal/models"
	"primero/rentdesk/internal/storage"
)

// ContractInput carries the editable fields of a contract.
type ContractInput struct {
	TenantID   string
	PropertyID string
	StartDate  time.Time
	EndDate    time.Time
	Notes      string
}

// ContractDocument is an uploaded agreement file accompanying a contract.
type ContractDocument struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// IContractService defines the interface for contract operations.
type IContractService interface {
	CreateContract(ctx context.Context, input ContractInput, doc *ContractDocument) (*models.Contract, error)
	FindContractByID(ctx context.Context, contractID string) (*models.Contract, error)
	ListContracts(ctx context.Context) ([]models.Contract, error)
	UpdateContract(ctx context.Context, contractID string, input ContractInput, doc *ContractDocument) (*models.Contract, error)
	DeleteContract(ctx context.Context, contractID string) error
	FindPrimaryContract(ctx context.Context, tenantID string) (*models.Contract, error)
}

const contractsCollection = "contracts"

// contractService implements IContractService.
type contractService struct {
	db      *mongo.Database
	storage storage.IDocumentStorage
}

// NewContractService creates a new ContractService.
func NewContractService(db *mongo.Database, documentStorage storage.IDocumentStorage) IContractService {
	return &contractService{db: db, storage: documentStorage}
}

// CreateContract uploads the agreement document and inserts the contract
// record. A document is required when creating; edits may omit it.
func (s *contractService) CreateContract(ctx context.Context, input ContractInput, doc *ContractDocument) (*models.Contract, error) {
	if doc == nil {
		return nil, fmt.Errorf("a document is required when adding a new contract")
	}

	fileURL, err := s.storage.Upload(ctx, input.TenantID, doc.Filename, doc.ContentType, doc.Body)
	if err != nil {
		return nil, err
	}

	contract := &models.Contract{
		Base:       models.NewBase(),
		TenantID:   input.TenantID,
		PropertyID: input.PropertyID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Notes:      input.Notes,
		FileURL:    fileURL,
		FileName:   doc.Filename,
	}

	if _, err := s.db.Collection(contractsCollection).InsertOne(ctx, contract); err != nil {
		// Record failed; don't leave the document orphaned in the bucket.
		if rmErr := s.storage.Remove(ctx, fileURL); rmErr != nil {
			log.Printf("Warning: failed to remove orphaned document %s: %v", fileURL, rmErr)
		}
		return nil, fmt.Errorf("failed to insert contract for tenant %s: %w", input.TenantID, err)
	}
	return contract, nil
}

// FindContractByID finds a contract by its ID.
func (s *contractService) FindContractByID(ctx context.Context, contractID string) (*models.Contract, error) {
	var contract models.Contract
	err := s.db.Collection(contractsCollection).FindOne(ctx, bson.M{"_id": contractID}).Decode(&contract)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding contract %s: %w", contractID, err)
	}
	return &contract, nil
}

// ListContracts returns all contracts, newest first.
func (s *contractService) ListContracts(ctx context.Context) ([]models.Contract, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(contractsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer cursor.Close(ctx)

	var contracts []models.Contract
	if err := cursor.All(ctx, &contracts); err != nil {
		return nil, fmt.Errorf("failed to decode contracts: %w", err)
	}
	return contracts, nil
}

// UpdateContract updates the contract record and, when a replacement document
// is supplied, swaps the stored file: old object removed, new one uploaded.
func (s *contractService) UpdateContract(ctx context.Context, contractID string, input ContractInput, doc *ContractDocument) (*models.Contract, error) {
	existing, err := s.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"tenant_id":   input.TenantID,
		"property_id": input.PropertyID,
		"start_date":  input.StartDate,
		"end_date":    input.EndDate,
		"notes":       input.Notes,
		"updated_at":  time.Now().UTC(),
	}

	if doc != nil {
		if existing.FileURL != "" {
			if err := s.storage.Remove(ctx, existing.FileURL); err != nil {
				log.Printf("Warning: failed to remove old document for contract %s: %v", contractID, err)
			}
		}
		fileURL, err := s.storage.Upload(ctx, input.TenantID, doc.Filename, doc.ContentType, doc.Body)
		if err != nil {
			return nil, err
		}
		set["file_url"] = fileURL
		set["file_name"] = doc.Filename
	}

	result, err := s.db.Collection(contractsCollection).UpdateOne(ctx, bson.M{"_id": contractID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("db error updating contract %s: %w", contractID, err)
	}
	if result.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return s.FindContractByID(ctx, contractID)
}

// DeleteContract removes the contract record and its stored document.
func (s *contractService) DeleteContract(ctx context.Context, contractID string) error {
	contract, err := s.FindContractByID(ctx, contractID)
	if err != nil {
		return err
	}

	if contract.FileURL != "" {
		if err := s.storage.Remove(ctx, contract.FileURL); err != nil {
			log.Printf("Warning: failed to remove document for contract %s: %v", contractID, err)
		}
	}

	result, err := s.db.Collection(contractsCollection).DeleteOne(ctx, bson.M{"_id": contractID})
	if err != nil {
		return fmt.Errorf("db error deleting contract %s: %w", contractID, err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindPrimaryContract returns the tenant's primary contract: the one with the
// earliest start date. Returns ErrNoContract when the tenant has none.
func (s *contractService) FindPrimaryContract(ctx context.Context, tenantID string) (*models.Contract, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "start_date", Value: 1}})

	var contract models.Contract
	err := s.db.Collection(contractsCollection).FindOne(ctx, bson.M{"tenant_id": tenantID}, opts).Decode(&contract)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoContract
		}
		return nil, fmt.Errorf("error finding primary contract for tenant %s: %w", tenantID, err)
	}
	return &contract, nil
}
