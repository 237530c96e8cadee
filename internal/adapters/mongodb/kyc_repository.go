package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

type kycDocumentDoc struct {
	FileName   string    `bson:"fileName"`
	UploadDate time.Time `bson:"uploadDate"`
}

type kycDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Phone            string             `bson:"phone"`
	Email            string             `bson:"email"`
	CreditCard       *string            `bson:"creditCard,omitempty"`
	Address          *string            `bson:"address,omitempty"`
	Status           bool               `bson:"status"`
	DashboardEnabled bool               `bson:"dashboardEnabled"`
	CycleID          *string            `bson:"cycleId,omitempty"`
	SubmittedDate    time.Time          `bson:"submittedDate"`
	Documents        []kycDocumentDoc   `bson:"documents"`
}

func (d kycDoc) toDomain() *domain.Kyc {
	documents := make([]domain.KycDocument, 0, len(d.Documents))
	for _, doc := range d.Documents {
		documents = append(documents, domain.KycDocument{
			FileName:   doc.FileName,
			UploadDate: doc.UploadDate,
		})
	}
	return &domain.Kyc{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Phone:            d.Phone,
		Email:            d.Email,
		CreditCard:       d.CreditCard,
		Address:          d.Address,
		Status:           d.Status,
		DashboardEnabled: d.DashboardEnabled,
		CycleID:          d.CycleID,
		SubmittedDate:    d.SubmittedDate,
		Documents:        documents,
	}
}

// KycRepository implements ports.KycRepository.
type KycRepository struct {
	col    *mongo.Collection
	logger ports.Logger
}

// NewKycRepository creates a KYC repository backed by the store.
func NewKycRepository(s *Store) *KycRepository {
	return &KycRepository{col: s.db.Collection(kycsCollection), logger: s.logger}
}

func (r *KycRepository) Create(ctx context.Context, kyc *domain.Kyc) (string, error) {
	documents := make([]kycDocumentDoc, 0, len(kyc.Documents))
	for _, doc := range kyc.Documents {
		documents = append(documents, kycDocumentDoc{FileName: doc.FileName, UploadDate: doc.UploadDate})
	}
	doc := kycDoc{
		Name:             kyc.Name,
		Phone:            kyc.Phone,
		Email:            kyc.Email,
		CreditCard:       kyc.CreditCard,
		Address:          kyc.Address,
		Status:           kyc.Status,
		DashboardEnabled: kyc.DashboardEnabled,
		CycleID:          kyc.CycleID,
		SubmittedDate:    kyc.SubmittedDate,
		Documents:        documents,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: KYC with email %q", ports.ErrDuplicateEntry, kyc.Email)
		}
		return "", fmt.Errorf("insert KYC: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *KycRepository) FindByID(ctx context.Context, id string) (*domain.Kyc, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc kycDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find KYC %s: %w", id, err)
	}
	return doc.toDomain(), nil
}

// Search returns one page of KYC records, newest first, plus the total count
// of matches. The search term matches name or email case-insensitively.
func (r *KycRepository) Search(ctx context.Context, q ports.KycQuery) ([]*domain.Kyc, int64, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": q.Search, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": q.Search, "$options": "i"}},
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count KYC records: %w", err)
	}

	opts := options.Find().
		SetSkip(q.Skip).
		SetLimit(q.Limit).
		SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find KYC records: %w", err)
	}
	defer cursor.Close(ctx)

	var kycs []*domain.Kyc
	for cursor.Next(ctx) {
		var doc kycDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode KYC: %w", err)
		}
		kycs = append(kycs, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate KYC records: %w", err)
	}
	return kycs, total, nil
}

func (r *KycRepository) Update(ctx context.Context, id string, upd ports.KycUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.CreditCard != nil {
		set["creditCard"] = *upd.CreditCard
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.DashboardEnabled != nil {
		set["dashboardEnabled"] = *upd.DashboardEnabled
	}
	if upd.CycleID != nil {
		set["cycleId"] = *upd.CycleID
	}
	if len(set) == 0 {
		return ports.ErrEmptyUpdate
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: KYC email", ports.ErrDuplicateEntry)
		}
		return fmt.Errorf("update KYC %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: KYC %s", ports.ErrNotFound, id)
	}
	return nil
}

func (r *KycRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete KYC %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: KYC %s", ports.ErrNotFound, id)
	}
	return nil
}
