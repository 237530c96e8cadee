package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

type investmentDoc struct {
	CycleID          string    `bson:"cycleId"`
	Amount           float64   `bson:"amount"`
	ProfitPercentage float64   `bson:"profitPercentage"`
	InvestmentDate   time.Time `bson:"investmentDate"`
	Status           string    `bson:"status"`
}

type investorDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Email            string             `bson:"email"`
	Phone            *string            `bson:"phone,omitempty"`
	Identification   *string            `bson:"identification,omitempty"`
	Country          *string            `bson:"country,omitempty"`
	Notes            *string            `bson:"notes,omitempty"`
	RegistrationDate time.Time          `bson:"registrationDate"`
	TotalInvested    float64            `bson:"totalInvested"`
	Investments      []investmentDoc    `bson:"investments"`
}

func (d investorDoc) toDomain() *domain.Investor {
	investments := make([]domain.Investment, 0, len(d.Investments))
	for _, inv := range d.Investments {
		investments = append(investments, domain.Investment{
			CycleID:          inv.CycleID,
			Amount:           inv.Amount,
			ProfitPercentage: inv.ProfitPercentage,
			InvestmentDate:   inv.InvestmentDate,
			Status:           domain.InvestmentStatus(inv.Status),
		})
	}
	return &domain.Investor{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Email:            d.Email,
		Phone:            d.Phone,
		Identification:   d.Identification,
		Country:          d.Country,
		Notes:            d.Notes,
		RegistrationDate: d.RegistrationDate,
		TotalInvested:    d.TotalInvested,
		Investments:      investments,
	}
}

// InvestorRepository implements ports.InvestorRepository.
type InvestorRepository struct {
	col    *mongo.Collection
	logger ports.Logger
}

// NewInvestorRepository creates an investor repository backed by the store.
func NewInvestorRepository(s *Store) *InvestorRepository {
	return &InvestorRepository{col: s.db.Collection(investorsCollection), logger: s.logger}
}

func (r *InvestorRepository) Create(ctx context.Context, investor *domain.Investor) (string, error) {
	doc := investorDoc{
		Name:             investor.Name,
		Email:            investor.Email,
		Phone:            investor.Phone,
		Identification:   investor.Identification,
		Country:          investor.Country,
		Notes:            investor.Notes,
		RegistrationDate: investor.RegistrationDate,
		TotalInvested:    investor.TotalInvested,
		Investments:      []investmentDoc{},
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: investor with email %q", ports.ErrDuplicateEntry, investor.Email)
		}
		return "", fmt.Errorf("insert investor: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *InvestorRepository) FindByID(ctx context.Context, id string) (*domain.Investor, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc investorDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find investor %s: %w", id, err)
	}
	return doc.toDomain(), nil
}

func (r *InvestorRepository) FindAll(ctx context.Context) ([]*domain.Investor, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find investors: %w", err)
	}
	defer cursor.Close(ctx)

	var investors []*domain.Investor
	for cursor.Next(ctx) {
		var doc investorDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode investor: %w", err)
		}
		investors = append(investors, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate investors: %w", err)
	}
	return investors, nil
}

func (r *InvestorRepository) Update(ctx context.Context, id string, upd ports.InvestorUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Identification != nil {
		set["identification"] = *upd.Identification
	}
	if upd.Country != nil {
		set["country"] = *upd.Country
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}
	if len(set) == 0 {
		return ports.ErrEmptyUpdate
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: investor email", ports.ErrDuplicateEntry)
		}
		return fmt.Errorf("update investor %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: investor %s", ports.ErrNotFound, id)
	}
	return nil
}

// AddInvestment appends an investment and replaces the running total in one
// write, so the list and the total cannot drift apart within a document.
func (r *InvestorRepository) AddInvestment(ctx context.Context, investorID string, inv domain.Investment, newTotal float64) error {
	oid, err := objectID(investorID)
	if err != nil {
		return err
	}

	doc := investmentDoc{
		CycleID:          inv.CycleID,
		Amount:           inv.Amount,
		ProfitPercentage: inv.ProfitPercentage,
		InvestmentDate:   inv.InvestmentDate,
		Status:           string(inv.Status),
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{"investments": doc},
		"$set":  bson.M{"totalInvested": newTotal},
	})
	if err != nil {
		return fmt.Errorf("add investment to investor %s: %w", investorID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: investor %s", ports.ErrNotFound, investorID)
	}
	return nil
}

func (r *InvestorRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete investor %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: investor %s", ports.ErrNotFound, id)
	}
	return nil
}
