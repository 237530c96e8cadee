package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

type accountDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	KycID         string             `bson:"kycId"`
	AccountNumber string             `bson:"accountNumber"`
	Cost          float64            `bson:"cost"`
	AccountSize   float64            `bson:"accountSize"`
	PropFirm      string             `bson:"propFirm"`
	Status        string             `bson:"status"`
	Phase         string             `bson:"phase"`
	CycleID       *string            `bson:"cycleId,omitempty"`
	Login         *string            `bson:"login,omitempty"`
	Password      *string            `bson:"password,omitempty"`
	Server        *string            `bson:"server,omitempty"`
}

func (d accountDoc) toDomain() *domain.TradingAccount {
	return &domain.TradingAccount{
		ID:            d.ID.Hex(),
		KycID:         d.KycID,
		AccountNumber: d.AccountNumber,
		Cost:          d.Cost,
		AccountSize:   d.AccountSize,
		PropFirm:      d.PropFirm,
		Status:        domain.AccountStatus(d.Status),
		Phase:         domain.AccountPhase(d.Phase),
		CycleID:       d.CycleID,
		Login:         d.Login,
		Password:      d.Password,
		Server:        d.Server,
	}
}

// TradingAccountRepository implements ports.TradingAccountRepository.
type TradingAccountRepository struct {
	col    *mongo.Collection
	logger ports.Logger
}

// NewTradingAccountRepository creates an account repository backed by the store.
func NewTradingAccountRepository(s *Store) *TradingAccountRepository {
	return &TradingAccountRepository{col: s.db.Collection(accountsCollection), logger: s.logger}
}

func (r *TradingAccountRepository) Create(ctx context.Context, account *domain.TradingAccount) (string, error) {
	doc := accountDoc{
		KycID:         account.KycID,
		AccountNumber: account.AccountNumber,
		Cost:          account.Cost,
		AccountSize:   account.AccountSize,
		PropFirm:      account.PropFirm,
		Status:        string(account.Status),
		Phase:         string(account.Phase),
		CycleID:       account.CycleID,
		Login:         account.Login,
		Password:      account.Password,
		Server:        account.Server,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert trading account: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *TradingAccountRepository) FindByID(ctx context.Context, id string) (*domain.TradingAccount, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc accountDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find trading account %s: %w", id, err)
	}
	return doc.toDomain(), nil
}

// FindByKyc returns the accounts owned by one KYC record. Documents that fail
// to decode are logged and skipped so one corrupt record cannot hide the rest.
func (r *TradingAccountRepository) FindByKyc(ctx context.Context, kycID string) ([]*domain.TradingAccount, error) {
	return r.findMany(ctx, bson.M{"kycId": kycID})
}

func (r *TradingAccountRepository) FindByCycle(ctx context.Context, cycleID string) ([]*domain.TradingAccount, error) {
	return r.findMany(ctx, bson.M{"cycleId": cycleID})
}

func (r *TradingAccountRepository) FindAll(ctx context.Context) ([]*domain.TradingAccount, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *TradingAccountRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.TradingAccount, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find trading accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []*domain.TradingAccount
	for cursor.Next(ctx) {
		var doc accountDoc
		if err := cursor.Decode(&doc); err != nil {
			r.logger.Warn(ctx, "Skipping undecodable trading account document", map[string]interface{}{"error": err.Error()})
			continue
		}
		accounts = append(accounts, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate trading accounts: %w", err)
	}
	return accounts, nil
}

func (r *TradingAccountRepository) Update(ctx context.Context, id string, upd ports.TradingAccountUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{}
	if upd.AccountNumber != nil {
		set["accountNumber"] = *upd.AccountNumber
	}
	if upd.Cost != nil {
		set["cost"] = *upd.Cost
	}
	if upd.AccountSize != nil {
		set["accountSize"] = *upd.AccountSize
	}
	if upd.PropFirm != nil {
		set["propFirm"] = *upd.PropFirm
	}
	if upd.Status != nil {
		set["status"] = string(*upd.Status)
	}
	if upd.Phase != nil {
		set["phase"] = string(*upd.Phase)
	}
	if upd.CycleID != nil {
		set["cycleId"] = *upd.CycleID
	}
	if upd.Login != nil {
		set["login"] = *upd.Login
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.Server != nil {
		set["server"] = *upd.Server
	}
	if len(set) == 0 {
		return ports.ErrEmptyUpdate
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update trading account %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: trading account %s", ports.ErrNotFound, id)
	}
	return nil
}

func (r *TradingAccountRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete trading account %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: trading account %s", ports.ErrNotFound, id)
	}
	return nil
}
