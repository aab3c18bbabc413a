package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orgledger/personnel-api/internal/core/domain"
)

var orgCollections = map[domain.OrgKind]string{
	domain.OrgCity:       "cities",
	domain.OrgBranch:     "branches",
	domain.OrgDepartment: "departments",
}

type orgUpdateDocument struct {
	At time.Time `bson:"updated_at"`
	By string    `bson:"updated_by,omitempty"`
}

// orgUnitDocument is the stored shape of a city, branch or department.
type orgUnitDocument struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Title     string              `bson:"title"`
	Country   string              `bson:"country,omitempty"`
	Address   string              `bson:"address,omitempty"`
	CityID    string              `bson:"city,omitempty"`
	BranchID  string              `bson:"branch,omitempty"`
	Contact   string              `bson:"contact,omitempty"`
	Email     string              `bson:"email,omitempty"`
	CreatedBy string              `bson:"created_by,omitempty"`
	Updates   []orgUpdateDocument `bson:"updates"`
	CreatedAt time.Time           `bson:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at"`
}

func toOrgDocument(u *domain.OrgUnit) orgUnitDocument {
	updates := make([]orgUpdateDocument, 0, len(u.Updates))
	for _, up := range u.Updates {
		updates = append(updates, orgUpdateDocument{At: up.At, By: up.By})
	}
	return orgUnitDocument{
		Title:     u.Title,
		Country:   u.Country,
		Address:   u.Address,
		CityID:    u.CityID,
		BranchID:  u.BranchID,
		Contact:   u.Contact,
		Email:     u.Email,
		CreatedBy: u.CreatedBy,
		Updates:   updates,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d orgUnitDocument) toDomain(kind domain.OrgKind) *domain.OrgUnit {
	updates := make([]domain.OrgUpdate, 0, len(d.Updates))
	for _, up := range d.Updates {
		updates = append(updates, domain.OrgUpdate{At: up.At, By: up.By})
	}
	return &domain.OrgUnit{
		ID:        d.ID.Hex(),
		Kind:      kind,
		Title:     d.Title,
		Country:   d.Country,
		Address:   d.Address,
		CityID:    d.CityID,
		BranchID:  d.BranchID,
		Contact:   d.Contact,
		Email:     d.Email,
		CreatedBy: d.CreatedBy,
		Updates:   updates,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// OrgUnitRepository stores each organization kind in its own collection.
type OrgUnitRepository struct {
	db      *mongo.Database
	timeout time.Duration
}

func NewOrgUnitRepository(db *mongo.Database, timeout time.Duration) *OrgUnitRepository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OrgUnitRepository{db: db, timeout: timeout}
}

func (r *OrgUnitRepository) col(kind domain.OrgKind) (*mongo.Collection, error) {
	name, ok := orgCollections[kind]
	if !ok {
		return nil, domain.NewValidationError("unknown organization kind %q", kind)
	}
	return r.db.Collection(name), nil
}

func (r *OrgUnitRepository) Create(ctx context.Context, u *domain.OrgUnit) (*domain.OrgUnit, error) {
	col, err := r.col(u.Kind)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := toOrgDocument(u)
	doc.ID = primitive.NewObjectID()
	if _, err := col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toDomain(u.Kind), nil
}

func (r *OrgUnitRepository) FindByID(ctx context.Context, kind domain.OrgKind, id string) (*domain.OrgUnit, error) {
	col, err := r.col(kind)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc orgUnitDocument
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(kind), nil
}

func (r *OrgUnitRepository) List(ctx context.Context, kind domain.OrgKind) ([]*domain.OrgUnit, error) {
	col, err := r.col(kind)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []orgUnitDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.OrgUnit, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain(kind))
	}
	return out, nil
}

// Update sets the editable fields and pushes entry onto the history in a
// single FindOneAndUpdate.
func (r *OrgUnitRepository) Update(ctx context.Context, u *domain.OrgUnit, entry domain.OrgUpdate) (*domain.OrgUnit, error) {
	col, err := r.col(u.Kind)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"title":      u.Title,
			"country":    u.Country,
			"address":    u.Address,
			"city":       u.CityID,
			"branch":     u.BranchID,
			"contact":    u.Contact,
			"email":      u.Email,
			"updated_at": u.UpdatedAt,
		},
		"$push": bson.M{"updates": orgUpdateDocument{At: entry.At, By: entry.By}},
	}

	var doc orgUnitDocument
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(u.Kind), nil
}

func (r *OrgUnitRepository) Delete(ctx context.Context, kind domain.OrgKind, id string) (*domain.OrgUnit, error) {
	col, err := r.col(kind)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc orgUnitDocument
	if err := col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(kind), nil
}

func (r *OrgUnitRepository) Count(ctx context.Context, kind domain.OrgKind) (int64, error) {
	col, err := r.col(kind)
	if err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return col.CountDocuments(ctx, bson.M{})
}
