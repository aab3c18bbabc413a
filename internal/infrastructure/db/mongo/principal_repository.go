package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/ports"
)

var collections = map[domain.Kind]string{
	domain.KindEmployee: "employees",
	domain.KindSeeker:   "seekers",
	domain.KindUser:     "users",
}

const uniqueIndexPrefix = "uniq_"

// principalDocument is the stored shape of a principal.
type principalDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	BusinessID   string             `bson:"business_id,omitempty"`
	FullName     string             `bson:"full_name"`
	FatherName   string             `bson:"father_name,omitempty"`
	Email        string             `bson:"email,omitempty"`
	Mobile       string             `bson:"mobile,omitempty"`
	CNIC         string             `bson:"cnic,omitempty"`
	DOB          time.Time          `bson:"dob,omitempty"`
	Gender       string             `bson:"gender,omitempty"`
	Address      string             `bson:"address,omitempty"`
	City         string             `bson:"city,omitempty"`
	Branch       string             `bson:"branch,omitempty"`
	Department   string             `bson:"department,omitempty"`
	Role         string             `bson:"role"`
	ImageURL     string             `bson:"image_url,omitempty"`
	PasswordHash string             `bson:"password_hash,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toDocument(p *domain.Principal) principalDocument {
	return principalDocument{
		BusinessID:   p.BusinessID,
		FullName:     p.FullName,
		FatherName:   p.FatherName,
		Email:        p.Email,
		Mobile:       p.Mobile,
		CNIC:         p.CNIC,
		DOB:          p.DOB,
		Gender:       p.Gender,
		Address:      p.Address,
		City:         p.City,
		Branch:       p.Branch,
		Department:   p.Department,
		Role:         string(p.Role),
		ImageURL:     p.ImageURL,
		PasswordHash: p.PasswordHash,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (d principalDocument) toDomain(kind domain.Kind) *domain.Principal {
	return &domain.Principal{
		ID:           d.ID.Hex(),
		Kind:         kind,
		BusinessID:   d.BusinessID,
		FullName:     d.FullName,
		FatherName:   d.FatherName,
		Email:        d.Email,
		Mobile:       d.Mobile,
		CNIC:         d.CNIC,
		DOB:          d.DOB,
		Gender:       d.Gender,
		Address:      d.Address,
		City:         d.City,
		Branch:       d.Branch,
		Department:   d.Department,
		Role:         domain.Role(d.Role),
		ImageURL:     d.ImageURL,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// PrincipalRepository stores each principal kind in its own collection.
// Natural-key uniqueness is enforced by partial unique indexes created in
// EnsureIndexes.
type PrincipalRepository struct {
	db      *mongo.Database
	timeout time.Duration
}

func NewPrincipalRepository(db *mongo.Database, timeout time.Duration) *PrincipalRepository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PrincipalRepository{db: db, timeout: timeout}
}

func (r *PrincipalRepository) col(kind domain.Kind) (*mongo.Collection, error) {
	name, ok := collections[kind]
	if !ok {
		return nil, domain.ErrUnknownKind
	}
	return r.db.Collection(name), nil
}

// Create inserts p. A unique-index violation is reported as *domain.ConflictError.
func (r *PrincipalRepository) Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error) {
	col, err := r.col(p.Kind)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := toDocument(p)
	doc.ID = primitive.NewObjectID()
	if _, err := col.InsertOne(ctx, doc); err != nil {
		return nil, mapWriteError(p.Kind, err)
	}
	return doc.toDomain(p.Kind), nil
}

func (r *PrincipalRepository) findOne(ctx context.Context, kind domain.Kind, filter bson.M) (*domain.Principal, error) {
	col, err := r.col(kind)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc principalDocument
	if err := col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(kind), nil
}

func (r *PrincipalRepository) FindByID(ctx context.Context, kind domain.Kind, id string) (*domain.Principal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Not an id this store could have issued.
		return nil, domain.ErrNotFound
	}
	return r.findOne(ctx, kind, bson.M{"_id": oid})
}

func (r *PrincipalRepository) FindByEmail(ctx context.Context, kind domain.Kind, email string) (*domain.Principal, error) {
	if email == "" {
		return nil, domain.ErrNotFound
	}
	return r.findOne(ctx, kind, bson.M{"email": email})
}

func (r *PrincipalRepository) FindByCNIC(ctx context.Context, kind domain.Kind, cnic string) (*domain.Principal, error) {
	if cnic == "" {
		return nil, domain.ErrNotFound
	}
	return r.findOne(ctx, kind, bson.M{"cnic": cnic})
}

// FindConflict looks for another principal of the same kind holding any of
// p's natural keys. It is advisory; Create and Update remain authoritative.
func (r *PrincipalRepository) FindConflict(ctx context.Context, p *domain.Principal) (domain.NaturalKey, error) {
	col, err := r.col(p.Kind)
	if err != nil {
		return "", err
	}
	policy, _ := p.Kind.Policy()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var self primitive.ObjectID
	if p.ID != "" {
		self, _ = primitive.ObjectIDFromHex(p.ID)
	}

	for _, key := range policy.NaturalKeys {
		v := p.KeyValue(key)
		if v == "" {
			continue
		}
		filter := bson.M{string(key): v}
		if !self.IsZero() {
			filter["_id"] = bson.M{"$ne": self}
		}
		n, err := col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return "", err
		}
		if n > 0 {
			return key, nil
		}
	}
	return "", nil
}

func (r *PrincipalRepository) List(ctx context.Context, kind domain.Kind, f ports.PrincipalFilter) ([]*domain.Principal, int64, error) {
	col, err := r.col(kind)
	if err != nil {
		return nil, 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{}
	if f.CNIC != "" {
		filter["cnic"] = f.CNIC
	}
	if f.BusinessID != "" {
		filter["business_id"] = f.BusinessID
	}
	if f.Email != "" {
		filter["email"] = f.Email
	}
	if f.Mobile != "" {
		filter["mobile"] = f.Mobile
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * f.Limit)).SetLimit(int64(f.Limit))
	}

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var docs []principalDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	out := make([]*domain.Principal, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain(kind))
	}
	return out, total, nil
}

// Update replaces the profile fields of p. The password digest, business id
// and creation time are left as stored.
func (r *PrincipalRepository) Update(ctx context.Context, p *domain.Principal) (*domain.Principal, error) {
	col, err := r.col(p.Kind)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	set := bson.M{
		"full_name":  p.FullName,
		"role":       string(p.Role),
		"updated_at": p.UpdatedAt,
	}
	unset := bson.M{}
	optional := map[string]string{
		"father_name": p.FatherName,
		"email":       p.Email,
		"mobile":      p.Mobile,
		"cnic":        p.CNIC,
		"gender":      p.Gender,
		"address":     p.Address,
		"city":        p.City,
		"branch":      p.Branch,
		"department":  p.Department,
		"image_url":   p.ImageURL,
	}
	// Cleared keys are unset so the partial unique indexes ignore them.
	for field, v := range optional {
		if v == "" {
			unset[field] = ""
		} else {
			set[field] = v
		}
	}
	if !p.DOB.IsZero() {
		set["dob"] = p.DOB
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var doc principalDocument
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, mapWriteError(p.Kind, err)
	}
	return doc.toDomain(p.Kind), nil
}

func (r *PrincipalRepository) UpdatePasswordHash(ctx context.Context, kind domain.Kind, id, hash string) error {
	col, err := r.col(kind)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PrincipalRepository) Delete(ctx context.Context, kind domain.Kind, id string) (*domain.Principal, error) {
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

	var doc principalDocument
	if err := col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(kind), nil
}

// MaxBusinessID returns the lexicographically greatest business id. Ids are
// zero padded, so this is also the numerically greatest below the padding width.
func (r *PrincipalRepository) MaxBusinessID(ctx context.Context, kind domain.Kind) (string, error) {
	col, err := r.col(kind)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc principalDocument
	err = col.FindOne(ctx,
		bson.M{"business_id": bson.M{"$gt": ""}},
		options.FindOne().
			SetSort(bson.D{{Key: "business_id", Value: -1}}).
			SetProjection(bson.M{"business_id": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return doc.BusinessID, nil
}

// EnsureIndexes creates one partial unique index per natural key of every
// kind, plus business_id where the kind allocates one. Absent keys are not
// indexed, so records without a CNIC never collide with each other.
func (r *PrincipalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, kind := range domain.Kinds() {
		col, _ := r.col(kind)
		policy, _ := kind.Policy()

		keys := append([]domain.NaturalKey{}, policy.NaturalKeys...)
		if policy.BusinessPrefix != "" {
			keys = append(keys, domain.KeyBusinessID)
		}

		indexes := []mongo.IndexModel{
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		}
		for _, key := range keys {
			field := string(key)
			indexes = append(indexes, mongo.IndexModel{
				Keys: bson.D{{Key: field, Value: 1}},
				Options: options.Index().
					SetName(uniqueIndexPrefix + field).
					SetUnique(true).
					SetPartialFilterExpression(bson.M{field: bson.M{"$gt": ""}}),
			})
		}

		if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", kind, err)
		}
	}
	return nil
}

// mapWriteError turns a duplicate-key error into a ConflictError naming the
// violated key. The key is recovered from the unique index name.
func mapWriteError(kind domain.Kind, err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	for _, key := range []domain.NaturalKey{domain.KeyEmail, domain.KeyMobile, domain.KeyCNIC, domain.KeyBusinessID} {
		if strings.Contains(msg, uniqueIndexPrefix+string(key)+" ") {
			return &domain.ConflictError{Kind: kind, Key: key}
		}
	}
	return &domain.ConflictError{Kind: kind}
}
