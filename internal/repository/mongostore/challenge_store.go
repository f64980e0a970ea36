package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/internal/repository"
)

type challengeDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Funding     string             `bson:"funding"`
	Deadline    time.Time          `bson:"deadline"`
	Description string             `bson:"description"`
	Visible     bool               `bson:"visible"`
	Image       *string            `bson:"image,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newChallengeDoc(c *models.Challenge) challengeDoc {
	return challengeDoc{
		Title:       c.Title,
		Funding:     c.Funding,
		Deadline:    c.Deadline,
		Description: c.Description,
		Visible:     c.Visible,
		Image:       c.Image,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d challengeDoc) model() models.Challenge {
	return models.Challenge{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Funding:     d.Funding,
		Deadline:    d.Deadline.UTC(),
		Description: d.Description,
		Visible:     d.Visible,
		Image:       d.Image,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ChallengeRepository stores challenges in the challenges collection.
type ChallengeRepository struct {
	base
}

// NewChallengeRepository constructs a ChallengeRepository.
func NewChallengeRepository(db *mongo.Database, timeout time.Duration) *ChallengeRepository {
	return &ChallengeRepository{newBase(db, challengesCollection, timeout)}
}

func (r *ChallengeRepository) List(ctx context.Context, filter models.VisibilityFilter) ([]models.Challenge, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := bson.M{}
	if filter.VisibleOnly {
		query["visible"] = true
	}
	cursor, err := r.coll.Find(ctx, query, creationOrder())
	if err != nil {
		return nil, translate("list challenges", err)
	}
	var docs []challengeDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate("decode challenges", err)
	}

	out := make([]models.Challenge, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id string) (*models.Challenge, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var doc challengeDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate("find challenge", err)
	}
	m := doc.model()
	return &m, nil
}

func (r *ChallengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	now := time.Now().UTC()
	challenge.CreatedAt = now
	challenge.UpdatedAt = now
	doc := newChallengeDoc(challenge)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return translate("create challenge", err)
	}
	challenge.ID = doc.ID.Hex()
	return nil
}

func (r *ChallengeRepository) Update(ctx context.Context, challenge *models.Challenge) error {
	oid, ok := objectID(challenge.ID)
	if !ok {
		return repository.ErrNotFound
	}
	challenge.UpdatedAt = time.Now().UTC()
	doc := newChallengeDoc(challenge)
	doc.ID = oid
	return r.replace(ctx, "update challenge", oid, doc)
}

func (r *ChallengeRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "delete challenge", id)
}
