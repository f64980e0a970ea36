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

// founderDoc keeps the field names already present in the founders collection,
// including the misspelt buisness_expertise.
type founderDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Sno               int                `bson:"sno"`
	Profile           string             `bson:"profile"`
	Position          string             `bson:"position"`
	Location          string             `bson:"location"`
	BioHighlights     string             `bson:"bio_highlights"`
	Languages         string             `bson:"languages"`
	RegionalExpertise string             `bson:"regional_expertise"`
	TechExpertise     string             `bson:"tech_expertise"`
	BusinessExpertise string             `bson:"buisness_expertise"`
	SocialLinks       string             `bson:"social_links"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func newFounderDoc(f *models.Founder) founderDoc {
	return founderDoc{
		Sno:               f.Sno,
		Profile:           f.Profile,
		Position:          f.Position,
		Location:          f.Location,
		BioHighlights:     f.BioHighlights,
		Languages:         f.Languages,
		RegionalExpertise: f.RegionalExpertise,
		TechExpertise:     f.TechExpertise,
		BusinessExpertise: f.BusinessExpertise,
		SocialLinks:       f.SocialLinks,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}

func (d founderDoc) model() models.Founder {
	return models.Founder{
		ID:                d.ID.Hex(),
		Sno:               d.Sno,
		Profile:           d.Profile,
		Position:          d.Position,
		Location:          d.Location,
		BioHighlights:     d.BioHighlights,
		Languages:         d.Languages,
		RegionalExpertise: d.RegionalExpertise,
		TechExpertise:     d.TechExpertise,
		BusinessExpertise: d.BusinessExpertise,
		SocialLinks:       d.SocialLinks,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// FounderRepository stores founders in the founders collection.
type FounderRepository struct {
	base
}

// NewFounderRepository constructs a FounderRepository.
func NewFounderRepository(db *mongo.Database, timeout time.Duration) *FounderRepository {
	return &FounderRepository{newBase(db, foundersCollection, timeout)}
}

func (r *FounderRepository) List(ctx context.Context) ([]models.Founder, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, creationOrder())
	if err != nil {
		return nil, translate("list founders", err)
	}
	var docs []founderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate("decode founders", err)
	}

	out := make([]models.Founder, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (r *FounderRepository) FindByID(ctx context.Context, id string) (*models.Founder, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var doc founderDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate("find founder", err)
	}
	m := doc.model()
	return &m, nil
}

func (r *FounderRepository) Create(ctx context.Context, founder *models.Founder) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	now := time.Now().UTC()
	founder.CreatedAt = now
	founder.UpdatedAt = now
	doc := newFounderDoc(founder)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return translate("create founder", err)
	}
	founder.ID = doc.ID.Hex()
	return nil
}

func (r *FounderRepository) Update(ctx context.Context, founder *models.Founder) error {
	oid, ok := objectID(founder.ID)
	if !ok {
		return repository.ErrNotFound
	}
	founder.UpdatedAt = time.Now().UTC()
	doc := newFounderDoc(founder)
	doc.ID = oid
	return r.replace(ctx, "update founder", oid, doc)
}

func (r *FounderRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "delete founder", id)
}
