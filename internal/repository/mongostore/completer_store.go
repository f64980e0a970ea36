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

type completerDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ProjectName    string             `bson:"projectName"`
	Profile        string             `bson:"profile"`
	Position       string             `bson:"position"`
	Description    string             `bson:"description"`
	Funding        string             `bson:"funding"`
	LinkedinURL    string             `bson:"linkedinUrl"`
	ProfilePicture *string            `bson:"profilePicture,omitempty"`
	Status         string             `bson:"status"`
	Visible        bool               `bson:"visible"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func newCompleterDoc(c *models.Completer) completerDoc {
	return completerDoc{
		ProjectName:    c.ProjectName,
		Profile:        c.Profile,
		Position:       c.Position,
		Description:    c.Description,
		Funding:        c.Funding,
		LinkedinURL:    c.LinkedinURL,
		ProfilePicture: c.ProfilePicture,
		Status:         string(c.Status),
		Visible:        c.Visible,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (d completerDoc) model() models.Completer {
	status := models.CompleterStatus(d.Status)
	if !status.Valid() {
		status = models.CompleterActive
	}
	return models.Completer{
		ID:             d.ID.Hex(),
		ProjectName:    d.ProjectName,
		Profile:        d.Profile,
		Position:       d.Position,
		Description:    d.Description,
		Funding:        d.Funding,
		LinkedinURL:    d.LinkedinURL,
		ProfilePicture: d.ProfilePicture,
		Status:         status,
		Visible:        d.Visible,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// CompleterRepository stores completers in the completers collection.
type CompleterRepository struct {
	base
}

// NewCompleterRepository constructs a CompleterRepository.
func NewCompleterRepository(db *mongo.Database, timeout time.Duration) *CompleterRepository {
	return &CompleterRepository{newBase(db, completersCollection, timeout)}
}

func (r *CompleterRepository) List(ctx context.Context, filter models.VisibilityFilter) ([]models.Completer, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := bson.M{}
	if filter.VisibleOnly {
		query["visible"] = true
	}
	cursor, err := r.coll.Find(ctx, query, creationOrder())
	if err != nil {
		return nil, translate("list completers", err)
	}
	var docs []completerDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate("decode completers", err)
	}

	out := make([]models.Completer, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (r *CompleterRepository) FindByID(ctx context.Context, id string) (*models.Completer, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var doc completerDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate("find completer", err)
	}
	m := doc.model()
	return &m, nil
}

func (r *CompleterRepository) Create(ctx context.Context, completer *models.Completer) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	now := time.Now().UTC()
	completer.CreatedAt = now
	completer.UpdatedAt = now
	doc := newCompleterDoc(completer)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return translate("create completer", err)
	}
	completer.ID = doc.ID.Hex()
	return nil
}

func (r *CompleterRepository) Update(ctx context.Context, completer *models.Completer) error {
	oid, ok := objectID(completer.ID)
	if !ok {
		return repository.ErrNotFound
	}
	completer.UpdatedAt = time.Now().UTC()
	doc := newCompleterDoc(completer)
	doc.ID = oid
	return r.replace(ctx, "update completer", oid, doc)
}

func (r *CompleterRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "delete completer", id)
}
