package mongostore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/internal/repository"
)

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestChallengeStore(t *testing.T) {
	mt := newMockT(t)

	mt.Run("list visible decodes documents", func(mt *mtest.T) {
		repo := NewChallengeRepository(mt.DB, time.Second)
		id := primitive.NewObjectID()
		image := "/uploads/challenges/a.jpg"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.challenges", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "X"},
			{Key: "funding", Value: "$10k"},
			{Key: "deadline", Value: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			{Key: "description", Value: "d"},
			{Key: "visible", Value: true},
			{Key: "image", Value: image},
		}))

		list, err := repo.List(context.Background(), models.VisibilityFilter{VisibleOnly: true})
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		assert.Equal(mt, id.Hex(), list[0].ID)
		assert.Equal(mt, "2025-01-01", list[0].Deadline.Format("2006-01-02"))
		require.NotNil(mt, list[0].Image)
		assert.Equal(mt, image, *list[0].Image)
	})

	mt.Run("find with malformed id is not found", func(mt *mtest.T) {
		repo := NewChallengeRepository(mt.DB, time.Second)

		_, err := repo.FindByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("find missing document", func(mt *mtest.T) {
		repo := NewChallengeRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.challenges", mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewChallengeRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		challenge := &models.Challenge{Title: "X", Funding: "$10k", Description: "d", Visible: true}
		require.NoError(mt, repo.Create(context.Background(), challenge))
		_, err := primitive.ObjectIDFromHex(challenge.ID)
		assert.NoError(mt, err)
	})

	mt.Run("update unknown id", func(mt *mtest.T) {
		repo := NewChallengeRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.Update(context.Background(), &models.Challenge{ID: primitive.NewObjectID().Hex()})
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("delete reports missing documents", func(mt *mtest.T) {
		repo := NewChallengeRepository(mt.DB, time.Second)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		id := primitive.NewObjectID().Hex()
		assert.NoError(mt, repo.Delete(context.Background(), id))
		assert.ErrorIs(mt, repo.Delete(context.Background(), id), repository.ErrNotFound)
	})
}

func TestSubscriberStore(t *testing.T) {
	mt := newMockT(t)

	mt.Run("list counts then pages", func(mt *mtest.T) {
		repo := NewSubscriberRepository(mt.DB, time.Second)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "db.subscribers", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(11)}}),
			mtest.CreateCursorResponse(0, "db.subscribers", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "email", Value: "ann@example.com"},
				{Key: "subscriptionDate", Value: time.Now().UTC()},
			}),
		)

		list, total, err := repo.List(context.Background(), models.SubscriberFilter{Search: "ann", Page: 2, PageSize: 10})
		require.NoError(mt, err)
		assert.Equal(mt, 11, total)
		require.Len(mt, list, 1)
		assert.Equal(mt, "ann@example.com", list[0].Email)
	})

	mt.Run("duplicate insert maps to sentinel", func(mt *mtest.T) {
		repo := NewSubscriberRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: db.subscribers index: email_1",
		}))

		err := repo.Create(context.Background(), &models.Subscriber{Email: "a@b.com"})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("exists by email", func(mt *mtest.T) {
		repo := NewSubscriberRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.subscribers", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}))

		exists, err := repo.ExistsByEmail(context.Background(), "a@b.com", primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.True(mt, exists)
	})
}

func TestUserStore(t *testing.T) {
	mt := newMockT(t)

	mt.Run("find by email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "admin@example.com"},
			{Key: "password", Value: "hash"},
			{Key: "role", Value: "admin"},
		}))

		user, err := repo.FindByEmail(context.Background(), "Admin@Example.com")
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), user.ID)
		assert.Equal(mt, "hash", user.PasswordHash)
		assert.Equal(mt, models.RoleAdmin, user.Role)
	})

	mt.Run("count", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch))

		n, err := repo.Count(context.Background())
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})
}

func TestFounderDocKeepsLegacyFieldNames(t *testing.T) {
	raw, err := bson.Marshal(newFounderDoc(&models.Founder{BusinessExpertise: "B2B", BioHighlights: "bio"}))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "B2B", m["buisness_expertise"])
	assert.Equal(t, "bio", m["bio_highlights"])
}
