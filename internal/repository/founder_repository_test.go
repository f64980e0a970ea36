package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/startupathon-api/internal/models"
)

func TestListFounders(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewFounderRepository(db, time.Second)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "sno", "profile", "position", "location", "bio_highlights", "languages", "regional_expertise", "tech_expertise", "business_expertise", "social_links", "created_at", "updated_at"}).
		AddRow("f1", 1, "Jane", "CEO", "Berlin", "bio", "en", "EU", "AI", "B2B", "https://x.example", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM founders ORDER BY created_at ASC, id ASC")).WillReturnRows(rows)

	founders, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, founders, 1)
	assert.Equal(t, 1, founders[0].Sno)
	assert.Equal(t, "B2B", founders[0].BusinessExpertise)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAndDeleteFounder(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewFounderRepository(db, time.Second)

	mock.ExpectExec("INSERT INTO founders").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM founders WHERE id = $1")).WillReturnResult(sqlmock.NewResult(0, 0))

	founder := &models.Founder{Sno: 1, Profile: "Jane"}
	require.NoError(t, repo.Create(context.Background(), founder))
	assert.ErrorIs(t, repo.Delete(context.Background(), founder.ID), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
