package leads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var leadColumns = []string{"id", "session_id", "form", "postal_code", "first_name", "last_name", "email", "phone", "answers", "source", "created_at"}

func TestPostgresRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPostgresRepositoryWithDB(mock)
	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO quote_leads").
		WithArgs(pgxmock.AnyArg(), "sess-1", "window-replacement", "60614", "Dana", "Reyes", "dana@example.com", "3125550199", []byte(`{"timeline":"flexible"}`), SourceQuoteForm).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	lead, err := repo.Create(context.Background(), &CreateLeadRequest{
		SessionID:  "sess-1",
		Form:       "window-replacement",
		PostalCode: "60614",
		FirstName:  "Dana",
		LastName:   "Reyes",
		Email:      "dana@example.com",
		Phone:      "3125550199",
		Answers:    map[string]string{"timeline": "flexible"},
		Source:     SourceQuoteForm,
	})
	require.NoError(t, err)
	assert.Equal(t, now, lead.CreatedAt)
	_, err = uuid.Parse(lead.ID)
	assert.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryCreateValidatesFirst(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = newPostgresRepositoryWithDB(mock).Create(context.Background(), &CreateLeadRequest{SessionID: "s"})
	assert.ErrorIs(t, err, ErrMissingContact)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPostgresRepositoryWithDB(mock)
	id := uuid.New()
	now := time.Now().UTC()
	rows := pgxmock.NewRows(leadColumns).
		AddRow(id, "sess-1", "window-replacement", "60614", "Dana", "Reyes", "dana@example.com", "3125550199", []byte(`{"homeowner":"yes"}`), SourceQuoteForm, now)
	mock.ExpectQuery("SELECT id").WithArgs(id.String()).WillReturnRows(rows)

	lead, err := repo.GetByID(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, id.String(), lead.ID)
	assert.Equal(t, "yes", lead.Answers["homeowner"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPostgresRepositoryWithDB(mock)
	id := uuid.New()
	mock.ExpectQuery("SELECT id").WithArgs(id.String()).WillReturnRows(pgxmock.NewRows(leadColumns))

	_, err = repo.GetByID(context.Background(), id.String())
	assert.ErrorIs(t, err, ErrLeadNotFound)

	_, err = repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrLeadNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPostgresRepositoryWithDB(mock)
	now := time.Now().UTC()
	rows := pgxmock.NewRows(leadColumns).
		AddRow(uuid.New(), "sess-2", "window-replacement", "60614", "A", "B", "a@b.co", "", []byte(`{}`), SourceQuoteForm, now).
		AddRow(uuid.New(), "sess-1", "window-replacement", "60614", "C", "D", "", "3125550199", []byte(nil), SourceQuoteForm, now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT id, .* FROM quote_leads WHERE postal_code = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("60614", 10, 5).
		WillReturnRows(rows)

	leads, err := repo.List(context.Background(), ListLeadsFilter{PostalCode: "60614", Limit: 10, Offset: 5})
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "sess-2", leads[0].SessionID)
	assert.Empty(t, leads[1].Answers)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryListError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id").WillReturnError(errors.New("connection reset"))
	_, err = newPostgresRepositoryWithDB(mock).List(context.Background(), ListLeadsFilter{})
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
