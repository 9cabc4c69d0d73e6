package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

var linkColumnNames = []string{"id", "coach_id", "client_id", "created_at"}

func TestCoachLinkRepository_Create(t *testing.T) {
	link := model.CoachLink{ID: uuid.New(), CoachID: uuid.New(), ClientID: uuid.New()}
	query := regexp.QuoteMeta(`INSERT INTO coach_clients (id, coach_id, client_id)`)

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).
			WithArgs(link.ID.String(), link.CoachID.String(), link.ClientID.String()).
			WillReturnRows(sqlmock.NewRows(linkColumnNames).
				AddRow(link.ID.String(), link.CoachID.String(), link.ClientID.String(), fixedTime))

		saved, err := NewCoachLinkRepository(db).Create(context.Background(), link)

		require.NoError(t, err)
		assert.Equal(t, link.ClientID, saved.ClientID)
	})

	t.Run("client already linked", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := NewCoachLinkRepository(db).Create(context.Background(), link)

		assert.ErrorIs(t, err, model.ErrAlreadyExists)
	})
}

func TestCoachLinkRepository_Lookups(t *testing.T) {
	coachID, clientID := uuid.New(), uuid.New()

	t.Run("by coach and client", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE coach_id = $1 AND client_id = $2`)).
			WithArgs(coachID.String(), clientID.String()).
			WillReturnRows(sqlmock.NewRows(linkColumnNames).
				AddRow(uuid.NewString(), coachID.String(), clientID.String(), fixedTime))

		link, err := NewCoachLinkRepository(db).GetByCoachAndClient(context.Background(), coachID, clientID)

		require.NoError(t, err)
		assert.Equal(t, coachID, link.CoachID)
	})

	t.Run("client without coach", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE client_id = $1`)).
			WithArgs(clientID.String()).
			WillReturnRows(sqlmock.NewRows(linkColumnNames))

		_, err := NewCoachLinkRepository(db).GetByClientID(context.Background(), clientID)

		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestCoachLinkRepository_ListClients(t *testing.T) {
	db, mock := newMockDB(t)
	coachID := uuid.New()
	client := model.User{ID: uuid.New(), Email: "c@example.com", Username: "c", Role: model.RoleClient}

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN coach_clients c ON c.client_id = u.id`)).
		WithArgs(coachID.String()).
		WillReturnRows(userRows(client))

	clients, err := NewCoachLinkRepository(db).ListClients(context.Background(), coachID)

	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, client.ID, clients[0].ID)
}

func TestCoachLinkRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM coach_clients WHERE id = $1`)).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, NewCoachLinkRepository(db).Delete(context.Background(), id), model.ErrNotFound)
}
