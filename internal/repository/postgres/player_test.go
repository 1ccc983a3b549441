package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"wordballs/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPlayerRepo_EnsurePlayerExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPlayerRepo(db)

	mock.ExpectExec("INSERT INTO players").
		WithArgs(int64(123), "en").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.EnsurePlayerExists(123, "en")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayerRepo_GetPlayer(t *testing.T) {
	columns := []string{"player_id", "language", "categories", "sentence_mode", "created_at"}

	tests := []struct {
		name          string
		playerID      int64
		mockRows      *sqlmock.Rows
		mockError     error
		expected      *domain.Player
		expectedError bool
	}{
		{
			name:     "player with categories",
			playerID: 123,
			mockRows: sqlmock.NewRows(columns).
				AddRow(123, "tr", "{animals,food}", true, time.Time{}),
			expected: &domain.Player{
				PlayerID:     123,
				Language:     "tr",
				Categories:   []string{"animals", "food"},
				SentenceMode: true,
			},
		},
		{
			name:     "player without categories",
			playerID: 124,
			mockRows: sqlmock.NewRows(columns).
				AddRow(124, "en", nil, false, time.Time{}),
			expected: &domain.Player{PlayerID: 124, Language: "en"},
		},
		{
			name:      "player not exists",
			playerID:  789,
			mockError: sql.ErrNoRows,
			expected:  nil,
		},
		{
			name:          "database error",
			playerID:      1,
			mockError:     errors.New("connection reset"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewPlayerRepo(db)

			query := "SELECT player_id, language, categories, sentence_mode, created_at FROM players"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.playerID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.playerID).WillReturnRows(tt.mockRows)
			}

			player, err := repo.GetPlayer(tt.playerID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, player)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPlayerRepo_UpdateSettings(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPlayerRepo(db)

	player := &domain.Player{
		PlayerID:     123,
		Language:     "zh",
		Categories:   []string{"animals"},
		SentenceMode: true,
	}

	mock.ExpectExec("INSERT INTO players").
		WithArgs(int64(123), "zh", sqlmock.AnyArg(), true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateSettings(player)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
