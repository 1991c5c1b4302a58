package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/portfoliobuilder/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupClientTestRepository(t *testing.T) (*clientRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewClientRepository(db), mock, func() { db.Close() }
}

var clientRowColumns = []string{"id", "organization_id", "name", "logo", "sort_order", "created_at"}

func TestClientRepository_ListByOrganization(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name          string
		limit         int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name:  "all clients",
			limit: 0,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM clients WHERE organization_id = \? ORDER BY sort_order ASC, created_at ASC$`).
					WithArgs("org-1").
					WillReturnRows(sqlmock.NewRows(clientRowColumns).
						AddRow("c-1", "org-1", "Globex", "", 0, now).
						AddRow("c-2", "org-1", "Initech", "https://cdn.example.com/i.png", 1, now))
			},
			expectedCount: 2,
		},
		{
			name:  "limited",
			limit: 12,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM clients WHERE organization_id = \? ORDER BY sort_order ASC, created_at ASC LIMIT \?`).
					WithArgs("org-1", 12).
					WillReturnRows(sqlmock.NewRows(clientRowColumns).
						AddRow("c-1", "org-1", "Globex", "", 0, now))
			},
			expectedCount: 1,
		},
		{
			name:  "database error",
			limit: 0,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM clients`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupClientTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.ListByOrganization(context.Background(), "org-1", tt.limit)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, result, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClientRepository_CRUD(t *testing.T) {
	repo, mock, cleanup := setupClientTestRepository(t)
	defer cleanup()
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO clients`).
		WithArgs("c-1", "org-1", "Globex", "https://cdn.example.com/g.png", 3, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM clients WHERE id = \?`).
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows(clientRowColumns).
			AddRow("c-1", "org-1", "Globex", "https://cdn.example.com/g.png", 3, time.Now()))
	mock.ExpectExec(`UPDATE clients SET name = \?, logo = \?, sort_order = \? WHERE id = \?`).
		WithArgs("Globex Corp", "", 3, "c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM clients WHERE id = \?`).
		WithArgs("c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM clients WHERE id = \?`).
		WithArgs("c-1").
		WillReturnError(sql.ErrNoRows)

	c := &models.Client{ID: "c-1", OrganizationID: "org-1", Name: "Globex", Logo: "https://cdn.example.com/g.png", Order: 3}
	require.NoError(t, repo.Create(ctx, c))
	assert.False(t, c.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Globex", got.Name)

	c.Name = "Globex Corp"
	c.Logo = ""
	require.NoError(t, repo.Update(ctx, c))
	require.NoError(t, repo.Delete(ctx, "c-1"))

	_, err = repo.GetByID(ctx, "c-1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
