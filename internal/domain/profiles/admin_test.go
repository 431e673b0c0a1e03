package profiles

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemover struct {
	removed []string
	err     error
}

func (f *fakeRemover) Remove(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	return f.err
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name  string
		count int64
		want  bool
	}{
		{"admin profile present", 1, true},
		{"no admin profile", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)

			mock.ExpectQuery(`SELECT count\(\*\) FROM "profiles" WHERE user_id = \$1 AND role = \$2`).
				WithArgs("u1", string(RoleAdmin)).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			got, err := IsAdmin(db, "u1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIsAdmin_QueryError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "profiles"`).
		WillReturnError(errors.New("connection reset"))

	got, err := IsAdmin(db, "u1")
	require.Error(t, err)
	assert.False(t, got)
}

func TestApprove_Idempotent(t *testing.T) {
	db, mock := newMockDB(t)

	// first approve flips the flag, second one rewrites the same value;
	// both are successes
	mock.ExpectExec(`UPDATE "profiles" SET .+ WHERE user_id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "profiles" SET .+ WHERE user_id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := Approve(db, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	rows, err = Approve(db, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_CascadesArtworksAndBlobs(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "image_path" FROM "artworks" WHERE artist_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"image_path"}).
			AddRow("u1/1_a.jpg").
			AddRow("u1/2_b.png"))
	mock.ExpectExec(`DELETE FROM "artworks" WHERE artist_id = \$1`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "profiles" WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := &fakeRemover{}
	rows, err := Reject(context.Background(), db, store, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)
	assert.Equal(t, []string{"u1/1_a.jpg", "u1/2_b.png"}, store.removed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_SecondCallIsNoop(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "image_path" FROM "artworks"`).
		WillReturnRows(sqlmock.NewRows([]string{"image_path"}))
	mock.ExpectExec(`DELETE FROM "artworks"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "profiles"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	store := &fakeRemover{}
	rows, err := Reject(context.Background(), db, store, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
	assert.Empty(t, store.removed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_BlobFailureDoesNotFail(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "image_path" FROM "artworks"`).
		WillReturnRows(sqlmock.NewRows([]string{"image_path"}).AddRow("u1/1_a.jpg"))
	mock.ExpectExec(`DELETE FROM "artworks"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "profiles"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := &fakeRemover{err: errors.New("bucket unavailable")}
	rows, err := Reject(context.Background(), db, store, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_RollsBackOnRowError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "image_path" FROM "artworks"`).
		WillReturnRows(sqlmock.NewRows([]string{"image_path"}).AddRow("u1/1_a.jpg"))
	mock.ExpectExec(`DELETE FROM "artworks"`).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	store := &fakeRemover{}
	_, err := Reject(context.Background(), db, store, "u1")
	require.Error(t, err)
	assert.Empty(t, store.removed)

	require.NoError(t, mock.ExpectationsWereMet())
}
