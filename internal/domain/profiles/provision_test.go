package profiles

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

func profileColumns() []string {
	return []string{"id", "user_id", "email", "full_name", "role", "is_approved", "pix_key", "created_at", "updated_at"}
}

func expectUpsert(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`INSERT INTO "profiles" .+ ON CONFLICT \("user_id"\) DO UPDATE SET`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("p-1"))
}

func expectFetch(mock sqlmock.Sqlmock, userID, email, fullName, role string, approved bool, pixKey interface{}) {
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE user_id = \$1`).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows(profileColumns()).
			AddRow("p-1", userID, email, fullName, role, approved, pixKey, now, now))
}

func TestProvision_MissingUser(t *testing.T) {
	db, mock := newMockDB(t)

	_, err := Provision(db, nil)
	require.ErrorIs(t, err, ErrMissingUser)

	_, err = Provision(db, &IdentityPayload{Email: "a@b.com"})
	require.ErrorIs(t, err, ErrMissingUser)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProvision_RejectsAdminClaim(t *testing.T) {
	db, mock := newMockDB(t)

	_, err := Provision(db, &IdentityPayload{
		ID:              "u1",
		Email:           "a@b.com",
		RawUserMetaData: &SignupMetadata{Role: "admin"},
	})
	require.ErrorIs(t, err, ErrInvalidRole)

	// nothing reached the store
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProvision_DefaultsWithoutMetadata(t *testing.T) {
	db, mock := newMockDB(t)

	expectUpsert(mock)
	expectFetch(mock, "u1", "a@b.com", "Usuário", "buyer", false, nil)

	p, err := Provision(db, &IdentityPayload{ID: "u1", Email: "a@b.com"})
	require.NoError(t, err)

	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, RoleBuyer, p.Role)
	assert.Equal(t, "Usuário", p.FullName)
	assert.False(t, p.IsApproved)
	assert.Nil(t, p.PixKey)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProvision_ArtistSignup(t *testing.T) {
	db, mock := newMockDB(t)

	expectUpsert(mock)
	expectFetch(mock, "u1", "a@b.com", "Ana", "artist", false, "ana@pix")

	p, err := Provision(db, &IdentityPayload{
		ID:    "u1",
		Email: "a@b.com",
		RawUserMetaData: &SignupMetadata{
			FullName: "Ana",
			Role:     "artist",
			PixKey:   "ana@pix",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, RoleArtist, p.Role)
	assert.False(t, p.IsApproved)
	require.NotNil(t, p.PixKey)
	assert.Equal(t, "ana@pix", *p.PixKey)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProvision_Idempotent(t *testing.T) {
	// Calling provisioning twice for the same identity issues the same
	// conflict-keyed upsert both times, no duplicate-key failure, and
	// the surviving row carries the second payload's values.
	db, mock := newMockDB(t)

	expectUpsert(mock)
	expectFetch(mock, "u1", "a@b.com", "Ana", "artist", false, "ana@pix")

	expectUpsert(mock)
	expectFetch(mock, "u1", "a@b.com", "Ana Maria", "artist", false, "ana2@pix")

	first, err := Provision(db, &IdentityPayload{
		ID:              "u1",
		Email:           "a@b.com",
		RawUserMetaData: &SignupMetadata{FullName: "Ana", Role: "artist", PixKey: "ana@pix"},
	})
	require.NoError(t, err)

	second, err := Provision(db, &IdentityPayload{
		ID:              "u1",
		Email:           "a@b.com",
		RawUserMetaData: &SignupMetadata{FullName: "Ana Maria", Role: "artist", PixKey: "ana2@pix"},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ana Maria", second.FullName)
	require.NotNil(t, second.PixKey)
	assert.Equal(t, "ana2@pix", *second.PixKey)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProvision_PersistenceError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO "profiles"`).
		WillReturnError(assert.AnError)

	_, err := Provision(db, &IdentityPayload{ID: "u1", Email: "a@b.com"})
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
