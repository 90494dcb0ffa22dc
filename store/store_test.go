package store

import (
	"fmt"
	"testing"

	"asla/geolocation-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.User{}, model.Geolocation{}))

	return New(db)
}

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)

	gender := "male"
	user, err := s.CreateUser("Ravi", "ravi@x.com", "digest", &gender, nil)
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Len(t, user.APIKey, apiKeyLength)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Nil(t, user.School)

	fetched, err := s.UserByEmail("ravi@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)
	assert.Equal(t, "digest", fetched.PasswordHash)
	require.NotNil(t, fetched.Gender)
	assert.Equal(t, "male", *fetched.Gender)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateUser("Ravi", "ravi@x.com", "digest", nil, nil)
	require.NoError(t, err)

	// The unique index has to reject the second insert even without
	// the EmailExists pre-check
	_, err = s.CreateUser("Imposter", "ravi@x.com", "other", nil, nil)
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, s.db.Model(model.User{}).Where("email = ?", "ravi@x.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateUserDistinctAPIKeys(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateUser("A", "a@x.com", "digest", nil, nil)
	require.NoError(t, err)

	second, err := s.CreateUser("B", "b@x.com", "digest", nil, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.APIKey, second.APIKey)
}

func TestEmailExists(t *testing.T) {
	s := newTestStore(t)

	exists, err := s.EmailExists("nobody@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = s.CreateUser("Ravi", "ravi@x.com", "digest", nil, nil)
	require.NoError(t, err)

	exists, err = s.EmailExists("ravi@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserByEmailNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UserByEmail("nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserIDByAPIKey(t *testing.T) {
	s := newTestStore(t)

	user, err := s.CreateUser("Ravi", "ravi@x.com", "digest", nil, nil)
	require.NoError(t, err)

	id, err := s.UserIDByAPIKey(user.APIKey)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, err = s.UserIDByAPIKey("no-such-key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGeolocationRoundTrip(t *testing.T) {
	s := newTestStore(t)

	user, err := s.CreateUser("Ravi", "ravi@x.com", "digest", nil, nil)
	require.NoError(t, err)

	_, err = s.Geolocation(user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.UpsertGeolocation(user.ID, 52.2297, 21.0122, 113.0))

	geo, err := s.Geolocation(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 52.2297, geo.Latitude)
	assert.Equal(t, 21.0122, geo.Longitude)
	assert.Equal(t, 113.0, geo.Height)
}

func TestUpsertGeolocationOverwrites(t *testing.T) {
	s := newTestStore(t)

	user, err := s.CreateUser("Ravi", "ravi@x.com", "digest", nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.UpsertGeolocation(user.ID, 1.0, 2.0, 3.0))
	require.NoError(t, s.UpsertGeolocation(user.ID, 4.0, 5.0, 6.0))

	geo, err := s.Geolocation(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, geo.Latitude)
	assert.Equal(t, 5.0, geo.Longitude)
	assert.Equal(t, 6.0, geo.Height)

	var count int64
	require.NoError(t, s.db.Model(model.Geolocation{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGeolocationIsolatedPerUser(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateUser("A", "a@x.com", "digest", nil, nil)
	require.NoError(t, err)

	second, err := s.CreateUser("B", "b@x.com", "digest", nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.UpsertGeolocation(first.ID, 10.0, 20.0, 30.0))

	_, err = s.Geolocation(second.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
