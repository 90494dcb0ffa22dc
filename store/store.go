// Package store owns every query the application runs. All statements
// go through gorm with bound arguments, never through built-up SQL
package store

import (
	"asla/geolocation-api/model"
	"errors"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const apiKeyCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const apiKeyLength = 32

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned when the unique index on users.email
	// rejects an insert. The constraint is the authoritative duplicate
	// check, EmailExists only exists for the fast path
	ErrEmailTaken = errors.New("email already registered")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateUser inserts a new user with a freshly generated API key.
// Gender and school stay NULL when not provided
func (s *Store) CreateUser(name, email, passwordHash string, gender, school *string) (*model.User, error) {
	apiKey, err := gonanoid.Generate(apiKeyCharset, apiKeyLength)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Gender:       gender,
		School:       school,
		APIKey:       apiKey,
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}

		return nil, err
	}

	return user, nil
}

func (s *Store) EmailExists(email string) (bool, error) {
	var found bool

	r := s.db.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", email).
		Scan(&found)
	if r.Error != nil {
		return false, r.Error
	}

	return found, nil
}

func (s *Store) UserByEmail(email string) (*model.User, error) {
	var user model.User

	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &user, nil
}

// UserIDByAPIKey resolves an API key to its owner. A key is valid
// exactly when this lookup succeeds
func (s *Store) UserIDByAPIKey(apiKey string) (uint, error) {
	var user model.User

	err := s.db.Select("id").Where("api_key = ?", apiKey).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}

		return 0, err
	}

	return user.ID, nil
}

// UpsertGeolocation writes the position of a user in a single
// statement. A second write for the same user overwrites the row
// instead of creating another one
func (s *Store) UpsertGeolocation(userID uint, latitude, longitude, height float64) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "height", "updated_at"}),
	}).Create(&model.Geolocation{
		UserID:    userID,
		Latitude:  latitude,
		Longitude: longitude,
		Height:    height,
	}).Error
}

func (s *Store) Geolocation(userID uint) (*model.Geolocation, error) {
	var geo model.Geolocation

	err := s.db.Where("user_id = ?", userID).First(&geo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &geo, nil
}
