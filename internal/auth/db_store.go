package auth

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultTokenKey = "default"

// StoredToken is the persisted copy of the gateway's API credentials.
type StoredToken struct {
	Name         string    `gorm:"type:varchar(64);primaryKey"`
	AccessToken  string    `gorm:"type:text;not null"`
	RefreshToken string    `gorm:"type:text"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (StoredToken) TableName() string { return "api_tokens" }

// DBStore keeps a single token row so credentials survive a gateway restart.
type DBStore struct {
	db   *gorm.DB
	name string
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db, name: defaultTokenKey}
}

// Migrate creates the api_tokens table when missing.
func (s *DBStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&StoredToken{})
}

func (s *DBStore) Get(ctx context.Context) (Tokens, error) {
	var row StoredToken
	err := s.db.WithContext(ctx).First(&row, "name = ?", s.name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Tokens{}, ErrNoToken
	}
	if err != nil {
		return Tokens{}, err
	}
	if row.AccessToken == "" {
		return Tokens{}, ErrNoToken
	}
	return Tokens{Access: row.AccessToken, Refresh: row.RefreshToken}, nil
}

func (s *DBStore) Set(ctx context.Context, t Tokens) error {
	if t.Access == "" {
		return errors.New("access token is required")
	}
	row := StoredToken{
		Name:         s.name,
		AccessToken:  t.Access,
		RefreshToken: t.Refresh,
		UpdatedAt:    time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "updated_at"}),
	}).Create(&row).Error
}

func (s *DBStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Delete(&StoredToken{}, "name = ?", s.name).Error
}
