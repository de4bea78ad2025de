package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/ports/outbound"
)

// ProfileRepository implements the profile repository interface using GORM
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) outbound.ProfileRepository {
	return &ProfileRepository{db: db}
}

// Save inserts or replaces owner's profile
func (r *ProfileRepository) Save(ctx context.Context, owner string, p preference.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner"}},
			DoUpdates: clause.AssignmentColumns([]string{"budget", "dietary", "skill", "time", "cuisine", "updated_at"}),
		}).
		Create(ProfileToModel(owner, p)).Error
}

// Find returns owner's profile, or nil when none is stored
func (r *ProfileRepository) Find(ctx context.Context, owner string) (*preference.Profile, error) {
	var model ProfileModel
	err := r.db.WithContext(ctx).Where("owner = ?", owner).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ModelToProfile(&model), nil
}

// Delete removes owner's profile
func (r *ProfileRepository) Delete(ctx context.Context, owner string) error {
	return r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Delete(&ProfileModel{}).Error
}
