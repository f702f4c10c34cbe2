package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetByIDAny(ctx context.Context, id uint) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context, p Pagination) (*Page[models.Tag], error)
	ListAny(ctx context.Context, p Pagination) (*Page[models.Tag], error)
	Update(ctx context.Context, tag *models.Tag) error
	SoftDelete(ctx context.Context, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).Scopes(notDeleted).First(&tag, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

// GetByIDAny retrieves a tag including soft-deleted rows. Reserved for
// superuser paths; default accessors must use GetByID.
func (r *tagRepository) GetByIDAny(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).First(&tag, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

// GetByName looks a tag up among non-deleted rows. Returns nil without an
// error when no such tag exists, so callers can use it for uniqueness checks.
func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).Scopes(notDeleted).Where("name = ?", name).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context, p Pagination) (*Page[models.Tag], error) {
	q := r.db.WithContext(ctx).Model(&models.Tag{}).Scopes(notDeleted)
	return Paginate[models.Tag](q, p)
}

// ListAny lists tags including soft-deleted rows. Superuser paths only.
func (r *tagRepository) ListAny(ctx context.Context, p Pagination) (*Page[models.Tag], error) {
	q := r.db.WithContext(ctx).Model(&models.Tag{})
	return Paginate[models.Tag](q, p)
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	tag.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&models.Tag{}).
		Scopes(notDeleted).
		Where("id = ?", tag.ID).
		Select("name", "updated_at").
		Updates(tag)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Tag", tag.ID)
	}
	return nil
}

func (r *tagRepository) SoftDelete(ctx context.Context, id uint) error {
	return softDelete(r.db.WithContext(ctx), &models.Tag{}, "Tag", id)
}
