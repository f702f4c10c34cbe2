package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByIDAny(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, p Pagination) (*Page[models.Post], error)
	ListAny(ctx context.Context, p Pagination) (*Page[models.Post], error)
	ListByUser(ctx context.Context, userID uint, p Pagination) (*Page[models.Post], error)
	Update(ctx context.Context, post *models.Post) error
	ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error
	SoftDelete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Scopes(notDeleted).
		Preload("User").
		Preload("Tags", "is_deleted = ?", false).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// GetByIDAny retrieves a post including soft-deleted rows. Superuser paths only.
func (r *postRepository) GetByIDAny(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Tags", "is_deleted = ?", false).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, p Pagination) (*Page[models.Post], error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).
		Scopes(notDeleted).
		Preload("User").
		Preload("Tags", "is_deleted = ?", false)
	return Paginate[models.Post](q, p)
}

// ListAny lists posts including soft-deleted rows. Superuser paths only.
func (r *postRepository) ListAny(ctx context.Context, p Pagination) (*Page[models.Post], error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).
		Preload("User").
		Preload("Tags", "is_deleted = ?", false)
	return Paginate[models.Post](q, p)
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, p Pagination) (*Page[models.Post], error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).
		Scopes(notDeleted).
		Where("user_id = ?", userID).
		Preload("User").
		Preload("Tags", "is_deleted = ?", false)
	return Paginate[models.Post](q, p)
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Scopes(notDeleted).
		Where("id = ?", post.ID).
		Select("title", "content", "updated_at").
		Updates(post)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", post.ID)
	}
	return nil
}

// ReplaceTags swaps the post's tag associations for the given set.
func (r *postRepository) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	err := r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) SoftDelete(ctx context.Context, id uint) error {
	return softDelete(r.db.WithContext(ctx), &models.Post{}, "Post", id)
}
