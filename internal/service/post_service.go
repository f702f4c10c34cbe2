package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/repository"
)

const maxTitleLen = 256

// PostService handles post CRUD with ownership-based authorization.
type PostService struct {
	postRepo repository.PostRepository
	tagRepo  repository.TagRepository
}

// CreatePostInput carries fields for new posts.
type CreatePostInput struct {
	Title    string
	Content  string
	TagNames []string
}

// UpdatePostInput carries optional changes for a post. Nil fields are left
// untouched.
type UpdatePostInput struct {
	Title    *string
	Content  *string
	TagNames *[]string
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository, tagRepo repository.TagRepository) *PostService {
	return &PostService{postRepo: postRepo, tagRepo: tagRepo}
}

func validatePostFields(title, content string) error {
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 256 characters)")
	}
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	return nil
}

// resolveTags maps tag names to existing non-deleted tags. Unknown names
// are a validation failure rather than implicit tag creation: tags are
// superuser-managed.
func (s *PostService) resolveTags(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.tagRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if tag == nil {
			return nil, models.NewValidationError(fmt.Sprintf("Unknown tag %q", name))
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// CreatePost creates a post owned by the acting principal.
func (s *PostService) CreatePost(ctx context.Context, actor policy.Principal, in CreatePostInput) (*models.Post, error) {
	if err := policy.Authorize(actor, policy.ActionCreatePost, actor.ID); err != nil {
		return nil, err
	}
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, in.TagNames)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		UserID:  actor.ID,
		Tags:    tags,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost retrieves a visible post; includeDeleted lifts the soft-delete
// predicate for superusers.
func (s *PostService) GetPost(ctx context.Context, actor policy.Principal, id uint, includeDeleted bool) (*models.Post, error) {
	if includeDeleted {
		if err := policy.Authorize(actor, policy.ActionViewDeleted, 0); err != nil {
			return nil, err
		}
		return s.postRepo.GetByIDAny(ctx, id)
	}
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns a page of visible posts.
func (s *PostService) ListPosts(ctx context.Context, actor policy.Principal, p repository.Pagination, includeDeleted bool) (*repository.Page[models.Post], error) {
	if includeDeleted {
		if err := policy.Authorize(actor, policy.ActionViewDeleted, 0); err != nil {
			return nil, err
		}
		return s.postRepo.ListAny(ctx, p)
	}
	return s.postRepo.List(ctx, p)
}

// ListUserPosts returns a page of a single author's visible posts.
func (s *PostService) ListUserPosts(ctx context.Context, userID uint, p repository.Pagination) (*repository.Page[models.Post], error) {
	return s.postRepo.ListByUser(ctx, userID, p)
}

// UpdatePost applies the given changes to a post owned by the actor (or by
// anyone, for superusers).
func (s *PostService) UpdatePost(ctx context.Context, actor policy.Principal, id uint, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionUpdatePost, post.UserID); err != nil {
		return nil, err
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if err := validatePostFields(post.Title, post.Content); err != nil {
		return nil, err
	}

	// Resolve tags before writing anything, so a rejected tag name leaves
	// the row untouched.
	var tags []models.Tag
	if in.TagNames != nil {
		resolved, err := s.resolveTags(ctx, *in.TagNames)
		if err != nil {
			return nil, err
		}
		tags = resolved
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	if in.TagNames != nil {
		if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
			return nil, err
		}
	}

	return s.postRepo.GetByID(ctx, id)
}

// DeletePost soft-deletes a post owned by the actor (or by anyone, for
// superusers).
func (s *PostService) DeletePost(ctx context.Context, actor policy.Principal, id uint) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.ActionDeletePost, post.UserID); err != nil {
		return err
	}
	return s.postRepo.SoftDelete(ctx, id)
}
