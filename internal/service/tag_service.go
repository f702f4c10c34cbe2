package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/repository"
)

const maxTagNameLen = 50

// TagService handles tag management. Reads are open to any authenticated
// principal; mutations are superuser-only.
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

func validateTagName(name string) error {
	if name == "" {
		return models.NewValidationError("Tag name is required")
	}
	if utf8.RuneCountInString(name) > maxTagNameLen {
		return models.NewValidationError("Tag name too long (max 50 characters)")
	}
	return nil
}

// ensureNameFree checks uniqueness among non-deleted tags; a deleted tag's
// name may be reused.
func (s *TagService) ensureNameFree(ctx context.Context, name string) error {
	existing, err := s.tagRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil {
		return models.NewValidationError(fmt.Sprintf("Tag with name %q already exists", name))
	}
	return nil
}

// CreateTag creates a tag. Superuser-only.
func (s *TagService) CreateTag(ctx context.Context, actor policy.Principal, name string) (*models.Tag, error) {
	if err := policy.Authorize(actor, policy.ActionManageTags, 0); err != nil {
		return nil, err
	}
	if err := validateTagName(name); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, name); err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// GetTag retrieves a visible tag; includeDeleted lifts the soft-delete
// predicate for superusers.
func (s *TagService) GetTag(ctx context.Context, actor policy.Principal, id uint, includeDeleted bool) (*models.Tag, error) {
	if includeDeleted {
		if err := policy.Authorize(actor, policy.ActionViewDeleted, 0); err != nil {
			return nil, err
		}
		return s.tagRepo.GetByIDAny(ctx, id)
	}
	return s.tagRepo.GetByID(ctx, id)
}

// ListTags returns a page of visible tags.
func (s *TagService) ListTags(ctx context.Context, actor policy.Principal, p repository.Pagination, includeDeleted bool) (*repository.Page[models.Tag], error) {
	if includeDeleted {
		if err := policy.Authorize(actor, policy.ActionViewDeleted, 0); err != nil {
			return nil, err
		}
		return s.tagRepo.ListAny(ctx, p)
	}
	return s.tagRepo.List(ctx, p)
}

// UpdateTag renames a tag. Superuser-only.
func (s *TagService) UpdateTag(ctx context.Context, actor policy.Principal, id uint, name string) (*models.Tag, error) {
	if err := policy.Authorize(actor, policy.ActionManageTags, 0); err != nil {
		return nil, err
	}
	if err := validateTagName(name); err != nil {
		return nil, err
	}

	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag.Name != name {
		if err := s.ensureNameFree(ctx, name); err != nil {
			return nil, err
		}
	}

	tag.Name = name
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}
	return s.tagRepo.GetByID(ctx, id)
}

// DeleteTag soft-deletes a tag. Superuser-only.
func (s *TagService) DeleteTag(ctx context.Context, actor policy.Principal, id uint) error {
	if err := policy.Authorize(actor, policy.ActionManageTags, 0); err != nil {
		return err
	}
	return s.tagRepo.SoftDelete(ctx, id)
}
