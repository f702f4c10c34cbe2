package service

import (
	"context"
	"unicode/utf8"

	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/repository"
)

const maxCommentLen = 10000

// CommentService handles comment CRUD with ownership-based authorization.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

func validateCommentContent(content string) error {
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return models.NewValidationError("Comment too long (max 10000 characters)")
	}
	return nil
}

// CreateComment creates a comment on a visible post, owned by the actor.
func (s *CommentService) CreateComment(ctx context.Context, actor policy.Principal, postID uint, content string) (*models.Comment, error) {
	if err := policy.Authorize(actor, policy.ActionCreateComment, actor.ID); err != nil {
		return nil, err
	}
	// The parent post must be visible; commenting on a deleted post reads
	// as NotFound just like reading it would.
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  actor.ID,
		PostID:  postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// GetComment retrieves a visible comment.
func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// ListComments returns a page of a visible post's comments.
func (s *CommentService) ListComments(ctx context.Context, postID uint, p repository.Pagination) (*repository.Page[models.Comment], error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, p)
}

// UpdateComment replaces a comment's content. Owner or superuser only.
func (s *CommentService) UpdateComment(ctx context.Context, actor policy.Principal, id uint, content string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionUpdateComment, comment.UserID); err != nil {
		return nil, err
	}
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, id)
}

// DeleteComment soft-deletes a comment. Owner or superuser only.
func (s *CommentService) DeleteComment(ctx context.Context, actor policy.Principal, id uint) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.ActionDeleteComment, comment.UserID); err != nil {
		return err
	}
	return s.commentRepo.SoftDelete(ctx, id)
}
