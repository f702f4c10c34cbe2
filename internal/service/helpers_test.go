package service

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/require"
)

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeForbidden)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeNotFound)
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByIDAnyFn    func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	listFn          func(context.Context, repository.Pagination) (*repository.Page[models.User], error)
	listAnyFn       func(context.Context, repository.Pagination) (*repository.Page[models.User], error)
	updateFn        func(context.Context, *models.User) error
	softDeleteFn    func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDAny(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDAnyFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) List(ctx context.Context, p repository.Pagination) (*repository.Page[models.User], error) {
	return s.listFn(ctx, p)
}
func (s *userRepoStub) ListAny(ctx context.Context, p repository.Pagination) (*repository.Page[models.User], error) {
	return s.listAnyFn(ctx, p)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) SoftDelete(ctx context.Context, id uint) error    { return s.softDeleteFn(ctx, id) }

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByIDAnyFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		listFn: func(_ context.Context, p repository.Pagination) (*repository.Page[models.User], error) {
			return &repository.Page[models.User]{}, nil
		},
		listAnyFn: func(_ context.Context, p repository.Pagination) (*repository.Page[models.User], error) {
			return &repository.Page[models.User]{}, nil
		},
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		softDeleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint) (*models.Post, error)
	getByIDAnyFn  func(context.Context, uint) (*models.Post, error)
	listFn        func(context.Context, repository.Pagination) (*repository.Page[models.Post], error)
	listAnyFn     func(context.Context, repository.Pagination) (*repository.Page[models.Post], error)
	listByUserFn  func(context.Context, uint, repository.Pagination) (*repository.Page[models.Post], error)
	updateFn      func(context.Context, *models.Post) error
	replaceTagsFn func(context.Context, *models.Post, []models.Tag) error
	softDeleteFn  func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, p *models.Post) error { return s.createFn(ctx, p) }
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByIDAny(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDAnyFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, p repository.Pagination) (*repository.Page[models.Post], error) {
	return s.listFn(ctx, p)
}
func (s *postRepoStub) ListAny(ctx context.Context, p repository.Pagination) (*repository.Page[models.Post], error) {
	return s.listAnyFn(ctx, p)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, p repository.Pagination) (*repository.Page[models.Post], error) {
	return s.listByUserFn(ctx, userID, p)
}
func (s *postRepoStub) Update(ctx context.Context, p *models.Post) error { return s.updateFn(ctx, p) }
func (s *postRepoStub) ReplaceTags(ctx context.Context, p *models.Post, tags []models.Tag) error {
	return s.replaceTagsFn(ctx, p, tags)
}
func (s *postRepoStub) SoftDelete(ctx context.Context, id uint) error { return s.softDeleteFn(ctx, id) }

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:     func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getByIDAnyFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn: func(_ context.Context, p repository.Pagination) (*repository.Page[models.Post], error) {
			return &repository.Page[models.Post]{}, nil
		},
		listAnyFn: func(_ context.Context, p repository.Pagination) (*repository.Page[models.Post], error) {
			return &repository.Page[models.Post]{}, nil
		},
		listByUserFn: func(_ context.Context, _ uint, p repository.Pagination) (*repository.Page[models.Post], error) {
			return &repository.Page[models.Post]{}, nil
		},
		updateFn:      func(_ context.Context, _ *models.Post) error { return nil },
		replaceTagsFn: func(_ context.Context, _ *models.Post, _ []models.Tag) error { return nil },
		softDeleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, repository.Pagination) (*repository.Page[models.Comment], error)
	updateFn     func(context.Context, *models.Comment) error
	softDeleteFn func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, p repository.Pagination) (*repository.Page[models.Comment], error) {
	return s.listByPostFn(ctx, postID, p)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) SoftDelete(ctx context.Context, id uint) error {
	return s.softDeleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn: func(_ context.Context, _ uint, p repository.Pagination) (*repository.Page[models.Comment], error) {
			return &repository.Page[models.Comment]{}, nil
		},
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		softDeleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	createFn     func(context.Context, *models.Tag) error
	getByIDFn    func(context.Context, uint) (*models.Tag, error)
	getByIDAnyFn func(context.Context, uint) (*models.Tag, error)
	getByNameFn  func(context.Context, string) (*models.Tag, error)
	listFn       func(context.Context, repository.Pagination) (*repository.Page[models.Tag], error)
	listAnyFn    func(context.Context, repository.Pagination) (*repository.Page[models.Tag], error)
	updateFn     func(context.Context, *models.Tag) error
	softDeleteFn func(context.Context, uint) error
}

func (s *tagRepoStub) Create(ctx context.Context, tag *models.Tag) error {
	return s.createFn(ctx, tag)
}
func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) GetByIDAny(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDAnyFn(ctx, id)
}
func (s *tagRepoStub) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	return s.getByNameFn(ctx, name)
}
func (s *tagRepoStub) List(ctx context.Context, p repository.Pagination) (*repository.Page[models.Tag], error) {
	return s.listFn(ctx, p)
}
func (s *tagRepoStub) ListAny(ctx context.Context, p repository.Pagination) (*repository.Page[models.Tag], error) {
	return s.listAnyFn(ctx, p)
}
func (s *tagRepoStub) Update(ctx context.Context, tag *models.Tag) error {
	return s.updateFn(ctx, tag)
}
func (s *tagRepoStub) SoftDelete(ctx context.Context, id uint) error {
	return s.softDeleteFn(ctx, id)
}

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		createFn:     func(_ context.Context, _ *models.Tag) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Tag, error) { return &models.Tag{ID: id}, nil },
		getByIDAnyFn: func(_ context.Context, id uint) (*models.Tag, error) { return &models.Tag{ID: id}, nil },
		getByNameFn:  func(_ context.Context, _ string) (*models.Tag, error) { return nil, nil },
		listFn: func(_ context.Context, p repository.Pagination) (*repository.Page[models.Tag], error) {
			return &repository.Page[models.Tag]{}, nil
		},
		listAnyFn: func(_ context.Context, p repository.Pagination) (*repository.Page[models.Tag], error) {
			return &repository.Page[models.Tag]{}, nil
		},
		updateFn:     func(_ context.Context, _ *models.Tag) error { return nil },
		softDeleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}
