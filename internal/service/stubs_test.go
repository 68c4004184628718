package service

import (
	"context"
	"errors"
	"testing"

	"zogakzip/internal/models"
	"zogakzip/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// groupRepoStub is a stub for repository.GroupRepository.
type groupRepoStub struct {
	createFn       func(context.Context, *models.Group) error
	getByIDFn      func(context.Context, uint) (*models.Group, error)
	listFn         func(context.Context, repository.GroupFilter) ([]*models.Group, int64, error)
	updateFieldsFn func(context.Context, uint, map[string]any) (*models.Group, error)
	deleteFn       func(context.Context, uint) error
	likeFn         func(context.Context, uint) (int, error)
}

func (s *groupRepoStub) Create(ctx context.Context, group *models.Group) error {
	return s.createFn(ctx, group)
}
func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) List(ctx context.Context, filter repository.GroupFilter) ([]*models.Group, int64, error) {
	return s.listFn(ctx, filter)
}
func (s *groupRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.Group, error) {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *groupRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *groupRepoStub) Like(ctx context.Context, id uint) (int, error) {
	return s.likeFn(ctx, id)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		createFn:  func(_ context.Context, _ *models.Group) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Group, error) { return &models.Group{}, nil },
		listFn: func(_ context.Context, _ repository.GroupFilter) ([]*models.Group, int64, error) {
			return nil, 0, nil
		},
		updateFieldsFn: func(_ context.Context, _ uint, _ map[string]any) (*models.Group, error) {
			return &models.Group{}, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		likeFn:   func(_ context.Context, _ uint) (int, error) { return 1, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	listByGroupFn   func(context.Context, uint, repository.PostFilter) ([]*models.Post, int64, error)
	recentByGroupFn func(context.Context, uint, int) ([]*models.Post, error)
	updateFieldsFn  func(context.Context, uint, map[string]any) (*models.Post, error)
	deleteFn        func(context.Context, uint) error
	likeFn          func(context.Context, uint) (int, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListByGroup(ctx context.Context, groupID uint, filter repository.PostFilter) ([]*models.Post, int64, error) {
	return s.listByGroupFn(ctx, groupID, filter)
}
func (s *postRepoStub) RecentByGroup(ctx context.Context, groupID uint, limit int) ([]*models.Post, error) {
	return s.recentByGroupFn(ctx, groupID, limit)
}
func (s *postRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.Post, error) {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, id uint) (int, error) {
	return s.likeFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listByGroupFn: func(_ context.Context, _ uint, _ repository.PostFilter) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		recentByGroupFn: func(_ context.Context, _ uint, _ int) ([]*models.Post, error) { return nil, nil },
		updateFieldsFn: func(_ context.Context, _ uint, _ map[string]any) (*models.Post, error) {
			return &models.Post{}, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		likeFn:   func(_ context.Context, _ uint) (int, error) { return 1, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint) (*models.Comment, error)
	listByPostFn   func(context.Context, uint) ([]*models.Comment, int64, error)
	updateFieldsFn func(context.Context, uint, map[string]any) (*models.Comment, error)
	deleteFn       func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, int64, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.Comment, error) {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, int64, error) {
			return nil, 0, nil
		},
		updateFieldsFn: func(_ context.Context, _ uint, _ map[string]any) (*models.Comment, error) {
			return &models.Comment{}, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// mustHash hashes a plaintext for seeding stub entities.
func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := hashPassword(plain)
	require.NoError(t, err)
	return hashed
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "FORBIDDEN")
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "UNAUTHORIZED")
}
