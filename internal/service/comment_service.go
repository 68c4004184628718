package service

import (
	"context"
	"errors"

	"zogakzip/internal/models"
	"zogakzip/internal/repository"

	"gorm.io/gorm"
)

// CreateCommentInput carries the accepted fields for comment creation.
type CreateCommentInput struct {
	Nickname string `json:"nickname"`
	Content  string `json:"content"`
	Password string `json:"password"`
}

// UpdateCommentInput carries the mutable comment fields plus the
// plaintext proof of ownership.
type UpdateCommentInput struct {
	Password string  `json:"password"`
	Nickname *string `json:"nickname"`
	Content  *string `json:"content"`
}

// CommentList bundles a post's comments with the total count.
type CommentList struct {
	TotalItemCount int64
	Items          []*models.Comment
}

// CommentService handles comment business logic
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewCommentService creates a new comment service
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// Create attaches a comment to an existing post. The comment password
// is optional and hashed when present.
func (s *CommentService) Create(ctx context.Context, postID uint, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}

	if in.Content == "" {
		return nil, models.NewValidationError("comment content is required")
	}

	var hashed string
	if in.Password != "" {
		var err error
		if hashed, err = hashPassword(in.Password); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		Nickname: in.Nickname,
		Content:  in.Content,
		Password: hashed,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, models.NewValidationError("failed to create comment: " + err.Error())
	}
	return comment, nil
}

// ListByPost returns the post's comments in insertion order.
func (s *CommentService) ListByPost(ctx context.Context, postID uint) (*CommentList, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}

	comments, total, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &CommentList{TotalItemCount: total, Items: comments}, nil
}

// Update applies the allow-listed fields after verifying the comment
// password.
func (s *CommentService) Update(ctx context.Context, id uint, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.getComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !verifyPassword(in.Password, comment.Password) {
		return nil, models.NewForbiddenError("incorrect comment password")
	}

	fields := map[string]any{}
	if in.Nickname != nil {
		fields["nickname"] = *in.Nickname
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("comment content cannot be empty")
		}
		fields["content"] = *in.Content
	}

	updated, err := s.comments.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return updated, nil
}

// Delete removes the comment after verifying the password.
func (s *CommentService) Delete(ctx context.Context, id uint, password string) error {
	comment, err := s.getComment(ctx, id)
	if err != nil {
		return err
	}
	if !verifyPassword(password, comment.Password) {
		return models.NewForbiddenError("incorrect comment password")
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", id)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (s *CommentService) getComment(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}
