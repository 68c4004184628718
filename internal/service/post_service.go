package service

import (
	"context"
	"errors"
	"time"

	"zogakzip/internal/models"
	"zogakzip/internal/repository"

	"gorm.io/gorm"
)

// CreatePostInput carries the accepted fields for post creation.
// GroupPassword proves membership of the owning group; PostPassword, if
// set, becomes the post's own mutation secret.
type CreatePostInput struct {
	Nickname      string            `json:"nickname"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	ImageURL      string            `json:"imageUrl"`
	Tags          models.StringList `json:"tags"`
	Location      string            `json:"location"`
	Moment        *time.Time        `json:"moment"`
	IsPublic      *bool             `json:"isPublic"`
	GroupPassword string            `json:"groupPassword"`
	PostPassword  string            `json:"postPassword"`
}

// UpdatePostInput carries the mutable post fields plus the plaintext
// proof of ownership. The stored hash is not rotatable.
type UpdatePostInput struct {
	PostPassword string             `json:"postPassword"`
	Nickname     *string            `json:"nickname"`
	Title        *string            `json:"title"`
	Content      *string            `json:"content"`
	ImageURL     *string            `json:"imageUrl"`
	Tags         *models.StringList `json:"tags"`
	Location     *string            `json:"location"`
	Moment       *time.Time         `json:"moment"`
	IsPublic     *bool              `json:"isPublic"`
}

// PostSummary is the listing projection of a post. Full content is
// deliberately absent; it is only served on the detail read.
type PostSummary struct {
	ID           uint              `json:"id"`
	Nickname     string            `json:"nickname"`
	Title        string            `json:"title"`
	ImageURL     string            `json:"imageUrl"`
	Tags         models.StringList `json:"tags"`
	Location     string            `json:"location"`
	Moment       *time.Time        `json:"moment"`
	IsPublic     bool              `json:"isPublic"`
	LikeCount    int               `json:"likeCount"`
	CommentCount int               `json:"commentCount"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// PostList bundles a page of summaries with the unpaginated total.
type PostList struct {
	TotalItemCount int64
	Items          []PostSummary
}

// PostVisibility is the reply for the is-public probe.
type PostVisibility struct {
	ID       uint `json:"id"`
	IsPublic bool `json:"isPublic"`
}

// PostService handles post business logic
type PostService struct {
	posts  repository.PostRepository
	groups repository.GroupRepository
}

// NewPostService creates a new post service
func NewPostService(posts repository.PostRepository, groups repository.GroupRepository) *PostService {
	return &PostService{posts: posts, groups: groups}
}

// Create publishes a post into a group. The caller must present the
// group's password; the post's own password is optional and hashed when
// present.
func (s *PostService) Create(ctx context.Context, groupID uint, in CreatePostInput) (*models.Post, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", groupID)
		}
		return nil, models.NewInternalError(err)
	}
	if !verifyPassword(in.GroupPassword, group.Password) {
		return nil, models.NewForbiddenError("incorrect group password")
	}

	if in.Title == "" {
		return nil, models.NewValidationError("post title is required")
	}

	var hashed string
	if in.PostPassword != "" {
		if hashed, err = hashPassword(in.PostPassword); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	post := &models.Post{
		GroupID:      groupID,
		Nickname:     in.Nickname,
		Title:        in.Title,
		Content:      in.Content,
		PostPassword: hashed,
		ImageURL:     in.ImageURL,
		Tags:         in.Tags,
		Location:     in.Location,
		Moment:       in.Moment,
		IsPublic:     isPublic,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, models.NewValidationError("failed to create post: " + err.Error())
	}
	return post, nil
}

// ListByGroup returns post summaries for one group together with the
// total match count. The group must exist.
func (s *PostService) ListByGroup(ctx context.Context, groupID uint, filter repository.PostFilter) (*PostList, error) {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", groupID)
		}
		return nil, models.NewInternalError(err)
	}

	posts, total, err := s.posts.ListByGroup(ctx, groupID, filter)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	items := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		items = append(items, summarizePost(p))
	}
	return &PostList{TotalItemCount: total, Items: items}, nil
}

// Get returns the full post. Private posts require the post password.
func (s *PostService) Get(ctx context.Context, id uint, password string) (*models.Post, error) {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.IsPublic && !verifyPassword(password, post.PostPassword) {
		return nil, models.NewForbiddenError("incorrect post password")
	}
	return post, nil
}

// Update applies the allow-listed fields after verifying the post
// password.
func (s *PostService) Update(ctx context.Context, id uint, in UpdatePostInput) (*models.Post, error) {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !verifyPassword(in.PostPassword, post.PostPassword) {
		return nil, models.NewForbiddenError("incorrect post password")
	}

	fields := map[string]any{}
	if in.Nickname != nil {
		fields["nickname"] = *in.Nickname
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("post title cannot be empty")
		}
		fields["title"] = *in.Title
	}
	if in.Content != nil {
		fields["content"] = *in.Content
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.Tags != nil {
		fields["tags"] = *in.Tags
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.Moment != nil {
		fields["moment"] = *in.Moment
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
	}

	updated, err := s.posts.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return updated, nil
}

// Delete removes the post and its comments. Only private posts gate the
// deletion, and only when a password was actually supplied.
func (s *PostService) Delete(ctx context.Context, id uint, password string) error {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return err
	}
	if !post.IsPublic && password != "" && !verifyPassword(password, post.PostPassword) {
		return models.NewForbiddenError("incorrect post password")
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", id)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// VerifyPassword checks the plaintext against the stored post hash.
func (s *PostService) VerifyPassword(ctx context.Context, id uint, password string) error {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return err
	}
	if !verifyPassword(password, post.PostPassword) {
		return models.NewUnauthorizedError("incorrect post password")
	}
	return nil
}

// Like increments the public like counter. No password is required.
func (s *PostService) Like(ctx context.Context, id uint) (int, error) {
	count, err := s.posts.Like(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.NewNotFoundError("Post", id)
		}
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// IsPublic reports the post's visibility flag without exposing any
// other field.
func (s *PostService) IsPublic(ctx context.Context, id uint) (*PostVisibility, error) {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PostVisibility{ID: post.ID, IsPublic: post.IsPublic}, nil
}

func (s *PostService) getPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func summarizePost(p *models.Post) PostSummary {
	return PostSummary{
		ID:           p.ID,
		Nickname:     p.Nickname,
		Title:        p.Title,
		ImageURL:     p.ImageURL,
		Tags:         p.Tags,
		Location:     p.Location,
		Moment:       p.Moment,
		IsPublic:     p.IsPublic,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
	}
}
