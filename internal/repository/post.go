package repository

import (
	"context"

	"zogakzip/internal/models"

	"gorm.io/gorm"
)

// PostFilter holds the optional listing criteria for posts within a group.
type PostFilter struct {
	IsPublic *bool
	// Keyword is matched case-insensitively as a substring of the post title.
	Keyword string
	// SortBy is one of "latest", "mostLiked", "mostCommented".
	SortBy string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByGroup(ctx context.Context, groupID uint, filter PostFilter) ([]*models.Post, int64, error)
	RecentByGroup(ctx context.Context, groupID uint, limit int) ([]*models.Post, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.Post, error)
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, id uint) (int, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create persists the post and bumps the owning group's post counter in
// the same transaction so the denormalized count cannot drift.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&models.Group{}).
			Where("id = ?", post.GroupID).
			UpdateColumn("post_count", gorm.Expr("post_count + 1")).Error
	})
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, filter PostFilter) ([]*models.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{}).Where("group_id = ?", groupID)

	if filter.IsPublic != nil {
		query = query.Where("is_public = ?", *filter.IsPublic)
	}
	if filter.Keyword != "" {
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\'`, likePattern(filter.Keyword))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	if err := applyPostSort(query, filter.SortBy).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func applyPostSort(query *gorm.DB, sortBy string) *gorm.DB {
	switch sortBy {
	case "latest":
		return query.Order("created_at DESC")
	case "mostLiked":
		return query.Order("like_count DESC")
	case "mostCommented":
		return query.Order("comment_count DESC")
	default:
		return query.Order("id ASC")
	}
}

func (r *postRepository) RecentByGroup(ctx context.Context, groupID uint, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.Post, error) {
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("id = ?", id).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the post and its comments and decrements the owning
// group's post counter, all in one transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "group_id").First(&post, id).Error; err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Post{}, id).Error; err != nil {
			return err
		}
		return tx.Model(&models.Group{}).
			Where("id = ?", post.GroupID).
			UpdateColumn("post_count", gorm.Expr("post_count - 1")).Error
	})
}

// Like increments the like counter atomically and returns the new count.
func (r *postRepository) Like(ctx context.Context, id uint) (int, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var post models.Post
	if err := r.db.WithContext(ctx).Select("like_count").First(&post, id).Error; err != nil {
		return 0, err
	}
	return post.LikeCount, nil
}
