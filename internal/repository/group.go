// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"

	"zogakzip/internal/models"

	"gorm.io/gorm"
)

// likeEscaper neutralizes LIKE metacharacters so a keyword such as
// "100%" matches literally instead of acting as a wildcard. Queries
// using it must carry an ESCAPE '\' clause.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(keyword string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
}

// GroupFilter holds the optional listing criteria for groups.
type GroupFilter struct {
	// IsPublic filters on the public flag when non-nil.
	IsPublic *bool
	// Keyword is matched case-insensitively as a substring of the group name.
	Keyword string
	// SortBy is one of "latest", "mostPosted", "mostLiked", "mostBadge".
	// Empty means natural (insertion) order.
	SortBy string
}

// GroupRepository defines the interface for group data operations
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	List(ctx context.Context, filter GroupFilter) ([]*models.Group, int64, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.Group, error)
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, id uint) (int, error)
}

// groupRepository implements GroupRepository
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context, filter GroupFilter) ([]*models.Group, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Group{})

	if filter.IsPublic != nil {
		query = query.Where("is_public = ?", *filter.IsPublic)
	}
	if filter.Keyword != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(filter.Keyword))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []*models.Group
	if err := r.applySort(query, filter.SortBy).Find(&groups).Error; err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

func (r *groupRepository) applySort(query *gorm.DB, sortBy string) *gorm.DB {
	switch sortBy {
	case "latest":
		return query.Order("created_at DESC")
	case "mostPosted":
		return query.Order("post_count DESC")
	case "mostLiked":
		return query.Order("like_count DESC")
	case "mostBadge":
		if r.db.Dialector.Name() == "postgres" {
			return query.Order("json_array_length(badges::json) DESC")
		}
		return query.Order("json_array_length(badges) DESC")
	default:
		// natural insertion order
		return query.Order("id ASC")
	}
}

func (r *groupRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.Group, error) {
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.Group{}).
			Where("id = ?", id).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the group together with its posts and their comments.
func (r *groupRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE group_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Group{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Like increments the like counter with a single atomic UPDATE and
// returns the new count. A read-modify-write pair here would lose
// updates under concurrent likes.
func (r *groupRepository) Like(ctx context.Context, id uint) (int, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Group{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var group models.Group
	if err := r.db.WithContext(ctx).Select("like_count").First(&group, id).Error; err != nil {
		return 0, err
	}
	return group.LikeCount, nil
}
