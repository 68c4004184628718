package service

import (
	"context"
	"errors"
	"time"

	"zogakzip/internal/models"
	"zogakzip/internal/repository"

	"gorm.io/gorm"
)

// recentPostLimit caps how many posts ride along on a group detail read.
const recentPostLimit = 10

// CreateGroupInput carries the accepted fields for group creation. The
// password is hashed before it ever reaches the repository.
type CreateGroupInput struct {
	Name         string `json:"name" form:"name"`
	Password     string `json:"password" form:"password"`
	ImageURL     string `json:"imageUrl" form:"imageUrl"`
	IsPublic     *bool  `json:"isPublic" form:"isPublic"`
	Introduction string `json:"introduction" form:"introduction"`
}

// UpdateGroupInput carries the mutable group fields. Password is the
// plaintext proof of ownership, never a new value; the stored hash
// cannot be changed through updates.
type UpdateGroupInput struct {
	Password     string  `json:"password"`
	Name         *string `json:"name"`
	ImageURL     *string `json:"imageUrl"`
	IsPublic     *bool   `json:"isPublic"`
	Introduction *string `json:"introduction"`
}

// GroupSummary is the public listing projection of a group.
type GroupSummary struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	ImageURL     string    `json:"imageUrl"`
	IsPublic     bool      `json:"isPublic"`
	Introduction string    `json:"introduction"`
	DDay         int       `json:"dDay"`
	BadgeCount   int       `json:"badgeCount"`
	PostCount    int       `json:"postCount"`
	LikeCount    int       `json:"likeCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GroupDetail is the single-group projection, carrying the full badge
// list and a window of recent posts.
type GroupDetail struct {
	GroupSummary
	Badges []string      `json:"badges"`
	Posts  []PostSummary `json:"posts"`
}

// GroupList bundles a page of summaries with the unpaginated total.
type GroupList struct {
	TotalItemCount int64
	Items          []GroupSummary
}

// GroupService handles group business logic
type GroupService struct {
	groups repository.GroupRepository
	posts  repository.PostRepository
}

// NewGroupService creates a new group service
func NewGroupService(groups repository.GroupRepository, posts repository.PostRepository) *GroupService {
	return &GroupService{groups: groups, posts: posts}
}

// Create hashes the password and persists a new group. The public flag
// defaults to true when omitted.
func (s *GroupService) Create(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("group name is required")
	}
	if in.Password == "" {
		return nil, models.NewValidationError("group password is required")
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	group := &models.Group{
		Name:         in.Name,
		Password:     hashed,
		ImageURL:     in.ImageURL,
		IsPublic:     isPublic,
		Introduction: in.Introduction,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, models.NewValidationError("failed to create group: " + err.Error())
	}
	return group, nil
}

// List returns summaries matching the filter together with the total
// match count.
func (s *GroupService) List(ctx context.Context, filter repository.GroupFilter) (*GroupList, error) {
	groups, total, err := s.groups.List(ctx, filter)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	now := time.Now()
	items := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		items = append(items, summarizeGroup(g, now))
	}
	return &GroupList{TotalItemCount: total, Items: items}, nil
}

// Get returns the detail projection. Private groups require the correct
// password; a wrong or missing one is a Forbidden, never a hint that
// the group exists with different content.
func (s *GroupService) Get(ctx context.Context, id uint, password string) (*GroupDetail, error) {
	group, err := s.getGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	if !group.IsPublic && !verifyPassword(password, group.Password) {
		return nil, models.NewForbiddenError("incorrect group password")
	}

	recent, err := s.posts.RecentByGroup(ctx, id, recentPostLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	detail := &GroupDetail{
		GroupSummary: summarizeGroup(group, time.Now()),
		Badges:       group.Badges,
		Posts:        make([]PostSummary, 0, len(recent)),
	}
	for _, p := range recent {
		detail.Posts = append(detail.Posts, summarizePost(p))
	}
	return detail, nil
}

// Update applies the allow-listed fields after verifying the password.
// The password column is structurally absent from the field map, so an
// update can never rotate or clear the stored hash.
func (s *GroupService) Update(ctx context.Context, id uint, in UpdateGroupInput) (*models.Group, error) {
	group, err := s.getGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !verifyPassword(in.Password, group.Password) {
		return nil, models.NewForbiddenError("incorrect group password")
	}

	fields := map[string]any{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewValidationError("group name cannot be empty")
		}
		fields["name"] = *in.Name
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
	}
	if in.Introduction != nil {
		fields["introduction"] = *in.Introduction
	}

	updated, err := s.groups.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return updated, nil
}

// Delete removes the group and everything under it after verifying the
// password.
func (s *GroupService) Delete(ctx context.Context, id uint, password string) error {
	group, err := s.getGroup(ctx, id)
	if err != nil {
		return err
	}
	if !verifyPassword(password, group.Password) {
		return models.NewForbiddenError("incorrect group password")
	}

	if err := s.groups.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Group", id)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// VerifyPassword checks the plaintext against the stored hash without
// mutating anything. A mismatch here is Unauthorized, unlike the gated
// mutations where it is Forbidden.
func (s *GroupService) VerifyPassword(ctx context.Context, id uint, password string) error {
	group, err := s.getGroup(ctx, id)
	if err != nil {
		return err
	}
	if !verifyPassword(password, group.Password) {
		return models.NewUnauthorizedError("incorrect group password")
	}
	return nil
}

// Like increments the public like counter. No password is required.
func (s *GroupService) Like(ctx context.Context, id uint) (int, error) {
	count, err := s.groups.Like(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.NewNotFoundError("Group", id)
		}
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (s *GroupService) getGroup(ctx context.Context, id uint) (*models.Group, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", id)
		}
		return nil, models.NewInternalError(err)
	}
	return group, nil
}

func summarizeGroup(g *models.Group, now time.Time) GroupSummary {
	return GroupSummary{
		ID:           g.ID,
		Name:         g.Name,
		ImageURL:     g.ImageURL,
		IsPublic:     g.IsPublic,
		Introduction: g.Introduction,
		DDay:         g.DDay(now),
		BadgeCount:   g.BadgeCount(),
		PostCount:    g.PostCount,
		LikeCount:    g.LikeCount,
		CreatedAt:    g.CreatedAt,
	}
}
