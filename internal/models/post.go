package models

import (
	"time"
)

// Post represents a memory posted inside a group.
//
// PostPassword is the bcrypt hash of the post's own secret and may be
// empty; a post without a hash can never pass password verification.
// Creation itself is gated by the owning group's password, not by
// PostPassword.
type Post struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	GroupID      uint       `gorm:"not null;index" json:"groupId"`
	Nickname     string     `json:"nickname"`
	Title        string     `gorm:"not null;index" json:"title"`
	Content      string     `json:"content"`
	PostPassword string     `json:"-"`
	ImageURL     string     `json:"imageUrl"`
	Tags         StringList `gorm:"type:text" json:"tags"`
	Location     string     `json:"location"`
	Moment       *time.Time `json:"moment"`
	IsPublic     bool       `gorm:"not null;default:true" json:"isPublic"`
	LikeCount    int        `gorm:"not null;default:0" json:"likeCount"`
	CommentCount int        `gorm:"not null;default:0" json:"commentCount"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
