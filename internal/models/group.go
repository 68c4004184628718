// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Group represents a memory group. Posts belong to exactly one group.
//
// Password holds the bcrypt hash of the group's secret and is never
// serialized in responses. Deletion is a hard delete: a removed group
// cannot be restored.
type Group struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null;index" json:"name"`
	Password     string     `gorm:"not null" json:"-"`
	IsPublic     bool       `gorm:"not null;default:true" json:"isPublic"`
	Introduction string     `json:"introduction"`
	ImageURL     string     `json:"imageUrl"`
	LikeCount    int        `gorm:"not null;default:0" json:"likeCount"`
	Badges       StringList `gorm:"type:text" json:"badges"`
	PostCount    int        `gorm:"not null;default:0" json:"postCount"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// DDay returns the whole number of days elapsed since the group was created.
func (g *Group) DDay(now time.Time) int {
	return int(now.Sub(g.CreatedAt).Hours() / 24)
}

// BadgeCount returns the number of badges the group has earned.
func (g *Group) BadgeCount() int {
	return len(g.Badges)
}
