package models

import "time"

// Follow is a directed edge: FollowerID follows FollowedID. The composite
// primary key makes the pair unique at the storage layer.
type Follow struct {
	FollowerID uint      `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FollowedID uint      `gorm:"primaryKey;autoIncrement:false" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides the default pluralization.
func (Follow) TableName() string {
	return "follows"
}
