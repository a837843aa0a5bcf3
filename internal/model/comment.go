package model

import "time"

// Comment 评论
type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerID   string    `gorm:"type:varchar(36);index:idx_comment_owner;not null" json:"owner"`
	PostID    string    `gorm:"type:varchar(36);index:idx_comment_post;not null" json:"post"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Likes []string `gorm:"-" json:"likes"`
}

func (Comment) TableName() string { return "comments" }
