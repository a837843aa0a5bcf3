package model

import "time"

// Post 帖子；OwnerID 创建后不可变
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerID   string    `gorm:"type:varchar(36);index:idx_post_owner;not null" json:"owner"`
	Category  string    `gorm:"type:varchar(64)" json:"category,omitempty"`
	Title     string    `gorm:"type:varchar(255)" json:"title,omitempty"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index:idx_post_created" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Comments []string `gorm:"-" json:"comments"` // 按创建时间排序
	Likes    []string `gorm:"-" json:"likes"`
}

func (Post) TableName() string { return "posts" }

// PostDetail 帖子及其评论
type PostDetail struct {
	Post     *Post      `json:"post"`
	Comments []*Comment `json:"commentList"`
}
