package model

import "time"

// PostLike 帖子点赞；(user_id, post_id) 唯一
type PostLike struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"type:varchar(36);not null;index:idx_post_like_user;uniqueIndex:ux_post_like_pair"`
	PostID    string `gorm:"type:varchar(36);not null;index:idx_post_like_post;uniqueIndex:ux_post_like_pair"`
	CreatedAt time.Time
}

func (PostLike) TableName() string { return "post_likes" }

// CommentLike 评论点赞；(user_id, comment_id) 唯一
type CommentLike struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"type:varchar(36);not null;index:idx_comment_like_user;uniqueIndex:ux_comment_like_pair"`
	CommentID string `gorm:"type:varchar(36);not null;index:idx_comment_like_comment;uniqueIndex:ux_comment_like_pair"`
	CreatedAt time.Time
}

func (CommentLike) TableName() string { return "comment_likes" }
