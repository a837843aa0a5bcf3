package model

import "time"

// User 用户；引用集合字段由仓储从关系表加载，不落库
type User struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username    string    `gorm:"type:varchar(64);uniqueIndex:idx_user_username;not null" json:"username"`
	PhoneNumber string    `gorm:"type:varchar(16);uniqueIndex:idx_user_phone;not null" json:"phoneNumber"`
	Password    string    `gorm:"type:varchar(255);not null" json:"-"` // bcrypt
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Posts         []string `gorm:"-" json:"posts"`
	Likes         []string `gorm:"-" json:"likes"`
	Followers     []string `gorm:"-" json:"followers"`
	Follows       []string `gorm:"-" json:"follows"`
	Comments      []string `gorm:"-" json:"comments"`
	LikedComments []string `gorm:"-" json:"likedComments"`
}

func (User) TableName() string { return "users" }
