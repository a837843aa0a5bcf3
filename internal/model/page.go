package model

// PostPage 分页结果
type PostPage struct {
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
	TotalPosts  int64   `json:"totalPosts"`
	Items       []*Post `json:"items"`
}

// All 需要迁移的模型
func All() []interface{} {
	return []interface{}{&User{}, &Post{}, &Comment{}, &Follow{}, &PostLike{}, &CommentLike{}}
}
