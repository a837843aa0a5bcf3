package service

import (
	"math"

	"github.com/d60-Lab/social-graph/internal/model"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// normalizePage 非法页码/条数回退到默认值
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// (page-1)*limit 不能溢出
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}

func newPostPage(page, limit int, total int64, items []*model.Post) *model.PostPage {
	return &model.PostPage{
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
		TotalPosts:  total,
		Items:       items,
	}
}
