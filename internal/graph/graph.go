// Package graph applies social-graph mutations to already-loaded entities.
//
// Functions here do no I/O. Callers load the entities with their reference
// sets, call one mutation, then persist the edge change the mutation reports.
// Every mutation keeps both sides of a relationship in step and treats the
// reference sets as sets: an id is never present twice.
package graph

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/pkg/apperror"
)

var (
	ErrFollowSelf   = apperror.Validation("cannot follow yourself")
	ErrEmptyPost    = apperror.Validation("the post cant be empty")
	ErrEmptyComment = apperror.Validation("comment can not be empty")
	ErrNotOwner     = apperror.Forbidden("only the owner can edit this post")
)

// now is replaced in tests.
var now = time.Now

// ToggleLike likes post as user if not yet liked, otherwise unlikes it.
// The user's side decides the current state.
func ToggleLike(user *model.User, post *model.Post) (liked bool) {
	if slices.Contains(user.Likes, post.ID) {
		user.Likes = remove(user.Likes, post.ID)
		post.Likes = remove(post.Likes, user.ID)
		return false
	}
	user.Likes = add(user.Likes, post.ID)
	post.Likes = add(post.Likes, user.ID)
	return true
}

// ToggleCommentLike is ToggleLike over user.LikedComments / comment.Likes.
func ToggleCommentLike(user *model.User, comment *model.Comment) (liked bool) {
	if slices.Contains(user.LikedComments, comment.ID) {
		user.LikedComments = remove(user.LikedComments, comment.ID)
		comment.Likes = remove(comment.Likes, user.ID)
		return false
	}
	user.LikedComments = add(user.LikedComments, comment.ID)
	comment.Likes = add(comment.Likes, user.ID)
	return true
}

// Follow records follower -> followed. created is false when the edge already existed.
func Follow(follower, followed *model.User) (created bool, err error) {
	if follower.ID == followed.ID {
		return false, ErrFollowSelf
	}
	created = !slices.Contains(follower.Follows, followed.ID)
	follower.Follows = add(follower.Follows, followed.ID)
	followed.Followers = add(followed.Followers, follower.ID)
	return created, nil
}

// Unfollow removes follower -> followed. removed is false when there was no edge.
func Unfollow(follower, followed *model.User) (removed bool) {
	removed = slices.Contains(follower.Follows, followed.ID)
	follower.Follows = remove(follower.Follows, followed.ID)
	followed.Followers = remove(followed.Followers, follower.ID)
	return removed
}

// AddComment creates a comment by user on post and links it from both.
// Nothing is mutated when text is blank.
func AddComment(user *model.User, post *model.Post, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	ts := now()
	c := &model.Comment{
		ID:        uuid.NewString(),
		OwnerID:   user.ID,
		PostID:    post.ID,
		Text:      text,
		CreatedAt: ts,
		UpdatedAt: ts,
		Likes:     []string{},
	}
	user.Comments = add(user.Comments, c.ID)
	post.Comments = add(post.Comments, c.ID)
	return c, nil
}

// PostInput holds the writable fields of a post.
type PostInput struct {
	Text     string
	Category string
	Title    string
}

// CreatePost creates a post owned by user and links it from user.Posts.
func CreatePost(user *model.User, in PostInput) (*model.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrEmptyPost
	}
	ts := now()
	p := &model.Post{
		ID:        uuid.NewString(),
		OwnerID:   user.ID,
		Category:  strings.TrimSpace(in.Category),
		Title:     strings.TrimSpace(in.Title),
		Text:      text,
		CreatedAt: ts,
		UpdatedAt: ts,
		Comments:  []string{},
		Likes:     []string{},
	}
	user.Posts = add(user.Posts, p.ID)
	return p, nil
}

// UpdatePost edits text and, when given, category/title. Only the owner may edit;
// the owner itself never changes.
func UpdatePost(userID string, post *model.Post, in PostInput) error {
	if post.OwnerID != userID {
		return ErrNotOwner
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return ErrEmptyPost
	}
	post.Text = text
	if c := strings.TrimSpace(in.Category); c != "" {
		post.Category = c
	}
	if t := strings.TrimSpace(in.Title); t != "" {
		post.Title = t
	}
	post.UpdatedAt = now()
	return nil
}

func add(set []string, id string) []string {
	if slices.Contains(set, id) {
		return set
	}
	return append(set, id)
}

func remove(set []string, id string) []string {
	return slices.DeleteFunc(set, func(s string) bool { return s == id })
}
