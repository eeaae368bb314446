// Package store provides the persistence layer over MongoDB. Resolvers
// depend on the interfaces so tests can substitute in-memory fakes.
package store

import (
	"context"
	"errors"

	"inkwell/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

type PostStore interface {
	// Create inserts the post and appends its id to the creator's post
	// list as a single transactional unit.
	Create(ctx context.Context, post *models.Post) error
	// FindByID returns the post with its creator populated.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Post, error)
	// List returns one page of posts, newest first, with creators
	// populated, plus the total unpaginated count.
	List(ctx context.Context, page, perPage int) ([]models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	// Delete removes the post and pulls its id from the creator's post
	// list as a single transactional unit.
	Delete(ctx context.Context, id, creator primitive.ObjectID) error
}
