package graph

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"inkwell/middleware"
	"inkwell/models"
	"inkwell/store"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// postsPerPage is the fixed page size of the posts query.
const postsPerPage = 2

// ImageRemover deletes a stored image file by its path.
type ImageRemover interface {
	Remove(path string) error
}

// Resolver implements every query and mutation. Dependencies are
// injected at construction.
type Resolver struct {
	Users  store.UserStore
	Posts  store.PostStore
	Images ImageRemover
	Secret string
}

func (r *Resolver) CreateUser(p graphql.ResolveParams) (interface{}, error) {
	input := inputArg(p, "userInput")
	email := strings.TrimSpace(stringArg(input, "email"))
	name := strings.TrimSpace(stringArg(input, "name"))
	password := stringArg(input, "password")

	if fieldErrs := validateUserInput(email, password); len(fieldErrs) > 0 {
		return nil, NewRequestError(http.StatusUnprocessableEntity, "Invalid input.", fieldErrs)
	}

	_, err := r.Users.FindByEmail(p.Context, email)
	if err == nil {
		return nil, NewRequestError(http.StatusUnprocessableEntity, "User exists already!", nil)
	}
	if err != store.ErrNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      name,
		Password:  string(hashed),
		Status:    "I am new!",
		Posts:     []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.Users.Insert(p.Context, user); err != nil {
		return nil, err
	}

	return shapeUser(user, nil), nil
}

func (r *Resolver) Login(p graphql.ResolveParams) (interface{}, error) {
	email := strings.TrimSpace(stringArg(p.Args, "email"))
	password := stringArg(p.Args, "password")

	user, err := r.Users.FindByEmail(p.Context, email)
	if err == store.ErrNotFound {
		return nil, NewRequestError(http.StatusUnauthorized, "User not found.", nil)
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, NewRequestError(http.StatusUnauthorized, "Password is incorrect.", nil)
	}

	token, err := middleware.IssueToken(r.Secret, user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"token":  token,
		"userId": user.ID.Hex(),
	}, nil
}

func (r *Resolver) CreatePost(p graphql.ResolveParams) (interface{}, error) {
	userID, err := r.requireAuth(p.Context)
	if err != nil {
		return nil, err
	}

	input := inputArg(p, "postInput")
	title := strings.TrimSpace(stringArg(input, "title"))
	content := strings.TrimSpace(stringArg(input, "content"))
	imageURL := stringArg(input, "imageUrl")

	if fieldErrs := validatePostInput(title, content); len(fieldErrs) > 0 {
		return nil, NewRequestError(http.StatusUnprocessableEntity, "Invalid input.", fieldErrs)
	}

	user, err := r.Users.FindByID(p.Context, userID)
	if err == store.ErrNotFound {
		return nil, NewRequestError(http.StatusUnauthorized, "Invalid user.", nil)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Content:   content,
		ImageURL:  imageURL,
		Creator:   user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.Posts.Create(p.Context, post); err != nil {
		return nil, err
	}

	post.User = user
	return shapePost(post), nil
}

func (r *Resolver) PostsQuery(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireAuth(p.Context); err != nil {
		return nil, err
	}

	page, _ := p.Args["page"].(int)
	if page < 1 {
		page = 1
	}

	posts, total, err := r.Posts.List(p.Context, page, postsPerPage)
	if err != nil {
		return nil, err
	}

	shaped := make([]interface{}, len(posts))
	for i := range posts {
		shaped[i] = shapePost(&posts[i])
	}

	return map[string]interface{}{
		"posts":      shaped,
		"totalPosts": total,
	}, nil
}

func (r *Resolver) PostQuery(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireAuth(p.Context); err != nil {
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(stringArg(p.Args, "id"))
	if err != nil {
		return nil, NewRequestError(http.StatusNotFound, "No post found!", nil)
	}

	post, err := r.Posts.FindByID(p.Context, id)
	if err == store.ErrNotFound {
		return nil, NewRequestError(http.StatusNotFound, "No post found!", nil)
	}
	if err != nil {
		return nil, err
	}

	return shapePost(post), nil
}

func (r *Resolver) UpdatePost(p graphql.ResolveParams) (interface{}, error) {
	userID, err := r.requireAuth(p.Context)
	if err != nil {
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(stringArg(p.Args, "id"))
	if err != nil {
		return nil, NewRequestError(http.StatusNotFound, "No post found!", nil)
	}

	post, err := r.Posts.FindByID(p.Context, id)
	if err == store.ErrNotFound {
		return nil, NewRequestError(http.StatusNotFound, "No post found!", nil)
	}
	if err != nil {
		return nil, err
	}

	if post.Creator != userID {
		return nil, NewRequestError(http.StatusForbidden, "Not authorized!", nil)
	}

	input := inputArg(p, "postInput")
	title := strings.TrimSpace(stringArg(input, "title"))
	content := strings.TrimSpace(stringArg(input, "content"))
	imageURL := stringArg(input, "imageUrl")

	if fieldErrs := validatePostInput(title, content); len(fieldErrs) > 0 {
		return nil, NewRequestError(http.StatusUnprocessableEntity, "Invalid input.", fieldErrs)
	}

	post.Title = title
	post.Content = content
	// Clients resend the form without a new file as the literal
	// "undefined"; keep the stored image in that case.
	if imageURL != "" && imageURL != "undefined" {
		post.ImageURL = imageURL
	}
	post.UpdatedAt = time.Now().UTC()

	if err := r.Posts.Update(p.Context, post); err != nil {
		return nil, err
	}

	return shapePost(post), nil
}

func (r *Resolver) DeletePost(p graphql.ResolveParams) (interface{}, error) {
	userID, err := r.requireAuth(p.Context)
	if err != nil {
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(stringArg(p.Args, "id"))
	if err != nil {
		return nil, NewRequestError(http.StatusNotFound, "No post found!", nil)
	}

	post, err := r.Posts.FindByID(p.Context, id)
	if err == store.ErrNotFound {
		return nil, NewRequestError(http.StatusNotFound, "No post found!", nil)
	}
	if err != nil {
		return nil, err
	}

	if post.Creator != userID {
		return nil, NewRequestError(http.StatusForbidden, "Not authorized!", nil)
	}

	if err := r.Posts.Delete(p.Context, id, userID); err != nil {
		return nil, err
	}

	if post.ImageURL != "" {
		if err := r.Images.Remove(post.ImageURL); err != nil {
			log.Printf("failed to remove image %s: %v", post.ImageURL, err)
		}
	}

	return true, nil
}

func (r *Resolver) UserQuery(p graphql.ResolveParams) (interface{}, error) {
	userID, err := r.requireAuth(p.Context)
	if err != nil {
		return nil, err
	}

	user, err := r.Users.FindByID(p.Context, userID)
	if err == store.ErrNotFound {
		return nil, NewRequestError(http.StatusNotFound, "No user found!", nil)
	}
	if err != nil {
		return nil, err
	}

	posts, err := r.Posts.FindByCreator(p.Context, userID)
	if err != nil {
		return nil, err
	}

	return shapeUser(user, posts), nil
}

func (r *Resolver) UpdateStatus(p graphql.ResolveParams) (interface{}, error) {
	userID, err := r.requireAuth(p.Context)
	if err != nil {
		return nil, err
	}

	status := stringArg(p.Args, "status")

	if err := r.Users.UpdateStatus(p.Context, userID, status); err != nil {
		if err == store.ErrNotFound {
			return nil, NewRequestError(http.StatusNotFound, "No user found!", nil)
		}
		return nil, err
	}

	user, err := r.Users.FindByID(p.Context, userID)
	if err != nil {
		return nil, err
	}

	return shapeUser(user, nil), nil
}

func (r *Resolver) requireAuth(ctx context.Context) (primitive.ObjectID, error) {
	raw, ok := middleware.UserID(ctx)
	if !ok {
		return primitive.NilObjectID, NewRequestError(http.StatusUnauthorized, "Not authenticated!", nil)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, NewRequestError(http.StatusUnauthorized, "Not authenticated!", nil)
	}
	return id, nil
}

func shapePost(post *models.Post) map[string]interface{} {
	shaped := map[string]interface{}{
		"_id":       post.ID.Hex(),
		"title":     post.Title,
		"content":   post.Content,
		"imageUrl":  post.ImageURL,
		"createdAt": post.CreatedAt.Format(time.RFC3339),
		"updatedAt": post.UpdatedAt.Format(time.RFC3339),
	}
	if post.User != nil {
		shaped["creator"] = shapeUser(post.User, nil)
	}
	return shaped
}

func shapeUser(user *models.User, posts []models.Post) map[string]interface{} {
	shapedPosts := make([]interface{}, 0, len(posts))
	for i := range posts {
		if posts[i].User == nil {
			posts[i].User = user
		}
		shapedPosts = append(shapedPosts, shapePost(&posts[i]))
	}
	return map[string]interface{}{
		"_id":    user.ID.Hex(),
		"email":  user.Email,
		"name":   user.Name,
		"status": user.Status,
		"posts":  shapedPosts,
	}
}

func inputArg(p graphql.ResolveParams, name string) map[string]interface{} {
	input, _ := p.Args[name].(map[string]interface{})
	return input
}

func stringArg(args map[string]interface{}, name string) string {
	value, _ := args[name].(string)
	return value
}
