package store

import (
	"context"

	"inkwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func optionsSortNewest() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

type MongoPostStore struct {
	client *mongo.Client
	posts  *mongo.Collection
	users  *mongo.Collection
}

func NewMongoPostStore(client *mongo.Client, db *mongo.Database) *MongoPostStore {
	return &MongoPostStore{
		client: client,
		posts:  db.Collection("posts"),
		users:  db.Collection("users"),
	}
}

// populatedPost carries the creator document joined in by $lookup.
type populatedPost struct {
	models.Post `bson:",inline"`
	CreatorDoc  *models.User `bson:"creatorDoc"`
}

func creatorLookup() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "creator"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "creatorDoc"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$creatorDoc"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func (s *MongoPostStore) Create(ctx context.Context, post *models.Post) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := s.posts.InsertOne(sc, post); err != nil {
			return nil, err
		}
		_, err := s.users.UpdateOne(sc,
			bson.M{"_id": post.Creator},
			bson.M{"$push": bson.M{"posts": post.ID}})
		return nil, err
	})
	return err
}

func (s *MongoPostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
	}, creatorLookup()...)

	cursor, err := s.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []populatedPost
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	post := results[0].Post
	post.User = results[0].CreatorDoc
	return &post, nil
}

func (s *MongoPostStore) FindByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Post, error) {
	opts := optionsSortNewest()
	cursor, err := s.posts.Find(ctx, bson.M{"creator": creator}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoPostStore) List(ctx context.Context, page, perPage int) ([]models.Post, int64, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.posts.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	pipeline := append([]bson.D{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: int64((page - 1) * perPage)}},
		{{Key: "$limit", Value: int64(perPage)}},
	}, creatorLookup()...)

	cursor, err := s.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var results []populatedPost
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, err
	}

	posts := make([]models.Post, len(results))
	for i, res := range results {
		posts[i] = res.Post
		posts[i].User = res.CreatorDoc
	}
	return posts, total, nil
}

func (s *MongoPostStore) Update(ctx context.Context, post *models.Post) error {
	res, err := s.posts.UpdateOne(ctx,
		bson.M{"_id": post.ID},
		bson.M{"$set": bson.M{
			"title":     post.Title,
			"content":   post.Content,
			"imageUrl":  post.ImageURL,
			"updatedAt": post.UpdatedAt,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPostStore) Delete(ctx context.Context, id, creator primitive.ObjectID) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := s.posts.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, ErrNotFound
		}
		_, err = s.users.UpdateOne(sc,
			bson.M{"_id": creator},
			bson.M{"$pull": bson.M{"posts": id}})
		return nil, err
	})
	return err
}
