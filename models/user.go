package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email     string               `bson:"email" json:"email"`
	Name      string               `bson:"name" json:"name"`
	Password  string               `bson:"password" json:"-"` // bcrypt hash
	Status    string               `bson:"status" json:"status"`
	Posts     []primitive.ObjectID `bson:"posts" json:"posts"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
