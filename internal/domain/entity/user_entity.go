package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account document in the utilisateurs collection.
// MotDePasse holds the bcrypt hash and is never serialized to JSON.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nom        string             `bson:"nom" json:"nom"`
	Email      string             `bson:"email" json:"email"`
	MotDePasse string             `bson:"motDePasse,omitempty" json:"-"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Public returns the projection of the user exposed by auth endpoints.
func (u *User) Public() map[string]any {
	return map[string]any{
		"id":    u.ID.Hex(),
		"nom":   u.Nom,
		"email": u.Email,
	}
}
