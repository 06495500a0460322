package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const USERS_COLLECTION = "users"

type User struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Cotypes   []string           `json:"cotypes" bson:"cotypes"`
	CreatedAt primitive.DateTime `json:"created_at" bson:"created_at"`
}

func NewModelUser(email, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	return User{
		ID:        primitive.NewObjectID(),
		Email:     NormalizeEmail(email),
		Password:  string(hash),
		Cotypes:   []string{},
		CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
	}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

func (u *User) HasCotype(cotype string) bool {
	for _, c := range u.Cotypes {
		if c == cotype {
			return true
		}
	}
	return false
}
