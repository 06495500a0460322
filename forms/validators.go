package forms

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ObjectID validator.Func = func(fl validator.FieldLevel) bool {
	_, err := primitive.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

// Labels end up as keys of score maps, mongo rejects keys with dots or a leading $
var MongoKey validator.Func = func(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || strings.TrimSpace(value) != value {
		return false
	}
	if strings.Contains(value, ".") || strings.HasPrefix(value, "$") {
		return false
	}
	return true
}
