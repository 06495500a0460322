package repositories

import (
	"context"
	"errors"

	"github.com/CPU-commits/Intranet_BAttainment/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document already exists")
)

// Documents owned by a user and addressed by foreign keys up the ownership chain
type Documents[T any] interface {
	Insert(ctx context.Context, doc *T) (primitive.ObjectID, error)
	FindOwned(ctx context.Context, idUser, id primitive.ObjectID) (*T, error)
	// Documents whose field (batch, semester) equals idParent
	FindBy(ctx context.Context, idUser primitive.ObjectID, field string, idParent primitive.ObjectID) ([]T, error)
	// Targeted $set of top level fields
	Set(ctx context.Context, idUser, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, idUser, id primitive.ObjectID) error
	DeleteBy(ctx context.Context, idUser primitive.ObjectID, field string, idParent primitive.ObjectID) (int64, error)
}

// Student array of a document, keyed by rollno
type Roster[S any] interface {
	PushStudents(ctx context.Context, idUser, id primitive.ObjectID, students ...S) error
	SetStudent(ctx context.Context, idUser, id primitive.ObjectID, rollno string, student S) error
	PullStudent(ctx context.Context, idUser, id primitive.ObjectID, rollno string) error
}

type Sheets[T any, S any] interface {
	Documents[T]
	Roster[S]
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	AddCotype(ctx context.Context, id primitive.ObjectID, cotype string) error
	RemoveCotype(ctx context.Context, id primitive.ObjectID, cotype string) error
}

type Summary struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id"`
	Title string             `json:"title" bson:"title"`
}

type BatchDetail struct {
	models.Batch `bson:",inline"`
	Namelists    []Summary `json:"namelists" bson:"namelists"`
	Semesters    []Summary `json:"semesters" bson:"semesters"`
}

type BatchRepository interface {
	Documents[models.Batch]
	FindByUser(ctx context.Context, idUser primitive.ObjectID) ([]models.Batch, error)
	Detail(ctx context.Context, idUser, id primitive.ObjectID) (*BatchDetail, error)
}

type StudentHit struct {
	Namelist       string `json:"namelist"`
	RegistrationNo string `json:"registration_no"`
	Rollno         string `json:"rollno"`
	Name           string `json:"name"`
}

// Full text index of name list students
type StudentIndex interface {
	Index(ctx context.Context, namelist *models.Namelist) error
	Remove(ctx context.Context, idUser, idNamelist primitive.ObjectID) error
	RemoveBatch(ctx context.Context, idUser, idBatch primitive.ObjectID) error
	Search(ctx context.Context, idUser, idBatch primitive.ObjectID, q string) ([]StudentHit, error)
}

type Repositories struct {
	Users     UserRepository
	Batches   BatchRepository
	Namelists Sheets[models.Namelist, models.NameStudent]
	Semesters Sheets[models.Semester, models.NameStudent]
	CoLists   Sheets[models.CoList, models.CoStudent]
	PtLists   Sheets[models.PtList, models.PtStudent]
	SeeLists  Sheets[models.SeeList, models.SeeStudent]
	Students  StudentIndex
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
