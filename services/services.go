package services

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/stack"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Object storage of published reports
type FileStore interface {
	UploadFile(ctx context.Context, key, contentType string, body io.Reader) error
	PresignGet(key string) (string, error)
}

type Dependencies struct {
	Repos     *repositories.Repositories
	Auth      *AuthService
	Publisher stack.Publisher
	// Nil when no bucket is configured
	Files       FileStore
	CollegeName string
}

type Services struct {
	Auth       *AuthService
	Users      *UsersService
	Batches    *BatchService
	Namelists  *NamelistService
	Semesters  *SemesterService
	Courses    *CoListService
	Pts        *PtListService
	Sees       *SeeListService
	Attainment *AttainmentService
}

func New(deps Dependencies) *Services {
	if deps.Publisher == nil {
		deps.Publisher = stack.Discard
	}
	repos := deps.Repos
	notifier := &notifier{publisher: deps.Publisher}
	lookup := &lookup{repos: repos}

	return &Services{
		Auth:      deps.Auth,
		Users:     NewUsersService(repos.Users, deps.Auth),
		Batches:   NewBatchService(repos, notifier),
		Namelists: NewNamelistService(repos, lookup, notifier),
		Semesters: NewSemesterService(repos, lookup, notifier),
		Courses:   NewCoListService(repos, lookup, notifier),
		Pts:       NewPtListService(repos, lookup, notifier),
		Sees:      NewSeeListService(repos, lookup, notifier),
		Attainment: NewAttainmentService(
			repos,
			lookup,
			deps.Files,
			deps.Publisher,
			deps.CollegeName,
		),
	}
}

func parseID(id, name string) (primitive.ObjectID, *res.ErrorRes) {
	idObj, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, res.NewErrorRes(
			http.StatusBadRequest,
			fmt.Sprintf("invalid %s id %q", name, id),
		)
	}
	return idObj, nil
}

// Translates repository errors, what names the missing or duplicated entity
func storageError(err error, what string) *res.ErrorRes {
	switch {
	case repositories.IsNotFound(err):
		return res.NewErrorRes(http.StatusNotFound, fmt.Sprintf("%s not found", what))
	case repositories.IsDuplicate(err):
		return res.NewErrorRes(http.StatusConflict, fmt.Sprintf("%s already exists", what))
	}
	zap.L().Error("storage error", zap.String("entity", what), zap.Error(err))
	return res.Unavailable(err)
}

// Publishes attainment.sheet_updated, failures are only logged
type notifier struct {
	publisher stack.Publisher
}

func (n *notifier) notify(kind, action string, id, idUser, idSemester primitive.ObjectID) {
	event := res.SheetEvent{
		ID:     id.Hex(),
		User:   idUser.Hex(),
		Kind:   kind,
		Action: action,
	}
	if !idSemester.IsZero() {
		event.Semester = idSemester.Hex()
	}
	if err := n.publisher.PublishEncode(stack.SHEET_UPDATED, event); err != nil {
		zap.L().Warn(
			"sheet event not published",
			zap.String("kind", kind),
			zap.String("id", event.ID),
			zap.Error(err),
		)
	}
}
