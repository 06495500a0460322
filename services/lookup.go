package services

import (
	"context"
	"net/http"

	"github.com/CPU-commits/Intranet_BAttainment/funct"
	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resolves User -> Batch -> Semester, stopping at the first missing link
type lookup struct {
	repos *repositories.Repositories
}

func (l *lookup) user(ctx context.Context, idUser string) (*models.User, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	user, err := l.repos.Users.GetByID(ctx, idObjUser)
	if err != nil {
		return nil, storageError(err, "user")
	}
	return user, nil
}

func (l *lookup) batch(ctx context.Context, idUser primitive.ObjectID, idBatch string) (*models.Batch, *res.ErrorRes) {
	idObjBatch, errRes := parseID(idBatch, "batch")
	if errRes != nil {
		return nil, errRes
	}
	batch, err := l.repos.Batches.FindOwned(ctx, idUser, idObjBatch)
	if err != nil {
		return nil, storageError(err, "batch")
	}
	return batch, nil
}

func (l *lookup) semester(ctx context.Context, idUser primitive.ObjectID, idSemester string) (*models.Semester, *res.ErrorRes) {
	idObjSemester, errRes := parseID(idSemester, "semester")
	if errRes != nil {
		return nil, errRes
	}
	semester, err := l.repos.Semesters.FindOwned(ctx, idUser, idObjSemester)
	if err != nil {
		return nil, storageError(err, "semester")
	}
	return semester, nil
}

func (l *lookup) namelist(ctx context.Context, idUser primitive.ObjectID, idNamelist string) (*models.Namelist, *res.ErrorRes) {
	idObjNamelist, errRes := parseID(idNamelist, "namelist")
	if errRes != nil {
		return nil, errRes
	}
	namelist, err := l.repos.Namelists.FindOwned(ctx, idUser, idObjNamelist)
	if err != nil {
		return nil, storageError(err, "namelist")
	}
	return namelist, nil
}

// Students that seed a new sheet: the given name list of the semester batch, or the semester copy
func (l *lookup) roster(
	ctx context.Context,
	semester *models.Semester,
	idNamelist string,
) ([]models.NameStudent, *res.ErrorRes) {
	if idNamelist == "" {
		return semester.Namelist, nil
	}
	namelist, errRes := l.namelist(ctx, semester.User, idNamelist)
	if errRes != nil {
		return nil, errRes
	}
	if namelist.Batch != semester.Batch {
		return nil, res.NewErrorRes(
			http.StatusBadRequest,
			"the namelist does not belong to the batch of the semester",
		)
	}
	return namelist.Students, nil
}

func checkCotypes(user *models.User, labels []string) *res.ErrorRes {
	for _, label := range labels {
		if !user.HasCotype(label) {
			return res.NewErrorRes(http.StatusBadRequest, "unknown cotype "+label)
		}
	}
	return nil
}

// Sheet titles are unique per semester and kind
func titleTaken[T any](
	ctx context.Context,
	docs repositories.Documents[T],
	idUser,
	idSemester primitive.ObjectID,
	title string,
	exclude primitive.ObjectID,
	key func(T) (primitive.ObjectID, string),
) (bool, *res.ErrorRes) {
	sheets, err := docs.FindBy(ctx, idUser, "semester", idSemester)
	if err != nil {
		return false, storageError(err, "sheet")
	}
	return funct.Some(sheets, func(sheet T) bool {
		id, sheetTitle := key(sheet)
		return id != exclude && sheetTitle == title
	}), nil
}

func summarize[T any](docs []T, key func(T) (primitive.ObjectID, string)) []repositories.Summary {
	summaries, _ := funct.Map(docs, func(doc T) (repositories.Summary, error) {
		id, title := key(doc)
		return repositories.Summary{ID: id, Title: title}, nil
	})
	if summaries == nil {
		return []repositories.Summary{}
	}
	return summaries
}
