package services

import (
	"context"

	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Collections cleared in parallel on batch deletion
const CASCADE_WORKERS = 3

type BatchService struct {
	repos    *repositories.Repositories
	notifier *notifier
}

func NewBatchService(repos *repositories.Repositories, notifier *notifier) *BatchService {
	return &BatchService{
		repos:    repos,
		notifier: notifier,
	}
}

func (b *BatchService) GetBatches(ctx context.Context, idUser string) ([]models.Batch, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	batches, err := b.repos.Batches.FindByUser(ctx, idObjUser)
	if err != nil {
		return nil, storageError(err, "batch")
	}
	return batches, nil
}

func (b *BatchService) GetBatch(ctx context.Context, idUser, idBatch string) (*repositories.BatchDetail, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	idObjBatch, errRes := parseID(idBatch, "batch")
	if errRes != nil {
		return nil, errRes
	}
	detail, err := b.repos.Batches.Detail(ctx, idObjUser, idObjBatch)
	if err != nil {
		return nil, storageError(err, "batch")
	}
	return detail, nil
}

func (b *BatchService) NewBatch(ctx context.Context, form *forms.TitleForm, idUser string) (primitive.ObjectID, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return primitive.NilObjectID, errRes
	}
	batch := models.NewModelBatch(form.Title, idObjUser)
	id, err := b.repos.Batches.Insert(ctx, &batch)
	if err != nil {
		return primitive.NilObjectID, storageError(err, "batch")
	}
	b.notifier.notify(res.BATCH, res.CREATED, id, idObjUser, primitive.NilObjectID)
	return id, nil
}

func (b *BatchService) UpdateBatch(ctx context.Context, form *forms.TitleForm, idUser, idBatch string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	idObjBatch, errRes := parseID(idBatch, "batch")
	if errRes != nil {
		return errRes
	}
	if err := b.repos.Batches.Set(ctx, idObjUser, idObjBatch, bson.M{"title": form.Title}); err != nil {
		return storageError(err, "batch")
	}
	b.notifier.notify(res.BATCH, res.UPDATED, idObjBatch, idObjUser, primitive.NilObjectID)
	return nil
}

// Deletes the batch and every name list, semester and sheet that carries its key
func (b *BatchService) DeleteBatch(ctx context.Context, idUser, idBatch string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	idObjBatch, errRes := parseID(idBatch, "batch")
	if errRes != nil {
		return errRes
	}
	if _, err := b.repos.Batches.FindOwned(ctx, idObjUser, idObjBatch); err != nil {
		return storageError(err, "batch")
	}

	deleters := []func(ctx context.Context) (int64, error){
		func(ctx context.Context) (int64, error) {
			return b.repos.Namelists.DeleteBy(ctx, idObjUser, "batch", idObjBatch)
		},
		func(ctx context.Context) (int64, error) {
			return b.repos.Semesters.DeleteBy(ctx, idObjUser, "batch", idObjBatch)
		},
		func(ctx context.Context) (int64, error) {
			return b.repos.CoLists.DeleteBy(ctx, idObjUser, "batch", idObjBatch)
		},
		func(ctx context.Context) (int64, error) {
			return b.repos.PtLists.DeleteBy(ctx, idObjUser, "batch", idObjBatch)
		},
		func(ctx context.Context) (int64, error) {
			return b.repos.SeeLists.DeleteBy(ctx, idObjUser, "batch", idObjBatch)
		},
	}
	errRes = utils.Concurrency(ctx, CASCADE_WORKERS, len(deleters), func(
		ctx context.Context,
		index int,
		setError func(errRes *res.ErrorRes),
	) {
		if _, err := deleters[index](ctx); err != nil {
			setError(storageError(err, "batch content"))
		}
	})
	if errRes != nil {
		return errRes
	}
	if err := b.repos.Students.RemoveBatch(ctx, idObjUser, idObjBatch); err != nil {
		zap.L().Warn("students not removed from index", zap.String("batch", idBatch), zap.Error(err))
	}
	if err := b.repos.Batches.Delete(ctx, idObjUser, idObjBatch); err != nil {
		return storageError(err, "batch")
	}
	b.notifier.notify(res.BATCH, res.DELETED, idObjBatch, idObjUser, primitive.NilObjectID)
	return nil
}
