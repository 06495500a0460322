package inmem

import (
	"context"
	"strings"
	"sync"

	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	mutex sync.RWMutex
	table map[primitive.ObjectID]*models.User
}

func cloneUser(user *models.User) *models.User {
	clone := *user
	clone.Cotypes = append([]string{}, user.Cotypes...)
	return &clone
}

func (repo *userRepository) Create(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for _, u := range repo.table {
		if u.Email == user.Email {
			return primitive.NilObjectID, repositories.ErrDuplicate
		}
	}
	stored := cloneUser(user)
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}
	repo.table[stored.ID] = stored
	return stored.ID, nil
}

func (repo *userRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	if user, ok := repo.table[id]; ok {
		return cloneUser(user), nil
	}
	return nil, repositories.ErrNotFound
}

func (repo *userRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	email = models.NormalizeEmail(email)
	for _, user := range repo.table {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (repo *userRepository) AddCotype(_ context.Context, id primitive.ObjectID, cotype string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	user, ok := repo.table[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if !user.HasCotype(cotype) {
		user.Cotypes = append(user.Cotypes, cotype)
	}
	return nil
}

func (repo *userRepository) RemoveCotype(_ context.Context, id primitive.ObjectID, cotype string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	user, ok := repo.table[id]
	if !ok || !user.HasCotype(cotype) {
		return repositories.ErrNotFound
	}
	cotypes := make([]string, 0, len(user.Cotypes))
	for _, c := range user.Cotypes {
		if c != cotype {
			cotypes = append(cotypes, c)
		}
	}
	user.Cotypes = cotypes
	return nil
}

type batchRepository struct {
	*documents[models.Batch]
	namelists *table
	semesters *table
}

func (repo *batchRepository) FindByUser(_ context.Context, idUser primitive.ObjectID) ([]models.Batch, error) {
	return repo.all(func(doc bson.D) bool {
		return matches(doc, "user", idUser)
	})
}

func summaries(t *table, idUser, idBatch primitive.ObjectID) []repositories.Summary {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	found := []repositories.Summary{}
	for _, id := range t.order {
		doc := t.rows[id]
		if matches(doc, "user", idUser) && matches(doc, "batch", idBatch) {
			title, _ := lookup(doc, "title")
			titleString, _ := title.(string)
			found = append(found, repositories.Summary{
				ID:    id,
				Title: titleString,
			})
		}
	}
	return found
}

func (repo *batchRepository) Detail(ctx context.Context, idUser, id primitive.ObjectID) (*repositories.BatchDetail, error) {
	batch, err := repo.FindOwned(ctx, idUser, id)
	if err != nil {
		return nil, err
	}
	return &repositories.BatchDetail{
		Batch:     *batch,
		Namelists: summaries(repo.namelists, idUser, id),
		Semesters: summaries(repo.semesters, idUser, id),
	}, nil
}

type indexedStudent struct {
	user     primitive.ObjectID
	batch    primitive.ObjectID
	namelist primitive.ObjectID
	student  models.NameStudent
}

// Case-insensitive substring match over name, rollno and registration number
type studentIndex struct {
	mutex    sync.RWMutex
	students []indexedStudent
}

func (s *studentIndex) removeWhere(drop func(indexedStudent) bool) {
	kept := s.students[:0]
	for _, student := range s.students {
		if !drop(student) {
			kept = append(kept, student)
		}
	}
	s.students = kept
}

func (s *studentIndex) Index(_ context.Context, namelist *models.Namelist) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.removeWhere(func(student indexedStudent) bool {
		return student.namelist == namelist.ID
	})
	for _, student := range namelist.Students {
		s.students = append(s.students, indexedStudent{
			user:     namelist.User,
			batch:    namelist.Batch,
			namelist: namelist.ID,
			student:  student,
		})
	}
	return nil
}

func (s *studentIndex) Remove(_ context.Context, idUser, idNamelist primitive.ObjectID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.removeWhere(func(student indexedStudent) bool {
		return student.user == idUser && student.namelist == idNamelist
	})
	return nil
}

func (s *studentIndex) RemoveBatch(_ context.Context, idUser, idBatch primitive.ObjectID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.removeWhere(func(student indexedStudent) bool {
		return student.user == idUser && student.batch == idBatch
	})
	return nil
}

func (s *studentIndex) Search(
	_ context.Context,
	idUser,
	idBatch primitive.ObjectID,
	q string,
) ([]repositories.StudentHit, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	q = strings.ToLower(strings.TrimSpace(q))
	hits := []repositories.StudentHit{}
	for _, indexed := range s.students {
		if indexed.user != idUser || indexed.batch != idBatch {
			continue
		}
		student := indexed.student
		if strings.Contains(strings.ToLower(student.Name), q) ||
			strings.Contains(strings.ToLower(student.Rollno), q) ||
			strings.Contains(strings.ToLower(student.RegistrationNo), q) {
			hits = append(hits, repositories.StudentHit{
				Namelist:       indexed.namelist.Hex(),
				RegistrationNo: student.RegistrationNo,
				Rollno:         student.Rollno,
				Name:           student.Name,
			})
		}
		if len(hits) == repositories.MAX_SEARCH_HITS {
			break
		}
	}
	return hits, nil
}

// Used by servers running without Elasticsearch
func NewStudentIndex() repositories.StudentIndex {
	return &studentIndex{}
}

func NewRepositories() *repositories.Repositories {
	namelists := newSheets[models.Namelist, models.NameStudent]("students")
	semesters := newSheets[models.Semester, models.NameStudent]("namelist")
	return &repositories.Repositories{
		Users: &userRepository{table: make(map[primitive.ObjectID]*models.User)},
		Batches: &batchRepository{
			documents: &documents[models.Batch]{table: newTable()},
			namelists: namelists.documents.table,
			semesters: semesters.documents.table,
		},
		Namelists: namelists,
		Semesters: semesters,
		CoLists:   newSheets[models.CoList, models.CoStudent]("students"),
		PtLists:   newSheets[models.PtList, models.PtStudent]("students"),
		SeeLists:  newSheets[models.SeeList, models.SeeStudent]("students"),
		Students:  NewStudentIndex(),
	}
}
