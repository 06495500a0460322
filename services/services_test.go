package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"github.com/CPU-commits/Intranet_BAttainment/repositories/inmem"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordedMessage struct {
	subject string
	data    []byte
}

type recordingPublisher struct {
	mutex    sync.Mutex
	messages []recordedMessage
}

func (p *recordingPublisher) PublishEncode(subject string, data interface{}) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.messages = append(p.messages, recordedMessage{subject: subject, data: encoded})
	return nil
}

func (p *recordingPublisher) subjects() []string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	subjects := make([]string, len(p.messages))
	for i, message := range p.messages {
		subjects[i] = message.subject
	}
	return subjects
}

type fixture struct {
	svc       *Services
	repos     *repositories.Repositories
	publisher *recordingPublisher
	user      string
	batch     string
	namelist  string
	semester  string
}

func ptr[T any](v T) *T {
	return &v
}

func requireOK(t *testing.T, errRes *res.ErrorRes) {
	t.Helper()
	if errRes != nil {
		require.FailNow(t, "unexpected error", "%d %v", errRes.StatusCode, errRes.Err)
	}
}

func requireStatus(t *testing.T, status int, errRes *res.ErrorRes) {
	t.Helper()
	require.NotNil(t, errRes)
	assert.Equal(t, status, errRes.StatusCode, errRes.Error())
}

// A user with a batch, a two student name list and a semester copied from it
func newFixture(t *testing.T, files FileStore) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		repos:     inmem.NewRepositories(),
		publisher: &recordingPublisher{},
	}
	f.svc = New(Dependencies{
		Repos:       f.repos,
		Auth:        NewAuthService("test-secret", time.Hour),
		Publisher:   f.publisher,
		Files:       files,
		CollegeName: "Test College",
	})

	_, user, errRes := f.svc.Users.Signup(ctx, &forms.SignupForm{
		Email:    "a@x.com",
		Password: "secret123",
	})
	requireOK(t, errRes)
	f.user = user.ID.Hex()

	for _, cotype := range []string{"understand", "apply"} {
		_, errRes = f.svc.Users.AddCotype(ctx, f.user, cotype)
		requireOK(t, errRes)
	}

	batch, errRes := f.svc.Batches.NewBatch(ctx, &forms.TitleForm{Title: "2024"}, f.user)
	requireOK(t, errRes)
	f.batch = batch.Hex()

	namelist, errRes := f.svc.Namelists.NewNamelist(ctx, &forms.NamelistForm{
		Batch: f.batch,
		Title: "CSE",
		Students: []forms.NameStudentForm{
			{RegistrationNo: "4NI001", Rollno: "R2", Name: "Bob"},
			{RegistrationNo: "4NI002", Rollno: "R1", Name: "Alice"},
		},
	}, f.user)
	requireOK(t, errRes)
	f.namelist = namelist.Hex()

	semester, errRes := f.svc.Semesters.NewSemester(ctx, &forms.SemesterForm{
		Batch:    f.batch,
		Title:    "Sem1",
		Namelist: f.namelist,
	}, f.user)
	requireOK(t, errRes)
	f.semester = semester.Hex()
	return f
}

func (f *fixture) newCourse(t *testing.T, title string, rows []string) string {
	t.Helper()
	id, errRes := f.svc.Courses.NewCourse(context.Background(), &forms.CoListForm{
		Semester: f.semester,
		Title:    title,
		Rows:     rows,
	}, f.user)
	requireOK(t, errRes)
	return id.Hex()
}

func (f *fixture) newPt(t *testing.T, title string) string {
	t.Helper()
	id, errRes := f.svc.Pts.NewPt(context.Background(), &forms.PtListForm{
		Semester: f.semester,
		Title:    title,
		Structure: []forms.PtPartForm{
			{
				Title:   "A",
				MaxMark: ptr(5.0),
				Questions: []forms.PtQuestionForm{
					{Number: 1, Option: "understand"},
					{Number: 2, Option: "apply"},
				},
			},
			{
				Title:     "B",
				MaxMark:   ptr(10.0),
				Questions: []forms.PtQuestionForm{{Number: 1, Option: "understand"}},
			},
		},
	}, f.user)
	requireOK(t, errRes)
	return id.Hex()
}

func (f *fixture) newSee(t *testing.T) string {
	t.Helper()
	id, errRes := f.svc.Sees.NewSee(context.Background(), &forms.SeeListForm{
		Semester: f.semester,
		Title:    "SEE",
		Courses:  []string{"understand", "apply"},
	}, f.user)
	requireOK(t, errRes)
	return id.Hex()
}

func TestSignupAndLogin(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, _, errRes := f.svc.Users.Signup(ctx, &forms.SignupForm{Email: "A@x.com", Password: "another1"})
	requireStatus(t, http.StatusConflict, errRes)

	token, user, errRes := f.svc.Users.Login(ctx, &forms.LoginForm{Email: "a@x.com", Password: "secret123"})
	requireOK(t, errRes)
	assert.Equal(t, f.user, user.ID.Hex())
	claims, err := f.svc.Auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, f.user, claims.ID)

	_, _, errRes = f.svc.Users.Login(ctx, &forms.LoginForm{Email: "a@x.com", Password: "wrong-password"})
	requireStatus(t, http.StatusUnauthorized, errRes)
	_, _, errRes = f.svc.Users.Login(ctx, &forms.LoginForm{Email: "nobody@x.com", Password: "secret123"})
	requireStatus(t, http.StatusUnauthorized, errRes)
}

func TestCotypes(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	cotypes, errRes := f.svc.Users.AddCotype(ctx, f.user, " remember ")
	requireOK(t, errRes)
	assert.Equal(t, []string{"understand", "apply", "remember"}, cotypes)

	requireOK(t, f.svc.Users.DeleteCotype(ctx, f.user, "remember"))
	cotypes, errRes = f.svc.Users.GetCotypes(ctx, f.user)
	requireOK(t, errRes)
	assert.Equal(t, []string{"understand", "apply"}, cotypes)
}

func TestBatchOwnership(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, errRes := f.svc.Batches.GetBatch(ctx, primitive.NewObjectID().Hex(), f.batch)
	requireStatus(t, http.StatusNotFound, errRes)
	_, errRes = f.svc.Batches.GetBatch(ctx, f.user, "nope")
	requireStatus(t, http.StatusBadRequest, errRes)

	detail, errRes := f.svc.Batches.GetBatch(ctx, f.user, f.batch)
	requireOK(t, errRes)
	require.Len(t, detail.Namelists, 1)
	require.Len(t, detail.Semesters, 1)
	assert.Equal(t, "Sem1", detail.Semesters[0].Title)
}

func TestNamelistStudents(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, errRes := f.svc.Namelists.NewNamelist(ctx, &forms.NamelistForm{
		Batch: f.batch,
		Title: "Repeated",
		Students: []forms.NameStudentForm{
			{Rollno: "R1", Name: "Alice"},
			{Rollno: "R1", Name: "Alicia"},
		},
	}, f.user)
	requireStatus(t, http.StatusConflict, errRes)

	errRes = f.svc.Namelists.AddStudent(ctx, &forms.NameStudentForm{Rollno: "R1", Name: "Again"}, f.user, f.namelist)
	requireStatus(t, http.StatusConflict, errRes)

	requireOK(t, f.svc.Namelists.AddStudent(ctx, &forms.NameStudentForm{Rollno: "R3", Name: "Carol"}, f.user, f.namelist))
	hits, errRes := f.svc.Namelists.SearchStudents(ctx, f.user, f.batch, "carol")
	requireOK(t, errRes)
	require.Len(t, hits, 1)
	assert.Equal(t, "R3", hits[0].Rollno)

	requireOK(t, f.svc.Namelists.DeleteStudent(ctx, f.user, f.namelist, "R3"))
	hits, errRes = f.svc.Namelists.SearchStudents(ctx, f.user, f.batch, "carol")
	requireOK(t, errRes)
	assert.Empty(t, hits)

	hits, errRes = f.svc.Namelists.SearchStudents(ctx, f.user, f.batch, "  ")
	requireOK(t, errRes)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}

func TestSemesterCopiesNamelist(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	// Later name list edits do not reach the semester
	requireOK(t, f.svc.Namelists.AddStudent(ctx, &forms.NameStudentForm{Rollno: "R3", Name: "Carol"}, f.user, f.namelist))

	semester, errRes := f.svc.Semesters.GetSemester(ctx, f.user, f.semester)
	requireOK(t, errRes)
	assert.Len(t, semester.Namelist, 2)

	other, errRes := f.svc.Batches.NewBatch(ctx, &forms.TitleForm{Title: "2025"}, f.user)
	requireOK(t, errRes)
	_, errRes = f.svc.Semesters.NewSemester(ctx, &forms.SemesterForm{
		Batch:    other.Hex(),
		Title:    "Sem1",
		Namelist: f.namelist,
	}, f.user)
	requireStatus(t, http.StatusBadRequest, errRes)
}

func TestCourseScores(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	course := f.newCourse(t, "Quiz1", []string{"Q1", "Q2"})

	_, errRes := f.svc.Courses.NewCourse(ctx, &forms.CoListForm{
		Semester: f.semester,
		Title:    "Quiz1",
		Rows:     []string{"Q1"},
	}, f.user)
	requireStatus(t, http.StatusConflict, errRes)
	_, errRes = f.svc.Courses.NewCourse(ctx, &forms.CoListForm{Semester: f.semester, Title: "Empty"}, f.user)
	requireStatus(t, http.StatusBadRequest, errRes)

	student, errRes := f.svc.Courses.UpdateScore(ctx, &forms.CoScoreForm{
		Assignment: "Q1",
		Score:      ptr(8.0),
		Rollno:     "R1",
	}, f.user, course)
	requireOK(t, errRes)
	assert.Equal(t, 4.0, student.AverageScore)

	_, errRes = f.svc.Courses.UpdateScore(ctx, &forms.CoScoreForm{Assignment: "Q9", Score: ptr(1.0), Rollno: "R1"}, f.user, course)
	requireStatus(t, http.StatusBadRequest, errRes)
	_, errRes = f.svc.Courses.UpdateScore(ctx, &forms.CoScoreForm{Assignment: "Q1", Score: ptr(1.0), Rollno: "R9"}, f.user, course)
	requireStatus(t, http.StatusNotFound, errRes)

	requireOK(t, f.svc.Courses.AddRow(ctx, &forms.RowForm{Row: "Q3"}, f.user, course))
	requireStatus(t, http.StatusConflict, f.svc.Courses.AddRow(ctx, &forms.RowForm{Row: "Q3"}, f.user, course))

	list, errRes := f.svc.Courses.GetCourse(ctx, f.user, course)
	requireOK(t, errRes)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, list.Rows)
	i := list.StudentIndex("R1")
	require.NotEqual(t, -1, i)
	assert.Equal(t, 8.0, list.Students[i].Scores["Q1"])
	assert.InDelta(t, 8.0/3, list.Students[i].AverageScore, 1e-9)

	requireOK(t, f.svc.Courses.DeleteRow(ctx, f.user, course, "Q3"))
	requireStatus(t, http.StatusNotFound, f.svc.Courses.DeleteRow(ctx, f.user, course, "Q3"))
	list, errRes = f.svc.Courses.GetCourse(ctx, f.user, course)
	requireOK(t, errRes)
	assert.Equal(t, 4.0, list.Students[list.StudentIndex("R1")].AverageScore)
}

func TestCourseScoreIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	course := f.newCourse(t, "Quiz1", []string{"Q1", "Q2"})

	form := &forms.CoScoreForm{Assignment: "Q1", Score: ptr(7.0), Rollno: "R2"}
	for i := 0; i < 3; i++ {
		student, errRes := f.svc.Courses.UpdateScore(ctx, form, f.user, course)
		requireOK(t, errRes)
		assert.Equal(t, 3.5, student.AverageScore, "write %d", i+1)
	}

	list, errRes := f.svc.Courses.GetCourse(ctx, f.user, course)
	requireOK(t, errRes)
	student := list.Students[list.StudentIndex("R2")]
	assert.Equal(t, 3.5, student.AverageScore)
	assert.Equal(t, 7.0, student.Scores["Q1"])
}

func TestCourseScoreOutOfRangeKeepsSheet(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	course := f.newCourse(t, "Quiz1", []string{"Q1", "Q2"})

	_, errRes := f.svc.Courses.UpdateScore(ctx, &forms.CoScoreForm{Assignment: "Q1", Score: ptr(1e308), Rollno: "R1"}, f.user, course)
	requireOK(t, errRes)
	_, errRes = f.svc.Courses.UpdateScore(ctx, &forms.CoScoreForm{Assignment: "Q2", Score: ptr(1e308), Rollno: "R1"}, f.user, course)
	requireStatus(t, http.StatusBadRequest, errRes)

	list, errRes := f.svc.Courses.GetCourse(ctx, f.user, course)
	requireOK(t, errRes)
	student := list.Students[list.StudentIndex("R1")]
	assert.Zero(t, student.Scores["Q2"])
	assert.Equal(t, 5e307, student.AverageScore)

	_, errRes = f.svc.Attainment.GetAttainment(ctx, f.user, f.batch, f.semester)
	requireOK(t, errRes)
}

func TestCourseStructureMaxMark(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	id, errRes := f.svc.Courses.NewCourse(ctx, &forms.CoListForm{
		Semester:  f.semester,
		Title:     "Lab",
		Structure: map[string]float64{"E1": 10},
	}, f.user)
	requireOK(t, errRes)

	_, errRes = f.svc.Courses.UpdateScore(ctx, &forms.CoScoreForm{Assignment: "E1", Score: ptr(11.0), Rollno: "R1"}, f.user, id.Hex())
	requireStatus(t, http.StatusBadRequest, errRes)
	_, errRes = f.svc.Courses.UpdateScore(ctx, &forms.CoScoreForm{Assignment: "E1", Score: ptr(10.0), Rollno: "R1"}, f.user, id.Hex())
	requireOK(t, errRes)

	requireStatus(t, http.StatusBadRequest, f.svc.Courses.AddRow(ctx, &forms.RowForm{Row: "E2"}, f.user, id.Hex()))
}

func TestPtScores(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	pt := f.newPt(t, "PT1")

	list, errRes := f.svc.Pts.GetPt(ctx, f.user, pt)
	requireOK(t, errRes)
	assert.Equal(t, 20.0, list.MaxMark)
	assert.Equal(t, 15.0, list.Types["understand"])

	student, errRes := f.svc.Pts.UpdateScore(ctx, &forms.PtScoreForm{
		Rollno:   "R1",
		Part:     ptr(0),
		Question: 1,
		Mark:     ptr(4.0),
	}, f.user, pt)
	requireOK(t, errRes)
	assert.Equal(t, 4.0, student.TotalMark)
	assert.Equal(t, 4.0, student.Typemark["understand"])

	_, errRes = f.svc.Pts.UpdateScore(ctx, &forms.PtScoreForm{Rollno: "R1", Part: ptr(0), Question: 1, Mark: ptr(6.0)}, f.user, pt)
	requireStatus(t, http.StatusBadRequest, errRes)

	_, errRes = f.svc.Pts.NewPt(ctx, &forms.PtListForm{
		Semester: f.semester,
		Title:    "PT2",
		Structure: []forms.PtPartForm{{
			Title:     "A",
			MaxMark:   ptr(5.0),
			Questions: []forms.PtQuestionForm{{Number: 1, Option: "create"}},
		}},
	}, f.user)
	requireStatus(t, http.StatusBadRequest, errRes)

	_, errRes = f.svc.Pts.NewPt(ctx, &forms.PtListForm{
		Semester: f.semester,
		Title:    "PT3",
		Structure: []forms.PtPartForm{{
			Title:   "A",
			MaxMark: ptr(5.0),
			Questions: []forms.PtQuestionForm{
				{Number: 1, Option: "apply"},
				{Number: 1, Option: "understand"},
			},
		}},
	}, f.user)
	requireStatus(t, http.StatusBadRequest, errRes)
}

func TestSeeListIsUniquePerSemester(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	see := f.newSee(t)

	_, errRes := f.svc.Sees.NewSee(ctx, &forms.SeeListForm{
		Semester: f.semester,
		Title:    "SEE again",
		Courses:  []string{"apply"},
	}, f.user)
	requireStatus(t, http.StatusConflict, errRes)

	student, errRes := f.svc.Sees.UpdateScore(ctx, &forms.SeeScoreForm{Rollno: "R1", Course: "apply", Score: ptr(40.0)}, f.user, see)
	requireOK(t, errRes)
	assert.Equal(t, 40.0, student.Scores["apply"])

	_, errRes = f.svc.Sees.UpdateScore(ctx, &forms.SeeScoreForm{Rollno: "R1", Course: "create", Score: ptr(1.0)}, f.user, see)
	requireStatus(t, http.StatusBadRequest, errRes)
}

func TestSheetRosterEdits(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	course := f.newCourse(t, "Quiz1", []string{"Q1"})

	requireOK(t, f.svc.Courses.AddStudent(ctx, &forms.StudentForm{Rollno: "R3", Name: "Carol"}, f.user, course))
	requireStatus(t, http.StatusConflict, f.svc.Courses.AddStudent(ctx, &forms.StudentForm{Rollno: "R3", Name: "Carol"}, f.user, course))
	requireOK(t, f.svc.Courses.DeleteStudent(ctx, f.user, course, "R3"))
	requireStatus(t, http.StatusNotFound, f.svc.Courses.DeleteStudent(ctx, f.user, course, "R3"))

	list, errRes := f.svc.Courses.GetCourse(ctx, f.user, course)
	requireOK(t, errRes)
	assert.Len(t, list.Students, 2)
}

func TestDeleteSemesterCascades(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	course := f.newCourse(t, "Quiz1", []string{"Q1"})
	pt := f.newPt(t, "PT1")
	see := f.newSee(t)

	requireOK(t, f.svc.Semesters.DeleteSemester(ctx, f.user, f.semester))

	_, errRes := f.svc.Courses.GetCourse(ctx, f.user, course)
	requireStatus(t, http.StatusNotFound, errRes)
	_, errRes = f.svc.Pts.GetPt(ctx, f.user, pt)
	requireStatus(t, http.StatusNotFound, errRes)
	_, errRes = f.svc.Sees.GetSee(ctx, f.user, see)
	requireStatus(t, http.StatusNotFound, errRes)

	_, errRes = f.svc.Batches.GetBatch(ctx, f.user, f.batch)
	requireOK(t, errRes)
	_, errRes = f.svc.Namelists.GetNamelist(ctx, f.user, f.namelist)
	requireOK(t, errRes)
}

func TestDeleteBatchCascades(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	course := f.newCourse(t, "Quiz1", []string{"Q1"})
	pt := f.newPt(t, "PT1")
	see := f.newSee(t)

	requireOK(t, f.svc.Batches.DeleteBatch(ctx, f.user, f.batch))

	_, errRes := f.svc.Batches.GetBatch(ctx, f.user, f.batch)
	requireStatus(t, http.StatusNotFound, errRes)
	_, errRes = f.svc.Namelists.GetNamelist(ctx, f.user, f.namelist)
	requireStatus(t, http.StatusNotFound, errRes)
	_, errRes = f.svc.Semesters.GetSemester(ctx, f.user, f.semester)
	requireStatus(t, http.StatusNotFound, errRes)
	_, errRes = f.svc.Courses.GetCourse(ctx, f.user, course)
	requireStatus(t, http.StatusNotFound, errRes)
	_, errRes = f.svc.Pts.GetPt(ctx, f.user, pt)
	requireStatus(t, http.StatusNotFound, errRes)
	_, errRes = f.svc.Sees.GetSee(ctx, f.user, see)
	requireStatus(t, http.StatusNotFound, errRes)

	batchID, _ := primitive.ObjectIDFromHex(f.batch)
	userID, _ := primitive.ObjectIDFromHex(f.user)
	hits, err := f.repos.Students.Search(ctx, userID, batchID, "alice")
	require.NoError(t, err)
	assert.Empty(t, hits)

	requireStatus(t, http.StatusNotFound, f.svc.Batches.DeleteBatch(ctx, f.user, f.batch))
}

func TestSheetEventsArePublished(t *testing.T) {
	f := newFixture(t, nil)
	f.newCourse(t, "Quiz1", []string{"Q1"})

	subjects := f.publisher.subjects()
	require.NotEmpty(t, subjects)
	last := f.publisher.messages[len(f.publisher.messages)-1]
	var event res.SheetEvent
	require.NoError(t, json.Unmarshal(last.data, &event))
	assert.Equal(t, res.COURSE_SHEET, event.Kind)
	assert.Equal(t, res.CREATED, event.Action)
	assert.Equal(t, f.semester, event.Semester)
}

type failingPublisher struct{}

func (failingPublisher) PublishEncode(string, interface{}) error {
	return errors.New("broker down")
}

func TestPublisherFailureDoesNotFailWrites(t *testing.T) {
	repos := inmem.NewRepositories()
	svc := New(Dependencies{
		Repos:     repos,
		Auth:      NewAuthService("test-secret", time.Hour),
		Publisher: failingPublisher{},
	})
	_, user, errRes := svc.Users.Signup(context.Background(), &forms.SignupForm{Email: "b@x.com", Password: "secret123"})
	requireOK(t, errRes)

	_, errRes = svc.Batches.NewBatch(context.Background(), &forms.TitleForm{Title: "2024"}, user.ID.Hex())
	requireOK(t, errRes)
}

type memoryFiles struct {
	objects map[string][]byte
}

func (m *memoryFiles) UploadFile(_ context.Context, key, _ string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memoryFiles) PresignGet(key string) (string, error) {
	return "https://files.test/" + key, nil
}
