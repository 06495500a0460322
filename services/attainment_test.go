package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/CPU-commits/Intranet_BAttainment/stack"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptStudent(rollno, name string, typemark models.Scores) models.PtStudent {
	return models.PtStudent{Rollno: rollno, Name: name, Typemark: typemark}
}

func TestComputeAttainment(t *testing.T) {
	sees := []models.SeeList{{
		Courses: []string{"understand", "apply"},
		Students: []models.SeeStudent{
			{Rollno: "R2", Name: "Bob", Scores: models.Scores{"understand": 30, "apply": 20}},
			{Rollno: "R1", Name: "Alice", Scores: models.Scores{"understand": 40}},
		},
	}}
	pts := []models.PtList{
		{Title: "PT1", Students: []models.PtStudent{
			ptStudent("R1", "Alice", models.Scores{"understand": 4}),
			ptStudent("R3", "Carol", models.Scores{"understand": 3}),
		}},
		{Title: "PT2", Students: []models.PtStudent{
			ptStudent("R1", "Alice", models.Scores{"understand": 6}),
		}},
	}
	courses := []models.CoList{{
		Title: "Quiz1",
		Students: []models.CoStudent{
			{Rollno: "R1", Name: "Alice", AverageScore: 4},
		},
	}}

	attainments := ComputeAttainment(sees, pts, courses)
	require.Len(t, attainments, 3)
	assert.Equal(t, "R1", attainments[0].Rollno)
	assert.Equal(t, "R2", attainments[1].Rollno)
	assert.Equal(t, "R3", attainments[2].Rollno)

	alice := attainments[0]
	assert.Equal(t, 40.0, alice.Skills["understand"].See)
	assert.Equal(t, models.Scores{"PT1": 4, "PT2": 6}, alice.Skills["understand"].Pt)
	assert.Equal(t, 5.0, alice.Skills["understand"].Cie)
	assert.Zero(t, alice.Skills["apply"].See)
	assert.Zero(t, alice.Skills["apply"].Cie)
	assert.Equal(t, models.Scores{"Quiz1": 4}, alice.Courses)

	bob := attainments[1]
	assert.Equal(t, 20.0, bob.Skills["apply"].See)
	assert.Empty(t, bob.Courses)

	carol := attainments[2]
	assert.Equal(t, "Carol", carol.Name)
	assert.Equal(t, 3.0, carol.Skills["understand"].Cie)
	assert.NotNil(t, carol.Courses)

	skills, labels := AttainmentLabels(attainments)
	assert.Equal(t, []string{"apply", "understand"}, skills)
	assert.Equal(t, []string{"Quiz1"}, labels)
}

func TestComputeAttainmentRoundsHalfUp(t *testing.T) {
	pts := []models.PtList{
		{Title: "PT1", Students: []models.PtStudent{ptStudent("R1", "Alice", models.Scores{"apply": 2})}},
		{Title: "PT2", Students: []models.PtStudent{ptStudent("R1", "Alice", models.Scores{"apply": 3})}},
	}
	attainments := ComputeAttainment(nil, pts, nil)
	require.Len(t, attainments, 1)
	assert.Equal(t, 3.0, attainments[0].Skills["apply"].Cie)

	assert.NotNil(t, ComputeAttainment(nil, nil, nil))
}

// R1 scores 4 and 6 on understand across two periodic tests
func (f *fixture) markedSemester(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for i, mark := range []float64{4, 6} {
		pt := f.newPt(t, []string{"PT1", "PT2"}[i])
		_, errRes := f.svc.Pts.UpdateScore(ctx, &forms.PtScoreForm{
			Rollno:   "R1",
			Part:     ptr(0),
			Question: 1,
			Mark:     ptr(mark - 1),
		}, f.user, pt)
		requireOK(t, errRes)
		_, errRes = f.svc.Pts.UpdateScore(ctx, &forms.PtScoreForm{
			Rollno:   "R1",
			Part:     ptr(1),
			Question: 1,
			Mark:     ptr(1.0),
		}, f.user, pt)
		requireOK(t, errRes)
	}
	see := f.newSee(t)
	_, errRes := f.svc.Sees.UpdateScore(ctx, &forms.SeeScoreForm{Rollno: "R1", Course: "understand", Score: ptr(40.0)}, f.user, see)
	requireOK(t, errRes)

	course := f.newCourse(t, "Quiz1", []string{"Q1", "Q2"})
	_, errRes = f.svc.Courses.UpdateScore(ctx, &forms.CoScoreForm{Assignment: "Q1", Score: ptr(8.0), Rollno: "R1"}, f.user, course)
	requireOK(t, errRes)
}

func TestGetAttainment(t *testing.T) {
	f := newFixture(t, nil)
	f.markedSemester(t)

	attainments, errRes := f.svc.Attainment.GetAttainment(context.Background(), f.user, f.batch, f.semester)
	requireOK(t, errRes)
	require.Len(t, attainments, 2)

	alice := attainments[0]
	assert.Equal(t, "R1", alice.Rollno)
	assert.Equal(t, 40.0, alice.Skills["understand"].See)
	assert.Equal(t, 5.0, alice.Skills["understand"].Cie)
	assert.Equal(t, 4.0, alice.Courses["Quiz1"])
	assert.Zero(t, attainments[1].Skills["understand"].Cie)
}

func TestGetAttainmentChecksOwnership(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, errRes := f.svc.Attainment.GetAttainment(ctx, f.user, "bad", f.semester)
	requireStatus(t, http.StatusBadRequest, errRes)
	_, errRes = f.svc.Attainment.GetAttainment(ctx, f.user, f.batch, "bad")
	requireStatus(t, http.StatusBadRequest, errRes)
	_, errRes = f.svc.Attainment.GetAttainment(ctx, primitive.NewObjectID().Hex(), f.batch, f.semester)
	requireStatus(t, http.StatusNotFound, errRes)

	other, errRes := f.svc.Batches.NewBatch(ctx, &forms.TitleForm{Title: "2025"}, f.user)
	requireOK(t, errRes)
	_, errRes = f.svc.Attainment.GetAttainment(ctx, f.user, other.Hex(), f.semester)
	requireStatus(t, http.StatusNotFound, errRes)
}

func TestExportFormats(t *testing.T) {
	f := newFixture(t, nil)
	f.markedSemester(t)
	ctx := context.Background()

	var xlsx bytes.Buffer
	requireOK(t, f.svc.Attainment.Export(ctx, XLSX_FORMAT, f.user, f.batch, f.semester, &xlsx))
	file, err := excelize.OpenReader(&xlsx)
	require.NoError(t, err)
	rows, err := file.GetRows("Attainment")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Rollno", "Name", "apply SEE", "apply CIE", "understand SEE", "understand CIE", "Quiz1"}, rows[0])
	assert.Equal(t, "R1", rows[1][0])
	assert.Equal(t, "5", rows[1][5])
	props, err := file.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "Co-attainment report Sem1", props.Title)

	var pdf bytes.Buffer
	requireOK(t, f.svc.Attainment.Export(ctx, PDF_FORMAT, f.user, f.batch, f.semester, &pdf))
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF")))

	var archive bytes.Buffer
	requireOK(t, f.svc.Attainment.Export(ctx, ZIP_FORMAT, f.user, f.batch, f.semester, &archive))
	reader, err := zip.NewReader(bytes.NewReader(archive.Bytes()), int64(archive.Len()))
	require.NoError(t, err)
	names := make([]string, 0, len(reader.File))
	for _, entry := range reader.File {
		names = append(names, entry.Name)
	}
	assert.ElementsMatch(t, []string{"attainment.xlsx", "attainment.pdf"}, names)

	var untouched bytes.Buffer
	requireStatus(t, http.StatusBadRequest, f.svc.Attainment.Export(ctx, "csv", f.user, f.batch, f.semester, &untouched))
	requireStatus(t, http.StatusNotFound, f.svc.Attainment.Export(ctx, PDF_FORMAT, f.user, primitive.NewObjectID().Hex(), f.semester, &untouched))
	assert.Zero(t, untouched.Len())
}

type titledBuffer struct {
	bytes.Buffer
	title string
}

func (b *titledBuffer) SetTitle(title string) {
	b.title = title
}

func TestExportTitle(t *testing.T) {
	f := newFixture(t, nil)
	f.markedSemester(t)

	var pdf titledBuffer
	requireOK(t, f.svc.Attainment.Export(context.Background(), PDF_FORMAT, f.user, f.batch, f.semester, &pdf))
	assert.Equal(t, "Co-attainment report Sem1", pdf.title)
	assert.Equal(t, "attainment-Sem1.pdf", ReportFileName(pdf.title, PDF_FORMAT))
	assert.Equal(t, "attainment-Sem_1_2024_.xlsx", ReportFileName("Co-attainment report Sem 1/2024\"", XLSX_FORMAT))
}

func TestPublishWithoutStorage(t *testing.T) {
	f := newFixture(t, nil)

	_, errRes := f.svc.Attainment.Publish(context.Background(), f.user, f.batch, f.semester)
	requireStatus(t, http.StatusServiceUnavailable, errRes)
}

func TestPublish(t *testing.T) {
	files := &memoryFiles{objects: make(map[string][]byte)}
	f := newFixture(t, files)
	f.markedSemester(t)

	report, errRes := f.svc.Attainment.Publish(context.Background(), f.user, f.batch, f.semester)
	requireOK(t, errRes)
	assert.Contains(t, report.Key, "attainment/"+f.batch+"/"+f.semester+"/")
	assert.Equal(t, "https://files.test/"+report.Key, report.URL)
	require.Contains(t, files.objects, report.Key)

	stored := files.objects[report.Key]
	_, err := zip.NewReader(bytes.NewReader(stored), int64(len(stored)))
	require.NoError(t, err)

	last := f.publisher.messages[len(f.publisher.messages)-1]
	assert.Equal(t, stack.ATTAINMENT_PUBLISHED, last.subject)
	var published res.PublishedReport
	require.NoError(t, json.Unmarshal(last.data, &published))
	assert.Equal(t, report.Key, published.Key)
}
