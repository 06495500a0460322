package services

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func studentsXlsx(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	file := excelize.NewFile()
	header := []interface{}{"Registration", "Rollno", "Name"}
	require.NoError(t, file.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		row := row
		require.NoError(t, file.SetSheetRow("Sheet1", cell, &row))
	}
	var buffer bytes.Buffer
	require.NoError(t, file.Write(&buffer))
	return &buffer
}

func TestReadStudentsXlsx(t *testing.T) {
	students, err := ReadStudentsXlsx(studentsXlsx(t,
		[]interface{}{"4NI010", " R10 ", "Dan"},
		[]interface{}{"", "", ""},
		[]interface{}{nil, "R11", "Eve"},
	))
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "R10", students[0].Rollno)
	assert.Equal(t, "4NI010", students[0].RegistrationNo)
	assert.Equal(t, "Eve", students[1].Name)

	_, err = ReadStudentsXlsx(studentsXlsx(t, []interface{}{"4NI012", "R12", ""}))
	assert.Error(t, err)

	_, err = ReadStudentsXlsx(bytes.NewBufferString("not a spreadsheet"))
	assert.Error(t, err)
}

func TestReadStudentsXlsxLimits(t *testing.T) {
	_, err := ReadStudentsXlsx(studentsXlsx(t,
		[]interface{}{"4NI010", "R10", "Dan"},
		[]interface{}{"4NI011", strings.Repeat("R", 51), "Eve"},
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")

	_, err = ReadStudentsXlsx(studentsXlsx(t, []interface{}{"4NI012", "R12", strings.Repeat("n", 151)}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")

	students, err := ReadStudentsXlsx(studentsXlsx(t, []interface{}{"4NI013", strings.Repeat("R", 50), strings.Repeat("n", 150)}))
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestImportStudentsRejectsLongValues(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, errRes := f.svc.Namelists.ImportStudents(ctx, studentsXlsx(t,
		[]interface{}{"4NI010", "R10", strings.Repeat("n", 151)},
	), f.user, f.namelist)
	requireStatus(t, http.StatusBadRequest, errRes)

	namelist, errRes := f.svc.Namelists.GetNamelist(ctx, f.user, f.namelist)
	requireOK(t, errRes)
	assert.Len(t, namelist.Students, 2)
}

func TestImportStudents(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	count, errRes := f.svc.Namelists.ImportStudents(ctx, studentsXlsx(t,
		[]interface{}{"4NI010", "R10", "Dan"},
		[]interface{}{"4NI011", "R11", "Eve"},
	), f.user, f.namelist)
	requireOK(t, errRes)
	assert.Equal(t, 2, count)

	namelist, errRes := f.svc.Namelists.GetNamelist(ctx, f.user, f.namelist)
	requireOK(t, errRes)
	assert.Len(t, namelist.Students, 4)

	_, errRes = f.svc.Namelists.ImportStudents(ctx, studentsXlsx(t,
		[]interface{}{"4NI010", "R10", "Dan"},
	), f.user, f.namelist)
	requireStatus(t, http.StatusConflict, errRes)
}
