package forms

type StudentForm struct {
	Rollno string `json:"rollno" binding:"required,max=50" example:"R1"`
	Name   string `json:"name" binding:"required,max=150" example:"Alice"`
}

// Course list
type CoListForm struct {
	Semester  string             `json:"semester_id" binding:"required,objectid" example:"637d5de216f58bc8ec7f7f51"`
	Namelist  string             `json:"namelist_id" binding:"omitempty,objectid"`
	Title     string             `json:"title" binding:"required,min=1,max=100" example:"Quiz1"`
	Rows      []string           `json:"rows" binding:"omitempty,unique,dive,max=50,mongokey"`
	Structure map[string]float64 `json:"structure" binding:"omitempty,dive,keys,max=50,mongokey,endkeys,min=0,max=100000"`
}

type CoScoreForm struct {
	Assignment string   `json:"assignment" binding:"required" example:"Q1"`
	Score      *float64 `json:"score" binding:"required,min=0,max=100000" example:"8"`
	Rollno     string   `json:"rollno" binding:"required" example:"R1"`
}

type RowForm struct {
	Row     string   `json:"row" binding:"required,max=50,mongokey" example:"Q3"`
	MaxMark *float64 `json:"maxMark" binding:"omitempty,min=0,max=100000" example:"10"`
}

// Periodic test
type PtQuestionForm struct {
	Number int    `json:"number" binding:"required,min=1" example:"1"`
	Option string `json:"option" binding:"required,max=50,mongokey" example:"understand"`
}

type PtPartForm struct {
	Title     string           `json:"title" binding:"required,max=100" example:"Part A"`
	MaxMark   *float64         `json:"maxMark" binding:"required,gt=0,max=100000" example:"5"`
	Questions []PtQuestionForm `json:"questions" binding:"required,min=1,dive"`
}

type PtListForm struct {
	Semester  string       `json:"semester_id" binding:"required,objectid" example:"637d5de216f58bc8ec7f7f51"`
	Namelist  string       `json:"namelist_id" binding:"omitempty,objectid"`
	Title     string       `json:"title" binding:"required,min=1,max=100" example:"PT1"`
	Structure []PtPartForm `json:"structure" binding:"required,min=1,dive"`
}

type PtScoreForm struct {
	Rollno   string   `json:"rollno" binding:"required" example:"R1"`
	Part     *int     `json:"part" binding:"required,min=0" example:"0"`
	Question int      `json:"question" binding:"required,min=1" example:"1"`
	Mark     *float64 `json:"mark" binding:"required,min=0,max=100000" example:"4"`
}

// Semester end exam
type SeeListForm struct {
	Semester string   `json:"semester_id" binding:"required,objectid" example:"637d5de216f58bc8ec7f7f51"`
	Namelist string   `json:"namelist_id" binding:"omitempty,objectid"`
	Title    string   `json:"title" binding:"required,min=1,max=100" example:"SEE"`
	Courses  []string `json:"courses" binding:"required,min=1,unique,dive,max=50,mongokey"`
}

type SeeScoreForm struct {
	Rollno string   `json:"rollno" binding:"required" example:"R1"`
	Course string   `json:"course" binding:"required" example:"understand"`
	Score  *float64 `json:"score" binding:"required,min=0,max=100000" example:"40"`
}
