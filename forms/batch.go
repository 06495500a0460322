package forms

type TitleForm struct {
	Title string `json:"title" binding:"required,min=1,max=100" example:"2024"`
}

type NameStudentForm struct {
	RegistrationNo string `json:"registration_no" binding:"max=50" example:"4NI20CS001"`
	Rollno         string `json:"rollno" binding:"required,max=50" example:"R1"`
	Name           string `json:"name" binding:"required,max=150" example:"Alice"`
}

type NamelistForm struct {
	Batch    string            `json:"batch_id" binding:"required,objectid" example:"637d5de216f58bc8ec7f7f51"`
	Title    string            `json:"title" binding:"required,min=1,max=100" example:"CSE A"`
	Students []NameStudentForm `json:"students" binding:"omitempty,dive"`
}

type SemesterForm struct {
	Batch    string `json:"batch_id" binding:"required,objectid" example:"637d5de216f58bc8ec7f7f51"`
	Title    string `json:"title" binding:"required,min=1,max=100" example:"Sem1"`
	Namelist string `json:"namelist_id" binding:"omitempty,objectid" example:"637d5de216f58bc8ec7f7f51"`
}

type UpdateSemesterForm struct {
	Title    string `json:"title" binding:"required,min=1,max=100" example:"Sem1"`
	Namelist string `json:"namelist_id" binding:"omitempty,objectid"`
}
