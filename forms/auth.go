package forms

type SignupForm struct {
	Email    string `json:"email" binding:"required,email,max=254" example:"a@x.com"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"secret123"`
}

type LoginForm struct {
	Email    string `json:"email" binding:"required,email" example:"a@x.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

type CotypeForm struct {
	Cotype string `json:"cotype" binding:"required,max=50,mongokey" example:"understand"`
}
