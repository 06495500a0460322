package controllers

import (
	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/gin-gonic/gin"
)

// Name lists, semesters and mark sheets
type SheetController struct {
	namelists *services.NamelistService
	semesters *services.SemesterService
	courses   *services.CoListService
	pts       *services.PtListService
	sees      *services.SeeListService
}

func NewSheetController(svc *services.Services) *SheetController {
	return &SheetController{
		namelists: svc.Namelists,
		semesters: svc.Semesters,
		courses:   svc.Courses,
		pts:       svc.Pts,
		sees:      svc.Sees,
	}
}

// GetNamelist godoc
// @Summary  Get namelist
// @Tags     namelists
// @Produce  json
// @Param    idNamelist path     string true "MongoID"
// @Success  200        {object} res.Response{body=smaps.NamelistMap}
// @Failure  404        {object} res.Response{} "namelist not found"
// @Router   /namelists/{idNamelist} [get]
func (s *SheetController) GetNamelist(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	namelist, err := s.namelists.GetNamelist(c.Request.Context(), claims.ID, c.Param("idNamelist"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "namelist", namelist)
}

// GetSemester godoc
// @Summary     Get semester
// @Description Get a semester with the titles of its sheets
// @Tags        semesters
// @Produce     json
// @Param       idSemester path     string true "MongoID"
// @Success     200        {object} res.Response{body=smaps.SemesterMap}
// @Failure     404        {object} res.Response{} "semester not found"
// @Router      /semesters/{idSemester} [get]
func (s *SheetController) GetSemester(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	semester, err := s.semesters.GetSemester(c.Request.Context(), claims.ID, c.Param("idSemester"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "semester", semester)
}

func (s *SheetController) GetCourses(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	courses, err := s.courses.GetCourses(c.Request.Context(), claims.ID, c.Param("idSemester"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "courses", courses)
}

// GetCourse godoc
// @Summary  Get course list
// @Tags     courses
// @Produce  json
// @Param    idList path     string true "MongoID"
// @Success  200    {object} res.Response{body=smaps.CoListMap}
// @Failure  404    {object} res.Response{} "course list not found"
// @Router   /courses/{idList} [get]
func (s *SheetController) GetCourse(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	course, err := s.courses.GetCourse(c.Request.Context(), claims.ID, c.Param("idList"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "course", course)
}

func (s *SheetController) GetPts(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	pts, err := s.pts.GetPts(c.Request.Context(), claims.ID, c.Param("idSemester"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "pts", pts)
}

// GetPt godoc
// @Summary  Get periodic test
// @Tags     pts
// @Produce  json
// @Param    idList path     string true "MongoID"
// @Success  200    {object} res.Response{body=smaps.PtListMap}
// @Router   /pts/{idList} [get]
func (s *SheetController) GetPt(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	pt, err := s.pts.GetPt(c.Request.Context(), claims.ID, c.Param("idList"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "pt", pt)
}

func (s *SheetController) GetSees(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	sees, err := s.sees.GetSees(c.Request.Context(), claims.ID, c.Param("idSemester"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "sees", sees)
}

func (s *SheetController) GetSee(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	see, err := s.sees.GetSee(c.Request.Context(), claims.ID, c.Param("idList"))
	if err != nil {
		app.AbortWithError(c, err)
		return
	}
	body(c, "see", see)
}
