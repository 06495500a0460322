package server

import (
	"context"

	"github.com/CPU-commits/Intranet_BAttainment/app"
	controllers "github.com/CPU-commits/Intranet_BAttainment/feed/controllers"
	"github.com/CPU-commits/Intranet_BAttainment/middlewares"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/CPU-commits/Intranet_BAttainment/settings"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Mutating routes
func Routes(router *gin.Engine, svc *services.Services) {
	api := router.Group(app.API_PREFIX)
	auth := api.Group("/auth")
	private := api.Group("", middlewares.JWTMiddleware(svc.Auth))
	{
		// Init controllers
		authController := controllers.NewAuthController(svc)
		cotypeController := controllers.NewCotypeController(svc)
		batchController := controllers.NewBatchController(svc)
		namelistController := controllers.NewNamelistController(svc)
		semesterController := controllers.NewSemesterController(svc)
		coListController := controllers.NewCoListController(svc)
		ptListController := controllers.NewPtListController(svc)
		seeListController := controllers.NewSeeListController(svc)
		attainmentController := controllers.NewAttainmentController(svc)
		// Define routes
		// Auth
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		// Cotypes
		private.POST("/cotypes", cotypeController.AddCotype)
		private.DELETE("/cotypes/:cotype", cotypeController.DeleteCotype)
		// Batches
		private.POST("/batches", batchController.NewBatch)
		private.PUT("/batches/:idBatch", batchController.UpdateBatch)
		private.DELETE("/batches/:idBatch", batchController.DeleteBatch)
		// Namelists
		private.POST("/namelists", namelistController.NewNamelist)
		private.PUT("/namelists/:idNamelist", namelistController.UpdateNamelist)
		private.DELETE("/namelists/:idNamelist", namelistController.DeleteNamelist)
		private.POST("/namelists/:idNamelist/students", namelistController.AddStudent)
		private.PUT("/namelists/:idNamelist/students/:rollno", namelistController.UpdateStudent)
		private.DELETE("/namelists/:idNamelist/students/:rollno", namelistController.DeleteStudent)
		private.POST("/namelists/:idNamelist/import", namelistController.ImportStudents)
		// Semesters
		private.POST("/semesters", semesterController.NewSemester)
		private.PUT("/semesters/:idSemester", semesterController.UpdateSemester)
		private.DELETE("/semesters/:idSemester", semesterController.DeleteSemester)
		// Course lists
		private.POST("/courses", coListController.NewCourse)
		private.PUT("/courses/:idList", coListController.UpdateCourse)
		private.DELETE("/courses/:idList", coListController.DeleteCourse)
		private.PUT("/courses/:idList/score", coListController.UpdateScore)
		private.POST("/courses/:idList/rows", coListController.AddRow)
		private.DELETE("/courses/:idList/rows/:row", coListController.DeleteRow)
		private.POST("/courses/:idList/students", coListController.AddStudent)
		private.DELETE("/courses/:idList/students/:rollno", coListController.DeleteStudent)
		// Periodic tests
		private.POST("/pts", ptListController.NewPt)
		private.PUT("/pts/:idList", ptListController.UpdatePt)
		private.DELETE("/pts/:idList", ptListController.DeletePt)
		private.PUT("/pts/:idList/score", ptListController.UpdateScore)
		private.POST("/pts/:idList/students", ptListController.AddStudent)
		private.DELETE("/pts/:idList/students/:rollno", ptListController.DeleteStudent)
		// SEE lists
		private.POST("/sees", seeListController.NewSee)
		private.PUT("/sees/:idList", seeListController.UpdateSee)
		private.DELETE("/sees/:idList", seeListController.DeleteSee)
		private.PUT("/sees/:idList/score", seeListController.UpdateScore)
		private.POST("/sees/:idList/students", seeListController.AddStudent)
		private.DELETE("/sees/:idList/students/:rollno", seeListController.DeleteStudent)
		// Attainment
		private.POST("/attainment/:idBatch/:idSemester/publish", attainmentController.Publish)
	}
}

func Init() {
	logger := app.NewLogger()
	defer logger.Sync()
	settingsData := settings.GetSettings()

	stack, err := app.Bootstrap(context.Background())
	if err != nil {
		logger.Fatal("bootstrap", zap.Error(err))
	}
	router := app.NewRouter(app.RouterConfig{
		Logger:    logger,
		ClientURL: settingsData.CLIENT_URL,
		RateLimit: settingsData.RATE_LIMIT,
	})
	Routes(router, stack.Services)
	// Init server
	if err := app.Run(router, settingsData.PORT, stack.Close); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
