package server

import (
	"context"

	"github.com/CPU-commits/Intranet_BAttainment/app"
	"github.com/CPU-commits/Intranet_BAttainment/middlewares"
	controllers_query "github.com/CPU-commits/Intranet_BAttainment/query/controllers"
	"github.com/CPU-commits/Intranet_BAttainment/query/docs"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/CPU-commits/Intranet_BAttainment/settings"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Read routes
func Routes(router *gin.Engine, svc *services.Services) {
	private := router.Group(app.API_PREFIX, middlewares.JWTMiddleware(svc.Auth))
	{
		// Init controllers
		userController := controllers_query.NewUserController(svc)
		batchController := controllers_query.NewBatchController(svc)
		sheetController := controllers_query.NewSheetController(svc)
		attainmentController := controllers_query.NewAttainmentController(svc)
		// Define routes
		// Users
		private.GET("/users/:email", userController.GetUser)
		private.GET("/cotypes", userController.GetCotypes)
		// Batches
		private.GET("/batches", batchController.GetBatches)
		private.GET("/batches/:idBatch", batchController.GetBatch)
		private.GET("/batches/:idBatch/namelists", batchController.GetNamelists)
		private.GET("/batches/:idBatch/semesters", batchController.GetSemesters)
		private.GET("/batches/:idBatch/students", batchController.SearchStudents)
		// Namelists and semesters
		private.GET("/namelists/:idNamelist", sheetController.GetNamelist)
		private.GET("/semesters/:idSemester", sheetController.GetSemester)
		private.GET("/semesters/:idSemester/courses", sheetController.GetCourses)
		private.GET("/semesters/:idSemester/pts", sheetController.GetPts)
		private.GET("/semesters/:idSemester/sees", sheetController.GetSees)
		// Sheets
		private.GET("/courses/:idList", sheetController.GetCourse)
		private.GET("/pts/:idList", sheetController.GetPt)
		private.GET("/sees/:idList", sheetController.GetSee)
		// Attainment
		private.GET("/attainment/:idBatch/:idSemester", attainmentController.GetAttainment)
		private.GET("/attainment/:idBatch/:idSemester/export", attainmentController.ExportAttainment)
	}
}

// Swagger UI and doc.json of the read API
func Docs(router *gin.Engine, host string) {
	docs.SwaggerInfo.BasePath = app.API_PREFIX
	docs.SwaggerInfo.Host = host
	router.GET(app.API_PREFIX+"/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func Init() {
	logger := app.NewLogger()
	defer logger.Sync()
	settingsData := settings.GetSettings()

	stack, err := app.Bootstrap(context.Background())
	if err != nil {
		logger.Fatal("bootstrap", zap.Error(err))
	}
	if stack.Nats != nil {
		if _, err := SubscribeAttainment(stack.Nats, stack.Services); err != nil {
			logger.Warn("attainment.get not served", zap.Error(err))
		}
	}
	router := app.NewRouter(app.RouterConfig{
		Logger:    logger,
		ClientURL: settingsData.CLIENT_URL,
		RateLimit: settingsData.RATE_LIMIT,
	})
	Routes(router, stack.Services)
	Docs(router, "localhost:"+settingsData.PORT)
	// Init server
	if err := app.Run(router, settingsData.PORT, stack.Close); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
