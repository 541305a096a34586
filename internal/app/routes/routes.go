package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/coachcenter/internal/app/controllers"
	"github.com/yigit/coachcenter/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	pdfController *controllers.PdfController,
	courseController *controllers.CourseController,
	classSubjectController *controllers.ClassSubjectController,
	systemController *controllers.SystemController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/", systemController.Banner)
	router.GET("/health", systemController.Health)
	router.GET("/get-location", systemController.GetLocation)

	// Public drive ingestion, kept at its historical path.
	router.POST("/haha/upload", pdfController.UploadToDrive)

	api := router.Group("/api")

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.RequireAdmin())
	{
		authenticated.GET("/auth/me", authController.Me)
		authenticated.GET("/auth/logout", authController.Logout)

		pdfs := authenticated.Group("/pdfs")
		{
			pdfs.POST("", pdfController.UploadPdf)
			pdfs.GET("", pdfController.GetAllPdfs)
			pdfs.GET("/:id", pdfController.GetPdf)
			pdfs.PUT("/:id", pdfController.UpdatePdf)
			pdfs.DELETE("/:id", pdfController.DeletePdf)
		}

		courses := authenticated.Group("/courses")
		{
			courses.POST("", courseController.CreateCourse)
			courses.GET("", courseController.GetAllCourses)
			courses.GET("/:id", courseController.GetCourse)
			courses.PUT("/:id", courseController.UpdateCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)
		}

		classSubjects := authenticated.Group("/class-subjects")
		{
			classSubjects.POST("", classSubjectController.CreateClassSubject)
			classSubjects.GET("", classSubjectController.GetAllClassSubjects)
			classSubjects.GET("/:id", classSubjectController.GetClassSubject)
			classSubjects.PUT("/:id", classSubjectController.UpdateClassSubject)
			classSubjects.DELETE("/:id", classSubjectController.DeleteClassSubject)

			classSubjects.POST("/:id/subjects", classSubjectController.AddSubject)
			classSubjects.PUT("/:id/subjects/:subjectId", classSubjectController.UpdateSubject)
			classSubjects.DELETE("/:id/subjects/:subjectId", classSubjectController.DeleteSubject)
		}
	}
}
