package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/court-survey/controllers"
	"github.com/vnkhanh/court-survey/middleware"
	"github.com/vnkhanh/court-survey/utils"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)

	// link trong mã QR: <PUBLIC_BASE_URL>/survey-page/?kbju_code=...
	r.GET(utils.SurveyPagePath, controllers.GetSurveyPage)

	api := r.Group("/api")
	{
		courts := api.Group("/courts")
		{
			courts.POST("", controllers.CreateCourt)
			courts.GET("", controllers.ListCourts)
			courts.GET("/:id", middleware.LoadCourt(), controllers.GetCourt)
			courts.PUT("/:id", middleware.LoadCourt(), controllers.UpdateCourt)
			courts.DELETE("/:id", middleware.LoadCourt(), controllers.DeleteCourt)
			courts.POST("/:id/qr", middleware.LoadCourt(), controllers.GenerateCourtQR)
			courts.GET("/:id/qr.png", middleware.LoadCourt(), controllers.GetCourtQRImage)
		}

		// đích của link trong mã QR
		api.GET("/survey-page", controllers.GetSurveyPage)

		surveys := api.Group("/surveys")
		{
			surveys.POST("", controllers.CreateSurvey)
			surveys.GET("", controllers.ListSurveys)
			surveys.GET("/:id", middleware.LoadSurvey(), controllers.GetSurveyDetail)
			surveys.PUT("/:id", middleware.LoadSurvey(), controllers.UpdateSurvey)
			surveys.DELETE("/:id", middleware.LoadSurvey(), controllers.DeleteSurvey)

			surveys.PUT("/:id/courts", middleware.LoadSurvey(), controllers.ReplaceSurveyCourts)
			surveys.POST("/:id/courts/:court_id", middleware.LoadSurvey(), controllers.AttachCourt)
			surveys.DELETE("/:id/courts/:court_id", middleware.LoadSurvey(), controllers.DetachCourt)

			surveys.POST("/:id/questions", middleware.LoadSurvey(), controllers.AddQuestion)

			surveys.POST("/:id/responses", middleware.RateLimitSubmissions(), middleware.LoadSurvey(), controllers.SubmitResponse)
			surveys.GET("/:id/responses", middleware.LoadSurvey(), controllers.ListResponses)
			surveys.GET("/:id/summary", middleware.LoadSurvey(), controllers.GetSurveySummary)
			surveys.POST("/:id/export", middleware.LoadSurvey(), controllers.CreateExport)
		}

		api.PUT("/questions/:id", middleware.LoadQuestion(), controllers.UpdateQuestion)
		api.DELETE("/questions/:id", middleware.LoadQuestion(), controllers.DeleteQuestion)
		api.POST("/questions/:id/options", middleware.LoadQuestion(), controllers.AddAnswerOption)
		api.DELETE("/options/:id", middleware.LoadAnswerOption(), controllers.DeleteAnswerOption)

		api.GET("/responses/:id", middleware.LoadResponse(), controllers.GetResponseDetail)
		api.DELETE("/responses/:id", middleware.LoadResponse(), controllers.DeleteResponse)

		api.GET("/exports/:job_id", controllers.GetExport)
	}
}
