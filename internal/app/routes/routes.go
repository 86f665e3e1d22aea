package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/atauni/internal/app/controllers"
	"github.com/yigit/atauni/internal/middleware"
)

// Controllers groups every handler the router mounts
type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Student *controllers.StudentController
	Record  *controllers.RecordController
	Weather *controllers.WeatherController
	Health  *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/ping", c.Health.Ping)

	api := router.Group("/api")
	api.GET("/health", c.Health.Health)
	api.GET("/weather", c.Weather.GetWeather)

	// --- Staff auth ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.GET("/me", authMiddleware.RequireStaff(), c.Auth.Me)
	}

	// --- Staff user management (admin only) ---
	users := api.Group("/users")
	users.Use(authMiddleware.RequireAdmin())
	{
		users.GET("", c.User.ListUsers)
		users.POST("", c.User.CreateUser)
		users.GET("/:id", c.User.GetUser)
		users.PUT("/:id", c.User.UpdateUser)
		users.DELETE("/:id", c.User.DeleteUser)
	}

	students := api.Group("/students")
	{
		// Public
		students.POST("/register", c.Student.Register)
		students.POST("/login", c.Student.Login)
		students.GET("/:id/grades", c.Record.ListGrades)
		students.GET("/:id/attendance", c.Record.ListAttendance)

		// Student self service
		students.GET("/me", authMiddleware.RequireStudent(), c.Student.Me)

		// Administration
		admin := students.Group("")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.GET("", c.Student.ListStudents)
			admin.GET("/:id", c.Student.GetStudent)
			admin.PUT("/:id", c.Student.UpdateStudent)
			admin.DELETE("/:id", c.Student.DeleteStudent)
			admin.PUT("/:id/approve", c.Student.Approve)
			admin.PUT("/:id/reject", c.Student.Reject)

			admin.POST("/grades", c.Record.CreateGrade)
			admin.PUT("/grades/:id", c.Record.UpdateGrade)
			admin.DELETE("/grades/:id", c.Record.DeleteGrade)

			admin.POST("/attendance", c.Record.CreateAttendance)
			admin.PUT("/attendance/:id", c.Record.UpdateAttendance)
			admin.DELETE("/attendance/:id", c.Record.DeleteAttendance)
		}
	}
}
