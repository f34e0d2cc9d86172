package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mergington/activities/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	userController *controllers.UserController,
	activityController *controllers.ActivityController,
	registrationController *controllers.RegistrationController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Activity routes
	activities := v1.Group("/activities")
	{
		activities.GET("", activityController.GetAllActivities)
		activities.POST("", activityController.CreateActivity)
		activities.GET("/by-name/:name", activityController.GetActivityByName)
		activities.GET("/:id", activityController.GetActivityByID)
		activities.DELETE("/:id", activityController.DeleteActivity)
		activities.GET("/:id/participants", activityController.GetParticipants)

		// Registration by user id
		activities.POST("/:id/registrations", registrationController.Register)
		activities.DELETE("/:id/registrations/:userId", registrationController.Unregister)

		// Email-based signup flow; creates the user on first contact
		activities.POST("/:id/signup", registrationController.SignUp)
		activities.DELETE("/:id/signup", registrationController.Withdraw)
	}

	// User routes
	users := v1.Group("/users")
	{
		users.GET("", userController.GetAllUsers)
		users.POST("", userController.CreateUser)
		users.GET("/:id", userController.GetUserByID)
		users.PATCH("/:id", userController.UpdateUser)
		users.GET("/:id/activities", userController.GetUserActivities)
	}
}
