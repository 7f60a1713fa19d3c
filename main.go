package main

import (
	"fmt"
	"log"
	"os"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/routes"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeMedia()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the admin dashboard
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	resetTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("EMAIL_TOKEN_SECRET")))
	resetTokenVerifier.WithDefaultBlocklist()
	resetTokenVerifierMiddleware := resetTokenVerifier.Verify(func() interface{} {
		return new(utils.ForgotPasswordToken)
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/register-phone", routes.RegisterPhone)
		user.Post("/login-phone", routes.LoginPhone)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/apple", routes.AppleLoginOrSignUp)
		user.Post("/forgotpassword", routes.ForgotPassword)
		user.Post("/resetpassword", resetTokenVerifierMiddleware, routes.ResetPassword)
		user.Get("/search", accessTokenVerifierMiddleware, routes.SearchUsers)
		user.Get("/{id}/programs/saved", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUserSavedPrograms)
		user.Patch("/{id}/programs/saved", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AlterUserSavedPrograms)
		user.Patch("/{id}/pushtoken", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AlterPushToken)
		user.Patch("/{id}/settings/notifications", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AllowsNotifications)
		user.Patch("/{id}/profile", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.UpdateUserProfile)
		user.Post("/{id}/press-photos", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.UploadPressPhoto)
		user.Get("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetUser)
		user.Post("/feedback", accessTokenVerifierMiddleware, routes.CreateFeedback)
	}

	program := app.Party("/api/program")
	{
		program.Get("/", accessTokenVerifierMiddleware, routes.ListPrograms)
		program.Post("/", accessTokenVerifierMiddleware, routes.CreateProgram)
		program.Get("/{id:uint}", accessTokenVerifierMiddleware, routes.GetProgram)
		program.Patch("/{id:uint}", accessTokenVerifierMiddleware, routes.UpdateProgram)
		program.Get("/{id:uint}/conditions", accessTokenVerifierMiddleware, routes.GetProgramConditions)
		program.Put("/{id:uint}/conditions", accessTokenVerifierMiddleware, routes.UpdateProgramConditions)
		program.Get("/{id:uint}/items", accessTokenVerifierMiddleware, routes.ListProgramItems)
		program.Post("/{id:uint}/items/date", accessTokenVerifierMiddleware, routes.CreateDateItem)
		program.Post("/{id:uint}/items/weeks", accessTokenVerifierMiddleware, routes.GenerateResidencyWeeks)
	}

	items := app.Party("/api/items", accessTokenVerifierMiddleware)
	{
		items.Get("/{id:uint}", routes.GetProgramItem)
		items.Patch("/{id:uint}", routes.UpdateProgramItem)
		items.Get("/{id:uint}/applications", routes.ListItemApplications)
		items.Post("/{id:uint}/apply", routes.ApplyToItem)
		items.Get("/{id:uint}/roadmap", routes.GetItemRoadmap)
	}

	application := app.Party("/api/application", accessTokenVerifierMiddleware)
	{
		application.Get("/mine", routes.GetMyApplications)
		application.Post("/{id:uint}/withdraw", routes.WithdrawApplication)
		application.Post("/{id:uint}/accept", routes.AcceptApplication)
		application.Post("/{id:uint}/decline", routes.DeclineApplication)
	}

	booking := app.Party("/api/booking", accessTokenVerifierMiddleware)
	{
		booking.Get("/mine", routes.GetMyBookings)
		booking.Get("/{id:uint}", routes.GetBooking)
		booking.Post("/{id:uint}/cancel", routes.CancelBooking)
		booking.Patch("/{id:uint}/option", routes.ChooseBookingOption)
	}

	request := app.Party("/api/request", accessTokenVerifierMiddleware)
	{
		request.Post("/", routes.CreateRequest)
		request.Get("/mine", routes.GetMyRequests)
	}

	invitation := app.Party("/api/invitation")
	{
		invitation.Get("/mine", accessTokenVerifierMiddleware, routes.GetMyInvitations)
		invitation.Get("/token/{token:string}", routes.GetInvitationByToken)
		invitation.Post("/{id:uint}/accept", accessTokenVerifierMiddleware, routes.AcceptInvitation)
		invitation.Post("/{id:uint}/decline", accessTokenVerifierMiddleware, routes.DeclineInvitation)
	}

	proposal := app.Party("/api/proposal", accessTokenVerifierMiddleware)
	{
		proposal.Post("/", routes.CreateProposal)
		proposal.Post("/{id:uint}/counter", routes.CounterProposal)
		proposal.Post("/{id:uint}/accept", routes.AcceptProposal)
		proposal.Post("/{id:uint}/decline", routes.DeclineProposal)
	}

	roadmap := app.Party("/api/roadmap", accessTokenVerifierMiddleware)
	{
		roadmap.Get("/{id:uint}", routes.GetItemRoadmap)
	}

	notifications := app.Party("/api/notifications", accessTokenVerifierMiddleware)
	{
		notifications.Get("/", routes.GetMyNotifications)
		notifications.Get("/unread-count", routes.GetUnreadNotificationCount)
		notifications.Patch("/{id:uint}/read", routes.MarkNotificationRead)
		notifications.Post("/read-all", routes.MarkAllNotificationsRead)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Patch("/users/{id:uint}/role", routes.AdminChangeUserRole)
		admin.Get("/programs", routes.AdminListPrograms)
		admin.Get("/bookings", routes.AdminListBookings)
		admin.Get("/requests", routes.ListRequests)
		admin.Patch("/requests/{id:uint}/status", routes.UpdateRequestStatus)
		admin.Post("/invitations", routes.CreateInvitation)
		admin.Get("/stats", routes.AdminGetStats)
		admin.Get("/activity", routes.AdminGetActivity)
		admin.Get("/audit", routes.AdminListAuditLog)
		admin.Post("/export", routes.AdminStartExport)
		admin.Get("/export/{jobID:string}", routes.AdminGetExport)
		admin.Get("/feedback", routes.AdminListFeedback)
		admin.Post("/notifications/test", routes.SendTestNotification)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
