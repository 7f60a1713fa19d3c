package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/services"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slices"
)

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	role := models.RoleArtist
	if parsed, ok := models.ParseRole(userInput.Role); ok && parsed != models.RoleAdmin {
		role = parsed
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser = models.User{
		FirstName:   userInput.FirstName,
		LastName:    userInput.LastName,
		Email:       strings.ToLower(userInput.Email),
		Password:    hashedPassword,
		Role:        role,
		SocialLogin: false}

	storage.DB.Create(&newUser)

	notificationService := services.NewNotificationService()
	go notificationService.SendWelcomeNotificationToNewUser(newUser.ID, newUser.FirstName)

	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Invalid email or password."
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	if existingUser.SocialLogin {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Social Login Account", ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

func RegisterPhone(ctx iris.Context) {
	var userInput RegisterPhoneInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !utils.ValidatePhoneNumber(userInput.PhoneNumber) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid phone number", ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExistsByPhone(&newUser, userInput.PhoneNumber)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateError(iris.StatusConflict, "Conflict", "Phone number already registered.", ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser = models.User{
		FirstName:   userInput.FirstName,
		LastName:    userInput.LastName,
		PhoneNumber: utils.NormalizePhoneNumber(userInput.PhoneNumber),
		Password:    hashedPassword,
		Role:        models.RoleArtist,
		SocialLogin: false}

	storage.DB.Create(&newUser)

	returnUser(newUser, ctx)
}

func LoginPhone(ctx iris.Context) {
	var userInput LoginPhoneInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Invalid phone number or password."
	userExists, userExistsErr := getAndHandleUserExistsByPhone(&existingUser, userInput.PhoneNumber)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

func GoogleLoginOrSignUp(ctx iris.Context) {
	var userInput GoogleUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	endpoint := "https://www.googleapis.com/oauth2/v3/tokeninfo?access_token=" + userInput.AccessToken
	res, httpErr := http.Get(endpoint)
	if httpErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	defer res.Body.Close()

	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var googleBody GoogleTokenInfo
	if jsonErr := json.Unmarshal(body, &googleBody); jsonErr != nil || googleBody.Email == "" {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid Google token.", ctx)
		return
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, googleBody.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		user = models.User{FirstName: googleBody.GivenName, LastName: googleBody.FamilyName, Email: strings.ToLower(googleBody.Email), Role: models.RoleArtist, SocialLogin: true, SocialProvider: "Google"}
		storage.DB.Create(&user)

		returnUser(user, ctx)
		return
	}

	if user.SocialLogin && user.SocialProvider == "Google" {
		returnUser(user, ctx)
		return
	}

	utils.CreateEmailAlreadyRegistered(ctx)
}

func AppleLoginOrSignUp(ctx iris.Context) {
	var userInput AppleUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	res, httpErr := http.Get("https://appleid.apple.com/auth/keys")
	if httpErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	defer res.Body.Close()

	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	jwks, jwksErr := keyfunc.NewJSON(body)
	// JWKS.Keyfunc selects the key with the matching kid and returns its
	// public key as the correct Go type.
	token, tokenErr := jwt.Parse(userInput.IdentityToken, jwks.Keyfunc)

	if jwksErr != nil || tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !token.Valid {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid user token.", ctx)
		return
	}

	email := fmt.Sprint(token.Claims.(jwt.MapClaims)["email"])
	if email == "" {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid user token.", ctx)
		return
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, email)

	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		user = models.User{FirstName: "", LastName: "", Email: strings.ToLower(email), Role: models.RoleArtist, SocialLogin: true, SocialProvider: "Apple"}
		storage.DB.Create(&user)

		returnUser(user, ctx)
		return
	}

	if user.SocialLogin && user.SocialProvider == "Apple" {
		returnUser(user, ctx)
		return
	}

	utils.CreateEmailAlreadyRegistered(ctx)
}

func ForgotPassword(ctx iris.Context) {
	var emailInput EmailRegisteredInput
	err := ctx.ReadJSON(&emailInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, emailInput.Email)

	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Invalid email.", ctx)
		return
	}

	if user.SocialLogin {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Social Login Account", ctx)
		return
	}

	token, tokenErr := utils.CreateForgotPasswordToken(user.ID, user.Email)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// The reset link is delivered out of band; the token is returned so
	// the mailer worker can compose the message.
	ctx.JSON(iris.Map{"success": true, "token": token})
}

func ResetPassword(ctx iris.Context) {
	var passwordInput ResetPasswordInput
	err := ctx.ReadJSON(&passwordInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	claims := jsonWT.Get(ctx).(*utils.ForgotPasswordToken)

	hashedPassword, hashErr := hashAndSaltPassword(passwordInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var user models.User
	res := storage.DB.Model(&user).Where("id = ?", claims.ID).Update("password", hashedPassword)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

// SearchUsers allows searching users by name or email (auth required)
func SearchUsers(ctx iris.Context) {
	q := ctx.URLParamDefault("q", "")
	limit := ctx.URLParamIntDefault("limit", 20)
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if len(q) < 1 {
		ctx.JSON(iris.Map{"success": true, "users": []interface{}{}})
		return
	}
	var users []models.User
	search := "%" + q + "%"
	storage.DB.Limit(limit).
		Where("lower(first_name) LIKE lower(?) OR lower(last_name) LIKE lower(?) OR lower(stage_name) LIKE lower(?) OR lower(email) LIKE lower(?)", search, search, search, search).
		Select("id, first_name, last_name, stage_name, avatar_url").
		Find(&users)
	ctx.JSON(iris.Map{"success": true, "users": users})
}

func GetUser(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	user := getUserByID(id, ctx)
	if user == nil {
		return
	}

	ctx.JSON(user)
}

func UpdateUserProfile(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	user := getUserByID(id, ctx)
	if user == nil {
		return
	}

	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	if user.ID != claims.ID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	var input UpdateProfileInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Upload avatar if provided
	avatarURL := input.AvatarURL
	if avatarURL != "" && !strings.Contains(avatarURL, "res.cloudinary.com") {
		timestamp := time.Now().UnixNano() / int64(time.Millisecond)
		publicID := fmt.Sprintf("artists/%d/avatar_%d", user.ID, timestamp)
		urlMap := storage.UploadBase64Image(avatarURL, publicID)
		if urlMap != nil && urlMap["url"] != "" {
			avatarURL = urlMap["url"]
		}
	}

	disciplines := input.Disciplines
	if disciplines == nil {
		disciplines = []string{}
	}
	disciplinesJSON, _ := json.Marshal(disciplines)

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.StageName = input.StageName
	user.AvatarURL = avatarURL
	user.Bio = input.Bio
	user.Disciplines = disciplinesJSON

	storage.DB.Save(user)

	ctx.JSON(user)
}

// UploadPressPhoto adds one press photo to the artist's profile
func UploadPressPhoto(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input PressPhotoInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	timestamp := time.Now().UnixNano() / int64(time.Millisecond)
	publicID := fmt.Sprintf("artists/%d/press_%d", user.ID, timestamp)
	urlMap := storage.UploadBase64Image(input.Image, publicID)
	if urlMap == nil || urlMap["url"] == "" {
		utils.CreateInternalServerError(ctx)
		return
	}

	var photos []string
	if user.PressPhotos != nil {
		json.Unmarshal(user.PressPhotos, &photos)
	}
	photos = append(photos, urlMap["url"])
	photosJSON, _ := json.Marshal(photos)
	user.PressPhotos = photosJSON

	storage.DB.Save(&user)

	ctx.JSON(iris.Map{"success": true, "url": urlMap["url"]})
}

func GetUserSavedPrograms(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	user := getUserByID(id, ctx)
	if user == nil {
		return
	}

	if user.SavedPrograms == nil {
		ctx.JSON([]models.Program{})
		return
	}

	var savedIDs []uint
	if err := json.Unmarshal(user.SavedPrograms, &savedIDs); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var programs []models.Program
	storage.DB.Where("id IN ?", savedIDs).Find(&programs)
	ctx.JSON(programs)
}

func AlterUserSavedPrograms(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	user := getUserByID(id, ctx)
	if user == nil {
		return
	}

	var req AlterSavedProgramsInput
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var saved []uint
	if user.SavedPrograms != nil {
		if err := json.Unmarshal(user.SavedPrograms, &saved); err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	switch req.Op {
	case "add":
		if !slices.Contains(saved, req.ProgramID) {
			saved = append(saved, req.ProgramID)
		}
	case "remove":
		if idx := slices.Index(saved, req.ProgramID); idx >= 0 {
			saved = slices.Delete(saved, idx, idx+1)
		}
	default:
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "op must be add or remove", ctx)
		return
	}

	savedJSON, _ := json.Marshal(saved)
	user.SavedPrograms = savedJSON
	storage.DB.Save(user)

	ctx.JSON(user)
}

func AlterPushToken(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	user := getUserByID(id, ctx)
	if user == nil {
		return
	}

	var req AlterPushTokenInput
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var tokens []string
	if user.PushTokens != nil {
		if err := json.Unmarshal(user.PushTokens, &tokens); err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	switch req.Op {
	case "add":
		if !slices.Contains(tokens, req.Token) {
			tokens = append(tokens, req.Token)
		}
	case "remove":
		if idx := slices.Index(tokens, req.Token); idx >= 0 {
			tokens = slices.Delete(tokens, idx, idx+1)
		}
	default:
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "op must be add or remove", ctx)
		return
	}

	tokensJSON, _ := json.Marshal(tokens)
	user.PushTokens = tokensJSON
	storage.DB.Save(user)

	ctx.JSON(user)
}

func AllowsNotifications(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	user := getUserByID(id, ctx)
	if user == nil {
		return
	}

	var req AllowsNotificationsInput
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	user.AllowsNotifications = req.AllowsNotifications
	storage.DB.Save(user)

	ctx.JSON(user)
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(&user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func getAndHandleUserExistsByPhone(user *models.User, phoneNumber string) (exists bool, err error) {
	formattedPhone := utils.NormalizePhoneNumber(phoneNumber)
	userExistsQuery := storage.DB.Where("phone_number = ?", formattedPhone).Limit(1).Find(&user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

func getUserByID(id string, ctx iris.Context) *models.User {
	var user models.User
	userExists := storage.DB.Where("id = ?", id).Find(&user)

	if userExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return nil
	}

	if userExists.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "User not found", ctx)
		return nil
	}

	return &user
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"role":         user.Role,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

type RegisterUserInput struct {
	FirstName string `json:"firstName" validate:"required,max=256"`
	LastName  string `json:"lastName" validate:"required,max=256"`
	Email     string `json:"email" validate:"required,max=256,email"`
	Password  string `json:"password" validate:"required,min=8,max=256"`
	Role      string `json:"role"`
}

type RegisterPhoneInput struct {
	FirstName   string `json:"firstName" validate:"required,max=256"`
	LastName    string `json:"lastName" validate:"required,max=256"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required,min=8,max=256"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginPhoneInput struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type GoogleUserInput struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

type GoogleTokenInfo struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

type AppleUserInput struct {
	IdentityToken string `json:"identityToken" validate:"required"`
}

type EmailRegisteredInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Password string `json:"password" validate:"required,min=8,max=256"`
}

type UpdateProfileInput struct {
	FirstName   string   `json:"firstName" validate:"required,max=256"`
	LastName    string   `json:"lastName" validate:"required,max=256"`
	StageName   string   `json:"stageName" validate:"max=256"`
	Bio         string   `json:"bio" validate:"max=2000"`
	AvatarURL   string   `json:"avatarURL"`
	Disciplines []string `json:"disciplines"`
}

type PressPhotoInput struct {
	Image string `json:"image" validate:"required"`
}

type AlterSavedProgramsInput struct {
	ProgramID uint   `json:"programID" validate:"required"`
	Op        string `json:"op" validate:"required"`
}

type AlterPushTokenInput struct {
	Token string `json:"token" validate:"required"`
	Op    string `json:"op" validate:"required"`
}

type AllowsNotificationsInput struct {
	AllowsNotifications *bool `json:"allowsNotifications" validate:"required"`
}
