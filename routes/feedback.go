package routes

import (
	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

type CreateFeedbackInput struct {
	Title      string `json:"title" validate:"max=200"`
	Message    string `json:"message" validate:"required,max=4000"`
	Rating     *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Context    string `json:"context" validate:"max=200"`
	AppVersion string `json:"appVersion" validate:"max=50"`
	DeviceInfo string `json:"deviceInfo" validate:"max=200"`
}

// CreateFeedback stores feedback from the authenticated user
func CreateFeedback(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input CreateFeedbackInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	feedback := models.Feedback{
		UserID:     claims.ID,
		Title:      input.Title,
		Message:    input.Message,
		Rating:     input.Rating,
		Context:    input.Context,
		AppVersion: input.AppVersion,
		DeviceInfo: input.DeviceInfo,
	}

	if err := storage.DB.Create(&feedback).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(feedback)
}

// AdminListFeedback pages through user feedback (admin only)
func AdminListFeedback(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Feedback{})
	if rating := ctx.URLParamIntDefault("rating", 0); rating >= 1 && rating <= 5 {
		query = query.Where("rating = ?", rating)
	}

	var total int64
	query.Count(&total)

	var feedback []models.Feedback
	res := query.
		Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&feedback)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, feedback, page, perPage, total)
}
