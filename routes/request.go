package routes

import (
	"time"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

type CreateRequestInput struct {
	EventDate   string `json:"eventDate" validate:"required"` // YYYY-MM-DD
	Style       string `json:"style" validate:"max=256"`
	BudgetCents int    `json:"budgetCents" validate:"gte=0"`
	Message     string `json:"message" validate:"max=2000"`
}

// CreateRequest records a client's ask for an artist
func CreateRequest(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	if claims.Role != models.RoleClient && claims.Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	var input CreateRequestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	eventDate, parseErr := time.Parse(dateLayout, input.EventDate)
	if parseErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "eventDate must be YYYY-MM-DD", ctx)
		return
	}

	request := models.BookingRequest{
		ClientID:    claims.ID,
		EventDate:   eventDate,
		Style:       input.Style,
		BudgetCents: input.BudgetCents,
		Message:     input.Message,
		Status:      models.RequestStatusOpen,
	}

	if err := storage.DB.Create(&request).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(request)
}

// GetMyRequests lists the authenticated client's requests
func GetMyRequests(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var requests []models.BookingRequest
	res := storage.DB.
		Preload("Proposals").
		Where("client_id = ?", claims.ID).
		Order("created_at DESC").
		Find(&requests)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(requests)
}

// ListRequests lists all requests with pagination (admin only)
func ListRequests(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.BookingRequest{})
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var requests []models.BookingRequest
	res := query.
		Preload("Client").
		Preload("Invitations").
		Preload("Proposals").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&requests)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, requests, page, perPage, total)
}

type UpdateRequestStatusInput struct {
	Status string `json:"status" validate:"required,oneof=open matched closed"`
}

// UpdateRequestStatus moves a request through its lifecycle (admin only)
func UpdateRequestStatus(ctx iris.Context) {
	request := getRequestByID(ctx)
	if request == nil {
		return
	}

	var input UpdateRequestStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := *request
	request.Status = input.Status
	storage.DB.Save(request)

	utils.Audit(ctx, "request.status", "booking_request", request.ID, before, request)
	ctx.JSON(request)
}

func getRequestByID(ctx iris.Context) *models.BookingRequest {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid request id", ctx)
		return nil
	}

	var request models.BookingRequest
	if res := storage.DB.First(&request, id); res.Error != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Request not found", ctx)
		return nil
	}

	return &request
}
