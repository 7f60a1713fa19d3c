package routes

import (
	"encoding/json"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/services"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplyInput struct {
	Message           string `json:"message" validate:"max=2000"`
	OptionLabel       string `json:"optionLabel"`
	OptionAmountCents *int   `json:"optionAmountCents"`
}

// ApplyToItem records an artist's interest in an item. The item must be
// OPEN and its program public and open.
func ApplyToItem(ctx iris.Context) {
	item, program := getItemWithProgram(ctx)
	if item == nil {
		return
	}

	actor := actorFromContext(ctx)
	if !services.CanApplyToItem(actor, *program, *item) {
		utils.CreateForbidden(ctx)
		return
	}

	var input ApplyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existing models.Application
	dup := storage.DB.Where("item_id = ? AND artist_id = ?", item.ID, actor.ArtistID).Limit(1).Find(&existing)
	if dup.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if dup.RowsAffected > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict", "You already applied to this item", ctx)
		return
	}

	application := models.Application{
		ItemID:            item.ID,
		ArtistID:          actor.ArtistID,
		Status:            models.ApplicationStatusPending,
		Message:           input.Message,
		OptionLabel:       input.OptionLabel,
		OptionAmountCents: input.OptionAmountCents,
	}

	if err := storage.DB.Create(&application).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(application)
}

// WithdrawApplication lets an artist withdraw a pending application
func WithdrawApplication(ctx iris.Context) {
	application := getApplicationByID(ctx)
	if application == nil {
		return
	}

	actor := actorFromContext(ctx)
	if actor.Role != models.RoleAdmin && application.ArtistID != actor.ArtistID {
		utils.CreateForbidden(ctx)
		return
	}

	if application.Status != models.ApplicationStatusPending {
		utils.CreateError(iris.StatusConflict, "Conflict", "Only pending applications can be withdrawn", ctx)
		return
	}

	application.Status = models.ApplicationStatusWithdrawn
	storage.DB.Save(application)

	ctx.JSON(application)
}

// GetMyApplications lists the authenticated artist's applications
func GetMyApplications(ctx iris.Context) {
	actor := actorFromContext(ctx)

	var applications []models.Application
	res := storage.DB.
		Preload("Item").
		Preload("Item.Program").
		Where("artist_id = ?", actor.ArtistID).
		Order("created_at DESC").
		Find(&applications)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(applications)
}

// ListItemApplications lists applications on one item (admin only)
func ListItemApplications(ctx iris.Context) {
	item, _ := getItemWithProgram(ctx)
	if item == nil {
		return
	}

	if actorFromContext(ctx).Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	var applications []models.Application
	res := storage.DB.Preload("Artist").Where("item_id = ?", item.ID).Order("created_at ASC").Find(&applications)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(applications)
}

// AcceptApplication confirms an application into a booking (admin
// only). The merged conditions in effect right now are frozen onto the
// booking so later edits never change what was agreed.
func AcceptApplication(ctx iris.Context) {
	if actorFromContext(ctx).Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	application := getApplicationByID(ctx)
	if application == nil {
		return
	}

	if application.Status != models.ApplicationStatusPending {
		utils.CreateError(iris.StatusConflict, "Conflict", "Application is not pending", ctx)
		return
	}

	var item models.ProgramItem
	if err := storage.DB.First(&item, application.ItemID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	var program models.Program
	if err := storage.DB.First(&program, item.ProgramID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	merged := services.MergeConditions(
		services.ParseConditions([]byte(program.Conditions)),
		services.ParseConditions([]byte(program.ConditionsOverride)))
	snapshot, _ := json.Marshal(merged)

	booking := models.Booking{
		ItemID:             application.ItemID,
		ArtistID:           application.ArtistID,
		Status:             models.BookingStatusConfirmed,
		ConditionsSnapshot: datatypes.JSON(snapshot),
		OptionLabel:        application.OptionLabel,
		OptionAmountCents:  application.OptionAmountCents,
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		application.Status = models.ApplicationStatusAccepted
		if err := tx.Save(application).Error; err != nil {
			return err
		}
		// A confirmed item takes no further applications
		item.Status = models.ItemStatusClosed
		return tx.Save(&item).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "application.accept", "application", application.ID, nil, booking)

	notificationService := services.NewNotificationService()
	go notificationService.SendBookingConfirmationToArtist(booking.ID, item.ID, booking.ArtistID, program.Name)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(booking)
}

// DeclineApplication rejects a pending application (admin only)
func DeclineApplication(ctx iris.Context) {
	if actorFromContext(ctx).Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	application := getApplicationByID(ctx)
	if application == nil {
		return
	}

	if application.Status != models.ApplicationStatusPending {
		utils.CreateError(iris.StatusConflict, "Conflict", "Application is not pending", ctx)
		return
	}

	application.Status = models.ApplicationStatusDeclined
	storage.DB.Save(application)
	utils.Audit(ctx, "application.decline", "application", application.ID, nil, application)

	var item models.ProgramItem
	var program models.Program
	if storage.DB.First(&item, application.ItemID).Error == nil {
		storage.DB.First(&program, item.ProgramID)
	}

	notificationService := services.NewNotificationService()
	go notificationService.SendApplicationDeclinedToArtist(application.ID, application.ArtistID, program.Name)

	ctx.JSON(application)
}

func getApplicationByID(ctx iris.Context) *models.Application {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid application id", ctx)
		return nil
	}

	var application models.Application
	if res := storage.DB.First(&application, id); res.Error != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Application not found", ctx)
		return nil
	}

	return &application
}
