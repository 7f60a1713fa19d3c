package routes

import (
	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/services"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/kataras/iris/v12"
)

// GetMyBookings lists the authenticated artist's bookings
func GetMyBookings(ctx iris.Context) {
	actor := actorFromContext(ctx)

	var bookings []models.Booking
	res := storage.DB.
		Preload("Item").
		Preload("Item.Program").
		Where("artist_id = ?", actor.ArtistID).
		Order("created_at DESC").
		Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

// GetBooking returns one booking for its artist or an admin
func GetBooking(ctx iris.Context) {
	booking := getBookingByID(ctx)
	if booking == nil {
		return
	}

	actor := actorFromContext(ctx)
	if !services.CanReadBooking(actor, *booking) {
		utils.CreateForbidden(ctx)
		return
	}

	storage.DB.Preload("Item").Preload("Item.Program").Preload("Artist").First(booking, booking.ID)
	ctx.JSON(booking)
}

// CancelBooking cancels a confirmed booking and reopens the item
func CancelBooking(ctx iris.Context) {
	booking := getBookingByID(ctx)
	if booking == nil {
		return
	}

	actor := actorFromContext(ctx)
	if !services.CanReadBooking(actor, *booking) {
		utils.CreateForbidden(ctx)
		return
	}

	if booking.Status != models.BookingStatusConfirmed {
		utils.CreateError(iris.StatusConflict, "Conflict", "Only confirmed bookings can be cancelled", ctx)
		return
	}

	before := *booking
	booking.Status = models.BookingStatusCancelled
	storage.DB.Save(booking)

	// The slot becomes bookable again
	storage.DB.Model(&models.ProgramItem{}).
		Where("id = ? AND status = ?", booking.ItemID, models.ItemStatusClosed).
		Update("status", models.ItemStatusOpen)

	utils.Audit(ctx, "booking.cancel", "booking", booking.ID, before, booking)
	ctx.JSON(booking)
}

type ChooseOptionInput struct {
	OptionLabel string `json:"optionLabel" validate:"required"`
}

// ChooseBookingOption lets the artist pick one of the per-date fee
// options frozen in the booking's conditions snapshot.
func ChooseBookingOption(ctx iris.Context) {
	booking := getBookingByID(ctx)
	if booking == nil {
		return
	}

	actor := actorFromContext(ctx)
	if !services.CanReadBooking(actor, *booking) {
		utils.CreateForbidden(ctx)
		return
	}

	var input ChooseOptionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	cond := services.ParseConditions([]byte(booking.ConditionsSnapshot))
	if cond.Remuneration == nil || cond.Remuneration.PerDate == nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "Booking has no fee options", ctx)
		return
	}

	for _, option := range cond.Remuneration.PerDate.Options {
		if option.Label == input.OptionLabel {
			amount := option.AmountCents
			booking.OptionLabel = option.Label
			booking.OptionAmountCents = &amount
			storage.DB.Save(booking)
			ctx.JSON(booking)
			return
		}
	}

	utils.CreateError(iris.StatusNotFound, "Not Found", "Option not found in booking conditions", ctx)
}

func getBookingByID(ctx iris.Context) *models.Booking {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid booking id", ctx)
		return nil
	}

	var booking models.Booking
	if res := storage.DB.First(&booking, id); res.Error != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Booking not found", ctx)
		return nil
	}

	return &booking
}
