package routes

import (
	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/services"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/kataras/iris/v12"
)

// GetItemRoadmap returns the presentation-ready roadmap for one item.
// When the caller holds a confirmed booking on the item, the booking's
// frozen conditions snapshot drives the output instead of the
// program's live conditions.
func GetItemRoadmap(ctx iris.Context) {
	item, program := getItemWithProgram(ctx)
	if item == nil {
		return
	}

	actor := actorFromContext(ctx)
	if !services.CanReadItem(actor, *program, *item, artistHoldsItem(actor, item.ID)) {
		utils.CreateForbidden(ctx)
		return
	}

	booking := findRoadmapBooking(actor, item.ID)

	roadmap := services.BuildRoadmap(*program, *item, booking)

	ctx.JSON(iris.Map{
		"programID": program.ID,
		"itemID":    item.ID,
		"roadmap":   roadmap,
	})
}

// findRoadmapBooking picks the booking whose snapshot should drive the
// roadmap: the caller's own confirmed booking, or for admins the
// item's single confirmed booking. Nil means live conditions.
func findRoadmapBooking(actor services.Actor, itemID uint) *models.Booking {
	var booking models.Booking
	query := storage.DB.Where("item_id = ? AND status = ?", itemID, models.BookingStatusConfirmed)
	if actor.Role != models.RoleAdmin {
		query = query.Where("artist_id = ?", actor.ArtistID)
	}
	res := query.Limit(1).Find(&booking)
	if res.Error != nil || res.RowsAffected == 0 {
		return nil
	}
	return &booking
}
