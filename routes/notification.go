package routes

import (
	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/services"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// GetMyNotifications lists the authenticated user's inbox, newest first
func GetMyNotifications(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var notifications []models.Notification
	res := storage.DB.
		Where("user_id = ?", claims.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(notifications)
}

// GetUnreadNotificationCount returns the unread badge count
func GetUnreadNotificationCount(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var count int64
	res := storage.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", claims.ID, false).
		Count(&count)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"count": count})
}

// MarkNotificationRead flags one notification as read
func MarkNotificationRead(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid notification id", ctx)
		return
	}

	var notification models.Notification
	if res := storage.DB.First(&notification, id); res.Error != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Notification not found", ctx)
		return
	}
	if notification.UserID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}

	notification.IsRead = true
	storage.DB.Save(&notification)
	ctx.JSON(notification)
}

// MarkAllNotificationsRead flags the whole inbox as read
func MarkAllNotificationsRead(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	res := storage.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", claims.ID, false).
		Update("is_read", true)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"updated": res.RowsAffected})
}

type SendTestNotificationInput struct {
	UserID uint   `json:"userID" validate:"required"`
	Title  string `json:"title" validate:"required,max=200"`
	Body   string `json:"body" validate:"required,max=2000"`
}

// SendTestNotification delivers an arbitrary notification (admin only)
func SendTestNotification(ctx iris.Context) {
	var input SendTestNotificationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	notificationService := services.NewNotificationService()
	err := notificationService.SendNotificationToUser(input.UserID, input.Title, input.Body, services.NotificationData{
		Type:   "admin_test",
		UserID: "admin",
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"sent": true})
}
