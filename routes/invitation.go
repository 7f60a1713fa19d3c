package routes

import (
	"time"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/services"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

const invitationTTL = 14 * 24 * time.Hour

type CreateInvitationInput struct {
	ArtistID  uint   `json:"artistID" validate:"required"`
	RequestID *uint  `json:"requestID"`
	ItemID    *uint  `json:"itemID"`
	Message   string `json:"message" validate:"max=2000"`
}

// CreateInvitation invites an artist to a request or a program item (admin only)
func CreateInvitation(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input CreateInvitationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.RequestID == nil && input.ItemID == nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "requestID or itemID is required", ctx)
		return
	}

	var artist models.User
	if res := storage.DB.First(&artist, input.ArtistID); res.Error != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Artist not found", ctx)
		return
	}
	if artist.Role != models.RoleArtist {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invitee must be an artist", ctx)
		return
	}

	token := utils.GenerateShortToken(24)
	expiresAt := time.Now().Add(invitationTTL)
	invitation := models.Invitation{
		InviterID: claims.ID,
		ArtistID:  input.ArtistID,
		RequestID: input.RequestID,
		ItemID:    input.ItemID,
		Message:   input.Message,
		Status:    models.InvitationStatusSent,
		LinkToken: &token,
		ExpiresAt: &expiresAt,
	}

	if err := storage.DB.Create(&invitation).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "invitation.create", "invitation", invitation.ID, nil, invitation)

	notificationService := services.NewNotificationService()
	go notificationService.SendInvitationNotificationToArtist(invitation.ID, invitation.ArtistID, invitationLabel(&invitation))

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(invitation)
}

// GetMyInvitations lists the authenticated artist's invitations
func GetMyInvitations(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var invitations []models.Invitation
	res := storage.DB.
		Where("artist_id = ?", claims.ID).
		Order("created_at DESC").
		Find(&invitations)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	expireStaleInvitations(invitations)
	ctx.JSON(invitations)
}

// GetInvitationByToken resolves a deep-link token to its invitation
func GetInvitationByToken(ctx iris.Context) {
	token := ctx.Params().Get("token")

	var invitation models.Invitation
	res := storage.DB.Where("link_token = ?", token).First(&invitation)
	if res.Error != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Invitation not found", ctx)
		return
	}

	if invitationExpired(&invitation) {
		storage.DB.Save(&invitation)
		utils.CreateError(iris.StatusGone, "Expired", "This invitation has expired", ctx)
		return
	}

	ctx.JSON(invitation)
}

// AcceptInvitation marks an invitation accepted by its artist
func AcceptInvitation(ctx iris.Context) {
	resolveInvitation(ctx, models.InvitationStatusAccepted)
}

// DeclineInvitation marks an invitation declined by its artist
func DeclineInvitation(ctx iris.Context) {
	resolveInvitation(ctx, models.InvitationStatusDeclined)
}

func resolveInvitation(ctx iris.Context, status string) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	invitation := getInvitationByID(ctx)
	if invitation == nil {
		return
	}

	if invitation.ArtistID != claims.ID && claims.Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}
	if invitationExpired(invitation) {
		storage.DB.Save(invitation)
		utils.CreateError(iris.StatusGone, "Expired", "This invitation has expired", ctx)
		return
	}
	if invitation.Status != models.InvitationStatusSent {
		utils.CreateError(iris.StatusConflict, "Conflict", "Invitation is already resolved", ctx)
		return
	}

	before := *invitation
	invitation.Status = status
	storage.DB.Save(invitation)

	utils.Audit(ctx, "invitation."+status, "invitation", invitation.ID, before, invitation)
	ctx.JSON(invitation)
}

func invitationLabel(invitation *models.Invitation) string {
	if invitation.ItemID != nil {
		var item models.ProgramItem
		if res := storage.DB.Preload("Program").First(&item, *invitation.ItemID); res.Error == nil {
			return item.Program.Name
		}
	}
	if invitation.RequestID != nil {
		var request models.BookingRequest
		if res := storage.DB.First(&request, *invitation.RequestID); res.Error == nil && request.Style != "" {
			return "une demande " + request.Style
		}
	}
	return "un événement"
}

func invitationExpired(invitation *models.Invitation) bool {
	if invitation.Status == models.InvitationStatusExpired {
		return true
	}
	if invitation.Status == models.InvitationStatusSent &&
		invitation.ExpiresAt != nil && invitation.ExpiresAt.Before(time.Now()) {
		invitation.Status = models.InvitationStatusExpired
		return true
	}
	return false
}

func expireStaleInvitations(invitations []models.Invitation) {
	for i := range invitations {
		if invitations[i].Status == models.InvitationStatusSent && invitationExpired(&invitations[i]) {
			storage.DB.Save(&invitations[i])
		}
	}
}

func getInvitationByID(ctx iris.Context) *models.Invitation {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid invitation id", ctx)
		return nil
	}

	var invitation models.Invitation
	if res := storage.DB.First(&invitation, id); res.Error != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Invitation not found", ctx)
		return nil
	}

	return &invitation
}
