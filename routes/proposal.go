package routes

import (
	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/services"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

type CreateProposalInput struct {
	RequestID uint   `json:"requestID" validate:"required"`
	FeeCents  int    `json:"feeCents" validate:"required,gt=0"`
	IsNet     *bool  `json:"isNet"`
	Terms     string `json:"terms" validate:"max=4000"`
}

// CreateProposal opens a fee negotiation on a request (artist only)
func CreateProposal(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	if claims.Role != models.RoleArtist {
		utils.CreateForbidden(ctx)
		return
	}

	var input CreateProposalInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var request models.BookingRequest
	if res := storage.DB.First(&request, input.RequestID); res.Error != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Request not found", ctx)
		return
	}
	if request.Status != models.RequestStatusOpen {
		utils.CreateError(iris.StatusConflict, "Conflict", "Request is not open", ctx)
		return
	}

	isNet := true
	if input.IsNet != nil {
		isNet = *input.IsNet
	}
	proposal := models.Proposal{
		RequestID: request.ID,
		ArtistID:  claims.ID,
		FeeCents:  input.FeeCents,
		IsNet:     isNet,
		Terms:     input.Terms,
		Status:    models.ProposalStatusSent,
	}

	if err := storage.DB.Create(&proposal).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	notifyProposal(&proposal, request.ClientID, claims.ID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(proposal)
}

type CounterProposalInput struct {
	FeeCents int    `json:"feeCents" validate:"required,gt=0"`
	IsNet    *bool  `json:"isNet"`
	Terms    string `json:"terms" validate:"max=4000"`
}

// CounterProposal answers a proposal with new terms. The client (or an
// admin on their behalf) counters the artist's offer and vice versa.
func CounterProposal(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	parent := getProposalByID(ctx)
	if parent == nil {
		return
	}
	if parent.Status != models.ProposalStatusSent {
		utils.CreateError(iris.StatusConflict, "Conflict", "Proposal is already resolved", ctx)
		return
	}

	var request models.BookingRequest
	if res := storage.DB.First(&request, parent.RequestID); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !proposalParticipant(claims, parent, &request) {
		utils.CreateForbidden(ctx)
		return
	}

	var input CounterProposalInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	isNet := parent.IsNet
	if input.IsNet != nil {
		isNet = *input.IsNet
	}
	counter := models.Proposal{
		RequestID: parent.RequestID,
		ArtistID:  parent.ArtistID,
		ParentID:  &parent.ID,
		FeeCents:  input.FeeCents,
		IsNet:     isNet,
		Terms:     input.Terms,
		Status:    models.ProposalStatusSent,
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		parent.Status = models.ProposalStatusCountered
		if err := tx.Save(parent).Error; err != nil {
			return err
		}
		return tx.Create(&counter).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	recipientID := request.ClientID
	if claims.ID == request.ClientID {
		recipientID = parent.ArtistID
	}
	notifyProposal(&counter, recipientID, claims.ID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(counter)
}

// AcceptProposal closes the negotiation in favor of a proposal and
// marks the request matched.
func AcceptProposal(ctx iris.Context) {
	resolveProposal(ctx, models.ProposalStatusAccepted)
}

// DeclineProposal rejects a proposal
func DeclineProposal(ctx iris.Context) {
	resolveProposal(ctx, models.ProposalStatusDeclined)
}

func resolveProposal(ctx iris.Context, status string) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	proposal := getProposalByID(ctx)
	if proposal == nil {
		return
	}
	if proposal.Status != models.ProposalStatusSent {
		utils.CreateError(iris.StatusConflict, "Conflict", "Proposal is already resolved", ctx)
		return
	}

	var request models.BookingRequest
	if res := storage.DB.First(&request, proposal.RequestID); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !proposalParticipant(claims, proposal, &request) {
		utils.CreateForbidden(ctx)
		return
	}

	before := *proposal
	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		proposal.Status = status
		if err := tx.Save(proposal).Error; err != nil {
			return err
		}
		if status == models.ProposalStatusAccepted {
			request.Status = models.RequestStatusMatched
			return tx.Save(&request).Error
		}
		return nil
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "proposal."+status, "proposal", proposal.ID, before, proposal)

	recipientID := request.ClientID
	if claims.ID == request.ClientID {
		recipientID = proposal.ArtistID
	}
	notifyProposal(proposal, recipientID, claims.ID)

	ctx.JSON(proposal)
}

func proposalParticipant(claims *utils.AccessToken, proposal *models.Proposal, request *models.BookingRequest) bool {
	if claims.Role == models.RoleAdmin {
		return true
	}
	return claims.ID == proposal.ArtistID || claims.ID == request.ClientID
}

func notifyProposal(proposal *models.Proposal, recipientID, senderID uint) {
	var sender models.User
	if res := storage.DB.First(&sender, senderID); res.Error != nil {
		return
	}
	name := sender.FirstName
	if sender.StageName != "" {
		name = sender.StageName
	}

	notificationService := services.NewNotificationService()
	go notificationService.SendProposalNotification(proposal.ID, recipientID, name, proposal.FeeCents)
}

func getProposalByID(ctx iris.Context) *models.Proposal {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid proposal id", ctx)
		return nil
	}

	var proposal models.Proposal
	if res := storage.DB.First(&proposal, id); res.Error != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Proposal not found", ctx)
		return nil
	}

	return &proposal
}
