package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"
)

// NotificationService handles push delivery and the in-app inbox
type NotificationService struct{}

// NewNotificationService creates a new notification service instance
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotificationData represents the data payload for notifications
type NotificationData struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	ProgramID string `json:"programId,omitempty"`
	ItemID    string `json:"itemId,omitempty"`
	UserID    string `json:"userId,omitempty"`
	// Deep linking data
	Screen string `json:"screen"`
	Params string `json:"params"`
	Action string `json:"action,omitempty"`
}

// getUserPushTokens retrieves all push tokens for a user
func (ns *NotificationService) getUserPushTokens(userID uint) ([]string, error) {
	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}

	if user.AllowsNotifications == nil || !*user.AllowsNotifications || user.PushTokens == nil {
		return nil, fmt.Errorf("user has notifications disabled or no tokens")
	}

	var tokens []string
	if err := json.Unmarshal(user.PushTokens, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal push tokens: %v", err)
	}

	return tokens, nil
}

// SendNotificationToUser stores an inbox row and fans the message out
// to every push token the user registered.
func (ns *NotificationService) SendNotificationToUser(userID uint, title, body string, data NotificationData) error {
	dataJSON, _ := json.Marshal(data)
	row := models.Notification{
		UserID: userID,
		Type:   data.Type,
		Title:  title,
		Body:   body,
		Data:   string(dataJSON),
	}
	storage.DB.Create(&row)

	tokens, err := ns.getUserPushTokens(userID)
	if err != nil {
		log.Printf("Failed to get push tokens for user %d: %v", userID, err)
		return err
	}

	dataMap := map[string]string{
		"type":      data.Type,
		"id":        data.ID,
		"programId": data.ProgramID,
		"itemId":    data.ItemID,
		"userId":    data.UserID,
		"screen":    data.Screen,
		"params":    data.Params,
	}

	var lastError error
	for _, token := range tokens {
		if err := utils.SendNotification(token, title, body, dataMap); err != nil {
			log.Printf("Failed to send notification to token %s: %v", token, err)
			lastError = err
		}
	}

	return lastError
}

// SendInvitationNotificationToArtist notifies an artist of a new invitation
func (ns *NotificationService) SendInvitationNotificationToArtist(invitationID, artistID uint, programName string) error {
	title := "Nouvelle invitation"
	body := fmt.Sprintf("Vous êtes invité(e) à rejoindre %s", programName)

	params := fmt.Sprintf(`{"invitationId": %d}`, invitationID)

	data := NotificationData{
		Type:   "invitation",
		ID:     fmt.Sprintf("%d", invitationID),
		UserID: fmt.Sprintf("%d", artistID),
		Screen: "Invitations",
		Params: params,
		Action: "view_invitation",
	}

	return ns.SendNotificationToUser(artistID, title, body, data)
}

// SendBookingConfirmationToArtist notifies an artist their application
// was accepted and a booking confirmed.
func (ns *NotificationService) SendBookingConfirmationToArtist(bookingID, itemID, artistID uint, programName string) error {
	title := "Réservation confirmée"
	body := fmt.Sprintf("Votre participation à %s est confirmée", programName)

	params := fmt.Sprintf(`{"bookingId": %d, "itemId": %d}`, bookingID, itemID)

	data := NotificationData{
		Type:   "booking_confirmed",
		ID:     fmt.Sprintf("%d", bookingID),
		ItemID: fmt.Sprintf("%d", itemID),
		UserID: fmt.Sprintf("%d", artistID),
		Screen: "Bookings",
		Params: params,
		Action: "view_booking",
	}

	return ns.SendNotificationToUser(artistID, title, body, data)
}

// SendApplicationDeclinedToArtist notifies an artist their application
// was not retained.
func (ns *NotificationService) SendApplicationDeclinedToArtist(applicationID, artistID uint, programName string) error {
	title := "Candidature non retenue"
	body := fmt.Sprintf("Votre candidature pour %s n'a pas été retenue", programName)

	data := NotificationData{
		Type:   "application_declined",
		ID:     fmt.Sprintf("%d", applicationID),
		UserID: fmt.Sprintf("%d", artistID),
		Screen: "Applications",
		Params: fmt.Sprintf(`{"applicationId": %d}`, applicationID),
	}

	return ns.SendNotificationToUser(artistID, title, body, data)
}

// SendProposalNotification notifies the other side of a negotiation step
func (ns *NotificationService) SendProposalNotification(proposalID, recipientID uint, senderName string, feeCents int) error {
	title := "Nouvelle proposition"
	body := fmt.Sprintf("%s a envoyé une proposition de %s", senderName, utils.FormatCents(feeCents, true))

	data := NotificationData{
		Type:   "proposal",
		ID:     fmt.Sprintf("%d", proposalID),
		Screen: "Proposals",
		Params: fmt.Sprintf(`{"proposalId": %d}`, proposalID),
		Action: "view_proposal",
	}

	return ns.SendNotificationToUser(recipientID, title, body, data)
}

// SendWelcomeNotificationToNewUser greets a newly registered user
func (ns *NotificationService) SendWelcomeNotificationToNewUser(userID uint, firstName string) error {
	title := "Bienvenue!"
	body := fmt.Sprintf("Bienvenue %s, complétez votre profil pour recevoir des invitations", firstName)

	data := NotificationData{
		Type:   "welcome",
		UserID: fmt.Sprintf("%d", userID),
		Screen: "Profile",
		Params: "{}",
	}

	return ns.SendNotificationToUser(userID, title, body, data)
}
