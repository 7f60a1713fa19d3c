package services

import (
	"testing"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"

	"github.com/stretchr/testify/assert"
)

var (
	admin     = Actor{Role: models.RoleAdmin, ArtistID: 1}
	artist    = Actor{Role: models.RoleArtist, ArtistID: 42}
	client    = Actor{Role: models.RoleClient, ArtistID: 7}
	anonymous = Actor{}
)

func openProgram() models.Program {
	return models.Program{ID: 1, IsPublic: true, IsOpen: true}
}

func TestCanReadProgram(t *testing.T) {
	program := openProgram()

	assert.True(t, CanReadProgram(admin, program))
	assert.True(t, CanReadProgram(artist, program))
	assert.False(t, CanReadProgram(client, program))
	assert.False(t, CanReadProgram(anonymous, program))

	// Artists without an identifier fail every artist-scoped check
	assert.False(t, CanReadProgram(Actor{Role: models.RoleArtist}, program))

	program.IsOpen = false
	assert.False(t, CanReadProgram(artist, program))
	assert.True(t, CanReadProgram(admin, program))

	program.IsOpen = true
	program.IsPublic = false
	assert.False(t, CanReadProgram(artist, program))
}

func TestCanReadItem(t *testing.T) {
	program := openProgram()
	item := models.ProgramItem{ID: 5, Status: models.ItemStatusOpen}

	assert.True(t, CanReadItem(artist, program, item, false))
	assert.False(t, CanReadItem(client, program, item, false))

	item.Status = models.ItemStatusClosed
	assert.False(t, CanReadItem(artist, program, item, false))
	assert.True(t, CanReadItem(admin, program, item, false))

	// Ownership bypass: an artist with an application or booking keeps
	// read access whatever the item state
	assert.True(t, CanReadItem(artist, program, item, true))

	// The bypass reaches through a closed or private program too, but
	// only for the item itself: the program read stays denied.
	program.IsOpen = false
	program.IsPublic = false
	assert.True(t, CanReadItem(artist, program, item, true))
	assert.False(t, CanReadProgram(artist, program))
}

func TestCanApplyToItem(t *testing.T) {
	program := openProgram()
	item := models.ProgramItem{ID: 5, Status: models.ItemStatusOpen}

	assert.True(t, CanApplyToItem(artist, program, item))
	assert.False(t, CanApplyToItem(client, program, item))
	assert.False(t, CanApplyToItem(anonymous, program, item))

	item.Status = models.ItemStatusCancelled
	assert.False(t, CanApplyToItem(artist, program, item))

	item.Status = models.ItemStatusOpen
	program.IsOpen = false
	assert.False(t, CanApplyToItem(artist, program, item))
}

func TestCanReadBooking(t *testing.T) {
	booking := models.Booking{ID: 9, ArtistID: 42}

	assert.True(t, CanReadBooking(admin, booking))
	assert.True(t, CanReadBooking(artist, booking))
	assert.False(t, CanReadBooking(Actor{Role: models.RoleArtist, ArtistID: 43}, booking))
	assert.False(t, CanReadBooking(client, booking))
	assert.False(t, CanReadBooking(anonymous, booking))
}

func TestParseRole(t *testing.T) {
	role, ok := models.ParseRole("artist")
	assert.True(t, ok)
	assert.Equal(t, models.RoleArtist, role)

	_, ok = models.ParseRole("super_admin")
	assert.False(t, ok)
	_, ok = models.ParseRole("")
	assert.False(t, ok)
}
