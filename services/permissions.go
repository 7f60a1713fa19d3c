package services

import "github.com/bookingswingevents-commits/SwingBooking-sub000/models"

// Actor is the minimal identity the permission predicates dispatch on.
// ArtistID is the acting user's id and is zero for anonymous callers.
type Actor struct {
	Role     models.Role
	ArtistID uint
}

func (a Actor) isAdmin() bool {
	return a.Role == models.RoleAdmin
}

func (a Actor) isArtist() bool {
	return a.Role == models.RoleArtist && a.ArtistID != 0
}

// CanReadProgram allows admins always; artists only see programs that
// are both public and open.
func CanReadProgram(actor Actor, program models.Program) bool {
	if actor.isAdmin() {
		return true
	}
	if !actor.isArtist() {
		return false
	}
	return program.IsPublic && program.IsOpen
}

// CanReadItem additionally requires the item be OPEN. An artist who
// already holds an application or booking on the item keeps read
// access whatever the item's state.
func CanReadItem(actor Actor, program models.Program, item models.ProgramItem, hasApplicationOrBooking bool) bool {
	if actor.isAdmin() {
		return true
	}
	if !actor.isArtist() {
		return false
	}
	if hasApplicationOrBooking {
		return true
	}
	return program.IsPublic && program.IsOpen && item.Status == models.ItemStatusOpen
}

// CanApplyToItem has no ownership bypass: closed items take no new
// applications.
func CanApplyToItem(actor Actor, program models.Program, item models.ProgramItem) bool {
	if actor.isAdmin() {
		return true
	}
	if !actor.isArtist() {
		return false
	}
	return program.IsPublic && program.IsOpen && item.Status == models.ItemStatusOpen
}

// CanReadBooking allows admins and the booking's own artist.
func CanReadBooking(actor Actor, booking models.Booking) bool {
	if actor.isAdmin() {
		return true
	}
	return actor.isArtist() && booking.ArtistID == actor.ArtistID
}
