package routes

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/kataras/iris/v12"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 5 * time.Minute
)

type adminStats struct {
	Users struct {
		Total   int64 `json:"total"`
		Artists int64 `json:"artists"`
		Clients int64 `json:"clients"`
		Admins  int64 `json:"admins"`
	} `json:"users"`
	Programs struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
	} `json:"programs"`
	Items struct {
		Total int64 `json:"total"`
		Open  int64 `json:"open"`
	} `json:"items"`
	Applications struct {
		Total   int64 `json:"total"`
		Pending int64 `json:"pending"`
	} `json:"applications"`
	Bookings struct {
		Total     int64 `json:"total"`
		Confirmed int64 `json:"confirmed"`
		Cancelled int64 `json:"cancelled"`
	} `json:"bookings"`
	Requests struct {
		Total int64 `json:"total"`
		Open  int64 `json:"open"`
	} `json:"requests"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// AdminGetStats returns platform-wide counters. Results are cached in
// Redis for a few minutes since the dashboard polls this endpoint.
func AdminGetStats(ctx iris.Context) {
	redisCtx := context.Background()

	if cached, err := storage.Redis.Get(redisCtx, statsCacheKey).Result(); err == nil {
		var stats adminStats
		if json.Unmarshal([]byte(cached), &stats) == nil {
			ctx.JSON(stats)
			return
		}
	}

	stats := computeAdminStats()

	if payload, err := json.Marshal(stats); err == nil {
		storage.Redis.Set(redisCtx, statsCacheKey, payload, statsCacheTTL)
	}

	ctx.JSON(stats)
}

func computeAdminStats() adminStats {
	var stats adminStats

	storage.DB.Model(&models.User{}).Count(&stats.Users.Total)
	storage.DB.Model(&models.User{}).Where("role = ?", models.RoleArtist).Count(&stats.Users.Artists)
	storage.DB.Model(&models.User{}).Where("role = ?", models.RoleClient).Count(&stats.Users.Clients)
	storage.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&stats.Users.Admins)

	storage.DB.Model(&models.Program{}).Count(&stats.Programs.Total)
	storage.DB.Model(&models.Program{}).Where("status = ?", models.ProgramStatusActive).Count(&stats.Programs.Active)

	storage.DB.Model(&models.ProgramItem{}).Count(&stats.Items.Total)
	storage.DB.Model(&models.ProgramItem{}).Where("status = ?", models.ItemStatusOpen).Count(&stats.Items.Open)

	storage.DB.Model(&models.Application{}).Count(&stats.Applications.Total)
	storage.DB.Model(&models.Application{}).Where("status = ?", models.ApplicationStatusPending).Count(&stats.Applications.Pending)

	storage.DB.Model(&models.Booking{}).Count(&stats.Bookings.Total)
	storage.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusConfirmed).Count(&stats.Bookings.Confirmed)
	storage.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusCancelled).Count(&stats.Bookings.Cancelled)

	storage.DB.Model(&models.BookingRequest{}).Count(&stats.Requests.Total)
	storage.DB.Model(&models.BookingRequest{}).Where("status = ?", models.RequestStatusOpen).Count(&stats.Requests.Open)

	stats.GeneratedAt = time.Now().UTC()
	return stats
}

// AdminGetActivity returns recent bookings and applications for the
// dashboard activity feed.
func AdminGetActivity(ctx iris.Context) {
	limit := ctx.URLParamIntDefault("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var bookings []models.Booking
	if res := storage.DB.
		Preload("Artist").
		Preload("Item.Program").
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var applications []models.Application
	if res := storage.DB.
		Preload("Artist").
		Preload("Item.Program").
		Order("created_at DESC").
		Limit(limit).
		Find(&applications); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"bookings":     bookings,
		"applications": applications,
	})
}
