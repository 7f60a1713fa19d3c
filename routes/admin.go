package routes

import (
	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/kataras/iris/v12"
)

// AdminListUsers lists users with optional role and search filters
func AdminListUsers(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.User{})
	if role := ctx.URLParam("role"); role != "" {
		if _, ok := models.ParseRole(role); !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "unknown role", ctx)
			return
		}
		query = query.Where("role = ?", role)
	}
	if search := ctx.URLParam("q"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR stage_name ILIKE ?",
			like, like, like, like)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	res := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

type ChangeUserRoleInput struct {
	Role string `json:"role" validate:"required"`
}

// AdminChangeUserRole promotes or demotes a user
func AdminChangeUserRole(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid user id", ctx)
		return
	}

	var input ChangeUserRoleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	role, ok := models.ParseRole(input.Role)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "unknown role", ctx)
		return
	}

	var user models.User
	if res := storage.DB.First(&user, id); res.Error != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "User not found", ctx)
		return
	}

	before := user
	user.Role = role
	if res := storage.DB.Save(&user); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "user.role", "user", user.ID, before, user)
	ctx.JSON(user)
}

// AdminListPrograms lists all programs including private ones
func AdminListPrograms(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Program{})
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if kind := ctx.URLParam("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var total int64
	query.Count(&total)

	var programs []models.Program
	res := query.
		Preload("Client").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&programs)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, programs, page, perPage, total)
}

// AdminListBookings lists all bookings with their relations
func AdminListBookings(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Booking{})
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var bookings []models.Booking
	res := query.
		Preload("Artist").
		Preload("Item").
		Preload("Item.Program").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, bookings, page, perPage, total)
}

// AdminListAuditLog pages through the audit trail, newest first
func AdminListAuditLog(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 50)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	query := storage.DB.Model(&models.AuditLog{})
	if action := ctx.URLParam("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if resourceType := ctx.URLParam("resource_type"); resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}

	var total int64
	query.Count(&total)

	var entries []models.AuditLog
	res := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&entries)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, entries, page, perPage, total)
}
