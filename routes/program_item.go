package routes

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/services"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

type CreateDateItemInput struct {
	Date     string          `json:"date" validate:"required"` // YYYY-MM-DD
	Metadata json.RawMessage `json:"metadata"`
}

type GenerateWeeksInput struct {
	StartDate string `json:"startDate" validate:"required"` // YYYY-MM-DD
	EndDate   string `json:"endDate" validate:"required"`
	WeekType  string `json:"weekType" validate:"omitempty,oneof=CALM PEAK"`
}

type UpdateItemInput struct {
	Status   *string         `json:"status"`
	Metadata json.RawMessage `json:"metadata"`
}

// ListProgramItems returns the items of a program the caller may see
func ListProgramItems(ctx iris.Context) {
	program := getProgramByID(ctx)
	if program == nil {
		return
	}

	actor := actorFromContext(ctx)
	if !services.CanReadProgram(actor, *program) {
		utils.CreateForbidden(ctx)
		return
	}

	var items []models.ProgramItem
	query := storage.DB.Where("program_id = ?", program.ID).Order("start_date ASC")
	if actor.Role != models.RoleAdmin {
		query = query.Where("status <> ?", models.ItemStatusCancelled)
	}
	if res := query.Find(&items); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(items)
}

// CreateDateItem adds one DATE item to a MULTI_DATES program (admin
// only). The candidate day is rejected outright if it overlaps any
// non-cancelled item already scheduled.
func CreateDateItem(ctx iris.Context) {
	if actorFromContext(ctx).Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	program := getProgramByID(ctx)
	if program == nil {
		return
	}

	if program.Kind != models.ProgramMultiDates {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "program does not take DATE items", ctx)
		return
	}

	var input CreateDateItemInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	day, parseErr := time.Parse(dateLayout, input.Date)
	if parseErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "date must be YYYY-MM-DD", ctx)
		return
	}
	day = services.DayUTC(day)

	existing, ok := loadProgramItems(program.ID, ctx)
	if !ok {
		return
	}

	candidate := services.Span{Start: day, End: day.AddDate(0, 0, 1)}
	if err := services.CheckConflicts([]services.Span{candidate}, existing); err != nil {
		respondSchedulingError(err, ctx)
		return
	}

	item := models.ProgramItem{
		ProgramID: program.ID,
		Kind:      models.ItemDate,
		StartDate: day,
		Status:    models.ItemStatusOpen,
	}
	if len(input.Metadata) > 0 {
		item.Metadata = datatypes.JSON(input.Metadata)
	}

	if err := storage.DB.Create(&item).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "item.create", "program_item", item.ID, nil, item)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(item)
}

// GenerateResidencyWeeks covers the requested range with Sunday-aligned
// weeks and inserts them as WEEK items (admin only). The whole batch is
// rejected on the first conflict: no partial insertion.
func GenerateResidencyWeeks(ctx iris.Context) {
	if actorFromContext(ctx).Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	program := getProgramByID(ctx)
	if program == nil {
		return
	}

	if program.Kind != models.ProgramWeeklyResidency {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "program does not take WEEK items", ctx)
		return
	}

	var input GenerateWeeksInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	start, startErr := time.Parse(dateLayout, input.StartDate)
	end, endErr := time.Parse(dateLayout, input.EndDate)
	if startErr != nil || endErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "dates must be YYYY-MM-DD", ctx)
		return
	}

	weeks, err := services.GenerateWeeks(start, end)
	if err != nil {
		respondSchedulingError(err, ctx)
		return
	}

	existing, ok := loadProgramItems(program.ID, ctx)
	if !ok {
		return
	}

	if err := services.CheckConflicts(weeks, existing); err != nil {
		respondSchedulingError(err, ctx)
		return
	}

	var metadata datatypes.JSON
	if input.WeekType != "" {
		metadata = datatypes.JSON(`{"week_type":"` + input.WeekType + `"}`)
	}

	items := make([]models.ProgramItem, 0, len(weeks))
	for _, week := range weeks {
		weekEnd := week.End
		items = append(items, models.ProgramItem{
			ProgramID: program.ID,
			Kind:      models.ItemWeek,
			StartDate: week.Start,
			EndDate:   &weekEnd,
			Status:    models.ItemStatusOpen,
			Metadata:  metadata,
		})
	}

	if len(items) > 0 {
		if err := storage.DB.Create(&items).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	utils.Audit(ctx, "item.generate_weeks", "program", program.ID, nil, iris.Map{"count": len(items)})
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(items)
}

// GetProgramItem returns one item, honoring the ownership bypass for
// artists who already applied or hold a booking.
func GetProgramItem(ctx iris.Context) {
	item, program := getItemWithProgram(ctx)
	if item == nil {
		return
	}

	actor := actorFromContext(ctx)
	if !services.CanReadItem(actor, *program, *item, artistHoldsItem(actor, item.ID)) {
		utils.CreateForbidden(ctx)
		return
	}

	ctx.JSON(item)
}

// UpdateProgramItem patches status and metadata (admin only)
func UpdateProgramItem(ctx iris.Context) {
	if actorFromContext(ctx).Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	item, _ := getItemWithProgram(ctx)
	if item == nil {
		return
	}

	var input UpdateItemInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := *item

	if input.Status != nil {
		switch *input.Status {
		case models.ItemStatusOpen, models.ItemStatusClosed, models.ItemStatusCancelled:
			item.Status = *input.Status
		default:
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid status", ctx)
			return
		}
	}
	if len(input.Metadata) > 0 {
		item.Metadata = datatypes.JSON(input.Metadata)
	}

	storage.DB.Save(item)
	utils.Audit(ctx, "item.update", "program_item", item.ID, before, item)

	ctx.JSON(item)
}

func loadProgramItems(programID uint, ctx iris.Context) ([]models.ProgramItem, bool) {
	var items []models.ProgramItem
	if res := storage.DB.Where("program_id = ?", programID).Find(&items); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return nil, false
	}
	return items, true
}

func getItemWithProgram(ctx iris.Context) (*models.ProgramItem, *models.Program) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid item id", ctx)
		return nil, nil
	}

	var item models.ProgramItem
	if res := storage.DB.First(&item, id); res.Error != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Item not found", ctx)
		return nil, nil
	}

	var program models.Program
	if res := storage.DB.First(&program, item.ProgramID); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return nil, nil
	}

	return &item, &program
}

// artistHoldsItem reports whether the actor already has an application
// or booking on the item, which grants read access past the open check.
func artistHoldsItem(actor services.Actor, itemID uint) bool {
	if actor.ArtistID == 0 {
		return false
	}
	var count int64
	storage.DB.Model(&models.Application{}).
		Where("item_id = ? AND artist_id = ?", itemID, actor.ArtistID).
		Count(&count)
	if count > 0 {
		return true
	}
	storage.DB.Model(&models.Booking{}).
		Where("item_id = ? AND artist_id = ?", itemID, actor.ArtistID).
		Count(&count)
	return count > 0
}

func respondSchedulingError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, services.ErrInvalidRange):
		utils.JSONError(ctx, iris.StatusUnprocessableEntity, "invalid_range", "end date precedes start date")
	case errors.Is(err, services.ErrConflict):
		var conflict *services.ConflictError
		detail := "requested span overlaps an existing item"
		if errors.As(err, &conflict) {
			detail = conflict.Error()
		}
		utils.JSONError(ctx, iris.StatusConflict, "conflict", detail)
	default:
		utils.CreateInternalServerError(ctx)
	}
}
