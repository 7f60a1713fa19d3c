package routes

import (
	"encoding/json"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/services"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/datatypes"
)

type CreateProgramInput struct {
	Name        string          `json:"name" validate:"required,max=256"`
	Kind        string          `json:"kind" validate:"required,oneof=MULTI_DATES WEEKLY_RESIDENCY"`
	ClientID    uint            `json:"clientID" validate:"required"`
	Description string          `json:"description"`
	City        string          `json:"city"`
	IsPublic    bool            `json:"isPublic"`
	IsOpen      bool            `json:"isOpen"`
	Conditions  json.RawMessage `json:"conditions"`
}

type UpdateProgramInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	City        *string `json:"city"`
	IsPublic    *bool   `json:"isPublic"`
	IsOpen      *bool   `json:"isOpen"`
	Status      *string `json:"status"`
}

// CreateProgram creates a programming campaign (admin only)
func CreateProgram(ctx iris.Context) {
	if actorFromContext(ctx).Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	var input CreateProgramInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var client models.User
	if err := storage.DB.First(&client, input.ClientID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Client not found", ctx)
		return
	}

	program := models.Program{
		Name:        input.Name,
		Kind:        input.Kind,
		ClientID:    input.ClientID,
		Description: input.Description,
		City:        input.City,
		IsPublic:    input.IsPublic,
		IsOpen:      input.IsOpen,
		Status:      models.ProgramStatusActive,
	}
	if len(input.Conditions) > 0 {
		program.Conditions = datatypes.JSON(input.Conditions)
	}

	if err := storage.DB.Create(&program).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "program.create", "program", program.ID, nil, program)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(program)
}

// ListPrograms returns the programs visible to the caller: everything
// for admins, public+open programs for artists.
func ListPrograms(ctx iris.Context) {
	actor := actorFromContext(ctx)

	var programs []models.Program
	query := storage.DB.Order("created_at DESC")
	if actor.Role != models.RoleAdmin {
		query = query.Where("is_public = ? AND is_open = ? AND status = ?", true, true, models.ProgramStatusActive)
	}
	if res := query.Find(&programs); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(programs)
}

// GetProgram returns one program, permission-checked
func GetProgram(ctx iris.Context) {
	program := getProgramByID(ctx)
	if program == nil {
		return
	}

	actor := actorFromContext(ctx)
	if !services.CanReadProgram(actor, *program) {
		utils.CreateForbidden(ctx)
		return
	}

	ctx.JSON(program)
}

// UpdateProgram patches program settings (admin only)
func UpdateProgram(ctx iris.Context) {
	if actorFromContext(ctx).Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	program := getProgramByID(ctx)
	if program == nil {
		return
	}

	var input UpdateProgramInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := *program

	if input.Name != nil {
		program.Name = *input.Name
	}
	if input.Description != nil {
		program.Description = *input.Description
	}
	if input.City != nil {
		program.City = *input.City
	}
	if input.IsPublic != nil {
		program.IsPublic = *input.IsPublic
	}
	if input.IsOpen != nil {
		program.IsOpen = *input.IsOpen
	}
	if input.Status != nil {
		switch *input.Status {
		case models.ProgramStatusActive, models.ProgramStatusArchived, models.ProgramStatusCancelled:
			program.Status = *input.Status
		default:
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid status", ctx)
			return
		}
	}

	storage.DB.Save(program)
	utils.Audit(ctx, "program.update", "program", program.ID, before, program)

	ctx.JSON(program)
}

// GetProgramConditions returns the baseline, the override and the
// merged view the roadmap generator will use.
func GetProgramConditions(ctx iris.Context) {
	program := getProgramByID(ctx)
	if program == nil {
		return
	}

	if !services.CanReadProgram(actorFromContext(ctx), *program) {
		utils.CreateForbidden(ctx)
		return
	}

	baseline := services.ParseConditions([]byte(program.Conditions))
	override := services.ParseConditions([]byte(program.ConditionsOverride))

	ctx.JSON(iris.Map{
		"baseline": baseline,
		"override": override,
		"merged":   services.MergeConditions(baseline, override),
	})
}

type UpdateConditionsInput struct {
	Override json.RawMessage `json:"override" validate:"required"`
}

// UpdateProgramConditions saves the admin-edited override (admin only).
// The baseline is never rewritten; the merged view stays a computed
// value.
func UpdateProgramConditions(ctx iris.Context) {
	if actorFromContext(ctx).Role != models.RoleAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	program := getProgramByID(ctx)
	if program == nil {
		return
	}

	var input UpdateConditionsInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := program.ConditionsOverride
	program.ConditionsOverride = datatypes.JSON(input.Override)
	storage.DB.Save(program)

	utils.Audit(ctx, "program.conditions.update", "program", program.ID, string(before), string(program.ConditionsOverride))

	baseline := services.ParseConditions([]byte(program.Conditions))
	override := services.ParseConditions([]byte(program.ConditionsOverride))
	ctx.JSON(iris.Map{"merged": services.MergeConditions(baseline, override)})
}

func getProgramByID(ctx iris.Context) *models.Program {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid program id", ctx)
		return nil
	}

	var program models.Program
	res := storage.DB.First(&program, id)
	if res.Error != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Program not found", ctx)
		return nil
	}

	return &program
}

// actorFromContext builds the permission-layer actor from the verified
// access token. Anonymous callers get the zero actor, which fails every
// predicate.
func actorFromContext(ctx iris.Context) services.Actor {
	tok := jsonWT.Get(ctx)
	if tok == nil {
		return services.Actor{}
	}
	claims, ok := tok.(*utils.AccessToken)
	if !ok {
		return services.Actor{}
	}
	return services.Actor{Role: claims.Role, ArtistID: claims.ID}
}
