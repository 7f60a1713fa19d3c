package routes

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/storage"
	"github.com/bookingswingevents-commits/SwingBooking-sub000/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
)

const (
	exportKeyPrefix = "admin:export:"
	exportTTL       = time.Hour

	exportStatusRunning = "running"
	exportStatusDone    = "done"
	exportStatusFailed  = "failed"
)

var exportableResources = map[string]bool{
	"users":        true,
	"programs":     true,
	"items":        true,
	"applications": true,
	"bookings":     true,
	"requests":     true,
	"audit":        true,
}

type exportJob struct {
	ID        string          `json:"id"`
	Resource  string          `json:"resource"`
	Status    string          `json:"status"`
	Error     string          `json:"error,omitempty"`
	Rows      int             `json:"rows"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type StartExportInput struct {
	Resource string `json:"resource" validate:"required"`
}

// AdminStartExport launches an async export of one resource. The job
// runs in the background; its result lives in Redis for an hour.
func AdminStartExport(ctx iris.Context) {
	var input StartExportInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !exportableResources[input.Resource] {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "unknown export resource", ctx)
		return
	}

	job := exportJob{
		ID:        uuid.NewString(),
		Resource:  input.Resource,
		Status:    exportStatusRunning,
		CreatedAt: time.Now().UTC(),
	}
	saveExportJob(&job)

	utils.Audit(ctx, "export.start", "export", 0, nil, iris.Map{"jobID": job.ID, "resource": job.Resource})

	go runExportJob(job)

	ctx.StatusCode(iris.StatusAccepted)
	ctx.JSON(iris.Map{"jobID": job.ID, "status": job.Status})
}

// AdminGetExport returns the state of an export job, including its
// payload once finished.
func AdminGetExport(ctx iris.Context) {
	jobID := ctx.Params().Get("jobID")
	if _, err := uuid.Parse(jobID); err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid job id", ctx)
		return
	}

	raw, err := storage.Redis.Get(context.Background(), exportKeyPrefix+jobID).Result()
	if err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Export job not found or expired", ctx)
		return
	}

	ctx.ContentType("application/json")
	ctx.WriteString(raw)
}

func runExportJob(job exportJob) {
	rows, data, err := exportResource(job.Resource)
	if err != nil {
		log.Printf("export %s (%s) failed: %v", job.ID, job.Resource, err)
		job.Status = exportStatusFailed
		job.Error = err.Error()
	} else {
		job.Status = exportStatusDone
		job.Rows = rows
		job.Data = data
	}
	saveExportJob(&job)
}

func exportResource(resource string) (int, json.RawMessage, error) {
	marshal := func(n int, v interface{}) (int, json.RawMessage, error) {
		data, err := json.Marshal(v)
		return n, data, err
	}

	switch resource {
	case "users":
		var users []models.User
		if err := storage.DB.Find(&users).Error; err != nil {
			return 0, nil, err
		}
		return marshal(len(users), users)
	case "programs":
		var programs []models.Program
		if err := storage.DB.Preload("Items").Find(&programs).Error; err != nil {
			return 0, nil, err
		}
		return marshal(len(programs), programs)
	case "items":
		var items []models.ProgramItem
		if err := storage.DB.Find(&items).Error; err != nil {
			return 0, nil, err
		}
		return marshal(len(items), items)
	case "applications":
		var applications []models.Application
		if err := storage.DB.Find(&applications).Error; err != nil {
			return 0, nil, err
		}
		return marshal(len(applications), applications)
	case "bookings":
		var bookings []models.Booking
		if err := storage.DB.Find(&bookings).Error; err != nil {
			return 0, nil, err
		}
		return marshal(len(bookings), bookings)
	case "requests":
		var requests []models.BookingRequest
		if err := storage.DB.Preload("Proposals").Find(&requests).Error; err != nil {
			return 0, nil, err
		}
		return marshal(len(requests), requests)
	default: // audit
		var entries []models.AuditLog
		if err := storage.DB.Find(&entries).Error; err != nil {
			return 0, nil, err
		}
		return marshal(len(entries), entries)
	}
}

func saveExportJob(job *exportJob) {
	payload, err := json.Marshal(job)
	if err != nil {
		log.Printf("export %s: marshal failed: %v", job.ID, err)
		return
	}
	if err := storage.Redis.Set(context.Background(), exportKeyPrefix+job.ID, payload, exportTTL).Err(); err != nil {
		log.Printf("export %s: redis save failed: %v", job.ID, err)
	}
}
