package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/techBikashRepo/jobbee-api/internal/apifilter"
	"github.com/techBikashRepo/jobbee-api/internal/apperr"
	"github.com/techBikashRepo/jobbee-api/internal/middleware"
	"github.com/techBikashRepo/jobbee-api/internal/model"
	"github.com/techBikashRepo/jobbee-api/pkg/database"
	"github.com/techBikashRepo/jobbee-api/pkg/logger"
	"github.com/techBikashRepo/jobbee-api/prometheus"
)

// Whole-phrase, case-insensitive match against the indexed text columns.
const textSearchCond = "to_tsvector('english', coalesce(title,'') || ' ' || coalesce(description,'')) @@ phraseto_tsquery('english', ?)"

// Great-circle distance in radians between a point and a job's location.
const withinRadiusCond = `acos(LEAST(1.0,
	sin(radians(?)) * sin(radians(latitude)) +
	cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)))) <= ?`

// earthRadiusMiles converts a distance in miles to radians.
const earthRadiusMiles = 3963.0

// JobRequest is the create/update payload for a job posting.
type JobRequest struct {
	Title        string   `json:"title" validate:"required,max=100"`
	Description  string   `json:"description" validate:"required,max=1000"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Address      string   `json:"address" validate:"required"`
	Company      string   `json:"company" validate:"required"`
	Industry     []string `json:"industry" validate:"required"`
	JobType      string   `json:"job_type" validate:"required"`
	MinEducation string   `json:"min_education" validate:"required"`
	Positions    int      `json:"positions" validate:"required,gt=0"`
	Experience   string   `json:"experience" validate:"required"`
	Salary       float64  `json:"salary" validate:"required"`
	LastDate     string   `json:"last_date"`
}

// ListJobs returns jobs through the five-stage filter pipeline.
func ListJobs(c echo.Context) error {
	prometheus.JobOperationCounter.WithLabelValues("list").Inc()

	defer prometheus.TrackDBOperation("query")(time.Now())
	var jobs []model.Job
	query := apifilter.New(c.QueryParams()).Apply(database.GetDB().Model(&model.Job{}))
	if err := query.Find(&jobs).Error; err != nil {
		return apperr.Upstream(err, "Failed to retrieve jobs.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"results": len(jobs),
		"data":    jobs,
	})
}

// GetJobByIDAndSlug fetches one job by its compound identity.
func GetJobByIDAndSlug(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var job model.Job
	result := database.GetDB().Where("id = ? AND slug = ?", id, c.Param("slug")).First(&job)
	if result.Error != nil {
		return apperr.NotFound("Job not found.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    job,
	})
}

// JobsInRadius returns jobs within the given distance (miles) of a zipcode.
func JobsInRadius(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.JobOperationCounter.WithLabelValues("radius").Inc()

	zipcode := c.Param("zipcode")
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance <= 0 {
		return apperr.Validation("Please provide a valid distance in miles.")
	}

	start := time.Now()
	loc, err := geocoder.Geocode(c.Request().Context(), zipcode)
	prometheus.GeocodeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error("Geocoding failed", zap.String("zipcode", zipcode), zap.Error(err))
		return apperr.Upstream(err, "Could not resolve the given zipcode.")
	}

	radius := distance / earthRadiusMiles

	defer prometheus.TrackDBOperation("query")(time.Now())
	var jobs []model.Job
	result := database.GetDB().
		Where(withinRadiusCond, loc.Latitude, loc.Latitude, loc.Longitude, radius).
		Find(&jobs)
	if result.Error != nil {
		return apperr.Upstream(result.Error, "Failed to search jobs in radius.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"results": len(jobs),
		"data":    jobs,
	})
}

// CreateJob inserts a new posting owned by the authenticated employer.
func CreateJob(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.JobOperationCounter.WithLabelValues("create").Inc()

	user, _ := middleware.CurrentUser(c)

	var req JobRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request data.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job := model.Job{UserID: user.ID}
	applyJobRequest(&job, &req)
	job.SetDefaults(time.Now())

	if problems := job.Validate(); len(problems) > 0 {
		return apperr.Validation("%s", strings.Join(problems, " "))
	}

	if err := deriveJobFields(c, &job, true); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&job); result.Error != nil {
		log.Error("Failed to create job", zap.Error(result.Error))
		return result.Error
	}

	log.Info("Job created",
		zap.Uint("job_id", job.ID),
		zap.String("slug", job.Slug),
		zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Job created.",
		"data":    job,
	})
}

// UpdateJob modifies an existing posting. Only the owner or an admin may
// update it; slug and location are re-derived when their sources change.
func UpdateJob(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.JobOperationCounter.WithLabelValues("update").Inc()

	user, _ := middleware.CurrentUser(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var job model.Job
	if result := database.GetDB().First(&job, id); result.Error != nil {
		return apperr.NotFound("Job not found.")
	}

	if job.UserID != user.ID && user.Role != model.RoleAdmin {
		return apperr.Forbidden("User (%d) is not allowed to update this job.", user.ID)
	}

	var req JobRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request data.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	addressChanged := req.Address != job.Address
	applyJobRequest(&job, &req)

	if problems := job.Validate(); len(problems) > 0 {
		return apperr.Validation("%s", strings.Join(problems, " "))
	}

	if err := deriveJobFields(c, &job, addressChanged); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&job); result.Error != nil {
		log.Error("Failed to update job", zap.Uint("job_id", job.ID), zap.Error(result.Error))
		return result.Error
	}

	log.Info("Job updated", zap.Uint("job_id", job.ID), zap.String("slug", job.Slug))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Job is updated.",
		"data":    job,
	})
}

// DeleteJob removes a posting along with its applicant records and stored
// resumes. Resume removal is best effort.
func DeleteJob(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.JobOperationCounter.WithLabelValues("delete").Inc()

	user, _ := middleware.CurrentUser(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	var job model.Job
	if result := database.GetDB().First(&job, id); result.Error != nil {
		return apperr.NotFound("Job not found.")
	}

	if job.UserID != user.ID && user.Role != model.RoleAdmin {
		return apperr.Forbidden("User (%d) is not allowed to delete this job.", user.ID)
	}

	var applicants []model.Applicant
	database.GetDB().Where("job_id = ?", job.ID).Find(&applicants)
	for _, a := range applicants {
		if err := resumeStore.Remove(c.Request().Context(), a.Resume); err != nil {
			log.Warn("Failed to remove resume", zap.String("resume", a.Resume), zap.Error(err))
		}
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Where("job_id = ?", job.ID).Delete(&model.Applicant{}); result.Error != nil {
		log.Error("Failed to delete applicants", zap.Uint("job_id", job.ID), zap.Error(result.Error))
		return result.Error
	}
	if result := database.GetDB().Delete(&job); result.Error != nil {
		log.Error("Failed to delete job", zap.Uint("job_id", job.ID), zap.Error(result.Error))
		return result.Error
	}

	log.Info("Job deleted", zap.Uint("job_id", job.ID), zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Job deleted successfully.",
	})
}

// JobStat is one aggregation bucket grouped by experience tier.
type JobStat struct {
	Experience   string  `json:"experience"`
	TotalJobs    int64   `json:"total_jobs"`
	AvgPositions float64 `json:"avg_positions"`
	AvgSalary    float64 `json:"avg_salary"`
	MinSalary    float64 `json:"min_salary"`
	MaxSalary    float64 `json:"max_salary"`
}

// JobStats aggregates postings matching a topic, grouped by experience.
// No matching rows is an empty result, not an error.
func JobStats(c echo.Context) error {
	prometheus.JobOperationCounter.WithLabelValues("stats").Inc()
	topic := c.Param("topic")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var stats []JobStat
	result := database.GetDB().
		Model(&model.Job{}).
		Select("UPPER(experience) AS experience, COUNT(*) AS total_jobs, AVG(positions) AS avg_positions, " +
			"AVG(salary) AS avg_salary, MIN(salary) AS min_salary, MAX(salary) AS max_salary").
		Where(textSearchCond, topic).
		Group("UPPER(experience)").
		Scan(&stats)
	if result.Error != nil {
		return apperr.Upstream(result.Error, "Failed to compute job stats.")
	}

	if len(stats) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "No stats found for - " + topic,
			"data":    []JobStat{},
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    stats,
	})
}

// applyJobRequest copies the writable fields onto the model.
func applyJobRequest(job *model.Job, req *JobRequest) {
	job.Title = req.Title
	job.Description = req.Description
	job.Email = req.Email
	job.Address = req.Address
	job.Company = req.Company
	job.Industry = req.Industry
	job.JobType = req.JobType
	job.MinEducation = req.MinEducation
	job.Positions = req.Positions
	job.Experience = req.Experience
	job.Salary = req.Salary
	if req.LastDate != "" {
		if t, err := time.Parse(time.RFC3339, req.LastDate); err == nil {
			job.LastDate = t
		}
	}
}

// deriveJobFields runs the explicit pre-persist derivations: the slug always
// follows the title, and the location follows the address whenever it
// changed.
func deriveJobFields(c echo.Context, job *model.Job, geocodeAddress bool) error {
	job.DeriveSlug()

	if !geocodeAddress {
		return nil
	}

	start := time.Now()
	loc, err := geocoder.Geocode(c.Request().Context(), job.Address)
	prometheus.GeocodeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		logger.FromEcho(c).Error("Geocoding failed", zap.String("address", job.Address), zap.Error(err))
		return apperr.Upstream(err, "Could not geocode the job address.")
	}
	job.SetLocation(loc)
	return nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperr.Validation("Please provide a valid job id.")
	}
	return uint(id), nil
}
