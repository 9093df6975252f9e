package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/techBikashRepo/jobbee-api/internal/apperr"
	"github.com/techBikashRepo/jobbee-api/internal/middleware"
	"github.com/techBikashRepo/jobbee-api/internal/model"
	"github.com/techBikashRepo/jobbee-api/pkg/database"
	"github.com/techBikashRepo/jobbee-api/pkg/logger"
	"github.com/techBikashRepo/jobbee-api/prometheus"
)

var resumeContentTypes = map[string]string{
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pdf":  "application/pdf",
}

// ApplyToJob handles a multipart resume upload for a job. Guards run in
// order: job exists, deadline not passed, not already applied, file present,
// allowed extension, size under the ceiling. Only then is the artifact
// stored and the applicant row inserted.
func ApplyToJob(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.JobOperationCounter.WithLabelValues("apply").Inc()

	user, _ := middleware.CurrentUser(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	var job model.Job
	if result := database.GetDB().First(&job, id); result.Error != nil {
		return apperr.NotFound("Job not found.")
	}

	if job.Expired(time.Now()) {
		return apperr.Validation("You cannot apply to this job. Date is over.")
	}

	var count int64
	database.GetDB().Model(&model.Applicant{}).
		Where("job_id = ? AND user_id = ?", job.ID, user.ID).
		Count(&count)
	if count > 0 {
		return apperr.Conflict("You have already applied for this job.")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperr.Payload("Please upload your resume.")
	}
	if err := CheckResume(fileHeader.Filename, fileHeader.Size, maxUploadBytes); err != nil {
		return err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperr.Payload("Could not read the uploaded file.")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return apperr.Payload("Could not read the uploaded file.")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := ResumeKey(user.ID, job.ID, fileHeader.Filename)

	if err := resumeStore.Save(c.Request().Context(), key, data, resumeContentTypes[ext]); err != nil {
		log.Error("Failed to store resume", zap.String("key", key), zap.Error(err))
		return apperr.Upstream(err, "Failed to store the uploaded resume.")
	}

	applicant := model.Applicant{
		JobID:     job.ID,
		UserID:    user.ID,
		Resume:    key,
		AppliedAt: time.Now(),
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&applicant); result.Error != nil {
		// A concurrent duplicate application lands here through the unique
		// index rather than the pre-check.
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("You have already applied for this job.")
		}
		log.Error("Failed to record application", zap.Uint("job_id", job.ID), zap.Error(result.Error))
		return result.Error
	}

	prometheus.ApplicationCounter.Inc()
	log.Info("Application submitted",
		zap.Uint("job_id", job.ID),
		zap.Uint("user_id", user.ID),
		zap.String("resume", key))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Applied to job successfully.",
		"data": echo.Map{
			"resume": key,
		},
	})
}

// CheckResume validates the uploaded file name and size before anything is
// written.
func CheckResume(filename string, size, maxBytes int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := resumeContentTypes[ext]; !ok {
		return apperr.Payload("Please upload a document file (doc, docx or pdf).")
	}
	if size > maxBytes {
		return apperr.Payload("Please upload a file smaller than %d bytes.", maxBytes)
	}
	return nil
}

// ResumeKey derives the deterministic storage key for an application, so a
// re-upload by the same user for the same job replaces the previous file.
func ResumeKey(userID, jobID uint, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("resume_u%d_j%d%s", userID, jobID, ext)
}
