package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/techBikashRepo/jobbee-api/internal/apperr"
	"github.com/techBikashRepo/jobbee-api/internal/middleware"
	"github.com/techBikashRepo/jobbee-api/internal/model"
	"github.com/techBikashRepo/jobbee-api/pkg/database"
	"github.com/techBikashRepo/jobbee-api/pkg/jwtutil"
	"github.com/techBikashRepo/jobbee-api/pkg/logger"
	"github.com/techBikashRepo/jobbee-api/prometheus"
)

// publishedJob is the trimmed view of a posting shown on the profile.
type publishedJob struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	PostingDate time.Time `json:"posting_date"`
}

// GetProfile returns the current user, with their published jobs when the
// account can own postings. Published jobs are a reverse lookup, not stored.
func GetProfile(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)

	resp := echo.Map{
		"success": true,
		"data":    user,
	}

	if user.Role == model.RoleEmployer || user.Role == model.RoleAdmin {
		defer prometheus.TrackDBOperation("query")(time.Now())
		var jobs []publishedJob
		result := database.GetDB().
			Model(&model.Job{}).
			Select("id, title, posting_date").
			Where("user_id = ?", user.ID).
			Scan(&jobs)
		if result.Error != nil {
			return apperr.Upstream(result.Error, "Failed to load published jobs.")
		}
		resp["jobs_published"] = jobs
	}

	return c.JSON(http.StatusOK, resp)
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateProfile changes name and email. The password is untouched here and
// therefore never rehashed.
func UpdateProfile(c echo.Context) error {
	log := logger.FromEcho(c)
	user, _ := middleware.CurrentUser(c)

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request data.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user.Name = req.Name
	user.Email = req.Email

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Model(user).Updates(map[string]interface{}{
		"name":  req.Name,
		"email": req.Email,
	}); result.Error != nil {
		log.Error("Failed to update profile", zap.Uint("user_id", user.ID), zap.Error(result.Error))
		return result.Error
	}

	log.Info("Profile updated", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    user,
	})
}

// UpdatePasswordRequest carries the password change payload.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UpdatePassword verifies the old password before rehashing, and issues a
// fresh token.
func UpdatePassword(c echo.Context) error {
	log := logger.FromEcho(c)
	user, _ := middleware.CurrentUser(c)

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request data.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if !user.ComparePassword(req.CurrentPassword) {
		prometheus.RecordAuthError("wrong_old_password")
		return apperr.Unauthorized("Old password is incorrect.")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Model(user).Update("password", user.Password); result.Error != nil {
		log.Error("Failed to update password", zap.Uint("user_id", user.ID), zap.Error(result.Error))
		return result.Error
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		return err
	}

	log.Info("Password updated", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"token":   token,
	})
}

// AppliedJobs lists every job the current user has applied to.
func AppliedJobs(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var jobs []model.Job
	result := database.GetDB().
		Model(&model.Job{}).
		Joins("JOIN applicants ON applicants.job_id = jobs.id").
		Where("applicants.user_id = ?", user.ID).
		Find(&jobs)
	if result.Error != nil {
		return apperr.Upstream(result.Error, "Failed to load applied jobs.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"results": len(jobs),
		"data":    jobs,
	})
}

// DeleteAccount removes the current user after running the cascade cleanup
// for their role.
func DeleteAccount(c echo.Context) error {
	log := logger.FromEcho(c)
	user, _ := middleware.CurrentUser(c)

	deleteUserData(c.Request().Context(), log, user)

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(user); result.Error != nil {
		log.Error("Failed to delete user", zap.Uint("user_id", user.ID), zap.Error(result.Error))
		return result.Error
	}

	log.Info("Account deleted", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Your account has been deleted.",
	})
}

// deleteUserData runs the cascade cleanup. It is non-transactional by
// design: each step logs its own failure and the loop continues, so a
// partial run removes as much as it can.
func deleteUserData(ctx context.Context, log *zap.Logger, user *model.User) {
	db := database.GetDB()
	prometheus.CascadeDeleteCounter.WithLabelValues(user.Role).Inc()

	switch user.Role {
	case model.RoleEmployer, model.RoleAdmin:
		var jobs []model.Job
		if result := db.Where("user_id = ?", user.ID).Find(&jobs); result.Error != nil {
			log.Error("Cascade: failed to load owned jobs", zap.Error(result.Error))
			return
		}
		for _, job := range jobs {
			var applicants []model.Applicant
			db.Where("job_id = ?", job.ID).Find(&applicants)
			for _, a := range applicants {
				if err := resumeStore.Remove(ctx, a.Resume); err != nil {
					log.Warn("Cascade: failed to remove resume",
						zap.String("resume", a.Resume), zap.Error(err))
				}
			}
			if result := db.Where("job_id = ?", job.ID).Delete(&model.Applicant{}); result.Error != nil {
				log.Error("Cascade: failed to delete applicants",
					zap.Uint("job_id", job.ID), zap.Error(result.Error))
				continue
			}
			if result := db.Delete(&model.Job{}, job.ID); result.Error != nil {
				log.Error("Cascade: failed to delete job",
					zap.Uint("job_id", job.ID), zap.Error(result.Error))
			}
		}

	case model.RoleUser:
		var applications []model.Applicant
		if result := db.Where("user_id = ?", user.ID).Find(&applications); result.Error != nil {
			log.Error("Cascade: failed to load applications", zap.Error(result.Error))
			return
		}
		for _, a := range applications {
			if err := resumeStore.Remove(ctx, a.Resume); err != nil {
				// Best effort: storage failure never blocks the deletion.
				log.Warn("Cascade: failed to remove resume",
					zap.String("resume", a.Resume), zap.Error(err))
			}
			if result := db.Delete(&model.Applicant{}, a.ID); result.Error != nil {
				log.Error("Cascade: failed to delete applicant record",
					zap.Uint("applicant_id", a.ID), zap.Error(result.Error))
			}
		}
	}
}
