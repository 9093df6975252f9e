package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/techBikashRepo/jobbee-api/internal/apperr"
	"github.com/techBikashRepo/jobbee-api/internal/model"
	"github.com/techBikashRepo/jobbee-api/pkg/database"
	"github.com/techBikashRepo/jobbee-api/pkg/jwtutil"
	"github.com/techBikashRepo/jobbee-api/pkg/logger"
	"github.com/techBikashRepo/jobbee-api/prometheus"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"`
}

// Register creates a new account and issues a token.
func Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request data.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	// Admin accounts are provisioned out of band, never self-assigned.
	if role == model.RoleAdmin || !model.ValidRole(role) {
		return apperr.Validation("Please select correct role.")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var existing model.User
	if result := database.GetDB().Where("email = ?", req.Email).First(&existing); result.Error == nil {
		prometheus.RecordAuthError("email_already_exists")
		return apperr.Conflict("Email address is already registered.")
	}

	user := model.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return err
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&user); result.Error != nil {
		log.Error("Failed to create user", zap.Error(result.Error))
		return result.Error
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return err
	}

	log.Info("User registered", zap.String("email", user.Email), zap.String("role", user.Role))
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"token":   token,
		"data":    user,
	})
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and issues a token.
func Login(c echo.Context) error {
	log := logger.FromEcho(c)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request data.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().Where("email = ?", req.Email).First(&user); result.Error != nil {
		prometheus.RecordAuthError("login_failure")
		return apperr.Unauthorized("Invalid email or password.")
	}

	if !user.ComparePassword(req.Password) {
		prometheus.RecordAuthError("login_failure")
		return apperr.Unauthorized("Invalid email or password.")
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return err
	}

	log.Info("User logged in", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"token":   token,
	})
}

// ForgotPassword issues a password reset token. The raw token is only
// echoed back outside production; the mail transport is an external
// collaborator.
func ForgotPassword(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request data.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var user model.User
	if result := database.GetDB().Where("email = ?", req.Email).First(&user); result.Error != nil {
		return apperr.NotFound("No user found with this email.")
	}

	raw, err := user.GenerateResetToken()
	if err != nil {
		log.Error("Failed to generate reset token", zap.Error(err))
		return err
	}
	if result := database.GetDB().Save(&user); result.Error != nil {
		return result.Error
	}

	log.Info("Password reset token issued", zap.String("email", user.Email))
	resp := echo.Map{
		"success": true,
		"message": "Password reset token sent.",
	}
	if !production {
		resp["reset_token"] = raw
	}
	return c.JSON(http.StatusOK, resp)
}

// ResetPassword sets a new password for a valid, unexpired reset token.
func ResetPassword(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Password string `json:"password" validate:"required,min=8"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request data.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hashed := model.HashResetToken(c.Param("token"))

	var user model.User
	result := database.GetDB().
		Where("reset_password_token = ? AND reset_password_expire > ?", hashed, time.Now()).
		First(&user)
	if result.Error != nil {
		return apperr.Validation("Password reset token is invalid or has expired.")
	}

	if err := user.SetPassword(req.Password); err != nil {
		return err
	}
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil

	if result := database.GetDB().Save(&user); result.Error != nil {
		return result.Error
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return err
	}

	log.Info("Password reset", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"token":   token,
	})
}
