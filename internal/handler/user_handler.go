package handler

import (
	"errors"
	"net/http"
	"time"

	"car-service/internal/model"
	"car-service/pkg/jwtutil"
	"car-service/pkg/logger"
	"car-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserHandler serves registration and login against the injected
// database handle.
type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// Register creates a new account. The username check is read-then-write
// with no unique constraint behind it, so two concurrent registrations
// of the same name can both succeed.
func (h *UserHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var existingUser model.User
	result := h.db.Where("username = ?", req.Username).First(&existingUser)
	if result.Error == nil {
		log.Warn("Username already exists", zap.String("username", req.Username))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Username already exists",
		})
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		log.Error("Failed to check existing user", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": result.Error.Error()})
	}

	user := model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.db.Create(&user); result.Error != nil {
		log.Error("Failed to create user", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": result.Error.Error()})
	}

	log.Info("User registered", zap.String("username", user.Username), zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": user.ID})
}

// Login verifies credentials and issues a bearer token. Unexpected
// store errors are returned to the framework's default error handler
// rather than mapped locally.
func (h *UserHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := h.db.Where("username = ?", req.Username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("User not found", zap.String("username", req.Username))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "User not found",
			})
		}
		return result.Error
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("username", req.Username))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid password",
		})
	}

	token, err := jwtutil.GenerateToken(user.Username)
	if err != nil {
		return err
	}

	log.Info("User logged in", zap.String("username", user.Username))
	return c.JSON(http.StatusOK, echo.Map{"jwt_token": token})
}
