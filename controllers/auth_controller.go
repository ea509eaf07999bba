package controllers

import (
	"regexp"
	"strings"

	"campus-backend/models"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController handles registration and token issuance.
type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// RegisterRequest is the self-service sign-up payload. Role is not
// accepted here; new accounts start as students and an admin promotes
// them through user management.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
}

// LoginRequest is the credential payload for token issuance.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthData is the data portion of a successful auth response.
type AuthData struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Register creates a student account and returns a token for it.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" {
		return fail(c, 400, "name, email and password are required")
	}
	if !emailRe.MatchString(req.Email) {
		return fail(c, 400, "invalid email address")
	}
	if len(req.Password) < 6 {
		return fail(c, 400, "password must be at least 6 characters")
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return fail(c, 409, "email is already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return serviceError(c, err, "could not create user")
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleStudent,
		Department:   strings.TrimSpace(req.Department),
		IsActive:     true,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return serviceError(c, err, "could not create user")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return serviceError(c, err, "could not issue token")
	}

	return ok(c, 201, "account created", AuthData{Token: token, User: user})
}

// Login checks credentials and issues a token.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return fail(c, 400, "email and password are required")
	}

	var user models.User
	err := ac.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil || !utils.CheckPassword(req.Password, user.PasswordHash) {
		// Same answer for unknown email and wrong password.
		return fail(c, 401, "invalid credentials")
	}
	if !user.IsActive {
		return fail(c, 401, "account is deactivated")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return serviceError(c, err, "could not issue token")
	}

	return ok(c, 200, "login successful", AuthData{Token: token, User: user})
}
