package controllers

import (
	"errors"
	"strings"

	"campus-backend/models"
	"campus-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserController is the admin-only user management surface.
type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// CreateUserRequest is the admin user-creation payload.
type CreateUserRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	EnrollmentID string `json:"enrollment_id"`
	Department   string `json:"department"`
}

// UpdateUserRequest is a partial update; only fields present in the body
// are applied.
type UpdateUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	Role         *string `json:"role"`
	EnrollmentID *string `json:"enrollment_id"`
	Department   *string `json:"department"`
	IsActive     *bool   `json:"is_active"`
}

// List returns all users, newest first.
func (uc *UserController) List(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return serviceError(c, err, "could not list users")
	}
	return ok(c, 200, "", users)
}

// Get returns one user by id.
func (uc *UserController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid user id")
	}

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, 404, "user not found")
		}
		return serviceError(c, err, "could not load user")
	}
	return ok(c, 200, "", user)
}

// Create adds a user with an explicit role.
func (uc *UserController) Create(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return fail(c, 400, "name, email, password and role are required")
	}
	if len(req.Password) < 6 {
		return fail(c, 400, "password must be at least 6 characters")
	}
	if !models.ValidRole(req.Role) {
		return fail(c, 400, "role must be admin, teacher, clerk or student")
	}

	var existing models.User
	if err := uc.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
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
		Role:         req.Role,
		EnrollmentID: strings.TrimSpace(req.EnrollmentID),
		Department:   strings.TrimSpace(req.Department),
		IsActive:     true,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		return serviceError(c, err, "could not create user")
	}

	return ok(c, 201, "user created", user)
}

// Update applies a partial update to one user.
func (uc *UserController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid user id")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "invalid request body")
	}

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, 404, "user not found")
		}
		return serviceError(c, err, "could not load user")
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return fail(c, 400, "name cannot be empty")
		}
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailRe.MatchString(email) {
			return fail(c, 400, "invalid email address")
		}
		user.Email = email
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return fail(c, 400, "password must be at least 6 characters")
		}
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return serviceError(c, err, "could not update user")
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return fail(c, 400, "role must be admin, teacher, clerk or student")
		}
		user.Role = *req.Role
	}
	if req.EnrollmentID != nil {
		user.EnrollmentID = strings.TrimSpace(*req.EnrollmentID)
	}
	if req.Department != nil {
		user.Department = strings.TrimSpace(*req.Department)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return serviceError(c, err, "could not update user")
	}

	return ok(c, 200, "user updated", user)
}

// Delete removes a user account.
func (uc *UserController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, 400, "invalid user id")
	}

	res := uc.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		return serviceError(c, res.Error, "could not delete user")
	}
	if res.RowsAffected == 0 {
		return fail(c, 404, "user not found")
	}

	return ok(c, 200, "user deleted", nil)
}
