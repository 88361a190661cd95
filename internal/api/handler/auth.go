package handler

import (
	"errors"
	"net/http"

	"lecturehub/backend/internal/api/middleware"
	"lecturehub/backend/internal/auth"
	"lecturehub/backend/internal/models"
	"lecturehub/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type registerRequest struct {
	Email        string   `json:"email"`
	MatricNumber string   `json:"matric_number"`
	Level        int      `json:"level"`
	IsClassRep   bool     `json:"is_class_rep"`
	Password     string   `json:"password"`
	CourseCodes  []string `json:"course_codes"`
}

// Register creates an account. Lecturers register with an email, students
// with a matric number and level; the two identifiers are mutually
// exclusive, mirroring the login rules.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := buildUser(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}
	user.PasswordHash = hash

	if err := h.Storage.CreateUser(user); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func buildUser(req registerRequest) (*models.User, error) {
	if req.Password == "" {
		return nil, errors.New("the password is required")
	}
	if req.Email == "" && req.MatricNumber == "" {
		return nil, errors.New("the email or matric number is required")
	}
	if req.Email != "" && req.MatricNumber != "" {
		return nil, errors.New("you can only use email or matric number")
	}

	user := &models.User{CourseCodes: pq.StringArray(req.CourseCodes)}

	if req.Email != "" {
		if req.Level != 0 {
			return nil, errors.New("the level is not required for lecturers")
		}
		if req.IsClassRep {
			return nil, errors.New("the is_class_rep field is not required for lecturers")
		}
		user.Email = &req.Email
		user.Role = models.RoleLecturer
		return user, nil
	}

	if !models.ValidMatricNumber(req.MatricNumber) {
		return nil, errors.New("the matric number is not valid, it should be in the format 'ABC/12/3456'")
	}
	if req.Level == 0 {
		return nil, errors.New("the level is required for students")
	}
	user.MatricNumber = &req.MatricNumber
	user.Level = &req.Level
	if req.IsClassRep {
		user.Role = models.RoleClassRep
	} else {
		user.Role = models.RoleOther
	}
	return user, nil
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates the user and activates a new current session,
// atomically superseding any previous one.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.Storage.FindUserByLogin(req.Username)
	if errors.Is(err, storage.ErrUserNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.Tokens.Generate(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	session, err := h.Storage.CreateSession(user.ID, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":          session.Token,
		"user_id":        user.ID,
		"role":           user.Role,
		"is_first_login": session.IsFirstLogin,
	})
}

// Logout clears the current session flag; the token stops resolving
// immediately. The session row is kept.
func (h *Handler) Logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.Storage.InvalidateSession(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
