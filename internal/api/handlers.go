package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lenshive/backend/internal/common"
	"github.com/lenshive/backend/internal/models"
)

// userView is the public projection of a user. The password hash and token
// are never embedded in it.
type userView struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u *models.User) userView {
	return userView{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// register handles POST /api/auth/register.
func (s *Server) register(c *gin.Context) {
	ctx := c.Request.Context()

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Registration failed",
			"errors":  gin.H{"non_field_errors": []string{"Invalid JSON body"}},
		})
		return
	}

	if errs := validateRegister(ctx, s.auth, &req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": errs.firstMessage("Registration failed"),
			"errors":  errs,
		})
		return
	}

	user, token, err := s.auth.Register(ctx, req.Email, req.fullName(), req.Password)
	if err != nil {
		// The advisory check can lose to a concurrent registration; the
		// unique index reports the conflict here instead.
		if errors.Is(err, common.ErrorAlreadyExists) {
			errs := fieldErrors{"email": {msgEmailTaken}}
			c.JSON(http.StatusBadRequest, gin.H{
				"message": msgEmailTaken,
				"errors":  errs,
			})
			return
		}
		s.logger.Error(ctx, "registration failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	s.logger.Info(ctx, "user registered", "email", user.Email)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    newUserView(user),
		"token":   token,
	})
}

// login handles POST /api/auth/login.
func (s *Server) login(c *gin.Context) {
	ctx := c.Request.Context()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Must include email and password"})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Must include email and password"})
		return
	}

	user, token, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
		case errors.Is(err, common.ErrorUserDisabled):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User account is disabled"})
		default:
			s.logger.Error(ctx, "login failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		}
		return
	}

	s.logger.Info(ctx, "user logged in", "email", user.Email)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    newUserView(user),
		"token":   token,
	})
}

// profile handles GET /api/user/profile.
func (s *Server) profile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserView(user)})
}

// logout handles POST /api/auth/logout.
func (s *Server) logout(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
		return
	}

	if err := s.auth.Logout(ctx, user.ID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Logout failed",
			"error":   err.Error(),
		})
		return
	}

	s.logger.Info(ctx, "user logged out", "email", user.Email)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// testConnection handles GET /api/auth/test.
func (s *Server) testConnection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "LensHive API is running!",
		"status":  "success",
	})
}
