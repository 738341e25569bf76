package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/carbonsaathi/carbonsaathi-api/internal/application"
	"github.com/carbonsaathi/carbonsaathi-api/internal/domain/entity"
	"github.com/carbonsaathi/carbonsaathi-api/pkg/response"
	"github.com/carbonsaathi/carbonsaathi-api/pkg/validation"
)

type AccountHandler struct {
	Svc    *app.Service
	Logger *logrus.Logger
}

func NewAccountHandler(svc *app.Service, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type companyRequest struct {
	Name     string `json:"name" binding:"required"`
	Size     string `json:"size" binding:"required,companysize"`
	Industry string `json:"industry" binding:"required"`
}

type registerRequest struct {
	FirstName string         `json:"firstName" binding:"required"`
	LastName  string         `json:"lastName" binding:"required"`
	// Email shape is checked after trimming/lowercasing in entity.NewUser, so
	// padded input normalizes instead of bouncing at the binding layer.
	Email string `json:"email" binding:"required"`
	Role      string         `json:"role"`
	Password  string         `json:"password" binding:"required,pwd"`
	Company   companyRequest `json:"company" binding:"required"`
	MainGoal  string         `json:"mainGoal"`
	HeardFrom string         `json:"heardFrom"`
	// A false value is the zero value and fails "required", which is the
	// rule: terms must be accepted at creation.
	AgreeTerms bool `json:"agreeTerms" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type companyView struct {
	Name     string `json:"name"`
	Size     string `json:"size"`
	Industry string `json:"industry"`
}

// accountView is the public projection; it never carries the password hash.
type accountView struct {
	ID        string      `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      string      `json:"role,omitempty"`
	Company   companyView `json:"company"`
	Token     string      `json:"token,omitempty"`
}

func viewOf(u *entity.User, token string) accountView {
	return accountView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Company: companyView{
			Name:     u.Company.Name,
			Size:     u.Company.Size,
			Industry: u.Company.Industry,
		},
		Token: token,
	}
}

// Register handles POST /api/auth/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Please fill all required fields", validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.Register(c.Request.Context(), entity.NewUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		Password:  req.Password,
		Company: entity.Company{
			Name:     req.Company.Name,
			Size:     req.Company.Size,
			Industry: req.Company.Industry,
		},
		MainGoal:   req.MainGoal,
		HeardFrom:  req.HeardFrom,
		AgreeTerms: req.AgreeTerms,
	})
	if err != nil {
		var verr *entity.ValidationError
		switch {
		case errors.Is(err, app.ErrEmailTaken):
			response.Error[any](c, http.StatusBadRequest, "User already exists", nil)
		case errors.As(err, &verr):
			response.Error[any](c, http.StatusBadRequest, "Please fill all required fields", verr.Fields)
		default:
			h.Logger.WithError(err).WithField("email", req.Email).Error("register failed")
			response.Error[any](c, http.StatusInternalServerError, "Server error", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, viewOf(u, token), "account created")
}

// Login handles POST /api/auth/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed credentials cannot possibly authenticate; answer exactly
		// like a failed login so the error shape leaks nothing.
		response.Error[any](c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}

	response.Success(c, http.StatusOK, viewOf(u, token), "login successful")
}

// Me handles GET /api/auth/me (bearer token required)
func (h *AccountHandler) Me(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, app.ErrAccountNotFound) {
			response.Error[any](c, http.StatusNotFound, "User not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("profile lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	response.Success(c, http.StatusOK, viewOf(u, ""), "profile")
}

// Search handles GET /api/users/search?q=&size= (bearer token required)
func (h *AccountHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchAccounts(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("account search failed")
		response.Error[any](c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}
