package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
	"github.com/SscSPs/banking_backoffice_app/internal/middleware"
	"github.com/SscSPs/banking_backoffice_app/internal/platform/config"
)

const defaultLoginRateLimit = "5-M"

// userHandler handles registration, login and user lookups.
type userHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *userHandler {
	return &userHandler{userService: us, tokenService: ts}
}

// registerPublicUserRoutes sets up registration and the rate limited login.
func registerPublicUserRoutes(rg *gin.RouterGroup, cfg *config.Config, us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) {
	h := newUserHandler(us, ts)

	users := rg.Group("/users")
	{
		users.POST("", h.register)
		users.POST("/login", middleware.RateLimit(newLoginLimiter(cfg.LoginRateLimit)), h.login)
	}
}

// registerUserRoutes sets up the authenticated user routes.
func registerUserRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade) {
	h := newUserHandler(us, nil)
	rg.GET("/users/:id", h.getUser)
}

// newLoginLimiter limits login attempts per client IP, in memory.
func newLoginLimiter(formatted string) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		slog.Warn("Invalid login rate limit, using default",
			slog.String("rate", formatted),
			slog.String("default", defaultLoginRateLimit),
			slog.String("error", err.Error()))
		rate, _ = limiter.NewRateFromFormatted(defaultLoginRateLimit)
	}
	return limiter.New(memory.NewStore(), rate)
}

// register godoc
// @Summary Register a user
// @Description Creates a user with one or more existing roles
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.RegisterUserRequest true "User"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorDetails "Validation error, unknown role or taken username"
// @Router /users [post]
func (h *userHandler) register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary Log in
// @Description Returns an access token and a refresh token
// @Tags users
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorDetails "Incorrect username or password"
// @Failure 429 {object} dto.ErrorDetails
// @Router /users/login [post]
func (h *userHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	tokens, err := h.tokenService.IssueTokens(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in", slog.Int64("user_id", user.ID))
	c.JSON(http.StatusOK, tokens)
}

// getUser godoc
// @Summary Get a user
// @Description Users may read themselves; support and administrators may read anyone
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorDetails
// @Failure 403 {object} dto.ErrorDetails
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	callerID, ok := callerID(c)
	if !ok {
		return
	}

	if callerID != userID && !hasAnyRole(middleware.GetRolesFromContext(c), domain.RoleSupport, domain.RoleAdministrator) {
		writeError(c, fmt.Errorf("%w: You are not allowed to perform this action", apperrors.ErrForbidden))
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func pathUserID(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(c, fmt.Errorf("%w: User id must be a positive integer", apperrors.ErrValidation))
		return 0, false
	}
	return userID, true
}

func hasAnyRole(granted []domain.Role, wanted ...domain.Role) bool {
	for _, g := range granted {
		for _, w := range wanted {
			if g == w {
				return true
			}
		}
	}
	return false
}
