package httpserver

import (
	"net/http"

	usersvc "foodexpress/internal/service/user"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	// LegacyFullName accepts the snake_case key older clients send.
	LegacyFullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	fullName := req.FullName
	if fullName == "" {
		fullName = req.LegacyFullName
	}
	u, err := h.deps.UserSvc.Register(c.Request.Context(), usersvc.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: fullName,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "registration successful", "user": toUserResponse(*u)})
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	res, err := h.deps.UserSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   res.ExpiresIn,
		UserID:      res.User.ID,
	})
}

// logout is stateless; the client drops its token.
func (h *handlers) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "logged out, discard the token on the client"})
}

func (h *handlers) testToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "token is valid", "userId": currentUserID(c)})
}

func (h *handlers) me(c *gin.Context) {
	u, err := h.deps.UserSvc.Me(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*u))
}
