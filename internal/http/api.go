package http

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinevault/internal/domain"
	"cinevault/internal/repository"
	"cinevault/internal/service"
	"cinevault/internal/storage"
)

// avatarURLTTL bounds how long a presigned avatar download link stays valid.
const avatarURLTTL = 15 * time.Minute

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth      service.AuthService
	users     service.UserService
	lists     service.ListService
	storage   storage.Service
	bucket    string
	keyPrefix string
	secret    []byte
}

func NewHandler(authSvc service.AuthService, users service.UserService, lists service.ListService, store storage.Service, bucket, keyPrefix string, secret []byte) *Handler {
	return &Handler{
		auth:      authSvc,
		users:     users,
		lists:     lists,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		secret:    secret,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}

	users := api.Group("/users")
	{
		users.POST("", requireAuth(h.secret), h.createUser)
		users.PUT("/:id", requireAuth(h.secret), h.updateUser)
		users.DELETE("/:id", requireAuth(h.secret), h.deleteUser)
		users.GET("", requireAuth(h.secret), h.listUsers)
		users.GET("/find/:id", h.findUser)
		users.GET("/stats", h.userStats)
		users.POST("/:id/avatar", requireAuth(h.secret), h.uploadAvatar)
		users.GET("/:id/avatar", h.getAvatar)
	}

	lists := api.Group("/lists")
	{
		lists.POST("", requireAuth(h.secret), h.createList)
		lists.PUT("/:id", requireAuth(h.secret), h.updateList)
		lists.DELETE("/:id", requireAuth(h.secret), h.deleteList)
		lists.GET("", requireAuth(h.secret), h.queryLists)
	}

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
}

// --- auth ---

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, userToResponse(*user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong email or password!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := userToResponse(*user)
	c.JSON(http.StatusOK, loginResponse{UserResponse: resp, AccessToken: token})
}

// --- users ---

type createUserRequest struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	ProfilePic string `json:"profilePic"`
	Status     string `json:"status"`
	IsAdmin    bool   `json:"isAdmin"`
}

func (h *Handler) createUser(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil || !claims.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed!"})
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), service.CreateUserInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		ProfilePic: req.ProfilePic,
		Status:     req.Status,
		IsAdmin:    req.IsAdmin,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, userToResponse(*user))
}

type updateUserRequest struct {
	Username   *string `json:"username"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	ProfilePic *string `json:"profilePic"`
	Status     *string `json:"status"`
	IsAdmin    *bool   `json:"isAdmin"`
}

func (h *Handler) updateUser(c *gin.Context) {
	claims := currentClaims(c)
	targetID := c.Param("id")
	if claims == nil || claims.UserID == "" || targetID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	if claims.UserID != targetID && !claims.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can update only your account!"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Update(c.Request.Context(), targetID, domain.UserPatch{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		ProfilePic: req.ProfilePic,
		IsAdmin:    req.IsAdmin,
		Status:     req.Status,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	claims := currentClaims(c)
	targetID := c.Param("id")
	if claims == nil || (claims.UserID != targetID && !claims.IsAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can delete only your account!"})
		return
	}

	if err := h.users.Delete(c.Request.Context(), targetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User has been deleted..."})
}

func (h *Handler) findUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) listUsers(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil || !claims.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed!"})
		return
	}

	newestOnly := c.Query("new") != ""
	users, err := h.users.List(c.Request.Context(), newestOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) userStats(c *gin.Context) {
	stats, err := h.users.MonthlyStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	claims := currentClaims(c)
	targetID := c.Param("id")
	if claims == nil || (claims.UserID != targetID && !claims.IsAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can update only your account!"})
		return
	}

	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	key := avatarKey(h.keyPrefix, targetID, fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")

	location, err := h.storage.UploadObject(c.Request.Context(), h.bucket, key, contentType, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.SetProfilePic(c.Request.Context(), targetID, location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) getAvatar(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if user.ProfilePic == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no avatar set"})
		return
	}

	bucket, key, err := storage.SplitLocation(user.ProfilePic)
	if err != nil {
		// profilePic may hold an external URL set at registration
		c.Redirect(http.StatusTemporaryRedirect, user.ProfilePic)
		return
	}

	if h.storage == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	url, err := h.storage.GetObjectURL(c.Request.Context(), bucket, key, avatarURLTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url)
}

// --- lists ---

type createListRequest struct {
	Title   string   `json:"title" binding:"required"`
	Type    string   `json:"type" binding:"required"`
	Genre   string   `json:"genre" binding:"required"`
	Content []string `json:"content"`
}

func (h *Handler) createList(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil || !claims.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed!"})
		return
	}

	var req createListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.lists.Create(c.Request.Context(), &domain.List{
		Title:   req.Title,
		Type:    req.Type,
		Genre:   req.Genre,
		Content: req.Content,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, listToResponse(*list))
}

type updateListRequest struct {
	Title   *string   `json:"title"`
	Type    *string   `json:"type"`
	Genre   *string   `json:"genre"`
	Content *[]string `json:"content"`
}

func (h *Handler) updateList(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil || !claims.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed!"})
		return
	}

	var req updateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.lists.Update(c.Request.Context(), c.Param("id"), domain.ListPatch{
		Title:   req.Title,
		Type:    req.Type,
		Genre:   req.Genre,
		Content: req.Content,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listToResponse(*list))
}

func (h *Handler) deleteList(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil || !claims.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed!"})
		return
	}

	if err := h.lists.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "The list has been deleted..."})
}

func (h *Handler) queryLists(c *gin.Context) {
	lists, err := h.lists.Sample(c.Request.Context(), c.Query("type"), c.Query("genre"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]ListResponse, len(lists))
	for i := range lists {
		resp[i] = listToResponse(lists[i])
	}
	c.JSON(http.StatusOK, resp)
}

// --- responses ---

type UserResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	ProfilePic string `json:"profilePic"`
	IsAdmin    bool   `json:"isAdmin"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

type loginResponse struct {
	UserResponse
	AccessToken string `json:"accessToken"`
}

type ListResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Type      string   `json:"type"`
	Genre     string   `json:"genre"`
	Content   []string `json:"content"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID.Hex(),
		Username:   user.Username,
		Email:      user.Email,
		Password:   user.Password,
		ProfilePic: user.ProfilePic,
		IsAdmin:    user.IsAdmin,
		Status:     user.Status,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  user.UpdatedAt.Format(time.RFC3339),
	}
}

func listToResponse(list domain.List) ListResponse {
	content := list.Content
	if content == nil {
		content = []string{}
	}
	return ListResponse{
		ID:        list.ID.Hex(),
		Title:     list.Title,
		Type:      list.Type,
		Genre:     list.Genre,
		Content:   content,
		CreatedAt: list.CreatedAt.Format(time.RFC3339),
		UpdatedAt: list.UpdatedAt.Format(time.RFC3339),
	}
}

func avatarKey(prefix, userID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%s/%s%s", userID, uuid.NewString(), ext)
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		key = prefix + "/" + key
	}
	return key
}
