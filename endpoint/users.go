package endpoint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Sentinel errors for user update operations
var (
	ErrUserEmailAlreadyExists = errors.New("email already exists for this role")
)

type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required" example:"John"`
	LastName  string `json:"lastName" example:"Smith"`
	Email     string `json:"email" binding:"required,email" example:"john@example.com"`
	Password  string `json:"password" binding:"required" example:"password123"`
	Role      string `json:"role" binding:"required,role" example:"doctor"`
}

type UpdateUserRequest struct {
	FirstName string `json:"firstName" example:"John"`
	LastName  string `json:"lastName" example:"Smith"`
	Email     string `json:"email" binding:"omitempty,email" example:"john@example.com"`
	Password  string `json:"password" example:"newpassword123"`
	Role      string `json:"role" binding:"omitempty,role" example:"doctor"`
}

func (r *UpdateUserRequest) empty() bool {
	return r.FirstName == "" && r.LastName == "" && r.Email == "" && r.Password == "" && r.Role == ""
}

// userChange records which security-relevant fields an update touched.
type userChange struct {
	passwordChanged bool
	roleChanged     bool
	previousRole    model.Role
}

// applyUserUpdate applies req to user, checking (email, role) uniqueness and hashing a new
// password. It does not write to the database.
func applyUserUpdate(db *gorm.DB, user *model.User, req *UpdateUserRequest) (userChange, error) {
	change := userChange{previousRole: user.Role}

	email, role := user.Email, user.Role
	if req.Email != "" {
		email = model.NormalizeEmail(req.Email)
	}
	if req.Role != "" {
		role = model.Role(req.Role)
	}
	if email != user.Email || role != user.Role {
		taken, err := model.EmailRoleTaken(db, email, role, user.ID)
		if err != nil {
			return change, model.NewStorageError("failed to validate email uniqueness", err)
		}
		if taken {
			return change, ErrUserEmailAlreadyExists
		}
	}
	change.roleChanged = role != user.Role
	user.Email, user.Role = email, role

	if req.FirstName != "" {
		user.FirstName = util.NormalizeName(req.FirstName)
	}
	if req.LastName != "" {
		user.LastName = util.NormalizeName(req.LastName)
	}

	if req.Password != "" {
		hashed, err := util.HashPassword(req.Password)
		if err != nil {
			return change, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
		change.passwordChanged = true
	}
	return change, nil
}

// invalidateUserSessions removes session records from both DB and Redis for a given user.
func invalidateUserSessions(c *gin.Context, db *gorm.DB, userID uint) {
	tokenIDs, err := model.DeleteUserSessions(db, userID)
	if err != nil {
		util.Log.WithError(err).WithField("user_id", userID).Warn("failed to delete user sessions")
	}
	if err := util.InvalidateUserSessions(c.Request.Context(), userID, tokenIDs...); err != nil {
		util.Log.WithError(err).WithField("user_id", userID).Warn("failed to invalidate cached sessions")
	}
}

// ListUsers godoc
// @Summary      List users (admin only)
// @Description  Cursor-paginated list of users, optionally filtered by keyword and role
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Limit number of results (default 10, max 100)"
// @Param        cursor query int false "Cursor for pagination (User ID)"
// @Param        keyword query string false "Search keyword for name or email"
// @Param        role query string false "Only users with this role"
// @Success      200 {object} util.APIResponse{data=object} "Users retrieved with cursor pagination"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users [get]
func ListUsers(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	limit := parsePositiveInt(c.Query("limit"), 10, 100)
	cursor := parseUintQuery(c, "cursor")

	query := db.Model(&model.User{})
	if keyword := strings.ToLower(strings.TrimSpace(c.Query("keyword"))); keyword != "" {
		kw := "%" + keyword + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR email LIKE ?", kw, kw)
	}
	if role := c.Query("role"); role != "" {
		if !model.Role(role).Valid() {
			util.CallUserError(c, util.APIErrorParams{Msg: "role must be one of admin, doctor, patient", Err: fmt.Errorf("invalid role %q", role)})
			return
		}
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		util.CallAppError(c, model.NewStorageError("failed to count users", err))
		return
	}

	if cursor > 0 {
		query = query.Where("id > ?", cursor)
	}
	users := []model.User{}
	if err := query.Order("id ASC").Limit(limit + 1).Find(&users).Error; err != nil {
		util.CallAppError(c, model.NewStorageError("failed to list users", err))
		return
	}

	hasMore := len(users) > limit
	if hasMore {
		users = users[:limit]
	}
	var nextCursor *uint
	if hasMore {
		lastID := users[len(users)-1].ID
		nextCursor = &lastID
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Users retrieved",
		Data: map[string]interface{}{
			"users":         users,
			"total":         total,
			"total_fetched": len(users),
			"has_more":      hasMore,
			"next_cursor":   nextCursor,
		},
	})
}

// CreateUser godoc
// @Summary      Create user (admin only)
// @Description  Create an account of any role
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateUserRequest true "User details"
// @Success      201 {object} util.APIResponse{data=model.User} "User created"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      409 {object} util.APIResponse "Email already registered for this role"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users [post]
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	role := model.Role(req.Role)
	if !ensureEmailAvailable(c, db, req.Email, role) {
		return
	}

	hashed, err := util.HashPassword(req.Password)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
		return
	}
	user := model.User{
		FirstName: util.NormalizeName(req.FirstName),
		LastName:  util.NormalizeName(req.LastName),
		Email:     req.Email,
		Password:  hashed,
		Role:      role,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondDuplicateAccount(c)
			return
		}
		util.CallAppError(c, model.NewStorageError("failed to create user", err))
		return
	}
	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "User created", Data: user})
}

// GetUserInfo godoc
// @Summary      Get user (admin only)
// @Description  Retrieve a user's information by ID
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200 {object} util.APIResponse{data=model.User} "User retrieved"
// @Failure      400 {object} util.APIResponse "Invalid user id"
// @Failure      404 {object} util.APIResponse "User not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users/{id} [get]
func GetUserInfo(c *gin.Context) {
	uid, ok := idParamOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	user, ok := fetchUserByID(c, db, uid)
	if !ok {
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "User retrieved", Data: user})
}

// UpdateUser godoc
// @Summary      Update user (admin only)
// @Description  Change a user's name, email, role or password. Role and password changes revoke the user's sessions.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Param        request body UpdateUserRequest true "Update details"
// @Success      200 {object} util.APIResponse{data=model.User} "User updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "User not found"
// @Failure      409 {object} util.APIResponse "Email already registered for this role"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users/{id} [put]
func UpdateUser(c *gin.Context) {
	uid, ok := idParamOrRespond(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	if req.empty() {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "At least one field (firstName, lastName, email, password, role) must be provided",
			Err: fmt.Errorf("no fields to update"),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	user, ok := fetchUserByID(c, db, uid)
	if !ok {
		return
	}

	change, err := applyUserUpdate(db, user, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserEmailAlreadyExists):
			util.CallConflict(c, util.APIErrorParams{Msg: "An account with this email already exists for this role", Err: err})
		case model.IsErrorType(err, model.ErrorTypeStorage):
			util.CallAppError(c, err)
		default:
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update user fields", Err: err})
		}
		return
	}

	if err := db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondDuplicateAccount(c)
			return
		}
		util.CallAppError(c, model.NewStorageError("failed to update user", err))
		return
	}

	if change.passwordChanged || change.roleChanged {
		invalidateUserSessions(c, db, user.ID)
	}
	ci := clientInfoOf(c)
	if change.passwordChanged {
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventPasswordChanged,
			UserID:    fmt.Sprintf("%d", user.ID),
			Email:     user.Email,
			Role:      string(user.Role),
			IP:        ci.IP,
			UserAgent: ci.Agent,
			RequestID: c.GetString(util.RequestIDKey),
			Message:   "Password changed by administrator",
		})
	}
	if change.roleChanged {
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventRoleChanged,
			UserID:    fmt.Sprintf("%d", user.ID),
			Email:     user.Email,
			Role:      string(user.Role),
			IP:        ci.IP,
			UserAgent: ci.Agent,
			RequestID: c.GetString(util.RequestIDKey),
			Message:   fmt.Sprintf("Role changed from %s to %s", change.previousRole, user.Role),
		})
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "User updated successfully", Data: user})
}

// fetchUserByID retrieves a user by ID, returning appropriate error responses for not found or DB errors.
func fetchUserByID(c *gin.Context, db *gorm.DB, userID uint) (*model.User, bool) {
	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "User not found", Err: err})
			return nil, false
		}
		util.CallAppError(c, model.NewStorageError("failed to retrieve user", err))
		return nil, false
	}
	return &user, true
}

// deleteUserWithSessions removes a user and all their session rows atomically and returns the
// revoked token ids.
func deleteUserWithSessions(db *gorm.DB, userID uint) ([]string, error) {
	var tokenIDs []string
	err := db.Transaction(func(tx *gorm.DB) error {
		user := &model.User{}
		if err := tx.First(user, userID).Error; err != nil {
			return err
		}
		ids, err := model.DeleteUserSessions(tx, userID)
		if err != nil {
			return err
		}
		tokenIDs = ids
		return tx.Unscoped().Delete(user).Error
	})
	return tokenIDs, err
}

// DeleteUser godoc
// @Summary      Delete user (admin only)
// @Description  Permanently delete a user and revoke their sessions
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200 {object} util.APIResponse "User deleted"
// @Failure      400 {object} util.APIResponse "Invalid user id"
// @Failure      404 {object} util.APIResponse "User not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users/{id} [delete]
func DeleteUser(c *gin.Context) {
	uid, ok := idParamOrRespond(c)
	if !ok {
		return
	}
	who, ok := callerOrRespond(c)
	if !ok {
		return
	}
	if who.UserID == uid {
		util.CallUserError(c, util.APIErrorParams{Msg: "Administrators cannot delete their own account", Err: fmt.Errorf("self delete")})
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	tokenIDs, err := deleteUserWithSessions(db, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "User not found", Err: err})
			return
		}
		util.CallAppError(c, model.NewStorageError("failed to delete user", err))
		return
	}

	if err := util.InvalidateUserSessions(c.Request.Context(), uid, tokenIDs...); err != nil {
		util.Log.WithError(err).WithField("user_id", uid).Warn("failed to invalidate cached sessions")
	}
	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventUserDeleted,
		UserID:    fmt.Sprintf("%d", uid),
		Email:     who.Email,
		Role:      string(who.Role),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString(util.RequestIDKey),
		Message:   fmt.Sprintf("User %d deleted by administrator %d", uid, who.UserID),
	})
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "User deleted"})
}
