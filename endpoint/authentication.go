package endpoint

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ariebrainware/healthsync-rx/middleware"
	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	maxFailedAttempts = 5
	lockoutDuration   = 15 * time.Minute
)

var errInvalidCredentials = errors.New("invalid credentials")

// AuthOptions configures signup and signin.
type AuthOptions struct {
	SessionTTL       time.Duration
	AllowAdminSignup bool
	SecureCookie     bool
}

func (o AuthOptions) ttl() time.Duration {
	if o.SessionTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return o.SessionTTL
}

type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required" example:"Jane"`
	LastName  string `json:"lastName" example:"Doe"`
	Email     string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password  string `json:"password" binding:"required" example:"password123"`
	Role      string `json:"role" binding:"required,role" example:"patient"`
}

// AccountResponse is the public view of an account returned by signup and signin.
type AccountResponse struct {
	Name  string `json:"name" example:"Jane Doe"`
	Email string `json:"email" example:"jane@example.com"`
	Role  string `json:"role" example:"patient"`
	Token string `json:"token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// Signup godoc
// @Summary      User signup
// @Description  Register an account. The same email may register once per role.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup details"
// @Success      201 {object} util.APIResponse{data=AccountResponse} "Signup successful"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      403 {object} util.APIResponse "Admin self-registration disabled"
// @Failure      409 {object} util.APIResponse "Email already registered for this role"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /signup [post]
func Signup(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if !bindJSONOrRespond(c, &req, "Invalid request payload") {
			return
		}
		role := model.Role(req.Role)
		if role == model.RoleAdmin && !opts.AllowAdminSignup {
			util.CallForbidden(c, util.APIErrorParams{
				Msg: "Admin accounts cannot be self-registered",
				Err: fmt.Errorf("admin signup disabled"),
			})
			return
		}

		db, ok := getDBOrRespond(c)
		if !ok {
			return
		}

		if !ensureEmailAvailable(c, db, req.Email, role) {
			return
		}

		hashedPassword, err := util.HashPassword(req.Password)
		if err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
			return
		}

		newUser := model.User{
			FirstName: util.NormalizeName(req.FirstName),
			LastName:  util.NormalizeName(req.LastName),
			Email:     req.Email,
			Password:  hashedPassword,
			Role:      role,
		}
		if err := db.Create(&newUser).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				respondDuplicateAccount(c)
				return
			}
			util.CallAppError(c, model.NewStorageError("failed to create user", err))
			return
		}

		ci := clientInfoOf(c)
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventSignupSuccess,
			UserID:    fmt.Sprintf("%d", newUser.ID),
			Email:     newUser.Email,
			Role:      string(newUser.Role),
			IP:        ci.IP,
			UserAgent: ci.Agent,
			RequestID: c.GetString(util.RequestIDKey),
			Message:   "User signed up successfully",
		})

		util.CallSuccessCreated(c, util.APISuccessParams{
			Msg:  "Signup successful",
			Data: AccountResponse{Name: newUser.FullName, Email: newUser.Email, Role: string(newUser.Role)},
		})
	}
}

func respondDuplicateAccount(c *gin.Context) {
	util.CallConflict(c, util.APIErrorParams{
		Msg: "An account with this email already exists for this role",
		Err: fmt.Errorf("email already exists"),
	})
}

func ensureEmailAvailable(c *gin.Context, db *gorm.DB, email string, role model.Role) bool {
	taken, err := model.EmailRoleTaken(db, email, role, 0)
	if err != nil {
		util.CallAppError(c, model.NewStorageError("failed to check email", err))
		return false
	}
	if taken {
		respondDuplicateAccount(c)
		return false
	}
	return true
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
	Role     string `json:"role" binding:"required,role" example:"patient"`
}

type loginContext struct {
	C     *gin.Context
	DB    *gorm.DB
	Email string
	Role  model.Role
	CI    clientInfo
	Opts  AuthOptions
}

// Signin godoc
// @Summary      User signin
// @Description  Authenticate with email, password and role. Returns a session token and sets it as an HttpOnly cookie.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body SigninRequest true "Signin credentials"
// @Success      200 {object} util.APIResponse{data=AccountResponse} "Signin successful"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      401 {object} util.APIResponse "Invalid credentials or account locked"
// @Failure      429 {object} util.APIResponse "Too many requests"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /signin [post]
func Signin(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SigninRequest
		if !bindJSONOrRespond(c, &req, "Invalid request payload") {
			return
		}

		db, ok := getDBOrRespond(c)
		if !ok {
			return
		}

		ctx := loginContext{C: c, DB: db, Email: model.NormalizeEmail(req.Email), Role: model.Role(req.Role), CI: clientInfoOf(c), Opts: opts}

		user, ok := loadUserForLogin(ctx)
		if !ok {
			return
		}
		if !ensureAccountNotLocked(ctx, &user) {
			return
		}
		if !verifyPasswordOrRespond(ctx, &user, req.Password) {
			return
		}
		finalizeLogin(ctx, &user)
	}
}

func rejectLogin(ctx loginContext, reason string) {
	util.LogLoginFailure(ctx.Email, string(ctx.Role), ctx.CI.IP, ctx.CI.Agent, reason)
	util.AuthAttempts.WithLabelValues(string(ctx.Role), "failure").Inc()
	util.CallUserNotAuthorized(ctx.C, util.APIErrorParams{Msg: "Invalid email, password or role", Err: errInvalidCredentials})
}

func loadUserForLogin(ctx loginContext) (model.User, bool) {
	user, err := model.FindUserByEmailAndRole(ctx.DB, ctx.Email, ctx.Role)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rejectLogin(ctx, "user not found")
		return model.User{}, false
	}
	if err != nil {
		util.LogLoginFailure(ctx.Email, string(ctx.Role), ctx.CI.IP, ctx.CI.Agent, "database error")
		util.CallAppError(ctx.C, model.NewStorageError("failed to load user", err))
		return model.User{}, false
	}
	return user, true
}

func isAccountLocked(user *model.User) (bool, time.Time) {
	if user.LockedUntil != nil && *user.LockedUntil > time.Now().Unix() {
		return true, time.Unix(*user.LockedUntil, 0)
	}
	return false, time.Time{}
}

func ensureAccountNotLocked(ctx loginContext, user *model.User) bool {
	if locked, expiry := isAccountLocked(user); locked {
		util.LogLoginFailure(ctx.Email, string(ctx.Role), ctx.CI.IP, ctx.CI.Agent, "account locked")
		util.AuthAttempts.WithLabelValues(string(ctx.Role), "locked").Inc()
		util.CallUserNotAuthorized(ctx.C, util.APIErrorParams{
			Msg: fmt.Sprintf("Account is locked until %s due to multiple failed login attempts", expiry.Format(time.RFC3339)),
			Err: fmt.Errorf("account locked"),
		})
		return false
	}
	return true
}

func verifyPasswordOrRespond(ctx loginContext, user *model.User, plain string) bool {
	if !util.CheckPassword(user.Password, plain) {
		incrementFailedAttempts(ctx, user)
		rejectLogin(ctx, "invalid password")
		return false
	}
	return true
}

func incrementFailedAttempts(ctx loginContext, user *model.User) {
	updates := map[string]interface{}{"failed_attempts": user.FailedAttempts + 1}
	if user.FailedAttempts+1 >= maxFailedAttempts {
		lockUntil := time.Now().Add(lockoutDuration).Unix()
		updates["locked_until"] = lockUntil
		util.LogAccountLocked(user.ID, user.Email, ctx.CI.IP, "too many failed login attempts")
	}
	if err := ctx.DB.Model(&model.User{}).Where("id = ?", user.ID).UpdateColumns(updates).Error; err != nil {
		util.Log.WithError(err).WithField("user_id", user.ID).Warn("failed to record failed login attempt")
	}
}

func resetFailedAttempts(db *gorm.DB, user *model.User) error {
	if user.FailedAttempts == 0 && user.LockedUntil == nil {
		return nil
	}
	return db.Model(&model.User{}).Where("id = ?", user.ID).
		UpdateColumns(map[string]interface{}{"failed_attempts": 0, "locked_until": nil}).Error
}

func finalizeLogin(ctx loginContext, user *model.User) bool {
	if err := resetFailedAttempts(ctx.DB, user); err != nil {
		util.Log.WithError(err).WithField("user_id", user.ID).Warn("failed to reset failed login attempts")
	}

	issued, err := util.SignSessionToken(user.ID, user.Email, string(user.Role), user.FullName, ctx.Opts.ttl())
	if err != nil {
		util.LogLoginFailure(ctx.Email, string(ctx.Role), ctx.CI.IP, ctx.CI.Agent, "token generation failed")
		util.CallServerError(ctx.C, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return false
	}

	session := model.Session{
		TokenID:   issued.TokenID,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: issued.ExpiresAt,
		ClientIP:  ctx.CI.IP,
		Browser:   ctx.CI.Agent,
	}
	if err := ctx.DB.Create(&session).Error; err != nil {
		util.LogLoginFailure(ctx.Email, string(ctx.Role), ctx.CI.IP, ctx.CI.Agent, "session creation failed")
		util.CallAppError(ctx.C, model.NewStorageError("failed to record session", err))
		return false
	}

	if err := util.CacheSession(ctx.C.Request.Context(), user.ID, string(user.Role), issued.TokenID, time.Until(issued.ExpiresAt)); err != nil {
		util.Log.WithError(err).Warn("failed to cache session in redis")
	}
	if err := middleware.ResetRateLimit(ctx.C.Request.Context(), ctx.CI.IP, ctx.C.Request.URL.Path); err != nil {
		util.Log.WithError(err).Warn("failed to reset signin rate limit")
	}

	setSessionCookie(ctx.C, issued.Token, int(time.Until(issued.ExpiresAt).Seconds()), ctx.Opts.SecureCookie)
	util.LogLoginSuccess(user.ID, user.Email, string(user.Role), ctx.CI.IP, ctx.CI.Agent)
	util.AuthAttempts.WithLabelValues(string(user.Role), "success").Inc()
	util.CallSuccessOK(ctx.C, util.APISuccessParams{
		Msg:  "Signin successful",
		Data: AccountResponse{Name: user.FullName, Email: user.Email, Role: string(user.Role), Token: issued.Token},
	})
	return true
}

func setSessionCookie(c *gin.Context, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", secure, true)
}

// Logout godoc
// @Summary      User logout
// @Description  Revoke the current session and clear the session cookie
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Logout successful"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /logout [post]
func Logout(c *gin.Context) {
	who, ok := callerOrRespond(c)
	if !ok {
		return
	}
	tokenID, _ := middleware.GetTokenID(c)

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	if err := db.Unscoped().Where("token_id = ?", tokenID).Delete(&model.Session{}).Error; err != nil {
		util.CallAppError(c, model.NewStorageError("failed to delete session", err))
		return
	}
	if err := util.RemoveSessionTokenFromUserSet(c.Request.Context(), who.UserID, tokenID); err != nil {
		util.Log.WithError(err).Warn("failed to remove session from redis")
	}

	util.LogLogout(who.UserID, who.Email, c.ClientIP(), c.Request.UserAgent())
	setSessionCookie(c, "", -1, false)
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Logout successful"})
}

// SessionResponse describes the verified identity behind a session token.
type SessionResponse struct {
	UserID    uint      `json:"userId" example:"1"`
	Name      string    `json:"name" example:"Jane Doe"`
	Email     string    `json:"email" example:"jane@example.com"`
	Role      string    `json:"role" example:"patient"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GetSession godoc
// @Summary      Validate session token
// @Description  Return the identity behind the current session token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=SessionResponse} "Valid session token"
// @Failure      401 {object} util.APIResponse "Invalid or expired session token"
// @Router       /session [get]
func GetSession(c *gin.Context) {
	who, ok := callerOrRespond(c)
	if !ok {
		return
	}
	resp := SessionResponse{UserID: who.UserID, Name: who.Name, Email: who.Email, Role: string(who.Role)}

	if db := middleware.GetDB(c); db != nil {
		tokenID, _ := middleware.GetTokenID(c)
		if session, err := model.FindLiveSession(db, tokenID); err == nil {
			resp.ExpiresAt = session.ExpiresAt
		}
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Valid session token", Data: resp})
}

// GetCurrentUser godoc
// @Summary      Current user profile
// @Description  Return the profile of the signed-in user
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=model.User} "User retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "User not found"
// @Router       /user [get]
func GetCurrentUser(c *gin.Context) {
	who, ok := callerOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	user, ok := fetchUserByID(c, db, who.UserID)
	if !ok {
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "User retrieved", Data: user})
}
