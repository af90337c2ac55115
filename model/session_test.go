package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SessionCreateOpts groups parameters for creating a test session.
type SessionCreateOpts struct {
	UserID  uint
	TokenID string
	Expires time.Time
}

func mustCreateSession(db *gorm.DB, t *testing.T, opts SessionCreateOpts) Session {
	t.Helper()
	s := Session{
		TokenID:   opts.TokenID,
		UserID:    opts.UserID,
		Role:      RolePatient,
		ExpiresAt: opts.Expires,
		ClientIP:  "127.0.0.1",
		Browser:   "go-test",
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return s
}

func TestFindLiveSession(t *testing.T) {
	db := setupTestDB(t, "session_live", &Session{})

	mustCreateSession(db, t, SessionCreateOpts{UserID: 1, TokenID: "live", Expires: time.Now().Add(time.Hour)})
	mustCreateSession(db, t, SessionCreateOpts{UserID: 1, TokenID: "expired", Expires: time.Now().Add(-time.Hour)})

	s, err := FindLiveSession(db, "live")
	require.NoError(t, err)
	assert.Equal(t, uint(1), s.UserID)

	_, err = FindLiveSession(db, "expired")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteUserSessions(t *testing.T) {
	db := setupTestDB(t, "session_delete", &Session{})

	for i := 0; i < 3; i++ {
		mustCreateSession(db, t, SessionCreateOpts{UserID: 7, TokenID: fmt.Sprintf("tok-%d", i), Expires: time.Now().Add(time.Hour)})
	}
	mustCreateSession(db, t, SessionCreateOpts{UserID: 8, TokenID: "other", Expires: time.Now().Add(time.Hour)})

	revoked, err := DeleteUserSessions(db, 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tok-0", "tok-1", "tok-2"}, revoked)

	var remaining int64
	db.Model(&Session{}).Count(&remaining)
	assert.Equal(t, int64(1), remaining)
}
