package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkNotificationRead(t *testing.T) {
	db := setupTestDB(t, "notif_read")
	req := mustCreateAppointment(t, db, "jane@x.com")
	mustTransition(t, db, req.ID, StatusAccepted)
	mustTransition(t, db, req.ID, StatusCompleted)

	list, err := ListNotifications(db, "jane@x.com", true, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, StatusCompleted, list[0].Status, "newest first")

	_, err = MarkNotificationRead(db, list[0].ID, "someone@else.com")
	assert.True(t, IsErrorType(err, ErrorTypeNotFound))

	n, err := MarkNotificationRead(db, list[0].ID, "jane@x.com")
	require.NoError(t, err)
	assert.NotNil(t, n.ReadAt)

	unread, err := ListNotifications(db, "jane@x.com", true, 0)
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}
