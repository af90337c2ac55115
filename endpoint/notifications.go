package endpoint

import (
	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
)

// ListNotifications godoc
// @Summary      List notifications
// @Description  Appointment status notifications of the caller, newest first
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Param        unread query bool false "Only unread notifications"
// @Param        limit query int false "Maximum results (default 50, max 200)"
// @Success      200 {object} util.APIResponse{data=[]model.Notification} "Notifications"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /notifications [get]
func ListNotifications(c *gin.Context) {
	who, ok := callerOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	unread := c.Query("unread") == "true" || c.Query("unread") == "1"
	limit := parsePositiveInt(c.Query("limit"), 50, 200)
	notifications, err := model.ListNotifications(db, who.Email, unread, limit)
	if err != nil {
		util.CallAppError(c, err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Notifications retrieved", Data: notifications})
}

// MarkNotificationRead godoc
// @Summary      Mark notification read
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Notification ID"
// @Success      200 {object} util.APIResponse{data=model.Notification} "Notification updated"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /notifications/{id}/read [patch]
func MarkNotificationRead(c *gin.Context) {
	id, ok := idParamOrRespond(c)
	if !ok {
		return
	}
	who, ok := callerOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	n, err := model.MarkNotificationRead(db, id, who.Email)
	if err != nil {
		util.CallAppError(c, err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Notification marked as read", Data: n})
}
