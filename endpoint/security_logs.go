package endpoint

import (
	"fmt"
	"time"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
)

// ListSecurityLogs godoc
// @Summary      List security events (admin only)
// @Description  Persisted security and endpoint events, newest first
// @Tags         Security
// @Produce      json
// @Security     BearerAuth
// @Param        event query string false "Event type, e.g. LOGIN_FAILURE"
// @Param        email query string false "Email of the actor"
// @Param        since query string false "RFC3339 lower bound"
// @Param        limit query int false "Maximum results (default 100, max 500)"
// @Success      200 {object} util.APIResponse{data=[]model.SecurityLog} "Security events"
// @Failure      400 {object} util.APIResponse "Invalid since"
// @Router       /security-logs [get]
func ListSecurityLogs(c *gin.Context) {
	filter := model.SecurityLogFilter{
		EventType: c.Query("event"),
		Email:     c.Query("email"),
		Limit:     parsePositiveInt(c.Query("limit"), 100, 500),
	}
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "since must be an RFC3339 timestamp", Err: fmt.Errorf("invalid since %q", raw)})
			return
		}
		filter.Since = since
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	logs, err := model.ListSecurityLogs(db, filter)
	if err != nil {
		util.CallAppError(c, err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Security logs retrieved", Data: logs})
}
