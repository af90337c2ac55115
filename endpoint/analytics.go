package endpoint

import (
	"time"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
)

// GetAnalytics godoc
// @Summary      Dashboard counters
// @Description  Registered patients, upcoming appointments, pending requests and prescriptions this month
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=model.DashboardStats} "Dashboard counters"
// @Router       /analytics [get]
func GetAnalytics(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	stats, err := model.CollectDashboardStats(db, time.Now())
	if err != nil {
		util.CallAppError(c, err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Analytics retrieved", Data: stats})
}

// SearchPatients godoc
// @Summary      Search patients
// @Description  Registered patient identities matching a name or case number
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Part of a name or case number"
// @Param        limit query int false "Maximum results (default 50, max 100)"
// @Success      200 {object} util.APIResponse{data=[]model.PatientCase} "Patients"
// @Router       /patients [get]
func SearchPatients(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	cases, err := model.SearchPatientCases(db, c.Query("search"), parsePositiveInt(c.Query("limit"), 50, 100))
	if err != nil {
		util.CallAppError(c, err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patients retrieved", Data: cases})
}
