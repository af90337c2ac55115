package endpoint

import (
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
)

// SearchMedicines godoc
// @Summary      Search medicine catalog
// @Description  Case-insensitive substring search over medicine names, at most 20 results
// @Tags         Medicines
// @Produce      json
// @Security     BearerAuth
// @Param        search query string true "Part of the medicine name"
// @Success      200 {object} util.APIResponse{data=[]util.CatalogMedicine} "Matching medicines"
// @Router       /medicines [get]
func SearchMedicines(catalog *util.MedicineCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		results := []util.CatalogMedicine{}
		if catalog != nil {
			results = catalog.Search(c.Query("search"))
		}
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Medicines retrieved", Data: results})
	}
}
