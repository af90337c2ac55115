package endpoint

import (
	"fmt"
	"io"
	"net/http"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
)

// DefaultMaxReportBytes bounds an uploaded report when no limit is configured.
const DefaultMaxReportBytes int64 = 10 << 20

func reportLimit(max int64) int64 {
	if max <= 0 {
		return DefaultMaxReportBytes
	}
	return max
}

// UploadReport godoc
// @Summary      Upload patient report
// @Tags         Reports
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        patientName formData string true "Patient name"
// @Param        age formData string true "Patient age"
// @Param        bloodGroup formData string true "Blood group"
// @Param        fileName formData string false "Display file name, defaults to the uploaded name"
// @Param        file formData file true "Report file"
// @Success      201 {object} util.APIResponse{data=model.Report} "Report uploaded"
// @Failure      400 {object} util.APIResponse "Missing fields"
// @Failure      413 {object} util.APIResponse "File too large"
// @Router       /reports [post]
func UploadReport(store model.ReportStore, maxBytes int64) gin.HandlerFunc {
	limit := reportLimit(maxBytes)
	return func(c *gin.Context) {
		who, ok := callerOrRespond(c)
		if !ok {
			return
		}

		fh, err := c.FormFile("file")
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "file is required", Err: err})
			return
		}
		if fh.Size > limit {
			callError(c, http.StatusRequestEntityTooLarge, "file too large", fmt.Errorf("report exceeds %d bytes", limit))
			return
		}
		f, err := fh.Open()
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "file could not be read", Err: err})
			return
		}
		defer f.Close()
		content, err := io.ReadAll(io.LimitReader(f, limit+1))
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "file could not be read", Err: err})
			return
		}
		if int64(len(content)) > limit {
			callError(c, http.StatusRequestEntityTooLarge, "file too large", fmt.Errorf("report exceeds %d bytes", limit))
			return
		}

		fileName := c.PostForm("fileName")
		if fileName == "" {
			fileName = fh.Filename
		}
		contentType := fh.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(content)
		}

		report := &model.Report{
			PatientName: c.PostForm("patientName"),
			Age:         c.PostForm("age"),
			BloodGroup:  c.PostForm("bloodGroup"),
			FileName:    fileName,
			ContentType: contentType,
			UploadedBy:  who.Email,
			Content:     content,
		}
		if err := store.Save(c.Request.Context(), report); err != nil {
			util.CallAppError(c, err)
			return
		}
		util.CallSuccessCreated(c, util.APISuccessParams{Msg: "Report uploaded", Data: report})
	}
}

// ListReports godoc
// @Summary      List patient reports
// @Description  Reports uploaded for the exact (patientName, age, bloodGroup), newest first
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Param        patientName query string true "Patient name"
// @Param        age query string true "Patient age"
// @Param        bloodGroup query string true "Blood group"
// @Success      200 {object} util.APIResponse{data=[]model.Report} "Reports"
// @Failure      400 {object} util.APIResponse "Missing identity fields"
// @Router       /reports [get]
func ListReports(store model.ReportStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		reports, err := store.List(c.Request.Context(), model.IdentityTuple{
			PatientName: c.Query("patientName"),
			Age:         c.Query("age"),
			BloodGroup:  c.Query("bloodGroup"),
		})
		if err != nil {
			util.CallAppError(c, err)
			return
		}
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Reports retrieved", Data: reports})
	}
}

// DownloadReport godoc
// @Summary      Download report file
// @Tags         Reports
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id path string true "Report ID"
// @Success      200 {file} file "Report content"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /reports/{id}/file [get]
func DownloadReport(store model.ReportStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := store.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			util.CallAppError(c, err)
			return
		}
		contentType := report.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.FileName))
		c.Data(http.StatusOK, contentType, report.Content)
	}
}

func callError(c *gin.Context, status int, msg string, err error) {
	c.JSON(status, util.APIResponse{Success: false, Error: err.Error(), Msg: msg, Data: map[string]interface{}{}})
}
