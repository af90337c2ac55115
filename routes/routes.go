// Package routes assembles the HTTP surface from injected dependencies.
package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ariebrainware/healthsync-rx/docs"
	"github.com/ariebrainware/healthsync-rx/endpoint"
	"github.com/ariebrainware/healthsync-rx/middleware"
	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps is everything the handlers need. DB and Reports are required.
type Deps struct {
	AppName   string
	DB        *gorm.DB
	DBTimeout time.Duration

	Reports        model.ReportStore
	MaxReportBytes int64
	Catalog        *util.MedicineCatalog
	Mailer         util.Mailer
	ClinicName     string

	Auth        endpoint.AuthOptions
	AuthLimit   middleware.RateLimitConfig
	CORSOrigins []string

	// Gatherer serves /metrics; nil disables the route.
	Gatherer prometheus.Gatherer
}

// NewRouter builds the engine. Handler order within a group matters: authentication runs
// before role checks, and the endpoint logger runs after authentication so it sees the caller.
func NewRouter(d Deps) *gin.Engine {
	util.RegisterValidators()

	mailer := d.Mailer
	if mailer == nil {
		mailer = util.NoopMailer{}
	}
	reports := d.Reports
	if reports == nil {
		reports = model.NewGormReportStore(d.DB)
	}
	appName := d.AppName
	if appName == "" {
		appName = "healthsync-rx"
	}
	docs.SwaggerInfo.Title = fmt.Sprintf("%s API", appName)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(d.CORSOrigins))
	r.Use(middleware.Metrics())
	r.Use(middleware.DatabaseMiddleware(d.DB, d.DBTimeout))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", appName),
		})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", middleware.MetricsHandler(d.Gatherer))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limited := r.Group("/")
	limited.Use(middleware.RateLimiter(d.AuthLimit))
	{
		limited.POST("/signup", endpoint.Signup(d.Auth))
		limited.POST("/signin", endpoint.Signin(d.Auth))
	}

	auth := r.Group("/")
	auth.Use(middleware.ValidateLoginToken(), middleware.EndpointCallLogger())
	{
		auth.POST("/logout", endpoint.Logout)
		auth.GET("/session", endpoint.GetSession)
		auth.GET("/user", endpoint.GetCurrentUser)

		auth.GET("/notifications", endpoint.ListNotifications)
		auth.PATCH("/notifications/:id/read", endpoint.MarkNotificationRead)
		auth.GET("/medicines", endpoint.SearchMedicines(d.Catalog))
		auth.GET("/prescriptions/patient-case", endpoint.PatientCase)

		appointments := auth.Group("/appointment-requests")
		{
			appointments.POST("", endpoint.CreateAppointmentRequest)
			appointments.GET("", endpoint.ListAppointmentRequests)
			appointments.GET("/previous", endpoint.PreviousAppointmentRequests)
			appointments.GET("/:id", endpoint.GetAppointmentRequest)
			appointments.PATCH("/:id", middleware.RequireRole(model.RolePatient), endpoint.EditAppointmentRequest)
			appointments.POST("/:id/cancel", endpoint.CancelAppointmentRequest(mailer))
			appointments.PUT("/:id", middleware.RequireRole(model.RoleDoctor, model.RoleAdmin), endpoint.UpdateAppointmentStatus(mailer))
			appointments.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), endpoint.DeleteAppointmentRequest)
		}

		staff := auth.Group("/")
		staff.Use(middleware.RequireRole(model.RoleDoctor, model.RoleAdmin))
		{
			staff.POST("/prescriptions", endpoint.CreatePrescription)
			staff.GET("/prescriptions", endpoint.ListPrescriptions)
			staff.GET("/prescriptions/last-case-number", endpoint.LastCaseNumber)
			staff.GET("/prescriptions/:id", endpoint.GetPrescription)
			staff.GET("/prescriptions/:id/pdf", endpoint.PrescriptionPDF(d.ClinicName))

			staff.POST("/reports", endpoint.UploadReport(reports, d.MaxReportBytes))
			staff.GET("/reports", endpoint.ListReports(reports))
			staff.GET("/reports/:id/file", endpoint.DownloadReport(reports))

			staff.GET("/analytics", endpoint.GetAnalytics)
			staff.GET("/patients", endpoint.SearchPatients)
		}

		admin := auth.Group("/")
		admin.Use(middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/users", endpoint.ListUsers)
			admin.POST("/users", endpoint.CreateUser)
			admin.GET("/users/:id", endpoint.GetUserInfo)
			admin.PUT("/users/:id", endpoint.UpdateUser)
			admin.DELETE("/users/:id", endpoint.DeleteUser)
			admin.GET("/security-logs", endpoint.ListSecurityLogs)
		}
	}

	return r
}
