package handlers

import (
	"casedesk-backend/metrics"
	"casedesk-backend/middleware"
	"casedesk-backend/models"
	"casedesk-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services bundles everything the router dispatches to.
type Services struct {
	Auth       *service.AuthService
	Profiles   *service.ProfileService
	Disputes   *service.DisputeService
	Litigation *service.LitigationService
	Admin      *service.AdminService
	Files      *service.FileService
	Courses    *service.CourseService
}

// RouterConfig holds transport settings.
type RouterConfig struct {
	Logger              *zap.Logger
	Metrics             *metrics.Metrics
	AuthRateLimitPerSec float64
	AuthRateLimitBurst  int
	MaxMultipartMemory  int64
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(svc Services, cfg RouterConfig) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	if cfg.MaxMultipartMemory > 0 {
		r.MaxMultipartMemory = cfg.MaxMultipartMemory
	}
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(cfg.Logger),
		middleware.Instrument(cfg.Metrics),
	)

	guard := middleware.NewAuth(svc.Auth)
	authH := NewAuthHandler(svc.Auth)
	profileH := NewProfileHandler(svc.Profiles)
	disputeH := NewDisputeHandler(svc.Disputes, svc.Files)
	litigationH := NewLitigationHandler(svc.Litigation)
	adminH := NewAdminHandler(svc.Admin)
	fileH := NewFileHandler(svc.Files)
	courseH := NewCourseHandler(svc.Courses)

	r.GET("/health", Health)
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	auth := r.Group("/auth", middleware.RateLimit(cfg.AuthRateLimitPerSec, cfg.AuthRateLimitBurst))
	{
		auth.POST("/sign-up", authH.SignUp)
		auth.POST("/sign-in", authH.SignIn)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/sign-out", guard.RequireSession(), authH.SignOut)
	}

	me := r.Group("/me", guard.RequireSession(), guard.RequireUser())
	{
		me.GET("/profile", profileH.GetProfile)
		me.PUT("/profile", profileH.UpdateProfile)
		me.GET("/alerts", profileH.GetAlerts)
		me.PUT("/alerts", profileH.UpdateAlerts)
	}

	disputes := r.Group("/disputes", guard.RequireSession(), guard.RequireUser())
	{
		disputes.GET("", disputeH.ListDisputes)
		disputes.POST("", guard.RequirePermissions(models.PermDisputesCreate), disputeH.CreateDispute)
		disputes.GET("/:id", disputeH.GetDispute)
		disputes.PUT("/:id", guard.RequirePermissions(models.PermDisputesUpdate), disputeH.UpdateDispute)
		disputes.DELETE("/:id", guard.RequirePermissions(models.PermDisputesDelete), disputeH.DeleteDispute)
		disputes.POST("/:id/documents", disputeH.UploadDocuments)
	}

	litigation := r.Group("/litigation-cases", guard.RequireSession(), guard.RequireUser())
	{
		litigation.GET("", litigationH.ListCases)
		litigation.POST("/bulk", guard.RequirePermissions(models.PermLitigationCreate), litigationH.BulkInsert)
		litigation.DELETE("/:id", guard.RequirePermissions(models.PermLitigationDelete), litigationH.DeleteCase)
	}

	admin := r.Group("/admin", guard.RequireSession(), guard.RequireUser(), guard.RequireAdmin())
	{
		admin.GET("/users", adminH.ListUsers)
		admin.POST("/permissions", adminH.UpdatePermissions)
		admin.POST("/access", adminH.ToggleAccess)
	}

	courses := r.Group("/courses")
	{
		courses.GET("", courseH.ListCourses)
		courses.POST("", courseH.CreateCourse)
		courses.GET("/:id", courseH.GetCourse)
	}

	r.GET("/storage/:user_id/:filename", guard.RequireSession(), guard.RequireUser(), fileH.DownloadFile)

	return r
}

func currentUserID(c *gin.Context) string {
	if u, ok := middleware.UserFrom(c); ok {
		return u.ID
	}
	if s, ok := middleware.SessionFrom(c); ok {
		return s.UserID
	}
	return ""
}
