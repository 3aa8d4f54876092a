package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/config"
	pkgmetrics "github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/metrics"
)

type RouterDeps struct {
	Config   *config.Config
	Log      *zap.Logger
	Metrics  *pkgmetrics.Collector
	Gatherer prometheus.Gatherer
	Tokens   TokenValidator
	Auth     AuthService
	Health   BodyCompositionService
	Ping     Pinger
}

func NewRouter(d RouterDeps) *gin.Engine {
	if d.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		RequestID(),
		RequestLogger(d.Log),
		Metrics(d.Metrics),
		CORS(d.Config.CORS),
	)

	r.GET("/healthz", Healthz(d.Ping))
	r.GET("/metrics", gin.WrapH(pkgmetrics.Handler(d.Gatherer)))

	rl := d.Config.RateLimit
	global := NewRateLimiter(rate.Limit(rl.RequestsPerSecond), rl.BurstSize)
	authLimit := NewRateLimiter(rate.Every(time.Minute/time.Duration(max(rl.AuthRequestsPerMinute, 1))), max(rl.AuthRequestsPerMinute, 1))

	api := r.Group("/api/v1", RateLimit(global, d.Metrics))

	authH := NewAuthHandler(d.Auth)
	public := api.Group("/auth", RateLimit(authLimit, d.Metrics))
	public.POST("/register", authH.Register)
	public.POST("/login", authH.Login)
	public.POST("/refresh", authH.Refresh)

	secured := api.Group("", Authenticate(d.Tokens))
	secured.POST("/auth/password", authH.ChangePassword)

	h := NewHealthHandler(d.Health)
	secured.POST("/readings", h.CreateReading)
	secured.GET("/readings", h.ListReadings)
	secured.DELETE("/readings/:id", h.DeleteReading)
	secured.GET("/analytics", h.Analytics)
	secured.POST("/wellness/score", h.Score)
	secured.GET("/wellness/history", h.ScoreHistory)
	secured.POST("/risk/calculate", h.CalculateRisk)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "route not found"})
	})

	return r
}
