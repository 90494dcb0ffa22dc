// Package api contains all endpoints available
package api

import (
	"asla/geolocation-api/db"
	"asla/geolocation-api/middleware"
	"asla/geolocation-api/pkg/security"
	"asla/geolocation-api/store"
	"time"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	Router *gin.Engine
	Store  *store.Store
	Hasher *security.Hasher
}

func NewRouter() (*API, error) {
	makeLogger()

	conn, err := db.New()
	if err != nil {
		return nil, err
	}

	return NewRouterWithDB(conn), nil
}

// NewRouterWithDB wires the router against an already opened
// connection. Split out from NewRouter so tests can hand in an
// in-memory database
func NewRouterWithDB(conn *gorm.DB) *API {
	a := &API{
		Store:  store.New(conn),
		Hasher: security.NewHasher(),
	}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetUint("userID"); v != 0 {
					fields = append(fields, zap.Uint("user_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	auth := middleware.NewAPIKeyMiddleware(a.Store)
	rateLimiter := middleware.RateLimiterMiddleware(viper.GetInt("security.rate_limit"))

	main := router.Group("/", rateLimiter, middleware.BodySizeLimiter(1<<20))
	{
		// HEAD /heartbeat	-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// POST /register 	-> Registers a new user and issues an API key
		main.POST("/register", a.UserRegister)

		// POST /login 		-> Logs in a user and returns their profile
		main.POST("/login", a.UserLogin)

		// GET /geolocation	-> Returns the stored position of the caller
		main.GET("/geolocation", auth, a.GeolocationFetch)

		// PUT /geolocation	-> Stores or overwrites the caller's position
		main.PUT("/geolocation", auth, a.GeolocationSet)
	}

	return a
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
