package httpapi

import (
	"context"
	"net/http"

	"health_tracker/internal/auth"
	"health_tracker/internal/records"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// RecordStore is the part of *records.Store the handlers use.
type RecordStore interface {
	ListAll(ctx context.Context, sheet string) ([]records.Row, error)
	UpdateField(ctx context.Context, sheet, key string, column int, value string) error
	AppendRecord(ctx context.Context, sheet string, fields []string) error
	ReplaceRange(ctx context.Context, sheet, key string, fields []string) error
}

type Authenticator interface {
	Login(ctx context.Context, creds auth.Credentials) (*auth.User, error)
	Register(ctx context.Context, creds auth.Credentials) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) (string, error)
}

type ServerConfig struct {
	MedicalSheet       string
	BloodPressureSheet string
	CORSOrigins        []string
	// BodyLimit is an echo size string such as "1M".
	BodyLimit string
}

type Server struct {
	echo  *echo.Echo
	store RecordStore
	auth  Authenticator
	sms   SMSSender
	cfg   ServerConfig
}

func NewServer(store RecordStore, authn Authenticator, sms SMSSender, cfg ServerConfig) *Server {
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	if cfg.BodyLimit == "" {
		cfg.BodyLimit = "1M"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(Recovery(log.Logger))
	e.Use(RequestID())
	e.Use(Logger(log.Logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", requestIDHeader},
	}))
	e.Use(echomw.BodyLimit(cfg.BodyLimit))

	s := &Server{
		echo:  e,
		store: store,
		auth:  authn,
		sms:   sms,
		cfg:   cfg,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Medical Back API is running!")
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	api.GET("/medical-data", s.listSheet(s.cfg.MedicalSheet))
	api.GET("/blood-pressure-data", s.listSheet(s.cfg.BloodPressureSheet))
	api.GET("/medical-data/export", s.exportMedical)
	api.GET("/health-summary", s.healthSummary)
	api.GET("/get-name-list", s.nameList)

	for _, f := range records.Fields {
		api.POST("/update-"+f.Slug, s.updateField(f))
	}
	api.POST("/update-date-time-to-remind", s.updateDateTimeToRemind)

	api.POST("/add-medical-data", s.addMedicalData)
	api.POST("/update-medical-data", s.updateMedicalData)
	api.POST("/check-medical-data", s.checkMedicalData)
	api.POST("/search-medical-data", s.searchMedicalData)

	api.POST("/register", s.register)
	api.POST("/login", s.login)
	api.POST("/send-sms", s.sendSMS)
}

// ServeHTTP lets the server be mounted or driven by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("HTTP server listening")
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
