// Package httpapi exposes the grant lifecycle over HTTP/JSON.
package httpapi

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/route"

	"github.com/consentchain/consentchain/internal/logging"
	"github.com/consentchain/consentchain/internal/server/models"
	"github.com/consentchain/consentchain/internal/server/services"
)

// The server depends on narrow views of the service layer so handler tests
// can substitute fakes.
type userService interface {
	EnsureUser(ctx context.Context, email, name string) (*models.User, error)
}

type fileService interface {
	Upload(ctx context.Context, ownerID, filename string) (*models.File, string, error)
	MyFiles(ctx context.Context, ownerID string) ([]*models.File, error)
	SharedWithMe(ctx context.Context, userID string) ([]*models.SharedFile, error)
}

type grantService interface {
	Grant(ctx context.Context, ownerID, fileID, granteeEmail string, expiresAt *time.Time) (string, error)
	Revoke(ctx context.Context, ownerID, fileID, granteeEmail string) error
}

type accessService interface {
	Download(ctx context.Context, requesterID, fileID string) (services.Decision, string, error)
}

type timelineService interface {
	Timeline(ctx context.Context, ownerID, fileID string) (*models.Timeline, error)
}

type analyticsService interface {
	Summary(ctx context.Context, ownerID string) (*models.AnalyticsSummary, error)
}

type HTTPServer struct {
	address   string
	users     userService
	files     fileService
	grants    grantService
	access    accessService
	timeline  timelineService
	analytics analyticsService
	logger    logging.Logger
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us userService, fs fileService,
	gs grantService, as accessService, ts timelineService, ans analyticsService,
	secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		files:     fs,
		grants:    gs,
		access:    as,
		timeline:  ts,
		analytics: ans,
		jwtSecret: []byte(secretKey),
	}, nil
}

// registerRoutes mounts the API. Everything under /files requires a verified
// identity token.
func (s *HTTPServer) registerRoutes(r *route.Engine) {
	r.GET("/ping", s.Ping)

	files := r.Group("/files", s.accessTokenMiddleware)
	files.POST("/upload", s.Upload)
	files.POST("/grant", s.Grant)
	files.POST("/revoke", s.Revoke)
	files.GET("/myfiles", s.MyFiles)
	files.GET("/shared", s.SharedWithMe)
	files.GET("/download/:fileId", s.Download)
	files.GET("/logs/:fileId", s.Logs)
	files.GET("/analytics/summary", s.AnalyticsSummary)
}

func (s *HTTPServer) Run(ctx context.Context) error {

	h := server.New(server.WithHostPorts(s.address))

	s.registerRoutes(h.Engine)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := h.Shutdown(context.Background()); err != nil {
			s.logger.Error(ctx, "Shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	// starts accepting incoming connections
	return h.Run()
}
