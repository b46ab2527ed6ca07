// Package http exposes the account and entry services as a JSON API on gin.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/habitcheck/internal/logging"
	"github.com/dmitrijs2005/habitcheck/internal/server/models"
	"github.com/dmitrijs2005/habitcheck/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type AccountService interface {
	Authenticate(ctx context.Context, userName, token string) (*services.UserInfo, error)
	ListUsers(ctx context.Context) ([]services.UserInfo, error)
	CreateUser(ctx context.Context, adminUserName, adminToken, newUserName string) (*services.NewAccount, error)
}

type EntryService interface {
	ListEntries(ctx context.Context) ([]*models.Entry, error)
	SubmitEntry(ctx context.Context, sub services.Submission) (*models.Entry, error)
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HTTPServer struct {
	address         string
	shutdownTimeout time.Duration
	accounts        AccountService
	entries         EntryService
	store           Pinger
	logger          logging.Logger
}

func NewHTTPServer(addr string, shutdownTimeout time.Duration, l logging.Logger, as AccountService, es EntryService, store Pinger) *HTTPServer {
	return &HTTPServer{
		address:         addr,
		shutdownTimeout: shutdownTimeout,
		accounts:        as,
		entries:         es,
		store:           store,
		logger:          l.With("module", "http_server"),
	}
}

// Router builds the gin engine with middleware and all API routes.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(s.requestLogger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsCfg.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	api.POST("/login", s.login)
	api.GET("/users", s.listUsers)
	api.POST("/users", s.createUser)
	api.GET("/entries", s.listEntries)
	api.POST("/entries", s.submitEntry)
	api.GET("/health", s.health)

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		errCh <- srv.Serve(listen)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
