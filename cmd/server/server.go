package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/TherealJvJ/TelMoz-2.0/internal/config"
	"github.com/TherealJvJ/TelMoz-2.0/internal/eventengine"
	"github.com/TherealJvJ/TelMoz-2.0/internal/features/admin"
	"github.com/TherealJvJ/TelMoz-2.0/internal/features/category"
	"github.com/TherealJvJ/TelMoz-2.0/internal/features/notifier"
	"github.com/TherealJvJ/TelMoz-2.0/internal/features/product"
	"github.com/TherealJvJ/TelMoz-2.0/internal/features/session"
	"github.com/TherealJvJ/TelMoz-2.0/internal/middlewares"
	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Addr           string
	DB             *sql.DB
	WhatsAppNumber string
	SessionTTL     time.Duration
}

type server struct {
	*ServerConfig

	doneCh        chan struct{}   // used to signal internal go routines to shutdown
	internalSrvWG *sync.WaitGroup // used to wait for all internal go routines within individual routes to finish before shutting down the server.

	eventEngine eventengine.SubscribeRegisterPublisher
	srv         *http.Server
}

func NewServer(serverConfig *ServerConfig) *server {
	srv := &server{
		ServerConfig:  serverConfig,
		doneCh:        make(chan struct{}),
		internalSrvWG: &sync.WaitGroup{},
	}

	return srv
}

func (s *server) Run() {
	router := chi.NewRouter()

	// strip trailing slashes at the end of the url
	// e.g. /products/1/ -> /products/1
	router.Use(chimiddleware.StripSlashes)

	s.prep()

	router.Mount("/api/v1", s.v1Router()) // api version 1 subrouter

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.Addr),
		Handler: router,
	}

	// start server and listen for [os.Signal] signals to graceful shutdown server.
	s.listenAndServe()
}

func (s *server) listenAndServe() {
	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(
		func() error {
			log.Printf("server started and is listening at port %s...\n", s.Addr)

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done() // block and listen shutdown signals
			log.Println("hold and wait, server is gracefully shutting down...")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				(20 * time.Second),
			)
			defer cancel()

			log.Println("server has stopped receiving new requests")
			log.Println("waiting for all pending requests to finish....")
			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed shutdown gracefully: %w", err)
			}

			return nil
		},
	)

	if err := errGrp.Wait(); err != nil {
		log.Fatal(err.Error())
	}
	log.Println("all pending requests completed!")

	log.Println("waiting for all internal pending go routines....")
	close(s.doneCh)
	s.internalSrvWG.Wait()
	log.Println("all internal go routines are done")

	log.Println("closing other resources...")
	if err := s.DB.Close(); err != nil {
		log.Println("server failed to close db for shutdown")
	}

	log.Println("server has been gracefully shutdown")
	os.Exit(0)
}

// prep prepares server dependencies needed for server to function
func (s *server) prep() {
	s.eventEngine = eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
		},
	)
}

func (s *server) v1Router() *chi.Mux {
	r := chi.NewRouter()

	// health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// session feature
	sessionStore := session.NewStore(s.DB)
	sessionService := session.NewService(
		sessionStore,
		s.SessionTTL,
	)

	// middleware
	middleware := middlewares.NewMiddleware(
		sessionService,
	)

	// admin feature
	adminStore := admin.NewStore(s.DB)
	adminService := admin.NewService(
		adminStore,
		sessionService,
		s.eventEngine,
	)
	adminHandler := admin.NewHandler(
		adminService,
		middleware,
	)
	adminHandler.RegisterRoutes(r)

	s.ensureDefaultAdmin(adminService)

	// category feature
	categoryStore := category.NewStore(s.DB)
	categoryService := category.NewService(categoryStore)
	categoryHandler := category.NewHandler(
		categoryService,
		middleware,
	)
	categoryHandler.RegisterRoutes(r)

	// product feature
	productStore := product.NewStore(s.DB)
	productService := product.NewService(
		productStore,
		categoryService,
		s.eventEngine,
		s.WhatsAppNumber,
	)
	productHandler := product.NewHandler(
		productService,
		middleware,
	)
	productHandler.RegisterRoutes(r)

	// notifier feature; wired last so every published event name is
	// already registered
	notifier.NewHandlerEvents(
		&notifier.HandlerEventsConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
			EventEngine:   s.eventEngine,
		},
	)

	return r
}

type defaultAdminEnsurer interface {
	EnsureDefaultAdmin(ctx context.Context, username, email, password string) error
}

func (s *server) ensureDefaultAdmin(adminService defaultAdminEnsurer) {
	if !config.Env.BootstrapAdmin {
		return
	}

	ctx, cancel := context.WithTimeout(
		context.Background(),
		(10 * time.Second),
	)
	defer cancel()

	err := adminService.EnsureDefaultAdmin(
		ctx,
		config.Env.BootstrapUsername,
		config.Env.BootstrapEmail,
		config.Env.BootstrapPassword,
	)
	if err != nil {
		log.Fatal("failed to ensure bootstrap admin: ", err)
	}
}
