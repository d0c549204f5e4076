package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/tienda-shop/tienda/internal/config"
	"github.com/tienda-shop/tienda/internal/db"
	"github.com/tienda-shop/tienda/internal/events"
	"github.com/tienda-shop/tienda/internal/httpserver"
	"github.com/tienda-shop/tienda/internal/logging"
	loggingmw "github.com/tienda-shop/tienda/internal/middleware"
	"github.com/tienda-shop/tienda/internal/repo"
	"github.com/tienda-shop/tienda/internal/search"
	"github.com/tienda-shop/tienda/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL).With("service", "tienda")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(ctx, cfg.DSN())
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var brokers []string
	if cfg.KAFKA_ADDRESS != "" {
		brokers = strings.Split(cfg.KAFKA_ADDRESS, ",")
	}
	producer := events.NewProducer(brokers)

	var es *elasticsearch.Client
	if cfg.ES_URL != "" {
		es, err = search.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	r := repo.New(database)
	tokens := &service.TokenService{
		Repo:          r,
		JWTSecret:     []byte(cfg.JWT_SECRET),
		RefreshSecret: []byte(cfg.REFRESH_SECRET),
	}
	accounts := &service.AccountService{Repo: r, Tokens: tokens, Producer: producer}
	catalog := &service.CatalogService{Repo: r, Producer: producer, ES: es}
	checkout := &service.CheckoutService{Repo: r, Producer: producer}
	comments := &service.CommentService{Repo: r, Producer: producer}
	reports := &service.ReportService{Repo: r}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		Auth:     &httpserver.AuthHTTP{Svc: accounts},
		Catalog:  &httpserver.CatalogHTTP{Svc: catalog},
		Checkout: &httpserver.CheckoutHTTP{Svc: checkout},
		Profile:  &httpserver.ProfileHTTP{Svc: accounts},
		Comments: &httpserver.CommentHTTP{Svc: comments},
		Reports:  &httpserver.ReportHTTP{Svc: reports},
		Search:   &httpserver.SearchHTTP{ES: es},
		AuthMW:   &httpserver.AuthMiddleware{Tokens: tokens},
	})

	srv := &http.Server{
		Addr:              cfg.HTTP_ADDR,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("tienda listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = producer.Close()

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("tienda stopped")
}
