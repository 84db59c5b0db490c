package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Revasall/TO-DO-List-project/internal/config"
	"github.com/Revasall/TO-DO-List-project/internal/httpserver"
	"github.com/Revasall/TO-DO-List-project/internal/logging"
	authmw "github.com/Revasall/TO-DO-List-project/internal/middleware/auth"
	loggingmw "github.com/Revasall/TO-DO-List-project/internal/middleware/logging"
	"github.com/Revasall/TO-DO-List-project/internal/mykafka"
	"github.com/Revasall/TO-DO-List-project/internal/repo"
	"github.com/Revasall/TO-DO-List-project/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("Ошибка инициализации БД: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod, err = mykafka.NewProducer(
			[]string{configuration.KAFKA_ADDRESS},
			[]string{"user_events", "task_events"},
		)
		if err != nil {
			log.Fatal(err)
		}
	}

	rp := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{
		Repo:          rp,
		JWTSecret:     []byte(configuration.JWT_SECRET),
		RefreshSecret: []byte(configuration.REFRESH_SECRET),
		AccessTTL:     configuration.AccessTTL(),
		RefreshTTL:    configuration.RefreshTTL(),
	}
	taskSvc := &service.TaskService{Repo: rp}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: authSvc, Producer: prod},
		UserHandler: &httpserver.UserHTTP{Svc: authSvc},
		TaskHandler: &httpserver.TaskHTTP{Svc: taskSvc, Producer: prod},
		Auth:        &authmw.RequireAuth{Svc: authSvc},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.SERVER_PORT),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
