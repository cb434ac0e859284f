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

	"deanery-backend/config"
	"deanery-backend/internal/api"
	"deanery-backend/internal/db"
	"deanery-backend/internal/model"
	"deanery-backend/internal/service"
	"deanery-backend/internal/storage"
	"deanery-backend/internal/storage/gormstore"
	"deanery-backend/internal/storage/jsonfile"
	"deanery-backend/internal/storage/memory"
)

// stores bundles the four entity collections.
type stores struct {
	students storage.Store[model.Student]
	groups   storage.Store[model.Group]
	dorms    storage.Store[model.Dormitory]
	rooms    storage.Store[model.Room]
}

func buildStores(cfg *config.StorageConfig) (*stores, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return &stores{
			students: memory.New[model.Student](),
			groups:   memory.New[model.Group](),
			dorms:    memory.New[model.Dormitory](),
			rooms:    memory.New[model.Room](),
		}, nil

	case config.BackendJSON:
		students, err := jsonfile.New[model.Student](cfg.DataDir, "students.json")
		if err != nil {
			return nil, err
		}
		groups, err := jsonfile.New[model.Group](cfg.DataDir, "groups.json")
		if err != nil {
			return nil, err
		}
		dorms, err := jsonfile.New[model.Dormitory](cfg.DataDir, "dormitories.json")
		if err != nil {
			return nil, err
		}
		rooms, err := jsonfile.New[model.Room](cfg.DataDir, "rooms.json")
		if err != nil {
			return nil, err
		}
		return &stores{students: students, groups: groups, dorms: dorms, rooms: rooms}, nil

	case config.BackendSQLite, config.BackendPostgres:
		gormDB, err := db.Init(cfg)
		if err != nil {
			return nil, err
		}
		return &stores{
			students: gormstore.New[model.Student](gormDB),
			groups:   gormstore.New[model.Group](gormDB),
			dorms:    gormstore.New[model.Dormitory](gormDB),
			rooms:    gormstore.New[model.Room](gormDB),
		}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

func main() {
	logger := log.New(os.Stdout, "deaneryd ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	st, err := buildStores(&cfg.Storage)
	if err != nil {
		logger.Fatalf("failed to initialize storage: %v", err)
	}
	logger.Printf("storage initialized (backend: %s)", cfg.Storage.Backend)

	studentSvc := service.NewStudentService(st.students, st.groups, st.rooms, cfg.Records.DeletePolicy)
	groupSvc := service.NewGroupService(st.groups, st.students)
	dormSvc := service.NewDormitoryService(st.dorms, st.rooms, st.students)

	handler := api.NewHandler(studentSvc, groupSvc, dormSvc)
	router := api.NewRouter(&cfg.Server, handler)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
