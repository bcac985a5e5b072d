package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// PredictionLog records one triage prediction served to a caller.
type PredictionLog struct {
	ID                   string    `gorm:"type:char(36);primaryKey" json:"id"`
	Symptoms             string    `json:"symptoms"`
	RecommendedSpecialty string    `gorm:"index:idx_prediction_logs_specialty" json:"recommended_specialty"`
	Confidence           float64   `json:"confidence"`
	UrgencyLevel         string    `gorm:"index:idx_prediction_logs_urgency" json:"urgency_level"`
	Reasoning            string    `json:"reasoning"`
	Strategy             string    `json:"strategy"`
	ResponseTimeMS       int64     `json:"response_time_ms"`
	Status               string    `gorm:"index:idx_prediction_logs_status" json:"status"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PredictionLog) TableName() string {
	return "prediction_logs"
}

func (p *PredictionLog) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Service represents a service that interacts with a database.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	// CreatePrediction persists a prediction log entry.
	CreatePrediction(ctx context.Context, prediction *PredictionLog) error

	// ListPredictions returns logged predictions matching the filters,
	// newest first.
	ListPredictions(ctx context.Context, filters PredictionFilters) ([]PredictionLog, error)

	// SummarizePredictions aggregates logged predictions matching the
	// filters.
	SummarizePredictions(ctx context.Context, filters PredictionFilters) (PredictionSummary, error)

	// Close terminates the database connection.
	Close() error
}

type service struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

var (
	dburl      = os.Getenv("SYMTRIAGE_DB_URL")
	dbInstance *service
	dbMu       sync.Mutex
)

func New() Service {
	dbMu.Lock()
	defer dbMu.Unlock()

	if dbInstance != nil {
		return dbInstance
	}

	svc, err := newSQLiteService(dburl)
	if err != nil {
		log.Fatal(err)
	}

	dbInstance = svc
	return dbInstance
}

func NewSQLiteAdapter(dsn string) (Service, error) {
	return newSQLiteService(dsn)
}

func newSQLiteService(dsn string) (*service, error) {
	if dsn == "" {
		dsn = "./symtriage.db"
	}

	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := gormDB.AutoMigrate(&PredictionLog{}); err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	return &service{db: gormDB, sqlDB: sqlDB}, nil
}

// Health checks the health of the database connection by pinging the database.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	err := s.sqlDB.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.sqlDB.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	if dbStats.OpenConnections > 40 {
		stats["message"] = "The database is experiencing heavy load."
	}
	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	return stats
}

// Close closes the database connection.
func (s *service) Close() error {
	log.Printf("Disconnected from database: %s", dburl)
	return s.sqlDB.Close()
}
