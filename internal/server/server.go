package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"symtriage/internal/database"
	"symtriage/internal/model"
	"symtriage/internal/triage"
)

type Server struct {
	port int

	db          database.Service
	models      *model.Manager
	rules       triage.Engine
	statistical triage.Engine
}

func NewServer() *http.Server {
	port := resolvePort()

	models := model.NewManager()
	if err := models.EnsureReady(); err != nil {
		// The rule-based strategy keeps working without a trained model;
		// statistical requests will report model unavailable.
		log.Printf("model startup: %v", err)
	}

	newServer := &Server{
		port: port,

		db:          database.New(),
		models:      models,
		rules:       triage.NewRuleEngine(triage.DefaultTable()),
		statistical: triage.NewStatisticalEngine(models),
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", newServer.port),
		Handler:      newServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}

func resolvePort() int {
	value := os.Getenv("PORT")
	if value == "" {
		return 18730
	}

	port, err := strconv.Atoi(value)
	if err != nil || port <= 0 {
		return 18730
	}

	return port
}
