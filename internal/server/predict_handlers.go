package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"symtriage/internal/database"
	"symtriage/internal/model"
	"symtriage/internal/triage"
)

const (
	strategyRules = "rules"
	strategyModel = "model"
)

type predictRequest struct {
	Symptoms string `json:"symptoms"`
	Strategy string `json:"strategy"`
}

func isoTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success":   false,
		"error":     message,
		"timestamp": isoTimestamp(),
	})
}

// predictHandler godoc
// @Summary Analyze symptoms
// @Description Maps a free-text symptom description to a specialty recommendation with urgency, reasoning, questions, and red flags.
// @Tags predict
// @Accept json
// @Produce json
// @Param request body predictRequest true "Symptom description and optional strategy (rules or model)"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/predict [post]
func (s *Server) predictHandler(c *gin.Context) {
	var input predictRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "No JSON data provided")
		return
	}

	symptoms := strings.TrimSpace(input.Symptoms)
	if symptoms == "" {
		respondError(c, http.StatusBadRequest, "No symptoms provided")
		return
	}

	engine, strategy, err := s.engineFor(input.Strategy)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	started := time.Now()
	prediction, err := engine.Predict(symptoms)
	elapsed := time.Since(started).Milliseconds()

	if err != nil {
		s.logPrediction(c.Request.Context(), symptoms, strategy, elapsed, prediction, "failed")
		if errors.Is(err, model.ErrModelUnavailable) {
			respondError(c, http.StatusInternalServerError, "Model not loaded")
			return
		}
		log.Printf("prediction error: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.logPrediction(c.Request.Context(), symptoms, strategy, elapsed, prediction, "completed")

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"prediction": prediction,
		"timestamp":  isoTimestamp(),
	})
}

func (s *Server) engineFor(strategy string) (triage.Engine, string, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", strategyRules:
		return s.rules, strategyRules, nil
	case strategyModel:
		return s.statistical, strategyModel, nil
	default:
		return nil, "", fmt.Errorf("unknown strategy %q", strategy)
	}
}

// logPrediction records the served prediction for history and analytics. A
// storage failure must not fail the prediction response.
func (s *Server) logPrediction(ctx context.Context, symptoms, strategy string, elapsed int64, prediction triage.PredictionResult, status string) {
	entry := &database.PredictionLog{
		Symptoms:             symptoms,
		RecommendedSpecialty: prediction.RecommendedSpecialty,
		Confidence:           prediction.Confidence,
		UrgencyLevel:         string(prediction.UrgencyLevel),
		Reasoning:            prediction.Reasoning,
		Strategy:             strategy,
		ResponseTimeMS:       elapsed,
		Status:               status,
	}
	if err := s.db.CreatePrediction(ctx, entry); err != nil {
		log.Printf("failed to log prediction: %v", err)
	}
}

// listPredictionsHandler godoc
// @Summary Prediction history
// @Description Lists logged predictions, newest first, filtered by specialty, urgency, or date (YYYY-MM-DD).
// @Tags predict
// @Produce json
// @Param specialty query string false "Recommended specialty filter"
// @Param urgency query string false "Urgency level filter"
// @Param date query string false "Day filter (YYYY-MM-DD)"
// @Success 200 {array} database.PredictionLog
// @Failure 400 {object} map[string]any
// @Router /api/predictions [get]
func (s *Server) listPredictionsHandler(c *gin.Context) {
	filters := database.PredictionFilters{
		Specialty: c.Query("specialty"),
		Urgency:   c.Query("urgency"),
		Date:      c.Query("date"),
	}

	predictions, err := s.db.ListPredictions(c.Request.Context(), filters)
	if err != nil {
		if errors.Is(err, database.ErrInvalidDateFilter) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to query predictions")
		return
	}

	c.JSON(http.StatusOK, predictions)
}

// predictionSummaryHandler godoc
// @Summary Prediction summary
// @Description Aggregate statistics over logged predictions.
// @Tags predict
// @Produce json
// @Param specialty query string false "Recommended specialty filter"
// @Param urgency query string false "Urgency level filter"
// @Param date query string false "Day filter (YYYY-MM-DD)"
// @Success 200 {object} database.PredictionSummary
// @Failure 400 {object} map[string]any
// @Router /api/predictions/summary [get]
func (s *Server) predictionSummaryHandler(c *gin.Context) {
	filters := database.PredictionFilters{
		Specialty: c.Query("specialty"),
		Urgency:   c.Query("urgency"),
		Date:      c.Query("date"),
	}

	summary, err := s.db.SummarizePredictions(c.Request.Context(), filters)
	if err != nil {
		if errors.Is(err, database.ErrInvalidDateFilter) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to summarize predictions")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// modelInfoHandler godoc
// @Summary Model info
// @Description Training metadata of the loaded statistical model.
// @Tags model
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/model/info [get]
func (s *Server) modelInfoHandler(c *gin.Context) {
	metadata, err := s.models.Metadata()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Model not loaded")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"model_info": metadata,
		"timestamp":  isoTimestamp(),
	})
}

// retrainModelHandler godoc
// @Summary Retrain model
// @Description Retrains the statistical model from the bundled dataset plus any drop-dir CSVs and swaps it in.
// @Tags model
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/model/retrain [post]
func (s *Server) retrainModelHandler(c *gin.Context) {
	if err := s.models.Train(); err != nil {
		log.Printf("retraining error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrain model")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Model retrained successfully",
		"timestamp": isoTimestamp(),
	})
}
