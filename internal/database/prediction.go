package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidDateFilter is returned when a date filter is not YYYY-MM-DD.
var ErrInvalidDateFilter = errors.New("invalid date filter, expected YYYY-MM-DD")

// PredictionFilters narrows history and summary queries.
type PredictionFilters struct {
	Specialty string
	Urgency   string
	Date      string
}

// PredictionSummary aggregates logged predictions.
type PredictionSummary struct {
	Count             int64          `json:"count"`
	AvgConfidence     float64        `json:"avg_confidence"`
	AvgResponseTimeMS float64        `json:"avg_response_time_ms"`
	ByUrgency         map[string]int `json:"by_urgency"`
	BySpecialty       map[string]int `json:"by_specialty"`
}

func (s *service) CreatePrediction(ctx context.Context, prediction *PredictionLog) error {
	return s.db.WithContext(ctx).Create(prediction).Error
}

func (s *service) ListPredictions(ctx context.Context, filters PredictionFilters) ([]PredictionLog, error) {
	query, err := s.filteredQuery(ctx, filters)
	if err != nil {
		return nil, err
	}

	var predictions []PredictionLog
	if err := query.Order("created_at DESC").Find(&predictions).Error; err != nil {
		return nil, err
	}
	return predictions, nil
}

func (s *service) SummarizePredictions(ctx context.Context, filters PredictionFilters) (PredictionSummary, error) {
	query, err := s.filteredQuery(ctx, filters)
	if err != nil {
		return PredictionSummary{}, err
	}

	var predictions []PredictionLog
	if err := query.Find(&predictions).Error; err != nil {
		return PredictionSummary{}, err
	}

	summary := PredictionSummary{
		ByUrgency:   map[string]int{},
		BySpecialty: map[string]int{},
	}

	var confidenceTotal, responseTimeTotal float64
	for _, prediction := range predictions {
		summary.Count++
		confidenceTotal += prediction.Confidence
		responseTimeTotal += float64(prediction.ResponseTimeMS)
		summary.ByUrgency[prediction.UrgencyLevel]++
		summary.BySpecialty[prediction.RecommendedSpecialty]++
	}
	if summary.Count > 0 {
		summary.AvgConfidence = confidenceTotal / float64(summary.Count)
		summary.AvgResponseTimeMS = responseTimeTotal / float64(summary.Count)
	}

	return summary, nil
}

func (s *service) filteredQuery(ctx context.Context, filters PredictionFilters) (*gorm.DB, error) {
	query := s.db.WithContext(ctx).Model(&PredictionLog{})

	if specialty := strings.TrimSpace(filters.Specialty); specialty != "" {
		query = query.Where("recommended_specialty = ?", specialty)
	}
	if urgency := strings.TrimSpace(filters.Urgency); urgency != "" {
		query = query.Where("urgency_level = ?", urgency)
	}
	if date := strings.TrimSpace(filters.Date); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, ErrInvalidDateFilter
		}
		start := day.UTC()
		end := start.Add(24 * time.Hour)
		query = query.Where("created_at >= ? AND created_at < ?", start, end)
	}

	return query, nil
}
