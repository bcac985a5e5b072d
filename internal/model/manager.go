// Package model owns the lifecycle of the statistical classifier: training
// from the bundled dataset, persistence of the trained artifact, and atomic
// swap-in so predictions never observe a partially loaded model.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"symtriage/internal/triage"
)

// ErrModelUnavailable is returned when the statistical strategy is invoked
// before a model has been trained or loaded.
var ErrModelUnavailable = errors.New("model unavailable")

const (
	artifactName = "model.json"
	modelType    = "naive-bayes-bow"
)

// Metadata describes the currently loaded artifact.
type Metadata struct {
	TrainingDate   time.Time `json:"training_date"`
	DatasetSize    int       `json:"dataset_size"`
	NumFeatures    int       `json:"n_features"`
	NumSpecialties int       `json:"n_specialties"`
	Specialties    []string  `json:"specialties"`
	TrainAccuracy  float64   `json:"train_accuracy"`
	TestAccuracy   float64   `json:"test_accuracy"`
	ModelType      string    `json:"model_type"`
}

type artifact struct {
	Metadata Metadata    `json:"metadata"`
	Model    *bayesModel `json:"model"`
}

// Manager guards the shared classifier artifact. Load and Train replace the
// model under the write lock; Classify and Metadata read under the read
// lock, so concurrent predictions never see a half-initialized model.
type Manager struct {
	modelDir string
	dataDir  string

	mu       sync.RWMutex
	model    *bayesModel
	metadata Metadata
}

// NewManager resolves storage locations from the environment.
// SYMTRIAGE_MODEL_DIR defaults to ./models; SYMTRIAGE_DATA_DIR is optional
// and names a directory of extra training CSVs merged at train time.
func NewManager() *Manager {
	modelDir := os.Getenv("SYMTRIAGE_MODEL_DIR")
	if modelDir == "" {
		modelDir = "./models"
	}
	return &Manager{
		modelDir: modelDir,
		dataDir:  os.Getenv("SYMTRIAGE_DATA_DIR"),
	}
}

// NewManagerAt builds a manager with explicit directories, for tests.
func NewManagerAt(modelDir, dataDir string) *Manager {
	return &Manager{modelDir: modelDir, dataDir: dataDir}
}

// EnsureReady loads a persisted artifact when one exists, otherwise trains a
// fresh model. Intended for process startup.
func (m *Manager) EnsureReady() error {
	err := m.Load()
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return m.Train()
}

// Load reads the persisted artifact from the model directory and swaps it in.
func (m *Manager) Load() error {
	raw, err := os.ReadFile(filepath.Join(m.modelDir, artifactName))
	if err != nil {
		return fmt.Errorf("read model artifact: %w", err)
	}

	var art artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return fmt.Errorf("parse model artifact: %w", err)
	}
	if art.Model == nil || len(art.Model.Labels) == 0 {
		return fmt.Errorf("parse model artifact: empty model")
	}

	m.mu.Lock()
	m.model = art.Model
	m.metadata = art.Metadata
	m.mu.Unlock()
	return nil
}

// Train builds a new model from the bundled dataset plus any drop-dir CSVs,
// persists it, and swaps it in. The previous model keeps serving reads until
// the swap.
func (m *Manager) Train() error {
	samples, err := loadDataset(m.dataDir)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	trainSet, testSet := splitDataset(samples)
	trained, err := trainBayes(trainSet)
	if err != nil {
		return err
	}

	meta := Metadata{
		TrainingDate:   time.Now().UTC(),
		DatasetSize:    len(samples),
		NumFeatures:    len(trained.Vocabulary),
		NumSpecialties: len(trained.Labels),
		Specialties:    trained.Labels,
		TrainAccuracy:  trained.accuracy(trainSet),
		TestAccuracy:   trained.accuracy(testSet),
		ModelType:      modelType,
	}

	if err := m.persist(artifact{Metadata: meta, Model: trained}); err != nil {
		return err
	}

	m.mu.Lock()
	m.model = trained
	m.metadata = meta
	m.mu.Unlock()
	return nil
}

func (m *Manager) persist(art artifact) error {
	if err := os.MkdirAll(m.modelDir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	raw, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model artifact: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.modelDir, artifactName), raw, 0o644); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}
	return nil
}

// Ready reports whether a trained model is loaded.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.model != nil
}

// Classify satisfies the triage.Classifier capability.
func (m *Manager) Classify(text string) ([]triage.LabelScore, error) {
	m.mu.RLock()
	model := m.model
	m.mu.RUnlock()

	if model == nil {
		return nil, ErrModelUnavailable
	}
	return model.classify(text), nil
}

// Metadata returns the loaded model's training metadata.
func (m *Manager) Metadata() (Metadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.model == nil {
		return Metadata{}, ErrModelUnavailable
	}
	return m.metadata, nil
}
