package model

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

//go:embed training_data.csv
var embeddedDataset []byte

// loadDataset parses the embedded baseline dataset and merges any extra CSV
// files dropped into dataDir. Extra rows use the same symptoms,specialty
// layout; malformed rows are skipped rather than failing the whole load.
func loadDataset(dataDir string) ([]sample, error) {
	samples, err := parseSamples(strings.NewReader(string(embeddedDataset)))
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}

	if strings.TrimSpace(dataDir) == "" {
		return samples, nil
	}
	if _, err := os.Stat(dataDir); err != nil {
		if os.IsNotExist(err) {
			return samples, nil
		}
		return nil, err
	}

	files, err := filepath.Glob(filepath.Join(dataDir, "*.csv"))
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		extra, err := parseSamples(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", filepath.Base(path), err)
		}
		samples = append(samples, extra...)
	}

	return dedupeSamples(samples), nil
}

func parseSamples(r io.Reader) ([]sample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var samples []sample
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "symptoms") {
				continue
			}
		}
		if len(record) < 2 {
			continue
		}
		symptoms := strings.ToLower(strings.TrimSpace(record[0]))
		specialty := strings.TrimSpace(record[1])
		if symptoms == "" || specialty == "" {
			continue
		}
		samples = append(samples, sample{symptoms: symptoms, specialty: specialty})
	}
	return samples, nil
}

func dedupeSamples(samples []sample) []sample {
	seen := make(map[string]struct{}, len(samples))
	deduped := samples[:0]
	for _, s := range samples {
		if _, ok := seen[s.symptoms]; ok {
			continue
		}
		seen[s.symptoms] = struct{}{}
		deduped = append(deduped, s)
	}
	return deduped
}

// splitDataset carves out every fifth sample as the held-out test set. The
// split is positional so metrics are reproducible across retrains on the
// same data.
func splitDataset(samples []sample) (train, test []sample) {
	for i, s := range samples {
		if (i+1)%5 == 0 {
			test = append(test, s)
		} else {
			train = append(train, s)
		}
	}
	return train, test
}
