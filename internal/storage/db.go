// Package storage persists request audit records in sqlite. Only shape
// data is stored (category counts, timings, sizes), never the input text
// or any detected value.
package storage

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/digimosa/pii-redact/internal/models"
)

type RequestModel struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	InputLength    int             `json:"input_length"`
	ItemCount      int             `json:"item_count"`
	HasPII         bool            `json:"has_pii"`
	DetectionCount int             `json:"detection_count"`
	DurationMs     float64         `json:"duration_ms"`
	Categories     []CategoryCount `gorm:"foreignKey:RequestID" json:"categories"`
}

type CategoryCount struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	RequestID uint   `json:"request_id"`
	Category  string `json:"category"`
	Count     int    `json:"count"`
}

type Store struct {
	db *gorm.DB
}

// Open creates or migrates the audit database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&RequestModel{}, &CategoryCount{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// RecordBatch stores the audit entry for one pipeline call.
func (s *Store) RecordBatch(results []models.ResultRecord, inputLength int, duration time.Duration) error {
	counts := make(map[models.Category]int)
	total := 0
	hasPII := false
	for _, rec := range results {
		if rec.HasPII {
			hasPII = true
		}
		for _, d := range rec.Detections {
			counts[d.Category]++
			total++
		}
	}

	req := RequestModel{
		CreatedAt:      time.Now(),
		InputLength:    inputLength,
		ItemCount:      len(results),
		HasPII:         hasPII,
		DetectionCount: total,
		DurationMs:     float64(duration.Microseconds()) / 1000.0,
	}
	for cat, n := range counts {
		req.Categories = append(req.Categories, CategoryCount{
			Category: string(cat),
			Count:    n,
		})
	}
	return s.db.Create(&req).Error
}

// RecentRequests returns the latest audit entries, newest first.
func (s *Store) RecentRequests(limit int) ([]RequestModel, error) {
	var reqs []RequestModel
	err := s.db.Preload("Categories").
		Order("created_at desc").
		Limit(limit).
		Find(&reqs).Error
	return reqs, err
}

// Totals aggregates detection counts per category over all requests.
func (s *Store) Totals() (map[string]int, error) {
	type row struct {
		Category string
		Total    int
	}
	var rows []row
	err := s.db.Model(&CategoryCount{}).
		Select("category, sum(count) as total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[string]int, len(rows))
	for _, r := range rows {
		totals[r.Category] = r.Total
	}
	return totals, nil
}
