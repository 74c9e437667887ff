package models

import (
	"time"
)

// KafkaScreeningEvent представляет событие о завершенном скрининге в Kafka
type KafkaScreeningEvent struct {
	EventID   string             `json:"event_id"`
	EventType string             `json:"event_type"`
	Timestamp time.Time          `json:"timestamp"`
	Data      KafkaScreeningData `json:"data"`
}

// KafkaScreeningData представляет данные скрининга в Kafka
type KafkaScreeningData struct {
	ScreeningID       string  `json:"screening_id"`
	CustomerCode      string  `json:"customer_code"`
	ScreeningType     string  `json:"screening_type"`
	Result            string  `json:"screening_result"`
	RiskScore         int     `json:"risk_score"`
	RiskLevel         string  `json:"risk_level"`
	TotalMatches      int     `json:"total_matches"`
	ExactMatches      int     `json:"exact_matches"`
	HighestMatchScore float64 `json:"highest_match_score"`
}
