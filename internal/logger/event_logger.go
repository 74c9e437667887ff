package logger

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventScreeningRequested EventType = "screening_requested"
	EventValidationFailed   EventType = "validation_failed"
	EventScreeningCompleted EventType = "screening_completed"
	EventCustomerSaved      EventType = "customer_saved"
	EventScreeningSaved     EventType = "screening_saved"
	EventScreeningReviewed  EventType = "screening_reviewed"
	EventRedisCached        EventType = "redis_cached"
	EventKafkaSent          EventType = "kafka_sent"
	EventKafkaReceived      EventType = "kafka_received"
	EventBatchCompleted     EventType = "batch_completed"
	EventSanctionsImported  EventType = "sanctions_imported"
	EventReportGenerated    EventType = "report_generated"
	EventExportCompleted    EventType = "export_completed"
)

type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Service   string         `json:"service"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
	Component string         `json:"component"` // screening, sqlite, redis, kafka, report
}

// EventLogger хранит последние события конвейера скрининга в памяти
type EventLogger struct {
	events  []Event
	mu      sync.RWMutex
	maxSize int
}

var globalLogger = NewEventLogger(1000) // Храним последние 1000 событий

func NewEventLogger(maxSize int) *EventLogger {
	return &EventLogger{
		events:  make([]Event, 0, maxSize),
		maxSize: maxSize,
	}
}

func LogEvent(eventType EventType, service string, component string, data map[string]any) {
	globalLogger.LogEvent(eventType, service, component, data)
}

func (el *EventLogger) LogEvent(eventType EventType, service string, component string, data map[string]any) {
	el.mu.Lock()
	defer el.mu.Unlock()

	el.events = append(el.events, Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Service:   service,
		Component: component,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})

	// Ограничиваем размер
	if len(el.events) > el.maxSize {
		el.events = el.events[len(el.events)-el.maxSize:]
	}
}

func GetEvents(limit int) []Event {
	return globalLogger.GetEvents(limit)
}

// GetEvents возвращает последние limit событий (все при limit <= 0)
func (el *EventLogger) GetEvents(limit int) []Event {
	el.mu.RLock()
	defer el.mu.RUnlock()

	if limit <= 0 || limit > len(el.events) {
		limit = len(el.events)
	}

	result := make([]Event, limit)
	copy(result, el.events[len(el.events)-limit:])
	return result
}

func GetStats() map[string]any {
	return globalLogger.GetStats()
}

func (el *EventLogger) GetStats() map[string]any {
	el.mu.RLock()
	defer el.mu.RUnlock()

	componentStats := make(map[string]int)
	serviceStats := make(map[string]int)
	typeStats := make(map[string]int)

	for _, event := range el.events {
		componentStats[event.Component]++
		serviceStats[event.Service]++
		typeStats[string(event.Type)]++
	}

	return map[string]any{
		"total_events": len(el.events),
		"components":   componentStats,
		"services":     serviceStats,
		"event_types":  typeStats,
	}
}

func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	return json.Marshal(&struct {
		Timestamp string `json:"timestamp"`
		*Alias
	}{
		Timestamp: e.Timestamp.Format(time.RFC3339),
		Alias:     (*Alias)(&e),
	})
}
