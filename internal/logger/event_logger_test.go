package logger

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventLogger(t *testing.T) {
	logger := NewEventLogger(100)
	require.NotNil(t, logger)
	assert.Equal(t, 100, logger.maxSize)
	assert.NotNil(t, logger.events)
	assert.Equal(t, 0, len(logger.events))
}

func TestEventLogger_LogEvent(t *testing.T) {
	logger := NewEventLogger(100)

	data := map[string]any{
		"screening_id": "SCR20240615103000ABCDEF12",
		"risk_score":   45,
	}

	logger.LogEvent(EventScreeningCompleted, "screening-service", "screening", data)

	assert.Len(t, logger.events, 1)
	event := logger.events[0]
	assert.Equal(t, EventScreeningCompleted, event.Type)
	assert.Equal(t, "screening-service", event.Service)
	assert.Equal(t, "screening", event.Component)
	assert.Equal(t, data, event.Data)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEventLogger_LogEvent_MaxSize(t *testing.T) {
	logger := NewEventLogger(3)

	// Добавляем больше событий, чем maxSize
	for i := 0; i < 5; i++ {
		logger.LogEvent(EventScreeningRequested, "test-service", "test", map[string]any{"index": i})
	}

	// Должны остаться только последние 3 события
	assert.Len(t, logger.events, 3)
	assert.Equal(t, 2, logger.events[0].Data["index"])
	assert.Equal(t, 3, logger.events[1].Data["index"])
	assert.Equal(t, 4, logger.events[2].Data["index"])
}

func TestEventLogger_GetEvents(t *testing.T) {
	logger := NewEventLogger(100)

	for i := 0; i < 10; i++ {
		logger.LogEvent(EventScreeningRequested, "test-service", "test", map[string]any{"index": i})
	}

	events := logger.GetEvents(0)
	assert.Len(t, events, 10)

	events = logger.GetEvents(5)
	require.Len(t, events, 5)
	assert.Equal(t, 5, events[0].Data["index"])
	assert.Equal(t, 9, events[4].Data["index"])

	// Запрашиваем больше, чем есть
	assert.Len(t, logger.GetEvents(50), 10)
}

func TestEventLogger_GetStats(t *testing.T) {
	logger := NewEventLogger(100)

	logger.LogEvent(EventScreeningCompleted, "service1", "screening", map[string]any{})
	logger.LogEvent(EventScreeningSaved, "service1", "sqlite", map[string]any{})
	logger.LogEvent(EventScreeningCompleted, "service2", "screening", map[string]any{})

	stats := logger.GetStats()
	require.NotNil(t, stats)
	assert.Equal(t, 3, stats["total_events"])

	components, ok := stats["components"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 2, components["screening"])
	assert.Equal(t, 1, components["sqlite"])

	services, ok := stats["services"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 2, services["service1"])

	eventTypes, ok := stats["event_types"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 2, eventTypes[string(EventScreeningCompleted)])
	assert.Equal(t, 1, eventTypes[string(EventScreeningSaved)])
}

func TestLogEvent_Global(t *testing.T) {
	LogEvent(EventKafkaSent, "test-service", "kafka", map[string]any{"topic": "kyc.screenings.completed"})

	events := GetEvents(1)
	require.Len(t, events, 1)
	assert.Equal(t, EventKafkaSent, events[0].Type)
	assert.Equal(t, "kafka", events[0].Component)

	stats := GetStats()
	assert.Contains(t, stats, "total_events")
	assert.Contains(t, stats, "event_types")
}

func TestEvent_MarshalJSON(t *testing.T) {
	event := Event{
		ID:        "test-id",
		Type:      EventReportGenerated,
		Service:   "test-service",
		Component: "report",
		Timestamp: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		Data:      map[string]any{"key": "value"},
	}

	jsonData, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"timestamp":"2024-01-15T14:30:00Z"`)
	assert.Contains(t, string(jsonData), `"type":"report_generated"`)
}

func TestEventLogger_ConcurrentAccess(t *testing.T) {
	logger := NewEventLogger(1000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.LogEvent(EventScreeningRequested, "test", "test", map[string]any{"goroutine": index, "event": j})
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, logger.GetEvents(0), 100)
}

func TestInitWithWriter(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	InitWithWriter("warn", false, &buf)

	log.Info().Msg("hidden")
	log.Warn().Str("screening_id", "SCR1").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"screening_id":"SCR1"`)
	assert.Contains(t, out, `"message":"visible"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}
