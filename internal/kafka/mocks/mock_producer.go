package mocks

import (
	"kyc-screening/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockProducer является моком для kafka.Producer интерфейса
type MockProducer struct {
	mock.Mock
}

// SendScreeningEvent мок для SendScreeningEvent
func (m *MockProducer) SendScreeningEvent(event *models.KafkaScreeningEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// Close мок для Close
func (m *MockProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}
