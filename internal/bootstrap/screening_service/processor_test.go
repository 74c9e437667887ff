package screening_service

import (
	"context"
	"errors"
	"testing"

	"kyc-screening/internal/models"
	servicemocks "kyc-screening/internal/services/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBatchHandler(t *testing.T) {
	svc := new(servicemocks.MockScreeningService)
	handler := newBatchHandler(svc)

	req := &models.BatchScreeningRequest{
		RequestID: "batch_1",
		Customers: []models.Customer{{CustomerCode: "C1"}, {CustomerCode: "C2"}},
	}
	svc.On("ScreenBatch", mock.Anything, req).Return(&models.BatchScreeningResponse{
		RequestID: "batch_1",
		Total:     2,
		Succeeded: 1,
		Failed:    1,
		Results: []models.BatchItemResult{
			{CustomerCode: "C1", Screening: &models.Screening{ScreeningID: "SCR1"}},
			{CustomerCode: "C2", Error: "customer validation failed: id_number is required"},
		},
	}, nil)

	assert.NoError(t, handler(context.Background(), req), "per-customer errors do not fail the message")
	svc.AssertExpectations(t)
}

func TestBatchHandler_Empty(t *testing.T) {
	svc := new(servicemocks.MockScreeningService)
	handler := newBatchHandler(svc)

	assert.NoError(t, handler(context.Background(), &models.BatchScreeningRequest{RequestID: "batch_2"}))
	svc.AssertNotCalled(t, "ScreenBatch", mock.Anything, mock.Anything)
}

func TestBatchHandler_Error(t *testing.T) {
	svc := new(servicemocks.MockScreeningService)
	handler := newBatchHandler(svc)

	req := &models.BatchScreeningRequest{Customers: []models.Customer{{CustomerCode: "C1"}}}
	svc.On("ScreenBatch", mock.Anything, req).Return(nil, errors.New("database is closed"))

	assert.Error(t, handler(context.Background(), req))
}
