package processor

import (
	"context"
	"errors"
	"io"
	"testing"

	"lingonberry/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("test", "error", io.Discard)
	m.Run()
}

type mockReportGenerator struct {
	mock.Mock
}

func (m *mockReportGenerator) GenerateReports(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestCronScheduler_StartRunsInitialGeneration(t *testing.T) {
	// Arrange
	reportSvc := new(mockReportGenerator)
	reportSvc.On("GenerateReports", mock.Anything).Return(nil)

	scheduler := NewCronScheduler(reportSvc)

	// Act
	err := scheduler.Start(context.Background(), "0 9 * * *")
	defer scheduler.Stop()

	// Assert - первый прогон выполняется сразу, не дожидаясь расписания
	require.NoError(t, err)
	reportSvc.AssertNumberOfCalls(t, "GenerateReports", 1)
	assert.Len(t, scheduler.GetEntries(), 1)
}

func TestCronScheduler_StartInvalidSchedule(t *testing.T) {
	// Arrange
	reportSvc := new(mockReportGenerator)
	scheduler := NewCronScheduler(reportSvc)

	// Act
	err := scheduler.Start(context.Background(), "not a schedule")

	// Assert
	assert.Error(t, err)
	reportSvc.AssertNotCalled(t, "GenerateReports", mock.Anything)
}

func TestCronScheduler_InitialFailureDoesNotFailStart(t *testing.T) {
	// Arrange
	reportSvc := new(mockReportGenerator)
	reportSvc.On("GenerateReports", mock.Anything).Return(errors.New("db unavailable"))

	scheduler := NewCronScheduler(reportSvc)

	// Act
	err := scheduler.Start(context.Background(), "0 9 * * *")
	defer scheduler.Stop()

	// Assert
	assert.NoError(t, err)
}
