package processor

import (
	"context"

	"lingonberry/internal/app/retail/service"
	"lingonberry/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronScheduler запускает генерацию отчётов о низких остатках по расписанию
type CronScheduler struct {
	cron      *cron.Cron
	reportSvc service.LowStockReportServiceInterface
}

func NewCronScheduler(reportSvc service.LowStockReportServiceInterface) *CronScheduler {
	return &CronScheduler{
		cron:      cron.New(),
		reportSvc: reportSvc,
	}
}

// Start регистрирует задачу и выполняет первый прогон сразу,
// чтобы не ждать ближайшего срабатывания расписания
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("cron job triggered: generating low stock reports")

		if err := s.reportSvc.GenerateReports(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to generate low stock reports")
			return
		}
		logger.Info().Msg("cron job completed: low stock reports generated")
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	if err := s.reportSvc.GenerateReports(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial low stock report generation failed")
	}

	return nil
}

// Stop дожидается завершения выполняющихся задач
func (s *CronScheduler) Stop() {
	logger.Info().Msg("stopping cron scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
