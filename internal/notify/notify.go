// Package notify is the seam between the core and outbound delivery
// channels. Real SMS/email transports plug in behind Notifier; the
// default implementation only logs.
package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/cleankili/backend/internal/models"
)

type Notifier interface {
	SendOTP(ctx context.Context, email, phone, code string) error
	SendDailySummary(ctx context.Context, summary *models.DailySummary) error
}

type LogNotifier struct {
	logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendOTP(ctx context.Context, email, phone, code string) error {
	n.logger.WithFields(logrus.Fields{
		"email": email,
		"phone": phone,
	}).Infof("verification code issued: %s", code)
	return nil
}

func (n *LogNotifier) SendDailySummary(ctx context.Context, summary *models.DailySummary) error {
	n.logger.WithFields(logrus.Fields{
		"date":        summary.Date,
		"total":       summary.TotalReports,
		"pending":     summary.PendingReports,
		"in_progress": summary.InProgressReports,
		"resolved":    summary.ResolvedReports,
	}).Info(summary.SummaryText)
	return nil
}
