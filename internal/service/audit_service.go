package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/logging"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/reconcile"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/repository"
)

// UserDuplicates is the audit finding for one user.
type UserDuplicates struct {
	UserID     string                     `json:"userId"`
	Duplicates []reconcile.DuplicateAlias `json:"duplicates"`
}

// AuditReport summarizes one audit run.
type AuditReport struct {
	UsersScanned int              `json:"usersScanned"`
	Findings     []UserDuplicates `json:"findings"`
}

// AuditService checks every user's holdings for codes that match more than one holding.
type AuditService struct {
	userRepo    *repository.UserRepository
	holdingRepo *repository.HoldingRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(userRepo *repository.UserRepository, holdingRepo *repository.HoldingRepository) *AuditService {
	return &AuditService{
		userRepo:    userRepo,
		holdingRepo: holdingRepo,
	}
}

// RunAudit scans all users. Users without duplicates are left out of the findings.
func (s *AuditService) RunAudit(ctx context.Context) (AuditReport, error) {
	userIDs, err := s.userRepo.GetUserIDs(ctx)
	if err != nil {
		return AuditReport{}, err
	}

	report := AuditReport{Findings: []UserDuplicates{}}
	logger := logging.FromContext(ctx)

	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		holdings, err := s.holdingRepo.GetAllHoldings(ctx, userID)
		if err != nil {
			return report, fmt.Errorf("audit user %s: %w", userID, err)
		}
		report.UsersScanned++

		duplicates := reconcile.FindDuplicateAliases(holdings)
		if len(duplicates) == 0 {
			continue
		}
		report.Findings = append(report.Findings, UserDuplicates{UserID: userID, Duplicates: duplicates})
		for _, d := range duplicates {
			logger.WithFields(logrus.Fields{
				"userId":     userID,
				"code":       d.Code,
				"holdingIds": d.HoldingIDs,
			}).Warn("code matches more than one holding")
		}
	}

	logger.WithFields(logrus.Fields{
		"usersScanned":      report.UsersScanned,
		"usersWithFindings": len(report.Findings),
	}).Info("duplicate alias audit finished")

	return report, nil
}

// Schedule runs the audit on a cron spec until the returned scheduler is stopped.
func (s *AuditService) Schedule(ctx context.Context, spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := s.RunAudit(ctx); err != nil {
			logging.FromContext(ctx).WithError(err).Error("duplicate alias audit failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid audit schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
