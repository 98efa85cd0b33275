package sentinel

import (
	"context"
	"time"

	"lever/core"
	"lever/worker"

	"github.com/fox-one/pkg/logger"
)

const batchSize = 100

// Worker solvency sentinel, scans every account in batches and flags the
// liquidatable ones
type Worker struct {
	worker.TickWorker
	userStore      core.IUserStore
	accountService core.IAccountService
}

// New new sentinel worker
func New(interval time.Duration, userStore core.IUserStore, accountService core.IAccountService) *Worker {
	return &Worker{
		TickWorker: worker.TickWorker{
			Delay:    interval,
			ErrDelay: time.Minute,
		},
		userStore:      userStore,
		accountService: accountService,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "sentinel")

	now := time.Now()
	var fromID uint64
	for {
		users, err := w.userStore.List(ctx, fromID, batchSize)
		if err != nil {
			log.WithError(err).Errorln("list users")
			return err
		}

		if len(users) == 0 {
			break
		}

		for _, user := range users {
			fromID = user.ID

			liquidity, err := w.accountService.EvaluateAccount(ctx, user.UserID, now)
			if err != nil {
				log.WithError(err).Errorln("evaluate", user.UserID)
				continue
			}

			if liquidity.Liquidatable {
				log.WithField("user", user.UserID).
					WithField("health_factor", liquidity.HealthFactor).
					Warningln("account liquidatable")
			}
		}
	}

	return nil
}
