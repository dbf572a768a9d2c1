package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

// KindSummary is one dashboard card.
type KindSummary struct {
	Kind      models.Kind
	Total     int
	Available int
	Closed    int
}

type DashboardService interface {
	Summary(ctx context.Context) ([]KindSummary, error)
}

type dashboardService struct {
	registry *Registry
}

func NewDashboardService(r *Registry) DashboardService {
	return &dashboardService{registry: r}
}

// Summary loads the five property kinds in parallel and counts available
// (募集中) and closed (入居中, 成約済, 契約中) records.
func (d *dashboardService) Summary(ctx context.Context) ([]KindSummary, error) {
	kinds := models.PropertyKinds()
	out := make([]KindSummary, len(kinds))

	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			e, err := d.registry.Entity(kind)
			if err != nil {
				return err
			}
			counts, total, err := e.StatusCounts(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", kind.Label(), err)
			}
			sum := KindSummary{Kind: kind, Total: total}
			for status, n := range counts {
				switch {
				case status.IsAvailable():
					sum.Available += n
				case status.IsClosed():
					sum.Closed += n
				}
			}
			out[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
