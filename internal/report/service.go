package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/pos-audit-be/internal/apperr"
	"github.com/hongminglow/pos-audit-be/internal/models"
	"github.com/hongminglow/pos-audit-be/internal/query"
	"github.com/hongminglow/pos-audit-be/internal/storage"
)

const msgServer = "Server error"

// Service answers the reporting endpoints from a ReportStore.
type Service struct {
	store  storage.ReportStore
	logger *zap.Logger
}

func NewService(store storage.ReportStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Listing returns the raw rows of a listing endpoint.
func (s *Service) Listing(ctx context.Context, l query.Listing, f query.Filter) ([]map[string]any, error) {
	stmt, err := query.Build(l, f)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, msgServer, err)
	}
	rows, err := s.store.Rows(ctx, stmt)
	if err != nil {
		s.logger.Error("listing query failed", zap.Stringer("listing", l), zap.Error(err))
		return nil, apperr.Wrap(apperr.Dependency, msgServer, fmt.Errorf("list %s: %w", l, err))
	}
	return rows, nil
}

// Interface builds the nested sales report and the stock summary. The two queries are
// independent and run concurrently; the first failure cancels the other.
func (s *Service) Interface(ctx context.Context, r query.DateRange) (models.InterfaceReport, error) {
	var (
		saleRows  []models.SaleItemRow
		stockRows []models.StockRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.store.SaleItemRows(gctx, query.SaleItemReport(r))
		if err != nil {
			s.logger.Error("sales data query failed", zap.Error(err))
			return fmt.Errorf("sales data: %w", err)
		}
		saleRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.StockRows(gctx, query.StockLevels())
		if err != nil {
			s.logger.Error("stock data query failed", zap.Error(err))
			return fmt.Errorf("stock data: %w", err)
		}
		stockRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.InterfaceReport{}, apperr.Wrap(apperr.Dependency, msgServer, err)
	}

	return models.InterfaceReport{
		SalesData: FoldSales(saleRows),
		StockData: SummarizeStock(stockRows),
	}, nil
}
