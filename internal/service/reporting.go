package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bistroboss/bistroboss/internal/model"
	"github.com/bistroboss/bistroboss/internal/repository"
)

// UserStore is the slice of the repository reporting needs for users.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CountUsersByRole(ctx context.Context, role model.Role) (int64, error)
}

// CatalogCounter exposes the catalog size.
type CatalogCounter interface {
	EstimatedMenuCount(ctx context.Context) (int64, error)
}

// LedgerReader reads the payment ledger.
type LedgerReader interface {
	AllPayments(ctx context.Context) ([]*model.Payment, error)
	CountPayments(ctx context.Context) (int64, error)
}

// StatsStore runs the per-category order aggregation.
type StatsStore interface {
	OrderStats(ctx context.Context) ([]*model.CategoryStat, error)
}

// Reporting aggregates settled payments into statistics.
// All operations are pure folds over current store contents.
type Reporting struct {
	users   UserStore
	catalog CatalogCounter
	ledger  LedgerReader
	stats   StatsStore
}

// NewReporting creates a Reporting service.
func NewReporting(users UserStore, catalog CatalogCounter, ledger LedgerReader, stats StatsStore) *Reporting {
	return &Reporting{
		users:   users,
		catalog: catalog,
		ledger:  ledger,
		stats:   stats,
	}
}

// AdminStats computes dashboard totals: revenue summed over the whole
// ledger, non-admin user count, catalog size and order count.
func (r *Reporting) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	payments, err := r.ledger.AllPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	var revenue float64
	for _, p := range payments {
		revenue += p.Price
	}

	users, err := r.users.CountUsersByRole(ctx, model.RoleDefault)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	menuItems, err := r.catalog.EstimatedMenuCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count menu items: %w", err)
	}

	orders, err := r.ledger.CountPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}

	return &model.AdminStats{
		Revenue:   revenue,
		Users:     users,
		MenuItems: menuItems,
		Orders:    orders,
	}, nil
}

// OrderStats returns the per-category order aggregation.
func (r *Reporting) OrderStats(ctx context.Context) ([]*model.CategoryStat, error) {
	return r.stats.OrderStats(ctx)
}

// IsAdmin reports whether the user behind the given email holds the
// admin role. An absent record is simply not an admin, not an error.
func (r *Reporting) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := r.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return user.IsAdmin(), nil
}
