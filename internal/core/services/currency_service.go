package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	portsrepo "github.com/hudumabill/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/hudumabill/ledger_backend/internal/core/ports/services"
	"github.com/hudumabill/ledger_backend/internal/dto"
	"log/slog"
)

// currencyService provides currency registry operations.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency registers a new currency.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorID string) (*domain.Currency, error) {
	now := time.Now()
	currency := domain.Currency{
		CurrencyCode:  strings.ToUpper(req.CurrencyCode),
		Symbol:        req.Symbol,
		Name:          req.Name,
		DecimalPlaces: req.DecimalPlaces,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", currency.CurrencyCode))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_code", currency.CurrencyCode))
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency by its code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find currency", slog.String("currency_code", currencyCode))
		}
		return nil, err
	}
	return currency, nil
}

// ListCurrencies retrieves all registered currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, err
	}
	return currencies, nil
}
