package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	portsrepo "github.com/hudumabill/ledger_backend/internal/core/ports/repositories"
	"github.com/hudumabill/ledger_backend/internal/models"
	"github.com/hudumabill/ledger_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(base BaseRepository) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{BaseRepository: base}
}

var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

// SaveCurrency inserts a new currency.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	modelCurrency := mapping.ToModelCurrency(currency)

	query := `
		INSERT INTO currencies (currency_code, symbol, name, decimal_places, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelCurrency.CurrencyCode,
		modelCurrency.Symbol,
		modelCurrency.Name,
		modelCurrency.DecimalPlaces,
		modelCurrency.CreatedAt,
		modelCurrency.CreatedBy,
		modelCurrency.LastUpdatedAt,
		modelCurrency.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: currency %s already exists", apperrors.ErrDuplicate, modelCurrency.CurrencyCode)
		}
		return fmt.Errorf("failed to save currency %s: %w", modelCurrency.CurrencyCode, err)
	}
	return nil
}

// FindCurrencyByCode retrieves a currency by its code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := `
		SELECT currency_code, symbol, name, decimal_places, created_at, created_by, last_updated_at, last_updated_by
		FROM currencies
		WHERE currency_code = $1;
	`
	var m models.Currency
	err := r.Pool.QueryRow(ctx, query, currencyCode).Scan(
		&m.CurrencyCode,
		&m.Symbol,
		&m.Name,
		&m.DecimalPlaces,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find currency "+currencyCode, err)
	}

	domainCurrency := mapping.ToDomainCurrency(m)
	return &domainCurrency, nil
}

// ListCurrencies retrieves all registered currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
		SELECT currency_code, symbol, name, decimal_places, created_at, created_by, last_updated_at, last_updated_by
		FROM currencies
		ORDER BY currency_code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query currencies", err)
	}
	defer rows.Close()

	currencies := []domain.Currency{}
	for rows.Next() {
		var m models.Currency
		if err := rows.Scan(
			&m.CurrencyCode,
			&m.Symbol,
			&m.Name,
			&m.DecimalPlaces,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency row", err)
		}
		currencies = append(currencies, mapping.ToDomainCurrency(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating currency rows", err)
	}
	return currencies, nil
}
