package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/denmor86/ya-bankist/internal/logger"
	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	InsertAccount = `INSERT INTO ACCOUNTS (id, username, owner, interest_rate, pin_hash, currency, locale)
						VALUES ($1, $2, $3, $4, $5, $6, $7)
						ON CONFLICT (username) DO NOTHING
						RETURNING id;`
	InsertMovement = `INSERT INTO MOVEMENTS (account_id, amount, created_at)
						SELECT id, $2, $3 FROM ACCOUNTS WHERE username=$1
						RETURNING id;`
	GetAccount = `SELECT id::text, username, owner, interest_rate, pin_hash, currency, locale
					FROM ACCOUNTS WHERE username=$1;`
	GetAccounts = `SELECT id::text, username, owner, interest_rate, pin_hash, currency, locale
					FROM ACCOUNTS ORDER BY position;`
	GetMovements    = `SELECT account_id::text, amount, created_at FROM MOVEMENTS WHERE account_id = $1::uuid ORDER BY id;`
	GetAllMovements = `SELECT account_id::text, amount, created_at FROM MOVEMENTS ORDER BY id;`
	DeleteAccount   = `DELETE FROM ACCOUNTS WHERE username=$1;`
)

// AccountDatabase - справочник счетов в PostgreSQL
type AccountDatabase struct {
	DB *Database
}

// Создание хранилища
func NewAccountsStorage(db *Database) IStorage {
	return &AccountDatabase{DB: db}
}

func (s *AccountDatabase) GetAccount(ctx context.Context, username string) (*models.Account, error) {
	acc, err := scanAccount(s.DB.Pool.QueryRow(ctx, GetAccount, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	accountID, err := parseAccountID(acc.ID)
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.Pool.Query(ctx, GetMovements, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get movements: %w", err)
	}
	movements, err := scanMovements(rows)
	if err != nil {
		return nil, err
	}
	acc.Movements = movements[acc.ID]
	return acc, nil
}

func (s *AccountDatabase) ListAccounts(ctx context.Context) ([]models.Account, error) {
	rows, err := s.DB.Pool.Query(ctx, GetAccounts)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	var accounts []models.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed scan account data: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	rows, err = s.DB.Pool.Query(ctx, GetAllMovements)
	if err != nil {
		return nil, fmt.Errorf("failed to get movements: %w", err)
	}
	movements, err := scanMovements(rows)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i].Movements = movements[accounts[i].ID]
	}
	return accounts, nil
}

// AddAccounts - добавление счетов и их движений в одной транзакции
func (s *AccountDatabase) AddAccounts(ctx context.Context, accounts []models.Account) (err error) {
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Гарантированный откат при ошибке
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("AddAccounts. Rollback failed", zap.Error(rbErr))
			}
		}
	}()

	for _, acc := range accounts {
		id, err := uuid.Parse(acc.ID)
		if err != nil {
			return fmt.Errorf("account %q: invalid id: %w", acc.Username, err)
		}
		var inserted uuid.UUID
		err = tx.QueryRow(ctx, InsertAccount,
			id, acc.Username, acc.Owner, acc.InterestRate, acc.PinHash, acc.Currency, acc.Locale,
		).Scan(&inserted)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("account %q: %w", acc.Username, ErrAlreadyExists)
		}
		if err != nil {
			return fmt.Errorf("insert account: %w", err)
		}
		for _, m := range acc.Movements {
			if err := insertMovement(ctx, tx, acc.Username, m); err != nil {
				return err
			}
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("AddAccounts. Commit failed: %w", err)
	}
	return nil
}

// AppendMovements - все движения в одной транзакции: перевод списывается и зачисляется вместе
func (s *AccountDatabase) AppendMovements(ctx context.Context, postings ...models.Posting) (err error) {
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("AppendMovements. Rollback failed", zap.Error(rbErr))
			}
		}
	}()

	for _, p := range postings {
		if err = insertMovement(ctx, tx, p.Username, p.Movement); err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("AppendMovements. Commit failed: %w", err)
	}
	return nil
}

func (s *AccountDatabase) RemoveAccount(ctx context.Context, username string) error {
	tag, err := s.DB.Pool.Exec(ctx, DeleteAccount, username)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %q: %w", username, ErrAccountNotFound)
	}
	return nil
}

func (s *AccountDatabase) Ping(ctx context.Context) error {
	return s.DB.Ping(ctx)
}

func (s *AccountDatabase) Close() error {
	return s.DB.Close()
}

func insertMovement(ctx context.Context, tx pgx.Tx, username string, m models.Movement) error {
	createdAt := pgtype.Timestamptz{Time: m.Date, Valid: m.HasDate()}
	var id int64
	err := tx.QueryRow(ctx, InsertMovement, username, m.Amount, createdAt).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("account %q: %w", username, ErrAccountNotFound)
	}
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var acc models.Account
	err := row.Scan(
		&acc.ID,
		&acc.Username,
		&acc.Owner,
		&acc.InterestRate,
		&acc.PinHash,
		&acc.Currency,
		&acc.Locale,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// scanMovements - движения, сгруппированные по id счёта, в порядке добавления
func scanMovements(rows pgx.Rows) (map[string][]models.Movement, error) {
	defer rows.Close()
	out := make(map[string][]models.Movement)
	for rows.Next() {
		var (
			accountID string
			amount    decimal.Decimal
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&accountID, &amount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed scan movement data: %w", err)
		}
		m := models.Movement{Amount: amount}
		if createdAt.Valid {
			m.Date = createdAt.Time.In(time.UTC)
		}
		out[accountID] = append(out[accountID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read movements: %w", err)
	}
	return out, nil
}

// parseAccountID - идентификатор счёта как uuid, чтобы сравнение шло по индексу movements_account_id_idx
func parseAccountID(id string) (uuid.UUID, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid account id %q: %w", id, err)
	}
	return accountID, nil
}
