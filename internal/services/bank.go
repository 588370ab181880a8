package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/denmor86/ya-bankist/internal/events"
	"github.com/denmor86/ya-bankist/internal/formatter"
	"github.com/denmor86/ya-bankist/internal/ledger"
	"github.com/denmor86/ya-bankist/internal/logger"
	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/denmor86/ya-bankist/internal/storage"
	"github.com/denmor86/ya-bankist/internal/validators"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankService - операции сессии над справочником счетов
type BankService interface {
	Login(ctx context.Context, username string, pin string) (models.Session, error)
	Transfer(ctx context.Context, session models.Session, to string, amount string) (models.Session, error)
	RequestLoan(ctx context.Context, session models.Session, amount string) (models.Session, error)
	Close(ctx context.Context, session models.Session, username string, pin string) (models.Session, error)
	ToggleSort(ctx context.Context, session models.Session) (models.Session, error)
	View(ctx context.Context, session models.Session) (*models.View, error)
}

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotLoggedIn          = errors.New("not logged in")
	ErrSessionClosed        = errors.New("session closed")
	ErrSessionExpired       = errors.New("session expired")

	ErrTransferRejected = errors.New("transfer rejected")
	ErrLoanRejected     = errors.New("loan rejected")
	ErrClosureRejected  = errors.New("closure rejected")

	ErrInvalidAmount       = errors.New("invalid amount")
	ErrUnknownRecipient    = errors.New("unknown recipient")
	ErrSelfTransfer        = errors.New("transfer to own account")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoQualifyingDeposit = errors.New("no deposit of at least 10% of the loan")
	ErrCredentialsMismatch = errors.New("credentials do not match the current account")
)

const (
	WelcomeLoggedOut = "Log in to get started"
	WelcomeLoggedIn  = "Welcome back, %s"
)

// reject - отказ с категорией операции и конкретной причиной, errors.Is работает для обеих
func reject(category, reason error) error {
	return fmt.Errorf("%w: %w", category, reason)
}

type Bank struct {
	Storage    storage.IStorage
	Identity   IdentityService
	Events     events.Publisher
	SessionTTL time.Duration
	Now        func() time.Time

	// mu - все изменения справочника выполняются по одному
	mu sync.Mutex
}

// Создание сервиса
func NewBank(storage storage.IStorage, identity IdentityService, publisher events.Publisher, ttl time.Duration) *Bank {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Bank{
		Storage:    storage,
		Identity:   identity,
		Events:     publisher,
		SessionTTL: ttl,
		Now:        time.Now,
	}
}

func (b *Bank) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

// Login - вход по коду и пин-коду. Неизвестный код и неверный пин-код не различаются.
func (b *Bank) Login(ctx context.Context, username string, pin string) (models.Session, error) {
	logger.Info("Login", "username", username)

	account, err := b.Storage.GetAccount(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			logger.Warn("Unknown username", "username", username)
			return models.Session{}, ErrAuthenticationFailed
		}
		return models.Session{}, err
	}

	if !b.Identity.CheckPin(account.PinHash, pin) {
		logger.Warn("Invalid pin", "username", username)
		return models.Session{}, ErrAuthenticationFailed
	}

	now := b.now()
	session := models.Session{
		ID:         uuid.NewString(),
		Username:   account.Username,
		State:      models.SessionLoggedIn,
		LoggedInAt: now,
	}
	if b.SessionTTL > 0 {
		session.ExpiresAt = now.Add(b.SessionTTL)
	}

	logger.Info("User logged in", "username", account.Username)
	return session, nil
}

// Transfer - перевод с текущего счёта на счёт с кодом to
func (b *Bank) Transfer(ctx context.Context, session models.Session, to string, amountInput string) (models.Session, error) {
	if err := b.active(session); err != nil {
		return session, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	amount, err := validators.ParseAmount(amountInput)
	if err != nil || !amount.IsPositive() {
		return session, reject(ErrTransferRejected, ErrInvalidAmount)
	}

	sender, err := b.sessionAccount(ctx, session)
	if err != nil {
		return session, err
	}

	receiver, err := b.Storage.GetAccount(ctx, to)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return session, reject(ErrTransferRejected, ErrUnknownRecipient)
		}
		return session, err
	}
	if receiver.Username == sender.Username {
		return session, reject(ErrTransferRejected, ErrSelfTransfer)
	}
	if ledger.Balance(sender.Movements).LessThan(amount) {
		return session, reject(ErrTransferRejected, ErrInsufficientBalance)
	}

	now := b.now()
	err = b.Storage.AppendMovements(ctx,
		models.Posting{Username: sender.Username, Movement: models.NewMovement(amount.Neg(), now)},
		models.Posting{Username: receiver.Username, Movement: models.NewMovement(amount, now)},
	)
	if err != nil {
		return session, fmt.Errorf("transfer: %w", err)
	}

	logger.Info("Transfer completed", "from", sender.Username, "to", receiver.Username, "amount", amount.String())
	b.publish(ctx, events.Event{Type: events.TypeTransfer, Username: sender.Username, Counterparty: receiver.Username, Amount: amount, At: now})
	return session, nil
}

// RequestLoan - кредит на сумму, округлённую вниз до целого
func (b *Bank) RequestLoan(ctx context.Context, session models.Session, amountInput string) (models.Session, error) {
	if err := b.active(session); err != nil {
		return session, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	amount, err := validators.ParseLoanAmount(amountInput)
	if err != nil || !amount.IsPositive() {
		return session, reject(ErrLoanRejected, ErrInvalidAmount)
	}

	account, err := b.sessionAccount(ctx, session)
	if err != nil {
		return session, err
	}
	if !ledger.HasQualifyingDeposit(account.Movements, amount) {
		return session, reject(ErrLoanRejected, ErrNoQualifyingDeposit)
	}

	now := b.now()
	err = b.Storage.AppendMovements(ctx, models.Posting{Username: account.Username, Movement: models.NewMovement(amount, now)})
	if err != nil {
		return session, fmt.Errorf("loan: %w", err)
	}

	logger.Info("Loan granted", "username", account.Username, "amount", amount.String())
	b.publish(ctx, events.Event{Type: events.TypeLoan, Username: account.Username, Amount: amount, At: now})
	return session, nil
}

// Close - закрытие собственного счёта. Введённые код и пин-код должны совпасть с текущим счётом.
func (b *Bank) Close(ctx context.Context, session models.Session, username string, pin string) (models.Session, error) {
	if err := b.active(session); err != nil {
		return session, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	account, err := b.sessionAccount(ctx, session)
	if err != nil {
		return session, err
	}
	if username != account.Username || !b.Identity.CheckPin(account.PinHash, pin) {
		logger.Warn("Closure credentials mismatch", "username", account.Username)
		return session, reject(ErrClosureRejected, ErrCredentialsMismatch)
	}

	if err := b.Storage.RemoveAccount(ctx, account.Username); err != nil {
		return session, fmt.Errorf("close account: %w", err)
	}

	logger.Info("Account closed", "username", account.Username)
	b.publish(ctx, events.Event{Type: events.TypeClose, Username: account.Username, Amount: ledger.Balance(account.Movements), At: b.now()})

	session.State = models.SessionClosed
	session.Sorted = false
	return session, nil
}

// ToggleSort - переключение порядка отображения движений, справочник не меняется.
// Сессия закрытого счёта переключиться не может.
func (b *Bank) ToggleSort(ctx context.Context, session models.Session) (models.Session, error) {
	if err := b.active(session); err != nil {
		return session, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.sessionAccount(ctx, session); err != nil {
		return session, err
	}
	session.Sorted = !session.Sorted
	return session, nil
}

// View - модель представления для сессии. Вне активной сессии - приглашение войти.
func (b *Bank) View(ctx context.Context, session models.Session) (*models.View, error) {
	if b.active(session) != nil {
		return LoggedOutView(), nil
	}

	account, err := b.sessionAccount(ctx, session)
	if err != nil {
		if errors.Is(err, ErrSessionClosed) {
			return LoggedOutView(), nil
		}
		return nil, err
	}

	now := b.now()
	f := formatter.ForAccount(account, now)
	summary := ledger.Summarize(account.Movements, account.InterestRate)
	account.Balance = summary.Balance

	return &models.View{
		Welcome:      fmt.Sprintf(WelcomeLoggedIn, account.FirstName()),
		PanelVisible: true,
		Date:         f.StampLabel(),
		Sorted:       session.Sorted,
		Currency:     f.Currency.String(),
		Balance:      account.Balance.Round(2),
		BalanceLabel: f.AmountLabel(account.Balance),
		Deposits:     summary.Deposits.Round(2),
		Withdrawals:  summary.Withdrawals.Round(2),
		Interest:     summary.Interest.Round(2),
		Movements:    f.Format(account.Movements, session.Sorted),
	}, nil
}

// LoggedOutView - представление без открытой сессии
func LoggedOutView() *models.View {
	return &models.View{
		Welcome:      WelcomeLoggedOut,
		PanelVisible: false,
		Balance:      decimal.Zero,
		Deposits:     decimal.Zero,
		Withdrawals:  decimal.Zero,
		Interest:     decimal.Zero,
		Movements:    []models.MovementView{},
	}
}

// active - операции разрешены только в живой открытой сессии
func (b *Bank) active(session models.Session) error {
	switch session.State {
	case models.SessionLoggedIn:
		if session.Expired(b.now()) {
			return ErrSessionExpired
		}
		return nil
	case models.SessionClosed:
		return ErrSessionClosed
	default:
		return ErrNotLoggedIn
	}
}

// sessionAccount - счёт текущей сессии; пропавший счёт означает закрытую сессию
func (b *Bank) sessionAccount(ctx context.Context, session models.Session) (*models.Account, error) {
	account, err := b.Storage.GetAccount(ctx, session.Username)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return nil, ErrSessionClosed
		}
		return nil, err
	}
	return account, nil
}

// publish - событие отправляется после изменения справочника, ошибка только логируется
func (b *Bank) publish(ctx context.Context, event events.Event) {
	if b.Events == nil {
		return
	}
	if err := b.Events.Publish(ctx, event); err != nil {
		logger.Error("Failed to publish ledger event", "type", event.Type, "error", err)
	}
}
