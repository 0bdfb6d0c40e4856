package usecase

import (
	"strings"
	"sync"
	"time"

	"github.com/piresc/ticketing/internal/pkg/logger"
	"github.com/piresc/ticketing/internal/pkg/models"
	"github.com/piresc/ticketing/services/payment"
)

const (
	defaultStatusCacheTTL    = 10 * time.Minute
	defaultSideEffectTimeout = 15 * time.Second
)

var defaultTicketedListingTypes = []models.ListingType{models.ListingEvent, models.ListingTour}

// PaymentUC implements the payment use case interface
type PaymentUC struct {
	cfg    *models.Config
	repo   payment.PaymentRepo
	cache  payment.StatusCache
	gw     payment.PaymentGW
	issuer payment.TicketIssuer
	log    *logger.ZapLogger

	ticketed          map[models.ListingType]bool
	statusCacheTTL    time.Duration
	sideEffectTimeout time.Duration

	// side effects still running after their callback was acknowledged.
	// Once draining is set no more are added to pending.
	mu       sync.Mutex
	draining bool
	pending  sync.WaitGroup
	now      func() time.Time
}

// NewPaymentUC creates a new payment use case
func NewPaymentUC(
	cfg *models.Config,
	repo payment.PaymentRepo,
	cache payment.StatusCache,
	gw payment.PaymentGW,
	issuer payment.TicketIssuer,
	log *logger.ZapLogger,
) *PaymentUC {
	if log == nil {
		log = logger.NewNopLogger()
	}

	uc := &PaymentUC{
		cfg:               cfg,
		repo:              repo,
		cache:             cache,
		gw:                gw,
		issuer:            issuer,
		log:               log,
		ticketed:          make(map[models.ListingType]bool),
		statusCacheTTL:    cfg.Payment.StatusCacheTTL,
		sideEffectTimeout: cfg.Payment.SideEffectTimeout,
		now:               time.Now,
	}

	for _, t := range cfg.Payment.TicketedListingTypes {
		if t = strings.TrimSpace(strings.ToLower(t)); t != "" {
			uc.ticketed[models.ListingType(t)] = true
		}
	}
	if len(uc.ticketed) == 0 {
		for _, t := range defaultTicketedListingTypes {
			uc.ticketed[t] = true
		}
	}
	if uc.statusCacheTTL <= 0 {
		uc.statusCacheTTL = defaultStatusCacheTTL
	}
	if uc.sideEffectTimeout <= 0 {
		uc.sideEffectTimeout = defaultSideEffectTimeout
	}

	return uc
}

// Wait blocks until every dispatched side effect has returned. Called on
// shutdown so emails and events of acknowledged callbacks are not dropped.
// Callbacks settled after Wait has been called run their side effects
// before returning instead.
func (uc *PaymentUC) Wait() {
	uc.mu.Lock()
	uc.draining = true
	uc.mu.Unlock()

	uc.pending.Wait()
}

// track registers one background side-effect run. It returns false once
// shutdown has begun.
func (uc *PaymentUC) track() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.draining {
		return false
	}
	uc.pending.Add(1)
	return true
}
