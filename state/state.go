// Package state holds the shared application state: the entity collections,
// the transition rules between them, and the synchronous mirror to the
// persistent store. Views never own state; they hold an *App and read
// derived snapshots from it.
package state

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"amardoctor/models"
	"amardoctor/store"
)

// Persisted store keys, one per collection/singleton.
const (
	KeyUsers         = "ad_users"
	KeyConfig        = "ad_config"
	KeyPriceList     = "ad_price_list"
	KeyOrders        = "ad_orders"
	KeyMessages      = "ad_messages"
	KeyNotifications = "ad_notifications"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateID        = errors.New("id already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBlockedAccount     = errors.New("account is blocked")
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("invalid state for operation")
)

// Toaster receives the message of every emitted notification. The transient
// toast display (and its auto-dismiss) belongs to whatever layer registers
// here; state only announces.
type Toaster func(to, message string)

// App is the application-state aggregate. All mutations go through its
// methods, which persist the affected collection before returning. Draft
// carts and staged price overrides are transient and never persisted.
type App struct {
	mu    sync.Mutex
	store store.Store
	toast Toaster

	users         []models.User
	priceList     []models.Medicine
	orders        []models.Order
	messages      []models.Message
	notifications []models.AppNotification
	config        models.AppConfig

	carts  map[string][]models.OrderItem // draft cart per user id
	staged map[string][]string           // pending price overrides per order id, index-aligned
}

func New(s store.Store) *App {
	return &App{
		store:  s,
		config: models.DefaultConfig(),
		carts:  make(map[string][]models.OrderItem),
		staged: make(map[string][]string),
	}
}

// SetToaster registers the transient notification sink. Optional.
func (a *App) SetToaster(t Toaster) {
	a.mu.Lock()
	a.toast = t
	a.mu.Unlock()
}

// Load reads every collection from the store. A missing or corrupted value
// falls back to that key's default; one bad key never poisons another, and
// startup itself cannot fail on bad data.
func (a *App) Load(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	loadKey(ctx, a.store, KeyUsers, &a.users)
	loadKey(ctx, a.store, KeyPriceList, &a.priceList)
	loadKey(ctx, a.store, KeyOrders, &a.orders)
	loadKey(ctx, a.store, KeyMessages, &a.messages)
	loadKey(ctx, a.store, KeyNotifications, &a.notifications)

	var cfg models.AppConfig
	if ok := loadKey(ctx, a.store, KeyConfig, &cfg); ok {
		a.config = cfg
	} else {
		a.config = models.DefaultConfig()
	}
}

// loadKey reads one key into into and reports whether a usable value was
// found. Corruption is logged and treated like absence.
func loadKey(ctx context.Context, s store.Store, key string, into any) bool {
	err := s.Get(ctx, key, into)
	switch {
	case err == nil:
		return true
	case errors.Is(err, store.ErrNotFound):
		return false
	case errors.Is(err, store.ErrCorrupted):
		log.Printf("state: corrupted value at %q, using default: %v", key, err)
		return false
	default:
		log.Printf("state: reading %q: %v", key, err)
		return false
	}
}

// persist mirrors one collection to its key. Mutations call it while still
// holding the lock so a completed action is durable before the next one can
// observe the key.
func (a *App) persist(ctx context.Context, key string, value any) error {
	if err := a.store.Put(ctx, key, value); err != nil {
		log.Printf("state: persisting %q: %v", key, err)
		return err
	}
	return nil
}

// parseAmount parses a decimal-as-string. Non-numeric input is 0 so totals
// never pick up NaN.
func parseAmount(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// orderTotal recomputes Σ pricePerUnit×quantity over items.
func orderTotal(items []models.OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += parseAmount(it.PricePerUnit) * parseAmount(it.Quantity)
	}
	return total
}

// timeID is the millisecond-timestamp id scheme used for price-list
// entries.
func timeID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// shortID is the user-facing tail of an entity id, as shown on invoices and
// in notification text.
func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
