package generator

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"ecommerce_dataset/internal/domain/dataset"
)

// NewSource returns a deterministic random source for seed and the seed
// actually used. A zero seed is replaced with one derived from the clock.
func NewSource(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed
}

// Generate validates cfg and catalog, then builds a complete dataset.
func Generate(cfg Config, catalog []dataset.Product, rng *rand.Rand) (*dataset.Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := dataset.ValidateCatalog(catalog); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is nil", dataset.ErrInvalidConfig)
	}

	products := append([]dataset.Product(nil), catalog...)
	customers := GenerateCustomers(cfg, rng)
	orders, items := GenerateOrdersAndItems(customers, products, cfg, rng)

	return &dataset.Dataset{
		Customers:  customers,
		Products:   products,
		Orders:     orders,
		OrderItems: items,
	}, nil
}

// GenerateCustomers produces cfg.Customers customers with ids 1..N and
// unique emails.
func GenerateCustomers(cfg Config, rng *rand.Rand) []dataset.Customer {
	customers := make([]dataset.Customer, 0, max(cfg.Customers, 0))
	emails := newEmailRegistry(cfg.EmailDomain)

	for i := 1; i <= cfg.Customers; i++ {
		first := pick(rng, cfg.FirstNames)
		last := pick(rng, cfg.LastNames)
		signup := randomDay(rng, cfg.SignupWindow)
		city := pick(rng, cfg.Cities)

		customers = append(customers, dataset.Customer{
			ID:         int64(i),
			FirstName:  first,
			LastName:   last,
			Email:      emails.issue(first, last),
			SignupDate: signup,
			City:       city,
			Country:    cfg.Country,
		})
	}
	return customers
}

// sequence carries the run-wide order and order item counters.
type sequence struct {
	nextOrder int64
	nextItem  int64
}

func newSequence() sequence {
	return sequence{nextOrder: 1, nextItem: 1}
}

// GenerateOrdersAndItems produces orders for every customer and items for
// every order. Ids are shared across the whole call, starting at 1.
func GenerateOrdersAndItems(
	customers []dataset.Customer,
	products []dataset.Product,
	cfg Config,
	rng *rand.Rand,
) ([]dataset.Order, []dataset.OrderItem) {
	// Sized from the range minimums.
	orders := make([]dataset.Order, 0, capacity(len(customers), cfg.OrdersPerCustomer.Low))
	items := make([]dataset.OrderItem, 0, capacity(cap(orders), cfg.ItemsPerOrder.Low))
	seq := newSequence()

	for _, c := range customers {
		n := between(rng, cfg.OrdersPerCustomer)
		for range n {
			var order dataset.Order
			var orderItems []dataset.OrderItem
			order, orderItems, seq = generateOrder(c.ID, products, cfg, rng, seq)
			orders = append(orders, order)
			items = append(items, orderItems...)
		}
	}
	return orders, items
}

func generateOrder(
	customerID int64,
	products []dataset.Product,
	cfg Config,
	rng *rand.Rand,
	seq sequence,
) (dataset.Order, []dataset.OrderItem, sequence) {
	order := dataset.Order{
		ID:         seq.nextOrder,
		CustomerID: customerID,
		OrderDate:  randomDay(rng, cfg.OrderWindow),
		Status:     pick(rng, cfg.StatusPool),
	}
	seq.nextOrder++

	m := between(rng, cfg.ItemsPerOrder)
	items := make([]dataset.OrderItem, 0, m)
	for range m {
		product := pick(rng, products)
		items = append(items, dataset.OrderItem{
			ID:        seq.nextItem,
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  between(rng, cfg.Quantity),
			UnitPrice: product.Price,
		})
		seq.nextItem++
	}
	return order, items, seq
}

// emailRegistry hands out first.last@domain addresses, appending 1, 2, ...
// to the local part until an unused address is found.
type emailRegistry struct {
	domain string
	used   map[string]struct{}
}

func newEmailRegistry(domain string) *emailRegistry {
	return &emailRegistry{domain: domain, used: make(map[string]struct{})}
}

func (r *emailRegistry) issue(first, last string) string {
	base := strings.ToLower(first) + "." + strings.ToLower(last)
	email := base + "@" + r.domain
	for n := 1; r.taken(email); n++ {
		email = base + strconv.Itoa(n) + "@" + r.domain
	}
	r.used[email] = struct{}{}
	return email
}

func (r *emailRegistry) taken(email string) bool {
	_, ok := r.used[email]
	return ok
}

// capacity returns n*per, capped at 1<<20.
func capacity(n, per int) int {
	const limit = 1 << 20
	if n <= 0 || per <= 0 {
		return 0
	}
	if per > limit/n {
		return limit
	}
	return n * per
}

func pick[T any](rng *rand.Rand, pool []T) T {
	return pool[rng.IntN(len(pool))]
}

func between(rng *rand.Rand, r dataset.Range) int {
	return r.Low + rng.IntN(r.High-r.Low+1)
}

func randomDay(rng *rand.Rand, w dataset.DateWindow) string {
	return w.Day(rng.IntN(w.SpanDays + 1))
}
