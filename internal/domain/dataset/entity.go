package dataset

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID         int64
	FirstName  string
	LastName   string
	Email      string
	SignupDate string
	City       string
	Country    string
}

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Product struct {
	ID       int64
	Name     string
	Category string
	Price    decimal.Decimal
	Cost     decimal.Decimal
}

func NewProduct(id int64, name, category string, price, cost decimal.Decimal) (Product, error) {
	if id <= 0 || name == "" {
		return Product{}, fmt.Errorf("%w: product id and name are required", ErrInvalidCatalog)
	}
	if !price.GreaterThan(cost) {
		return Product{}, fmt.Errorf("%w: product %d price %s must exceed cost %s",
			ErrInvalidCatalog, id, price.StringFixed(2), cost.StringFixed(2))
	}
	return Product{ID: id, Name: name, Category: category, Price: price, Cost: cost}, nil
}

func (p Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}

// MarginPercent is the margin as a percentage of price, rounded to 2 places.
func (p Product) MarginPercent() decimal.Decimal {
	if p.Price.IsZero() {
		return decimal.Zero
	}
	return p.Margin().Div(p.Price).Mul(decimal.NewFromInt(100)).Round(2)
}

type Order struct {
	ID         int64
	CustomerID int64
	OrderDate  string
	Status     OrderStatus
}

type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	// UnitPrice is the product price captured when the item was generated.
	UnitPrice decimal.Decimal
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Dataset is one generation run: four collections in insertion order.
type Dataset struct {
	Customers  []Customer
	Products   []Product
	Orders     []Order
	OrderItems []OrderItem
}

type Counts struct {
	Customers  int `json:"customers"`
	Products   int `json:"products"`
	Orders     int `json:"orders"`
	OrderItems int `json:"order_items"`
}

func (d *Dataset) Counts() Counts {
	return Counts{
		Customers:  len(d.Customers),
		Products:   len(d.Products),
		Orders:     len(d.Orders),
		OrderItems: len(d.OrderItems),
	}
}

// Verify checks uniqueness, referential integrity and id monotonicity
// across all four collections.
func (d *Dataset) Verify() error {
	if d == nil {
		return fmt.Errorf("%w: dataset is nil", ErrIntegrity)
	}

	customers := make(map[int64]struct{}, len(d.Customers))
	emails := make(map[string]struct{}, len(d.Customers))
	for i, c := range d.Customers {
		if c.ID != int64(i+1) {
			return fmt.Errorf("%w: customer #%d has id %d", ErrIntegrity, i, c.ID)
		}
		if _, dup := emails[c.Email]; dup {
			return fmt.Errorf("%w: duplicate email %q", ErrIntegrity, c.Email)
		}
		emails[c.Email] = struct{}{}
		customers[c.ID] = struct{}{}
	}

	products := make(map[int64]Product, len(d.Products))
	for _, p := range d.Products {
		products[p.ID] = p
	}

	orders := make(map[int64]struct{}, len(d.Orders))
	var lastOrder int64
	for _, o := range d.Orders {
		if o.ID <= lastOrder {
			return fmt.Errorf("%w: order id %d is not increasing", ErrIntegrity, o.ID)
		}
		lastOrder = o.ID
		if _, ok := customers[o.CustomerID]; !ok {
			return fmt.Errorf("%w: order %d references unknown customer %d", ErrIntegrity, o.ID, o.CustomerID)
		}
		orders[o.ID] = struct{}{}
	}

	var lastItem int64
	for _, it := range d.OrderItems {
		if it.ID <= lastItem {
			return fmt.Errorf("%w: order item id %d is not increasing", ErrIntegrity, it.ID)
		}
		lastItem = it.ID
		if _, ok := orders[it.OrderID]; !ok {
			return fmt.Errorf("%w: order item %d references unknown order %d", ErrIntegrity, it.ID, it.OrderID)
		}
		if _, ok := products[it.ProductID]; !ok {
			return fmt.Errorf("%w: order item %d references unknown product %d", ErrIntegrity, it.ID, it.ProductID)
		}
	}
	return nil
}

// PlacedOrder is an order together with its items, as read back from storage.
type PlacedOrder struct {
	Order
	Items []OrderItem
}

func (p PlacedOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}
