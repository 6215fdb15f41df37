package services

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/domain/entity"
)

// fakeCatalog counts ListProducts calls and records the ids of each batch.
type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]entity.Product
	batches  [][]string
	listErr  error
}

func newFakeCatalog(products ...entity.Product) *fakeCatalog {
	c := &fakeCatalog{products: map[string]entity.Product{}}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return nil, &entity.NotFoundError{Resource: entity.ResourceProduct, ID: id}
	}
	return &p, nil
}

func (c *fakeCatalog) DeleteProduct(_ context.Context, id string) (*entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return nil, &entity.NotFoundError{Resource: entity.ResourceProduct, ID: id}
	}
	delete(c.products, id)
	return &p, nil
}

func (c *fakeCatalog) CreateProduct(_ context.Context, p entity.Product) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[p.ID]; ok {
		return "", &entity.ConflictError{Resource: entity.ResourceProduct, ID: p.ID}
	}
	c.products[p.ID] = p
	return p.ID, nil
}

func (c *fakeCatalog) ListProducts(_ context.Context, ids []string) ([]entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, append([]string(nil), ids...))
	if c.listErr != nil {
		return nil, c.listErr
	}
	var out []entity.Product
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *fakeCatalog) listCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batches)
}

type fakeLedger struct {
	mu      sync.Mutex
	orders  map[int64]entity.Order
	nextID  int64
	creates int
}

func newFakeLedger(orders ...entity.Order) *fakeLedger {
	l := &fakeLedger{orders: map[int64]entity.Order{}}
	for _, o := range orders {
		l.orders[o.ID] = o
		if o.ID > l.nextID {
			l.nextID = o.ID
		}
	}
	return l
}

func (l *fakeLedger) GetOrder(_ context.Context, id int64) (*entity.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.orders[id]
	if !ok {
		return nil, &entity.NotFoundError{Resource: entity.ResourceOrder, ID: strconv.FormatInt(id, 10)}
	}
	return &o, nil
}

func (l *fakeLedger) ListOrders(context.Context) ([]entity.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]entity.Order, 0, len(l.orders))
	for _, o := range l.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (l *fakeLedger) CreateOrder(_ context.Context, items []entity.LineItem) (*entity.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.creates++
	l.nextID++
	o := entity.Order{ID: l.nextID, Details: append([]entity.LineItem(nil), items...)}
	l.orders[o.ID] = o
	return &o, nil
}

type countingObserver struct {
	sizes []int
}

func (o *countingObserver) ObserveBatch(ids int) { o.sizes = append(o.sizes, ids) }
