// Package memory implementa los puertos de persistencia en memoria de proceso.
// Se usa con STORAGE_DRIVER=memory y en los tests de casos de uso.
package memory

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/stockpro-api/internal/application/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu         sync.RWMutex
	products   map[string]*entity.Product
	categories map[string]*entity.Category
	movements  []*entity.StockMovement
	lastMovID  int64

	txMu sync.Mutex
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]*entity.Product),
		categories: make(map[string]*entity.Category),
	}
}

// Products repositorio de productos sobre el store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Categories repositorio de categorías sobre el store.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Movements libro de movimientos sobre el store.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{s: s} }

// TxRunner serializa las transacciones del store. Las escrituras se aplican al momento;
// los casos de uso dejan la escritura como último paso, así que un error previo no deja rastro.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el TxRunner en memoria.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

var _ inventory.TxRunner = (*TxRunner)(nil)

// Run ejecuta fn con acceso exclusivo frente a otras transacciones.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	return fn(r.s.Movements(), r.s.Products(), r.s.Categories())
}

// fold normaliza para búsqueda: minúsculas y sin tildes ("Café" -> "cafe").
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
