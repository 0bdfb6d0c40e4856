package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/piresc/ticketing/internal/pkg/models"
	nrpkg "github.com/piresc/ticketing/internal/pkg/newrelic"
	"github.com/piresc/ticketing/services/payment"
)

// GetProductForUpdate locks and returns a product row
func (t *paymentTx) GetProductForUpdate(ctx context.Context, id string) (*models.Product, error) {
	seg := nrpkg.StartDatastoreSegment(ctx, "products", "SELECT FOR UPDATE")
	defer seg.End()

	query := `SELECT id, name, stock, updated_at FROM products WHERE id = $1 FOR UPDATE`

	var product models.Product
	if err := t.tx.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock product %s: %w", id, err)
	}
	return &product, nil
}

// DecrementProductStock takes quantity units out of stock. The guard in the
// WHERE clause keeps stock from going negative even without a prior lock.
func (t *paymentTx) DecrementProductStock(ctx context.Context, productID string, quantity int) error {
	seg := nrpkg.StartDatastoreSegment(ctx, "products", "UPDATE")
	defer seg.End()

	query := `
		UPDATE products SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2`

	ok, err := execOne(ctx, t.tx, query, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement stock for product %s: %w", productID, err)
	}
	if !ok {
		return fmt.Errorf("product %s: %w", productID, payment.ErrInsufficientStock)
	}
	return nil
}
