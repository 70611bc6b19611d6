package handlers

import (
	"database/sql"

	"github.com/dstrelka/marketcart/internal/service"
)

// Handlers holds all dependencies for the HTTP layer. Cart and order
// traffic goes through the services; the identity endpoints talk to the
// users table directly.
type Handlers struct {
	DB     *sql.DB
	Carts  *service.CartService
	Orders *service.OrderService
}
