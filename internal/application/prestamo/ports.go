package prestamo

import (
	"context"

	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La transacción corre en repeatable read para
// que el chequeo "un préstamo activo por artículo" y el insert sean atómicos
// frente a solicitudes concurrentes.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		prestamoRepo repository.PrestamoRepository,
		articuloRepo repository.ArticuloRepository,
	) error) error
}
