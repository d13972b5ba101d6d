package usecase

import "context"

// CatalogoCache caché opcional para los catálogos (categorías y estados), que
// cambian poco y se leen mucho. Get devuelve false si la clave no está.
// Las implementaciones deben ser seguras de ignorar: los use cases funcionan
// igual con cache nil.
type CatalogoCache interface {
	Get(ctx context.Context, clave string, destino any) (bool, error)
	Set(ctx context.Context, clave string, valor any) error
	Invalidate(ctx context.Context, clave string) error
}
