package derived

import (
	"context"
	"time"

	"github.com/jhoicas/changerank-api/internal/domain/entity"
)

// Store es el backend clave/valor de la caché (memoria o Redis).
type Store interface {
	// Get devuelve ok=false si la clave no existe o expiró.
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	// Set guarda val; ttl 0 significa sin expiración.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Flush(ctx context.Context) error
}

// DateSource entrega las fechas distintas con datos.
type DateSource interface {
	DistinctDates(ctx context.Context) ([]time.Time, error)
}

// CategorySource entrega el maestro completo.
type CategorySource interface {
	ListAll(ctx context.Context) ([]entity.Category, error)
}

// Observer recibe aciertos y fallos de caché por entrada.
type Observer interface {
	CacheLookup(entry string, hit bool)
}

type nopObserver struct{}

func (nopObserver) CacheLookup(string, bool) {}
