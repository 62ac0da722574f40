// Package derived mantiene las estructuras derivadas del maestro y de la tabla de hechos
// (fechas distintas, descendientes, ancestros) en una caché con generación.
package derived

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/changerank-api/internal/domain/catalog"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/pkg/logger"
)

const (
	generationKey = "gen"
	dateLayout    = "2006-01-02"

	entryDates       = "dates"
	entryCategories  = "categories"
	entryDescendants = "desc"
	entryAncestors   = "ancestors"
)

// Service resuelve las entradas derivadas con cache-aside. Un fallo del backend nunca
// se propaga: se registra y se recalcula desde la fuente.
type Service struct {
	store      Store
	dates      DateSource
	categories CategorySource
	log        *logger.Logger
	obs        Observer
	datesTTL   time.Duration
	treeTTL    time.Duration
}

// Option configura el Service.
type Option func(*Service)

// WithTTL fija la vigencia de las fechas y de las estructuras del árbol.
func WithTTL(dates, tree time.Duration) Option {
	return func(s *Service) {
		s.datesTTL = dates
		s.treeTTL = tree
	}
}

// WithLogger fija el logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithObserver fija el receptor de métricas de acierto.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.obs = o }
}

// NewService construye el servicio con TTL de 1 día (fechas) y 1 semana (árbol).
func NewService(store Store, dates DateSource, categories CategorySource, opts ...Option) *Service {
	s := &Service{
		store:      store,
		dates:      dates,
		categories: categories,
		log:        logger.Nop(),
		obs:        nopObserver{},
		datesTTL:   24 * time.Hour,
		treeTTL:    7 * 24 * time.Hour,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Generation devuelve la generación vigente; 0 si nunca se invalidó o si el backend falla.
func (s *Service) Generation(ctx context.Context) int64 {
	raw, ok, err := s.store.Get(ctx, generationKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("cache: no se pudo leer la generación")
		return 0
	}
	if !ok {
		return 0
	}
	g, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0
	}
	return g
}

// Invalidate avanza la generación: todas las entradas anteriores quedan inalcanzables.
func (s *Service) Invalidate(ctx context.Context) error {
	g, err := s.store.Incr(ctx, generationKey)
	if err != nil {
		return fmt.Errorf("derived.Invalidate: %w", err)
	}
	s.log.Info().Int64("generation", g).Msg("cache invalidada")
	return nil
}

// Clear borra la entrada de fechas, vacía el backend y deja la generación en la siguiente.
func (s *Service) Clear(ctx context.Context) error {
	g := s.Generation(ctx)
	if err := s.store.Delete(ctx, s.key(g, entryDates)); err != nil {
		return fmt.Errorf("derived.Clear delete: %w", err)
	}
	if err := s.store.Flush(ctx); err != nil {
		return fmt.Errorf("derived.Clear flush: %w", err)
	}
	next := strconv.FormatInt(g+1, 10)
	if err := s.store.Set(ctx, generationKey, []byte(next), 0); err != nil {
		return fmt.Errorf("derived.Clear generation: %w", err)
	}
	s.log.Info().Str("generation", next).Msg("cache vaciada")
	return nil
}

func (s *Service) key(gen int64, parts ...any) string {
	k := "g" + strconv.FormatInt(gen, 10)
	for _, p := range parts {
		k += ":" + fmt.Sprint(p)
	}
	return k
}

// Dates devuelve las fechas distintas con datos, ascendentes.
func (s *Service) Dates(ctx context.Context) ([]time.Time, error) {
	raw, err := cached(ctx, s, entryDates, s.key(s.Generation(ctx), entryDates), s.datesTTL, func(ctx context.Context) ([]string, error) {
		dates, err := s.dates.DistinctDates(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(dates))
		for i, d := range dates {
			out[i] = d.Format(dateLayout)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		d, err := time.Parse(dateLayout, r)
		if err != nil {
			return nil, fmt.Errorf("derived.Dates: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Tree devuelve el maestro indexado.
func (s *Service) Tree(ctx context.Context) (*catalog.Tree, error) {
	cats, err := cached(ctx, s, entryCategories, s.key(s.Generation(ctx), entryCategories), s.treeTTL, s.categories.ListAll)
	if err != nil {
		return nil, err
	}
	return catalog.NewTree(cats), nil
}

// Descendants devuelve los ids de (level, code) y sus descendientes; vacío si no existe.
func (s *Service) Descendants(ctx context.Context, level, code int) ([]int64, error) {
	key := s.key(s.Generation(ctx), entryDescendants, level, code)
	return cached(ctx, s, entryDescendants, key, s.treeTTL, func(ctx context.Context) ([]int64, error) {
		tree, err := s.Tree(ctx)
		if err != nil {
			return nil, err
		}
		return tree.DescendantsOf(level, code), nil
	})
}

// DescendantsOfDepartment es Descendants para un código de nivel 10.
func (s *Service) DescendantsOfDepartment(ctx context.Context, code int) ([]int64, error) {
	return s.Descendants(ctx, entity.LevelDepartment, code)
}

// AncestorTable devuelve, por subclase, su ancestro en cada nivel.
func (s *Service) AncestorTable(ctx context.Context) (map[int64]catalog.Ancestors, error) {
	key := s.key(s.Generation(ctx), entryAncestors)
	return cached(ctx, s, entryAncestors, key, s.treeTTL, func(ctx context.Context) (map[int64]catalog.Ancestors, error) {
		tree, err := s.Tree(ctx)
		if err != nil {
			return nil, err
		}
		return tree.AncestorTable(), nil
	})
}

func cached[T any](ctx context.Context, s *Service, entry, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache: lectura fallida, se recalcula")
	}
	if err == nil && ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			s.obs.CacheLookup(entry, true)
			return v, nil
		}
		s.log.Warn().Str("key", key).Msg("cache: entrada corrupta, se recalcula")
	}
	s.obs.CacheLookup(entry, false)

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("derived.%s: %w", entry, err)
	}
	if payload, err := json.Marshal(v); err == nil {
		if err := s.store.Set(ctx, key, payload, ttl); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache: escritura fallida")
		}
	}
	return v, nil
}
