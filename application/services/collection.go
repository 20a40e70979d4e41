package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"portfolio/application/ports"
	"portfolio/domain/entities"
	"portfolio/domain/events"
	pkgerrors "portfolio/pkg/errors"
	"portfolio/pkg/observability"
	"portfolio/pkg/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultCacheTTL is used when no TTL is configured
const DefaultCacheTTL = 5 * time.Minute

// Collection names, also used as the base cache tags
const (
	ProjectsCollection     = "projects"
	TestimonialsCollection = "testimonials"
)

// FeaturedTag returns the cache tag of the featured subset of a collection
func FeaturedTag(collection string) string {
	return "featured-" + collection
}

// collection implements list/get/create/update/delete once for every record
// kind. Reads go through the cache; mutations always load the current
// document straight from the store, rewrite it whole and then invalidate.
type collection[T entities.Record] struct {
	kind      string
	store     ports.DocumentStore[T]
	cache     ports.Cache
	ttl       time.Duration
	publisher ports.EventPublisher
	recorder  ports.CommandRecorder
	normalize func(T) T
	now       ports.Clock
	logger    *zap.Logger
}

func newCollection[T entities.Record](
	kind string,
	store ports.DocumentStore[T],
	cache ports.Cache,
	ttl time.Duration,
	publisher ports.EventPublisher,
	recorder ports.CommandRecorder,
	normalize func(T) T,
	logger *zap.Logger,
) *collection[T] {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &collection[T]{
		kind:      kind,
		store:     store,
		cache:     cache,
		ttl:       ttl,
		publisher: publisher,
		recorder:  recorder,
		normalize: normalize,
		now:       utils.NowUTC,
		logger:    logger.With(zap.String("collection", store.Name())),
	}
}

func (c *collection[T]) name() string {
	return c.store.Name()
}

// notFound builds "Project not found" style errors
func (c *collection[T]) notFound() error {
	return pkgerrors.NewNotFoundError(strings.ToUpper(c.kind[:1]) + c.kind[1:])
}

func (c *collection[T]) list(ctx context.Context, featuredOnly bool) ([]T, error) {
	tag := c.name()
	if featuredOnly {
		tag = FeaturedTag(c.name())
	}

	v, err := c.cache.GetCached(ctx, tag, c.ttl, func(ctx context.Context) (interface{}, error) {
		items, err := c.load(ctx)
		if err != nil {
			return nil, err
		}
		sorted := entities.SortNewestFirst(items)
		if featuredOnly {
			sorted = entities.Featured(sorted)
		}
		return sorted, nil
	})
	if err != nil {
		return nil, err
	}

	items, ok := v.([]T)
	if !ok {
		return nil, pkgerrors.NewInternalError(fmt.Sprintf("unexpected cache value for tag %s", tag))
	}
	return slices.Clone(items), nil
}

func (c *collection[T]) get(ctx context.Context, id int) (T, error) {
	var zero T
	items, err := c.list(ctx, false)
	if err != nil {
		return zero, err
	}
	i := entities.IndexOf(items, id)
	if i < 0 {
		return zero, c.notFound()
	}
	return items[i], nil
}

func (c *collection[T]) create(ctx context.Context, build func(id int, now time.Time) T) (result T, err error) {
	ctx, span := c.startSpan(ctx, "create")
	defer c.finish(ctx, span, "create", time.Now(), &err)

	items, err := c.load(ctx)
	if err != nil {
		return result, err
	}

	result = c.normalize(build(entities.NextID(items), c.now()))
	span.SetAttributes(attribute.Int("record.id", result.RecordID()))
	items = append(items, result)

	if err = c.replace(ctx, items); err != nil {
		return result, err
	}

	c.afterMutation(ctx, result.RecordID(), events.ActionCreated)
	return result, nil
}

func (c *collection[T]) update(ctx context.Context, id int, apply func(current T, now time.Time) (T, error)) (result T, err error) {
	ctx, span := c.startSpan(ctx, "update", attribute.Int("record.id", id))
	defer c.finish(ctx, span, "update", time.Now(), &err)

	items, err := c.load(ctx)
	if err != nil {
		return result, err
	}

	i := entities.IndexOf(items, id)
	if i < 0 {
		return result, c.notFound()
	}

	result, err = apply(items[i], c.now())
	if err != nil {
		return result, err
	}
	result = c.normalize(result)
	items[i] = result

	if err = c.replace(ctx, items); err != nil {
		return result, err
	}

	c.afterMutation(ctx, id, events.ActionUpdated)
	return result, nil
}

func (c *collection[T]) delete(ctx context.Context, id int) (err error) {
	ctx, span := c.startSpan(ctx, "delete", attribute.Int("record.id", id))
	defer c.finish(ctx, span, "delete", time.Now(), &err)

	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	i := entities.IndexOf(items, id)
	if i < 0 {
		return c.notFound()
	}

	if err = c.replace(ctx, entities.Without(items, i)); err != nil {
		return err
	}

	c.afterMutation(ctx, id, events.ActionDeleted)
	return nil
}

func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	items, err := c.store.Load(ctx)
	if err != nil {
		return nil, storeError("load", err)
	}
	for i := range items {
		items[i] = c.normalize(items[i])
	}
	return items, nil
}

func (c *collection[T]) replace(ctx context.Context, items []T) error {
	if err := c.store.Replace(ctx, items); err != nil {
		return storeError("replace", err)
	}
	return nil
}

// afterMutation invalidates the read tags and announces the change.
// Publishing is best effort; the write has already happened.
func (c *collection[T]) afterMutation(ctx context.Context, id int, action events.Action) {
	c.cache.Invalidate(ctx, c.name(), FeaturedTag(c.name()))

	c.logger.Info("Record "+string(action), zap.Int("id", id))

	event := events.NewRecordChanged(c.kind, c.name(), id, action, c.now())
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.Warn("Failed to publish record event",
			zap.String("event_type", event.GetEventType()),
			zap.Int("id", id),
			zap.Error(err),
		)
	}
}

func (c *collection[T]) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("collection", c.name()))
	return observability.StartSpan(ctx, c.kind+"."+op, attrs...)
}

// finish closes a mutation: the span gets the outcome and the recorder,
// when set, gets the command timing.
func (c *collection[T]) finish(ctx context.Context, span trace.Span, op string, start time.Time, err *error) {
	observability.EndSpan(span, *err)
	if c.recorder != nil {
		c.recorder.RecordCommand(ctx, c.kind+"."+op, time.Since(start), *err)
	}
}

func storeError(op string, err error) error {
	if pkgerrors.GetAppError(err) != nil {
		return err
	}
	return pkgerrors.NewStoreError(op, err)
}
