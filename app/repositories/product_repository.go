package repositories

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/inventory/app/models"
	"github.com/shashiranjanraj/inventory/pkg/apperror"
	"github.com/shashiranjanraj/inventory/pkg/metrics"
)

var tracer = otel.Tracer("product-repository")

// ProductRepository is the only component that touches the products table.
// Every method is a single statement; nothing spans more than one call.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Initialize creates the products table when it is missing. An existing table
// is left exactly as it is.
func (r *ProductRepository) Initialize(ctx context.Context) (err error) {
	ctx, done := r.start(ctx, "initialize")
	defer func() { done(err) }()

	db := r.db.WithContext(ctx)
	if db.Dialector.Name() == "sqlite" {
		if err := db.Exec(sqliteSchema).Error; err != nil {
			return storageErr("initialize", err)
		}
		return nil
	}

	migrator := db.Migrator()
	if migrator.HasTable(&models.Product{}) {
		return nil
	}
	if err := migrator.CreateTable(&models.Product{}); err != nil {
		return storageErr("initialize", err)
	}
	return nil
}

// sqliteSchema needs AUTOINCREMENT so ids of deleted rows are never handed
// out again. The sqlite dialector omits it for primary keys.
const sqliteSchema = `CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	barcode TEXT NOT NULL UNIQUE,
	quantity INTEGER NOT NULL,
	supplier TEXT
)`

// Add inserts p unless its barcode is already stored. It reports whether a row
// was inserted; a duplicate barcode is false with a nil error.
func (r *ProductRepository) Add(ctx context.Context, p models.Product) (added bool, err error) {
	ctx, done := r.start(ctx, "add", attribute.String("product.barcode", p.Barcode))
	defer func() { done(err) }()

	row := models.Product{
		Name:     p.Name,
		Barcode:  p.Barcode,
		Quantity: p.Quantity,
		Supplier: p.Supplier,
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barcode"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return false, storageErr("add", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Remove deletes the product with exactly this barcode.
func (r *ProductRepository) Remove(ctx context.Context, barcode string) (removed bool, err error) {
	ctx, done := r.start(ctx, "remove", attribute.String("product.barcode", barcode))
	defer func() { done(err) }()

	res := r.db.WithContext(ctx).
		Where("barcode = ?", barcode).
		Delete(&models.Product{})
	if res.Error != nil {
		return false, storageErr("remove", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// UpdateQuantity overwrites the quantity column only. Any integer is accepted.
func (r *ProductRepository) UpdateQuantity(ctx context.Context, barcode string, quantity int) (updated bool, err error) {
	ctx, done := r.start(ctx, "update_quantity",
		attribute.String("product.barcode", barcode),
		attribute.Int("product.quantity", quantity),
	)
	defer func() { done(err) }()

	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("barcode = ?", barcode).
		Update("quantity", quantity)
	if res.Error != nil {
		return false, storageErr("update_quantity", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// LoadAll returns every product in id order.
func (r *ProductRepository) LoadAll(ctx context.Context) (products []models.Product, err error) {
	ctx, done := r.start(ctx, "load_all")
	defer func() { done(err) }()

	products = []models.Product{}
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, storageErr("load_all", err)
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("product.count", len(products)))
	return products, nil
}

// start opens a span and returns a finisher that records the statement
// duration and any error on it.
func (r *ProductRepository) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	begin := time.Now()
	ctx, span := tracer.Start(ctx, "repository."+op, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		metrics.ObserveDBQuery(op, begin)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("repository: %s: %w", op, apperror.NewStorageUnavailable(op, err))
}
