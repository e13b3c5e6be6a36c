package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shashiranjanraj/inventory/app/models"
	"github.com/shashiranjanraj/inventory/pkg/apperror"
	"github.com/shashiranjanraj/inventory/pkg/csvexport"
	"github.com/shashiranjanraj/inventory/pkg/lock"
	"github.com/shashiranjanraj/inventory/pkg/logger"
	"github.com/shashiranjanraj/inventory/pkg/lookup"
	"github.com/shashiranjanraj/inventory/pkg/metrics"
	"github.com/shashiranjanraj/inventory/pkg/storage"
)

// User-facing messages, one per action outcome.
const (
	MsgAdded          = "Product added."
	MsgDuplicate      = "Product already exists, please update quantity."
	MsgRemoved        = "Product removed."
	MsgUpdated        = "Product updated."
	MsgNotFound       = "Product not found."
	MsgRequiredFields = "Fill in all required fields."
	MsgBadQuantity    = "Please enter a valid quantity."
)

// storeLockKey guards every store operation; the store gives no isolation
// across statements.
const storeLockKey = "products"

// ProductStore is the persistence the service needs.
type ProductStore interface {
	Add(ctx context.Context, p models.Product) (bool, error)
	Remove(ctx context.Context, barcode string) (bool, error)
	UpdateQuantity(ctx context.Context, barcode string, quantity int) (bool, error)
	LoadAll(ctx context.Context) ([]models.Product, error)
}

// NameLookup resolves barcodes to display names without blocking the caller.
type NameLookup interface {
	LookupAsync(ctx context.Context, barcode string) <-chan lookup.Result
}

// AddForm is the raw add-product input as typed by the user.
type AddForm struct {
	Name     string `json:"name"`
	Barcode  string `json:"barcode"`
	Quantity string `json:"quantity"`
	Supplier string `json:"supplier"`
}

// UpdateForm is the raw update-quantity input.
type UpdateForm struct {
	Barcode  string `json:"barcode"`
	Quantity string `json:"quantity"`
}

// Outcome is the result of one user action. OK is false for duplicates and
// missing products, which are not errors.
type Outcome struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	// Name is the product name that was stored on add.
	Name string `json:"name,omitempty"`
	// NameFromLookup is true when Name came from the barcode database.
	NameFromLookup bool `json:"name_from_lookup,omitempty"`
	// Location is where an export was written.
	Location string `json:"location,omitempty"`
}

// Options configures InventoryService.
type Options struct {
	ExportPath string
}

// InventoryService turns user actions into store calls.
type InventoryService struct {
	store    ProductStore
	names    NameLookup
	disk     storage.Disk
	locker   lock.Locker
	validate *validator.Validate
	opts     Options
}

// NewInventoryService wires the service. names may be nil to disable the
// barcode lookup, locker nil for an in-process lock, disk nil for the
// working directory.
func NewInventoryService(store ProductStore, names NameLookup, disk storage.Disk, locker lock.Locker, opts Options) *InventoryService {
	if locker == nil {
		locker = lock.NewMemory()
	}
	if disk == nil {
		disk = storage.NewLocalDisk(".")
	}
	if opts.ExportPath == "" {
		opts.ExportPath = "inventory_export.csv"
	}
	return &InventoryService{
		store:    store,
		names:    names,
		disk:     disk,
		locker:   locker,
		validate: validator.New(),
		opts:     opts,
	}
}

type addInput struct {
	Name     string `validate:"required"`
	Barcode  string `validate:"required"`
	Quantity string `validate:"required"`
}

// Add validates the form, prefers the looked-up name over the typed one, and
// inserts the product.
func (s *InventoryService) Add(ctx context.Context, form AddForm) (Outcome, error) {
	barcode := strings.TrimSpace(form.Barcode)
	typedName := strings.TrimSpace(form.Name)
	supplier := strings.TrimSpace(form.Supplier)
	qtyText := strings.TrimSpace(form.Quantity)

	quantity, qtyErr := strconv.Atoi(qtyText)

	name := typedName
	fromLookup := false
	if barcode != "" && qtyErr == nil && s.names != nil {
		res := s.awaitName(ctx, barcode)
		if res.Found() {
			name, fromLookup = res.Name, true
		}
	}

	in := addInput{Name: name, Barcode: barcode, Quantity: qtyText}
	if verr := s.checkAdd(in, qtyErr); verr != nil {
		return Outcome{}, verr
	}

	release, err := s.locker.Acquire(ctx, storeLockKey)
	if err != nil {
		return Outcome{}, fmt.Errorf("services: add: %w", err)
	}
	defer release()

	added, err := s.store.Add(ctx, models.NewProduct(name, barcode, quantity, supplier))
	if err != nil {
		return Outcome{}, err
	}

	log := logger.WithCtx(ctx)
	if !added {
		log.Info("product not added, barcode exists", "barcode", barcode)
		return Outcome{OK: false, Message: MsgDuplicate}, nil
	}
	log.Info("product added", "barcode", barcode, "name", name, "quantity", quantity, "from_lookup", fromLookup)
	return Outcome{OK: true, Message: MsgAdded, Name: name, NameFromLookup: fromLookup}, nil
}

func (s *InventoryService) checkAdd(in addInput, qtyErr error) error {
	verr := apperror.NewValidation(MsgRequiredFields)
	failed := false

	if err := s.validate.Struct(in); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				verr.WithField(strings.ToLower(fe.Field()), fe.Tag())
			}
			failed = true
		} else {
			return fmt.Errorf("services: validate: %w", err)
		}
	}
	if in.Quantity != "" && qtyErr != nil {
		verr.WithField("quantity", "integer")
		failed = true
	}

	if failed {
		return verr
	}
	return nil
}

// awaitName waits for the lookup or for ctx, whichever comes first.
func (s *InventoryService) awaitName(ctx context.Context, barcode string) lookup.Result {
	select {
	case res, ok := <-s.names.LookupAsync(ctx, barcode):
		if !ok {
			return lookup.Result{Status: lookup.StatusFailed, Reason: "lookup returned no result"}
		}
		return res
	case <-ctx.Done():
		return lookup.Result{Status: lookup.StatusFailed, Reason: ctx.Err().Error()}
	}
}

// Remove deletes the product with barcode.
func (s *InventoryService) Remove(ctx context.Context, barcode string) (Outcome, error) {
	barcode = strings.TrimSpace(barcode)

	release, err := s.locker.Acquire(ctx, storeLockKey)
	if err != nil {
		return Outcome{}, fmt.Errorf("services: remove: %w", err)
	}
	defer release()

	removed, err := s.store.Remove(ctx, barcode)
	if err != nil {
		return Outcome{}, err
	}
	if !removed {
		return Outcome{OK: false, Message: MsgNotFound}, nil
	}
	logger.WithCtx(ctx).Info("product removed", "barcode", barcode)
	return Outcome{OK: true, Message: MsgRemoved}, nil
}

// UpdateQuantity parses the quantity and overwrites it. Negative and zero
// quantities are accepted.
func (s *InventoryService) UpdateQuantity(ctx context.Context, form UpdateForm) (Outcome, error) {
	barcode := strings.TrimSpace(form.Barcode)
	quantity, err := strconv.Atoi(strings.TrimSpace(form.Quantity))
	if err != nil {
		return Outcome{}, apperror.NewValidation(MsgBadQuantity).WithField("quantity", "integer")
	}

	release, err := s.locker.Acquire(ctx, storeLockKey)
	if err != nil {
		return Outcome{}, fmt.Errorf("services: update: %w", err)
	}
	defer release()

	updated, err := s.store.UpdateQuantity(ctx, barcode, quantity)
	if err != nil {
		return Outcome{}, err
	}
	if !updated {
		return Outcome{OK: false, Message: MsgNotFound}, nil
	}
	logger.WithCtx(ctx).Info("product quantity updated", "barcode", barcode, "quantity", quantity)
	return Outcome{OK: true, Message: MsgUpdated}, nil
}

// List returns every product in store order, read fresh from the store.
func (s *InventoryService) List(ctx context.Context) ([]models.Product, error) {
	release, err := s.locker.Acquire(ctx, storeLockKey)
	if err != nil {
		return nil, fmt.Errorf("services: list: %w", err)
	}
	defer release()

	return s.store.LoadAll(ctx)
}

// Export writes the whole store as CSV to the export path, replacing any
// previous export.
func (s *InventoryService) Export(ctx context.Context) (out Outcome, err error) {
	defer func() { metrics.RecordExport(s.disk.Name(), err) }()

	products, err := s.List(ctx)
	if err != nil {
		return Outcome{}, err
	}

	data, err := csvexport.Encode(products)
	if err != nil {
		return Outcome{}, fmt.Errorf("services: export: encode: %w", err)
	}
	if err := s.disk.Put(ctx, s.opts.ExportPath, data); err != nil {
		return Outcome{}, fmt.Errorf("services: export: %w", apperror.NewStorageUnavailable("export", err))
	}

	location := s.disk.Location(s.opts.ExportPath)
	logger.WithCtx(ctx).Info("inventory exported", "rows", len(products), "disk", s.disk.Name(), "location", location)
	return Outcome{
		OK:       true,
		Message:  "Data exported to " + s.opts.ExportPath,
		Location: location,
	}, nil
}

// LookupName exposes the barcode lookup on its own.
func (s *InventoryService) LookupName(ctx context.Context, barcode string) lookup.Result {
	if s.names == nil {
		return lookup.Result{Status: lookup.StatusNotFound, Reason: "lookup disabled"}
	}
	return s.awaitName(ctx, strings.TrimSpace(barcode))
}
