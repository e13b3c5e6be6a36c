package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/inventory/app/models"
	"github.com/shashiranjanraj/inventory/app/services"
	"github.com/shashiranjanraj/inventory/pkg/response"
)

// ProductController exposes the inventory service over JSON. Every
// successful mutation answers with the freshly reloaded product list.
type ProductController struct {
	service *services.InventoryService
}

func NewProductController(service *services.InventoryService) *ProductController {
	return &ProductController{service: service}
}

// quantityField accepts both 10 and "10"; the service does the parsing so
// the HTTP and CLI paths validate identically.
type quantityField string

func (q *quantityField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*q = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*q = quantityField(s)
		return nil
	}
	*q = quantityField(b)
	return nil
}

type storeRequest struct {
	Name     string        `json:"name"`
	Barcode  string        `json:"barcode"`
	Quantity quantityField `json:"quantity"`
	Supplier string        `json:"supplier"`
}

type quantityRequest struct {
	Quantity quantityField `json:"quantity"`
}

type listPayload struct {
	Products []models.Product `json:"products"`
}

type storePayload struct {
	Name           string           `json:"name"`
	NameFromLookup bool             `json:"name_from_lookup"`
	Products       []models.Product `json:"products"`
}

type lookupPayload struct {
	Barcode string `json:"barcode"`
	Status  string `json:"status"`
	Name    string `json:"name,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Index lists every product in store order.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.List(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, listPayload{Products: nonNil(products)})
}

// Store adds a product. A known barcode answers 409.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var body storeRequest
	if err := decode(r, &body); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	out, err := c.service.Add(r.Context(), services.AddForm{
		Name:     body.Name,
		Barcode:  body.Barcode,
		Quantity: string(body.Quantity),
		Supplier: body.Supplier,
	})
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	if !out.OK {
		response.Conflict(w, out.Message)
		return
	}

	products, err := c.service.List(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Created(w, out.Message, storePayload{
		Name:           out.Name,
		NameFromLookup: out.NameFromLookup,
		Products:       nonNil(products),
	})
}

// Destroy removes the product with the {barcode} path parameter.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.Remove(r.Context(), chi.URLParam(r, "barcode"))
	c.answer(w, r, out, err)
}

// UpdateQuantity overwrites the quantity of {barcode}.
func (c *ProductController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var body quantityRequest
	if err := decode(r, &body); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	out, err := c.service.UpdateQuantity(r.Context(), services.UpdateForm{
		Barcode:  chi.URLParam(r, "barcode"),
		Quantity: string(body.Quantity),
	})
	c.answer(w, r, out, err)
}

// Export writes the CSV export and reports where it went.
func (c *ProductController) Export(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.Export(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Message(w, out.Message, map[string]string{"location": out.Location})
}

// Lookup resolves {barcode} against the barcode database without storing
// anything.
func (c *ProductController) Lookup(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")
	res := c.service.LookupName(r.Context(), barcode)
	response.Success(w, lookupPayload{
		Barcode: barcode,
		Status:  string(res.Status),
		Name:    res.Name,
		Reason:  res.Reason,
	})
}

// answer maps a remove/update outcome: not found is 404, success reloads the
// list.
func (c *ProductController) answer(w http.ResponseWriter, r *http.Request, out services.Outcome, err error) {
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	if !out.OK {
		response.NotFound(w, out.Message)
		return
	}

	products, err := c.service.List(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Message(w, out.Message, listPayload{Products: nonNil(products)})
}

const maxBodyBytes = 1 << 20

func decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	return nil
}

func nonNil(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	return products
}
