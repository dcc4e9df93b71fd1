package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/huyvng/storedash/app/repositories"
	"github.com/huyvng/storedash/app/services"
	"github.com/huyvng/storedash/pkg/paginate"
	"github.com/huyvng/storedash/pkg/response"
)

// maxUploadBytes caps multipart product payloads (image included).
const maxUploadBytes = 10 << 20 // 10 MB

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

func parseFloatParam(q string) *float64 {
	if q == "" {
		return nil
	}
	f, err := strconv.ParseFloat(q, 64)
	if err != nil {
		return nil
	}
	return &f
}

func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	page := paginate.FromRequest(r)
	q := r.URL.Query()

	filter := repositories.ProductFilter{
		Name:         q.Get("name"),
		CategoryName: q.Get("categoryName"),
		BrandName:    q.Get("brandName"),
		MinPrice:     parseFloatParam(q.Get("minPrice")),
		MaxPrice:     parseFloatParam(q.Get("maxPrice")),
	}

	products, total, err := c.service.List(r.Context(), filter, page.Skip(), int64(page.Limit))
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Page(w, "products", products, total, page.Page, page.Limit, page.Pages(total))
}

// imageUpload pulls the optional image file out of the multipart form.
func imageUpload(r *http.Request) (*services.ImageUpload, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &services.ImageUpload{Filename: header.Filename, Reader: file}, nil
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	name := r.FormValue("name")
	priceRaw := r.FormValue("price")
	if name == "" || priceRaw == "" {
		response.Error(w, http.StatusBadRequest, "Name and price are required")
		return
	}
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || price < 0 {
		response.Error(w, http.StatusBadRequest, "Price must be a non-negative number")
		return
	}
	countInStock := 0
	if raw := r.FormValue("countInStock"); raw != "" {
		countInStock, err = strconv.Atoi(raw)
		if err != nil || countInStock < 0 {
			response.Error(w, http.StatusBadRequest, "countInStock must be a non-negative integer")
			return
		}
	}

	image, err := imageUpload(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image upload")
		return
	}

	product, err := c.service.Create(r.Context(), services.CreateProductInput{
		Name:         name,
		Price:        price,
		Description:  r.FormValue("description"),
		CountInStock: countInStock,
		CategoryName: r.FormValue("categoryName"),
		BrandName:    r.FormValue("brandName"),
		Image:        image,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, product)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	var in services.UpdateProductInput
	form := r.MultipartForm.Value
	if v, ok := formString(form, "name"); ok {
		in.Name = &v
	}
	if v, ok := formString(form, "description"); ok {
		in.Description = &v
	}
	if v, ok := formString(form, "categoryName"); ok {
		in.CategoryName = &v
	}
	if v, ok := formString(form, "brandName"); ok {
		in.BrandName = &v
	}
	if v, ok := formString(form, "price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			response.Error(w, http.StatusBadRequest, "Price must be a non-negative number")
			return
		}
		in.Price = &price
	}
	if v, ok := formString(form, "countInStock"); ok {
		count, err := strconv.Atoi(v)
		if err != nil || count < 0 {
			response.Error(w, http.StatusBadRequest, "countInStock must be a non-negative integer")
			return
		}
		in.CountInStock = &count
	}

	image, err := imageUpload(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image upload")
		return
	}
	in.Image = image

	product, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}

// formString distinguishes absent fields from empty ones so partial
// updates only touch what the client sent.
func formString(form map[string][]string, key string) (string, bool) {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
