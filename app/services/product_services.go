package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/huyvng/storedash/app/models"
	"github.com/huyvng/storedash/app/repositories"
	"github.com/huyvng/storedash/pkg/storage"
)

// ProductCatalogStore is what the product service needs from persistence.
type ProductCatalogStore interface {
	List(ctx context.Context, filter repositories.ProductFilter, skip, limit int64) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, patch repositories.ProductPatch) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductService struct {
	products ProductCatalogStore
	disk     storage.Disk
}

func NewProductService(products ProductCatalogStore, disk storage.Disk) *ProductService {
	return &ProductService{products: products, disk: disk}
}

func (s *ProductService) List(ctx context.Context, filter repositories.ProductFilter, skip, limit int64) ([]models.Product, int64, error) {
	return s.products.List(ctx, filter, skip, limit)
}

// ImageUpload is an uploaded image file ready to be stored.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// storeImage writes the upload under a timestamped name and returns its
// public URL.
func (s *ProductService) storeImage(upload *ImageUpload) (string, error) {
	name := filepath.Base(upload.Filename)
	name = strings.ReplaceAll(name, " ", "_")
	path := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name)
	if err := s.disk.PutStream(path, upload.Reader); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return s.disk.URL(path), nil
}

// CreateProductInput is the new-product payload. Image is optional.
type CreateProductInput struct {
	Name         string
	Price        float64
	Description  string
	CountInStock int
	CategoryName string
	BrandName    string
	Image        *ImageUpload
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:         in.Name,
		Price:        in.Price,
		Description:  in.Description,
		CountInStock: in.CountInStock,
		CategoryName: in.CategoryName,
		BrandName:    in.BrandName,
	}

	if in.Image != nil {
		url, err := s.storeImage(in.Image)
		if err != nil {
			return nil, err
		}
		product.Image = url
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput carries a partial update. An absent Image keeps the
// previously stored file.
type UpdateProductInput struct {
	Name         *string
	Price        *float64
	Description  *string
	CountInStock *int
	CategoryName *string
	BrandName    *string
	Image        *ImageUpload
}

func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &ProductNotFoundError{ID: id}
	}

	patch := repositories.ProductPatch{
		Name:         in.Name,
		Price:        in.Price,
		Description:  in.Description,
		CountInStock: in.CountInStock,
		CategoryName: in.CategoryName,
		BrandName:    in.BrandName,
	}
	if in.Image != nil {
		url, err := s.storeImage(in.Image)
		if err != nil {
			return nil, err
		}
		patch.Image = &url
	}

	if err := s.products.Update(ctx, oid, patch); err != nil {
		return nil, mapProductNotFound(err, id)
	}
	updated, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return nil, mapProductNotFound(err, id)
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &ProductNotFoundError{ID: id}
	}
	if err := s.products.Delete(ctx, oid); err != nil {
		return mapProductNotFound(err, id)
	}
	return nil
}
