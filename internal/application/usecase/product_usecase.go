package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	appdepletion "github.com/jhoicas/Consumibles-api/internal/application/depletion"
	"github.com/jhoicas/Consumibles-api/internal/application/dto"
	"github.com/jhoicas/Consumibles-api/internal/domain"
	"github.com/jhoicas/Consumibles-api/internal/domain/depletion"
	"github.com/jhoicas/Consumibles-api/internal/domain/entity"
	"github.com/jhoicas/Consumibles-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del catálogo.
// UsageCount y las métricas derivadas se manejan vía el motor de agotamiento;
// la edición de catálogo no puede tocarlos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner appdepletion.TxRunner // borrado en cascada: eventos + producto
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner appdepletion.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un producto. UsageCount inicia en 0 y sin métricas derivadas.
func (uc *ProductUseCase) Create(storeID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Brand == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.ProductTypePolish && in.Type != entity.ProductTypeGel {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStockAlert <= 0 {
		in.MinStockAlert = 5
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		StoreID:       storeID,
		Brand:         in.Brand,
		Name:          in.Name,
		ColorCode:     in.ColorCode,
		ColorName:     in.ColorName,
		Type:          in.Type,
		Price:         in.Price,
		Quantity:      in.Quantity,
		UsageCount:    0,
		MinStockAlert: in.MinStockAlert,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto de la tienda con su estado de alerta.
func (uc *ProductUseCase) GetByID(storeID, id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.StoreID != storeID {
		return nil, nil
	}
	alert := depletion.Classify(product)
	return &dto.ProductDetailResponse{
		Product: toProductResponse(product),
		AlertStatus: dto.AlertStatusResponse{
			IsLowStock:        alert.IsLowStock,
			EstimatedDaysLeft: alert.EstimatedDaysLeft,
			LowStockThreshold: alert.LowStockThreshold,
		},
	}, nil
}

// Update aplica una edición de catálogo: campos descriptivos, reposición de
// Quantity y umbral de alerta. Nunca escribe UsageCount ni campos derivados.
func (uc *ProductUseCase) Update(storeID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.StoreID != storeID {
		return nil, nil
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.ColorCode != nil {
		product.ColorCode = *in.ColorCode
	}
	if in.ColorName != nil {
		product.ColorName = *in.ColorName
	}
	if in.Type != nil {
		if *in.Type != entity.ProductTypePolish && *in.Type != entity.ProductTypeGel {
			return nil, domain.ErrInvalidInput
		}
		product.Type = *in.Type
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Quantity = *in.Quantity
	}
	if in.MinStockAlert != nil {
		if *in.MinStockAlert < 1 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStockAlert = *in.MinStockAlert
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	return &out, nil
}

// List lista productos de la tienda con paginación.
func (uc *ProductUseCase) List(storeID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByStore(storeID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto y su historial de usos en una sola transacción:
// primero los eventos, luego la fila del producto (sin eventos huérfanos).
func (uc *ProductUseCase) Delete(ctx context.Context, storeID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil || product.StoreID != storeID {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(
		eventRepo repository.UsageEventRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := eventRepo.DeleteByProduct(id); err != nil {
			return err
		}
		return productRepo.Delete(id)
	})
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                  p.ID,
		StoreID:             p.StoreID,
		Brand:               p.Brand,
		Name:                p.Name,
		ColorCode:           p.ColorCode,
		ColorName:           p.ColorName,
		Type:                p.Type,
		Price:               p.Price,
		Quantity:            p.Quantity,
		UsageCount:          p.UsageCount,
		MinStockAlert:       p.MinStockAlert,
		LastUsed:            p.LastUsed,
		AverageUsesPerMonth: p.AverageUsesPerMonth,
		EstimatedDaysLeft:   p.EstimatedDaysLeft,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
