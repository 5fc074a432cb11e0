package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Consumibles-api/internal/application/dto"
	"github.com/jhoicas/Consumibles-api/internal/domain"
	"github.com/jhoicas/Consumibles-api/internal/domain/entity"
	"github.com/jhoicas/Consumibles-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// RegistrationTxRunner ejecuta el alta de tienda + usuario administrador en una
// sola transacción.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		storeRepo repository.StoreRepository,
		userRepo repository.UserRepository,
	) error) error
}

// StoreUseCase alta y mantenimiento de tiendas (tenants).
type StoreUseCase struct {
	storeRepo repository.StoreRepository
	txRunner  RegistrationTxRunner
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(storeRepo repository.StoreRepository, txRunner RegistrationTxRunner) *StoreUseCase {
	return &StoreUseCase{storeRepo: storeRepo, txRunner: txRunner}
}

// Register crea la tienda y su usuario administrador de forma transaccional.
// Devuelve ErrDuplicate si el código de tienda ya está en uso y
// ErrEmailAlreadyExists si el email del admin ya existe.
func (uc *StoreUseCase) Register(ctx context.Context, in dto.RegisterStoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" || in.Code == "" || in.AdminEmail == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.storeRepo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	store := &entity.Store{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Code:       in.Code,
		AdminEmail: in.AdminEmail,
		Phone:      in.Phone,
		Address:    in.Address,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		StoreID:      store.ID,
		Email:        in.AdminEmail,
		PasswordHash: string(hash),
		Name:         in.Name + " admin",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunRegistration(ctx, func(
		storeRepo repository.StoreRepository,
		userRepo repository.UserRepository,
	) error {
		if err := storeRepo.Create(store); err != nil {
			return err
		}
		return userRepo.Create(admin)
	})
	if err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// GetByID obtiene una tienda por ID.
func (uc *StoreUseCase) GetByID(id string) (*dto.StoreResponse, error) {
	store, err := uc.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, nil
	}
	return toStoreResponse(store), nil
}

// Update actualiza los datos de contacto de la tienda.
func (uc *StoreUseCase) Update(id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, nil
	}
	if in.Name != nil {
		store.Name = *in.Name
	}
	if in.Phone != nil {
		store.Phone = *in.Phone
	}
	if in.Address != nil {
		store.Address = *in.Address
	}
	store.UpdatedAt = time.Now()
	if err := uc.storeRepo.Update(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	if s == nil {
		return nil
	}
	return &dto.StoreResponse{
		ID:         s.ID,
		Name:       s.Name,
		Code:       s.Code,
		AdminEmail: s.AdminEmail,
		Phone:      s.Phone,
		Address:    s.Address,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
