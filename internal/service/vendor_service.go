package service

import (
	"context"
	"strings"
	"time"

	"shopledger/internal/dto"
	"shopledger/internal/model"
	"shopledger/internal/repository"
)

type VendorService interface {
	Create(ctx context.Context, req dto.CreateVendorRequest) (*dto.VendorResponse, error)
	List(ctx context.Context) ([]dto.VendorResponse, error)
	Delete(ctx context.Context, id uint) error
}

type vendorService struct {
	repo        repository.VendorRepository
	productRepo repository.ProductRepository
}

func NewVendorService(repo repository.VendorRepository, productRepo repository.ProductRepository) VendorService {
	return &vendorService{repo: repo, productRepo: productRepo}
}

func (s *vendorService) Create(ctx context.Context, req dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &ValidationError{Msg: "Vendor name is required"}
	}

	vendor := &model.Vendor{Name: name, Phone: req.Phone}
	if err := s.repo.Create(ctx, vendor); err != nil {
		// The unique index on name is the authoritative duplicate check.
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, &DuplicateError{Msg: "Vendor name already exists"}
		}
		return nil, err
	}

	resp := vendorToResponse(vendor)
	resp.Message = "Vendor created successfully"
	return resp, nil
}

func (s *vendorService) List(ctx context.Context) ([]dto.VendorResponse, error) {
	vendors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.VendorResponse, 0, len(vendors))
	for i := range vendors {
		result = append(result, *vendorToResponse(&vendors[i]))
	}
	return result, nil
}

// Delete is a guarded delete: it refuses while any product references
// the vendor. No cascade.
func (s *vendorService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return &NotFoundError{Msg: "Vendor not found"}
	}

	hasProducts, err := s.productRepo.ExistsByVendorID(ctx, id)
	if err != nil {
		return err
	}
	if hasProducts {
		return &ConflictError{Msg: "Cannot delete vendor with existing products"}
	}

	return s.repo.Delete(ctx, id)
}

func vendorToResponse(v *model.Vendor) *dto.VendorResponse {
	return &dto.VendorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Phone:     v.Phone,
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
	}
}
