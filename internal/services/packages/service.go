package packages

import (
	"context"
	"strings"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/BearBump/ParcelDesk/internal/validation"
	validatorv10 "github.com/go-playground/validator/v10"
)

type Repository interface {
	ListPackages(ctx context.Context) ([]*models.Package, error)
	GetPackage(ctx context.Context, id uint64) (*models.Package, error)
	CreatePackage(ctx context.Context, in models.PackageInput) (*models.Package, error)
	UpdatePackage(ctx context.Context, id uint64, in models.PackageInput) (*models.Package, error)
	DeletePackage(ctx context.Context, id uint64) error
}

type Service struct {
	repo     Repository
	validate *validatorv10.Validate
}

func New(repo Repository) *Service {
	return &Service{repo: repo, validate: validation.New()}
}

func (s *Service) List(ctx context.Context) ([]*models.Package, error) {
	return s.repo.ListPackages(ctx)
}

func (s *Service) Get(ctx context.Context, id uint64) (*models.Package, error) {
	if id == 0 {
		return nil, apperr.NotFound("package not found")
	}
	return s.repo.GetPackage(ctx, id)
}

func (s *Service) Create(ctx context.Context, in models.PackageInput) (*models.Package, error) {
	in.PackageName = strings.TrimSpace(in.PackageName)
	if err := validation.Check(s.validate, in); err != nil {
		return nil, err
	}
	return s.repo.CreatePackage(ctx, in)
}

func (s *Service) Update(ctx context.Context, id uint64, in models.PackageInput) (*models.Package, error) {
	if id == 0 {
		return nil, apperr.NotFound("package not found")
	}
	in.PackageName = strings.TrimSpace(in.PackageName)
	if err := validation.Check(s.validate, in); err != nil {
		return nil, err
	}
	return s.repo.UpdatePackage(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id uint64) error {
	if id == 0 {
		return apperr.NotFound("package not found")
	}
	return s.repo.DeletePackage(ctx, id)
}
