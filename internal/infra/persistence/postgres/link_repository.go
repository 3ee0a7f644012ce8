package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"shortlink/internal/domain/entity"
	domainerrors "shortlink/internal/domain/errors"
	"shortlink/internal/domain/repository"
	"shortlink/internal/infra/persistence/model"
)

// linkRepository implements the domain LinkRepository interface using GORM.
type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository is the constructor for linkRepository.
func NewLinkRepository(db *gorm.DB) repository.LinkRepository {
	return &linkRepository{db: db}
}

// Insert stores a new link. Unique violations are reported per constraint so the caller can
// tell a reused URL from a colliding code.
func (repo *linkRepository) Insert(ctx context.Context, link *entity.Link) error {
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}

	if err := repo.db.WithContext(ctx).Create(fromLinkDomain(link)).Error; err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			switch constraint {
			case linksCodeConstraint:
				return repository.ErrLinkCodeConflict
			case linksURLConstraint:
				return repository.ErrLinkURLConflict
			default:
				// Constraint unknown (translated error): FindByURL decides.
				return repository.ErrLinkURLConflict
			}
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAccountNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to insert link")
	}

	return nil
}

// FindByURL retrieves the link stored for url regardless of owner.
func (repo *linkRepository) FindByURL(ctx context.Context, url string) (*entity.Link, error) {
	var linkM model.LinkModel
	if err := repo.db.WithContext(ctx).Where("url = ?", url).Take(&linkM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLinkNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find link by url")
	}

	return toLinkDomain(&linkM), nil
}

// FindByOwnerAndCode retrieves a link only when both the code and the owner match.
func (repo *linkRepository) FindByOwnerAndCode(ctx context.Context, ownerID uuid.UUID, code string) (*entity.Link, error) {
	var linkM model.LinkModel
	err := repo.db.WithContext(ctx).
		Where("code = ? AND owner_id = ?", code, ownerID).
		Take(&linkM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLinkNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find link by code")
	}

	return toLinkDomain(&linkM), nil
}

// ListByOwner returns the owner's links oldest first.
func (repo *linkRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Link, error) {
	var linkMs []model.LinkModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Order("code ASC").
		Find(&linkMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list links")
	}

	links := make([]*entity.Link, 0, len(linkMs))
	for i := range linkMs {
		links = append(links, toLinkDomain(&linkMs[i]))
	}

	return links, nil
}

func toLinkDomain(m *model.LinkModel) *entity.Link {
	return &entity.Link{
		Code:      m.Code,
		OwnerID:   m.OwnerID,
		URL:       m.URL,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func fromLinkDomain(l *entity.Link) *model.LinkModel {
	return &model.LinkModel{
		Code:      l.Code,
		OwnerID:   l.OwnerID,
		URL:       l.URL,
		CreatedAt: l.CreatedAt,
	}
}
