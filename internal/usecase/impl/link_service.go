package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"shortlink/config"
	deliverycontext "shortlink/internal/delivery/context"
	"shortlink/internal/domain/entity"
	domainerrors "shortlink/internal/domain/errors"
	"shortlink/internal/domain/repository"
	"shortlink/internal/domain/service"
	"shortlink/internal/usecase"
)

// linkService implements the LinkUsecase interface.
type linkService struct {
	linkRepo    repository.LinkRepository
	generator   service.CodeGenerator
	qrcode      service.QRCodeService
	publisher   service.EventPublisher
	maxAttempts int
	baseURL     string
	logger      *slog.Logger
}

// LinkServiceParams holds dependencies for LinkService, injected by Fx.
type LinkServiceParams struct {
	fx.In

	LinkRepo  repository.LinkRepository
	Generator service.CodeGenerator
	QRCode    service.QRCodeService
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewLinkService is the constructor for linkService.
func NewLinkService(params LinkServiceParams) usecase.LinkUsecase {
	return &linkService{
		linkRepo:    params.LinkRepo,
		generator:   params.Generator,
		qrcode:      params.QRCode,
		publisher:   params.Publisher,
		maxAttempts: params.Config.Link.MaxAttempts,
		baseURL:     strings.TrimRight(params.Config.QRCode.BaseURL, "/"),
		logger:      params.Logger,
	}
}

func (srv *linkService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Shorten inserts a fresh code for url. A URL that is already stored keeps its original code and
// owner; a colliding code is regenerated up to maxAttempts times.
func (srv *linkService) Shorten(ctx context.Context, ownerID uuid.UUID, url string) (string, error) {
	for attempt := 1; attempt <= srv.maxAttempts; attempt++ {
		code, err := srv.generator.Generate()
		if err != nil {
			return "", errors.Wrap(err, "failed to generate code")
		}

		err = srv.linkRepo.Insert(ctx, &entity.Link{Code: code, OwnerID: ownerID, URL: url})
		switch {
		case err == nil:
			srv.publish(ctx, code, ownerID, url, false)

			return code, nil

		case errors.Is(err, repository.ErrLinkURLConflict):
			existing, findErr := srv.linkRepo.FindByURL(ctx, url)
			if errors.Is(findErr, repository.ErrLinkNotFound) {
				// The conflicting row was removed in between; try again.
				continue
			}
			if findErr != nil {
				return "", errors.Wrap(findErr, "failed to load existing link")
			}
			srv.publish(ctx, existing.Code, existing.OwnerID, url, true)

			return existing.Code, nil

		case errors.Is(err, repository.ErrLinkCodeConflict):
			srv.log(ctx).Debug("Short code collision, regenerating", slog.Int("attempt", attempt))

		case errors.Is(err, repository.ErrAccountNotFound):
			return "", domainerrors.ErrAccountNotFound.WithDetails("owner no longer exists")

		default:
			return "", err
		}
	}

	srv.log(ctx).Error("Could not find a free short code", slog.Int("attempts", srv.maxAttempts))

	return "", errors.WithStack(domainerrors.ErrCodeSpaceExhausted)
}

// publish is best effort: a failed publish is logged and never fails the request.
func (srv *linkService) publish(ctx context.Context, code string, ownerID uuid.UUID, url string, reused bool) {
	event := &service.LinkEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Code:      code,
		OwnerID:   ownerID.String(),
		URL:       url,
		Reused:    reused,
	}

	if err := srv.publisher.PublishLinkEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish link event", slog.String("code", code), slog.Any("error", err))
	}
}

// Resolve does not distinguish a missing code from one owned by another account.
func (srv *linkService) Resolve(ctx context.Context, ownerID uuid.UUID, code string) (string, error) {
	link, err := srv.find(ctx, ownerID, code)
	if err != nil {
		return "", err
	}

	return link.URL, nil
}

func (srv *linkService) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	links, err := srv.linkRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(links))
	for _, link := range links {
		urls = append(urls, link.URL)
	}

	return urls, nil
}

// QRCode encodes <baseURL>/<code>, or the target URL when no public base URL is configured.
func (srv *linkService) QRCode(ctx context.Context, ownerID uuid.UUID, code string) ([]byte, error) {
	link, err := srv.find(ctx, ownerID, code)
	if err != nil {
		return nil, err
	}

	content := link.URL
	if srv.baseURL != "" {
		content = srv.baseURL + "/" + link.Code
	}

	return srv.qrcode.GenerateLinkQR(content)
}

func (srv *linkService) find(ctx context.Context, ownerID uuid.UUID, code string) (*entity.Link, error) {
	link, err := srv.linkRepo.FindByOwnerAndCode(ctx, ownerID, code)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return nil, domainerrors.ErrLinkNotFound
		}

		return nil, err
	}

	return link, nil
}
