package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"shortlink/config"
	"shortlink/internal/domain/entity"
	domainerrors "shortlink/internal/domain/errors"
	"shortlink/internal/domain/repository"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Argon2.Memory = 64
	cfg.Argon2.Iterations = 1

	return cfg
}

// memStore is an in-memory stand-in for the accounts and links tables with the same
// uniqueness rules and the ON DELETE CASCADE from links to accounts.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account // by email
	links    []*entity.Link             // insertion order
}

func newMemStore() *memStore {
	return &memStore{accounts: make(map[string]*entity.Account)}
}

func (s *memStore) AccountRepo() repository.AccountRepository { return memAccounts{s} }

func (s *memStore) LinkRepo() repository.LinkRepository { return memLinks{s} }

func (s *memStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

type memAccounts struct{ s *memStore }

func (r memAccounts) Create(_ context.Context, account *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[account.Email]; ok {
		return domainerrors.ErrDuplicateEmail
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.Must(uuid.NewV7())
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	stored := *account
	r.s.accounts[account.Email] = &stored

	return nil
}

func (r memAccounts) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	found := *account

	return &found, nil
}

func (r memAccounts) DeleteByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	delete(r.s.accounts, email)

	kept := r.s.links[:0]
	for _, link := range r.s.links {
		if link.OwnerID != account.ID {
			kept = append(kept, link)
		}
	}
	r.s.links = kept

	return account, nil
}

func (r memAccounts) UpdateFields(_ context.Context, email string, changes entity.AccountChanges) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	if changes.Email != nil && *changes.Email != email {
		if _, taken := r.s.accounts[*changes.Email]; taken {
			return nil, domainerrors.ErrDuplicateEmail
		}
	}

	updated := *account
	if changes.Name != nil {
		updated.Name = *changes.Name
	}
	if changes.PasswordHash != nil {
		updated.PasswordHash = *changes.PasswordHash
	}
	if changes.Email != nil {
		updated.Email = *changes.Email
	}
	delete(r.s.accounts, email)
	r.s.accounts[updated.Email] = &updated
	result := updated

	return &result, nil
}

type memLinks struct{ s *memStore }

func (r memLinks) Insert(_ context.Context, link *entity.Link) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.links {
		if existing.Code == link.Code {
			return repository.ErrLinkCodeConflict
		}
		if existing.URL == link.URL {
			return repository.ErrLinkURLConflict
		}
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}
	stored := *link
	r.s.links = append(r.s.links, &stored)

	return nil
}

func (r memLinks) FindByURL(_ context.Context, url string) (*entity.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, link := range r.s.links {
		if link.URL == url {
			found := *link

			return &found, nil
		}
	}

	return nil, repository.ErrLinkNotFound
}

func (r memLinks) FindByOwnerAndCode(_ context.Context, ownerID uuid.UUID, code string) (*entity.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, link := range r.s.links {
		if link.Code == code && link.OwnerID == ownerID {
			found := *link

			return &found, nil
		}
	}

	return nil, repository.ErrLinkNotFound
}

func (r memLinks) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var links []*entity.Link
	for _, link := range r.s.links {
		if link.OwnerID == ownerID {
			found := *link
			links = append(links, &found)
		}
	}

	return links, nil
}

// sequenceGenerator returns the given codes in order.
type sequenceGenerator struct {
	codes []string
	next  int
}

func (g *sequenceGenerator) Generate() (string, error) {
	code := g.codes[g.next%len(g.codes)]
	g.next++

	return code, nil
}
