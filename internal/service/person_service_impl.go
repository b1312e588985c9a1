package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/repository"
)

type personService struct {
	people repository.PersonRepo
	options
}

func NewPersonService(people repository.PersonRepo, opts ...Option) PersonService {
	return &personService{people: people, options: buildOptions(opts)}
}

func (s *personService) Create(ctx context.Context, p *domain.Person) error {
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	if p.DisplayName == "" {
		return fmt.Errorf("display name is required")
	}
	p.Email = strings.TrimSpace(p.Email)
	if p.ID == "" {
		p.ID = s.newID()
	}
	p.CreatedAt = s.now()
	if err := s.people.Create(ctx, p); err != nil {
		return fmt.Errorf("creating person: %w", err)
	}
	return nil
}

func (s *personService) List(ctx context.Context) ([]*domain.Person, error) {
	return s.people.List(ctx)
}
