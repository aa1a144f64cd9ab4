// Package service is the thin façade the HTTP handlers call: catalog CRUD
// delegates straight to the Catalog Store (C1), and the two intake
// operations delegate to the Pipeline Orchestrator (C11).
package service

import (
	"context"
	"fmt"

	"portal_final_backend/internal/consultation/catalog"
	"portal_final_backend/internal/consultation/domain"
	"portal_final_backend/internal/consultation/llm"
	"portal_final_backend/internal/consultation/orchestrator"
	"portal_final_backend/platform/apperr"
)

func notFoundError(id int) error {
	return apperr.NotFound(fmt.Sprintf("community %d not found", id))
}

// Orchestrator is the subset of C11 the service depends on.
type Orchestrator interface {
	Process(ctx context.Context, input llm.ExtractionInput, opts orchestrator.Options) (domain.ConsultationResult, error)
}

// CRMPusher pushes a finished consultation to the CRM when requested
// (§4.10 "push_to_crm"). Non-goal to build a real CRM client against;
// the orchestrator never calls this directly, the service does, after
// Process returns, so a CRM outage never blocks ranking.
type CRMPusher interface {
	Push(ctx context.Context, result domain.ConsultationResult) error
}

// Service wires the catalog store and orchestrator into the operations
// the HTTP layer needs.
type Service struct {
	store        *catalog.Store
	orchestrator Orchestrator
	crm          CRMPusher
}

func New(store *catalog.Store, orch Orchestrator, crm CRMPusher) *Service {
	return &Service{store: store, orchestrator: orch, crm: crm}
}

// ProcessAudio runs a consultation from recorded audio (§4.10, §6).
func (s *Service) ProcessAudio(ctx context.Context, audio []byte, mimeType string, pushToCRM bool) (domain.ConsultationResult, error) {
	return s.process(ctx, llm.ExtractionInput{Audio: audio, AudioMIME: mimeType}, pushToCRM)
}

// ProcessText runs a consultation from a plain-text transcript (§4.10, §6).
func (s *Service) ProcessText(ctx context.Context, text string, pushToCRM bool) (domain.ConsultationResult, error) {
	return s.process(ctx, llm.ExtractionInput{Text: text}, pushToCRM)
}

func (s *Service) process(ctx context.Context, input llm.ExtractionInput, pushToCRM bool) (domain.ConsultationResult, error) {
	result, err := s.orchestrator.Process(ctx, input, orchestrator.Options{})
	if err != nil {
		return domain.ConsultationResult{}, err
	}
	if pushToCRM && !result.NoMatches && s.crm != nil {
		if pushErr := s.crm.Push(ctx, result); pushErr == nil {
			result.CRMPushed = true
		}
	}
	return result, nil
}

// ListCommunities returns every catalog row (§6 GET /api/communities).
func (s *Service) ListCommunities() []domain.Community {
	return s.store.All()
}

// GetCommunity returns a single catalog row by id.
func (s *Service) GetCommunity(id int) (domain.Community, bool) {
	return s.store.Get(id)
}

// CreateCommunity inserts or replaces a catalog row.
func (s *Service) CreateCommunity(c domain.Community) error {
	return s.store.Upsert(c)
}

// UpdateCommunity replaces an existing catalog row, rejecting ids the
// catalog doesn't already know about.
func (s *Service) UpdateCommunity(id int, c domain.Community) error {
	if _, ok := s.store.Get(id); !ok {
		return notFoundError(id)
	}
	c.CommunityID = id
	return s.store.Upsert(c)
}

// DeleteCommunity removes a catalog row by id.
func (s *Service) DeleteCommunity(id int) error {
	return s.store.Delete(id)
}

// Stats summarizes the catalog (§6 GET /api/stats).
func (s *Service) Stats() catalog.Stats {
	return s.store.Stats()
}
