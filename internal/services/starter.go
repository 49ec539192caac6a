package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/prlsite/starters/internal/models"
	"github.com/prlsite/starters/internal/normalize"
	"github.com/prlsite/starters/internal/pdf"
	"github.com/prlsite/starters/internal/store"
)

// StarterService runs the capture flow: normalize, resolve the client
// against the directory, persist, render.
type StarterService struct {
	starters *store.StarterStore
	clients  *store.ClientDirectory
	renderer *pdf.Renderer
	log      *zap.Logger
}

func NewStarterService(starters *store.StarterStore, clients *store.ClientDirectory, renderer *pdf.Renderer, log *zap.Logger) *StarterService {
	return &StarterService{starters: starters, clients: clients, renderer: renderer, log: log}
}

// Submit persists one captured starter and renders its document.
//
// When the client name matches a directory entry, blank contact/address
// fields are filled from it; a brand-new name is persisted to the
// directory before the starter insert. Render failure still returns the
// assigned id: the record is already durable and the edit view can
// re-render it later.
func (s *StarterService) Submit(ctx context.Context, rec models.Starter) (uint, []byte, error) {
	normalize.Starter(&rec)

	if rec.ClientName != "" {
		existing, err := s.clients.Lookup(ctx, rec.ClientName)
		switch {
		case err == nil:
			if rec.ClientContact == "" {
				rec.ClientContact = existing.Contact
			}
			if rec.ClientAddress == "" {
				rec.ClientAddress = existing.Address
			}
		case errors.Is(err, store.ErrNotFound):
			if _, err := s.clients.UpsertIfAbsent(ctx, rec.ClientName, rec.ClientContact, rec.ClientAddress); err != nil {
				return 0, nil, err
			}
			s.log.Info("new client added to directory", zap.String("client", rec.ClientName))
		default:
			return 0, nil, err
		}
	}

	id, err := s.starters.Insert(ctx, &rec)
	if err != nil {
		return 0, nil, err
	}

	doc, err := s.renderer.Single(rec)
	if err != nil {
		s.log.Warn("starter persisted but render failed", zap.Uint("id", id), zap.Error(err))
		return id, nil, err
	}
	return id, doc, nil
}

// Render re-renders the single document for a stored record.
func (s *StarterService) Render(ctx context.Context, id uint) ([]byte, *models.Starter, error) {
	rec, err := s.starters.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	doc, err := s.renderer.Single(*rec)
	if err != nil {
		return nil, nil, err
	}
	return doc, rec, nil
}

// Report renders the tabular roster over the current full record set.
func (s *StarterService) Report(ctx context.Context) ([]byte, error) {
	recs, err := s.starters.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderer.TabularReport(recs)
}

// Snapshot serializes the current record set as compact JSON for the
// query adapter.
func (s *StarterService) Snapshot(ctx context.Context) ([]byte, error) {
	recs, err := s.starters.List(ctx)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return b, nil
}
