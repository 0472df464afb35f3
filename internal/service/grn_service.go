// backend-go/internal/service/grn_service.go
package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/andresuchdata/merchview/backend-go/internal/domain"
	"github.com/andresuchdata/merchview/backend-go/internal/repository"
	"github.com/andresuchdata/merchview/backend-go/internal/storage"
)

const grnsCollection = "grns"

type GrnService struct {
	grns     repository.GrnRepository
	storage  storage.ObjectStorage
	notifier ChangeNotifier
	now      func() time.Time
}

func NewGrnService(grns repository.GrnRepository, store storage.ObjectStorage, notifier ChangeNotifier) *GrnService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	return &GrnService{
		grns:     grns,
		storage:  store,
		notifier: notifier,
		now:      time.Now,
	}
}

// List returns records newest first.
func (s *GrnService) List(ctx context.Context) ([]domain.GrnRecord, error) {
	return s.grns.Snapshot(ctx)
}

func (s *GrnService) Create(ctx context.Context, g domain.GrnRecord) (domain.GrnRecord, error) {
	if err := normalizeGrn(&g); err != nil {
		return domain.GrnRecord{}, err
	}
	g.CreatedAt = s.now()

	id, err := s.grns.Create(ctx, g)
	if err != nil {
		return domain.GrnRecord{}, err
	}
	s.notifier.Notify(ctx, grnsCollection)

	created := g
	if oid, err := parseHex(id); err == nil {
		created.ID = oid
	}
	return created, nil
}

// Update overwrites the record and refreshes its createdAt, so an edited
// record floats back to the top of the list.
func (s *GrnService) Update(ctx context.Context, id string, g domain.GrnRecord) error {
	if err := normalizeGrn(&g); err != nil {
		return err
	}
	g.CreatedAt = s.now()

	if err := s.grns.Update(ctx, id, g); err != nil {
		return err
	}
	s.notifier.Notify(ctx, grnsCollection)
	return nil
}

func (s *GrnService) Delete(ctx context.Context, id string) error {
	if err := s.grns.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(ctx, grnsCollection)
	return nil
}

// UploadDocument stores a supporting document (PO copy, rejection photo)
// and returns its public URL for the record's docUrl field.
func (s *GrnService) UploadDocument(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("%w: document storage is not configured", domain.ErrValidation)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("grn/%s%s", uuid.NewString(), ext)
	return s.storage.Upload(ctx, key, contentType, r, size)
}

func normalizeGrn(g *domain.GrnRecord) error {
	g.OutletID = strings.TrimSpace(g.OutletID)
	g.Reason = strings.TrimSpace(g.Reason)
	g.Date = strings.TrimSpace(g.Date)
	g.DocURL = strings.TrimSpace(g.DocURL)
	g.Notes = strings.TrimSpace(g.Notes)

	switch {
	case g.OutletID == "":
		return fmt.Errorf("%w: outlet is required", domain.ErrValidation)
	case g.Reason == "":
		return fmt.Errorf("%w: reason is required", domain.ErrValidation)
	case g.Date == "":
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}
