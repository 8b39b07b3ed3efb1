package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/mlm_backoffice/internal/utils/pagination"
)

func requestKey(requestID string) string { return "request:" + requestID }

func cloneRequest(r domain.MonetaryRequest) domain.MonetaryRequest {
	if r.ApprovedAmount != nil {
		v := *r.ApprovedAmount
		r.ApprovedAmount = &v
	}
	if r.ProcessedBy != nil {
		v := *r.ProcessedBy
		r.ProcessedBy = &v
	}
	if r.ProcessedAt != nil {
		v := *r.ProcessedAt
		r.ProcessedAt = &v
	}
	return r
}

func (s *Store) FindRequestByID(ctx context.Context, requestID string) (*domain.MonetaryRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[requestID]
	if !ok {
		return nil, apperrors.NewNotFoundError("request not found: " + requestID)
	}
	r = cloneRequest(r)
	return &r, nil
}

// newestFirst orders by (created_at DESC, id DESC), the keyset the pagination token encodes.
func newestFirst(aAt time.Time, aID string, bAt time.Time, bID string) bool {
	if aAt.Equal(bAt) {
		return aID > bID
	}
	return aAt.After(bAt)
}

// afterCursor reports whether a row sorts strictly after the cursor row.
func afterCursor(at time.Time, id string, curAt time.Time, curID string) bool {
	return newestFirst(curAt, curID, at, id)
}

func (s *Store) ListRequests(ctx context.Context, filter domain.RequestFilter, limit int, nextToken *string) ([]domain.MonetaryRequest, *string, error) {
	var (
		curAt  time.Time
		curID  string
		cursor bool
	)
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		curAt, curID, cursor = at, id, true
	}

	s.mu.RLock()
	matched := make([]domain.MonetaryRequest, 0)
	for _, r := range s.requests {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.Kind != "" && r.Kind != filter.Kind {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if cursor && !afterCursor(r.CreatedAt, r.RequestID, curAt, curID) {
			continue
		}
		matched = append(matched, cloneRequest(r))
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return newestFirst(matched[i].CreatedAt, matched[i].RequestID, matched[j].CreatedAt, matched[j].RequestID)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	var next *string
	if n := len(matched); n > 0 {
		last := matched[n-1]
		next = pagination.NextToken(n, limit, last.CreatedAt, last.RequestID)
	}
	return matched, next, nil
}

func (s *Store) SaveRequest(ctx context.Context, request domain.MonetaryRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.requests[request.RequestID]; exists {
		return fmt.Errorf("%w: request %s", apperrors.ErrDuplicate, request.RequestID)
	}
	s.requests[request.RequestID] = cloneRequest(request)
	return nil
}

// UpdateRequestNotes waits for any in-flight adjudication of the row so the notes are not
// overwritten by its commit.
func (s *Store) UpdateRequestNotes(ctx context.Context, requestID string, notes string, userID string) (*domain.MonetaryRequest, error) {
	release, err := s.lockRow(ctx, requestKey(requestID))
	if err != nil {
		return nil, err
	}
	defer release()

	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[requestID]
	if !ok {
		return nil, apperrors.NewNotFoundError("request not found: " + requestID)
	}
	r.AdminNotes = notes
	r.Touch(userID, time.Now().UTC())
	s.requests[requestID] = r
	r = cloneRequest(r)
	return &r, nil
}

func (s *Store) FindRequestForUpdate(ctx context.Context, tx portsrepo.Tx, requestID string) (*domain.MonetaryRequest, error) {
	mt, err := s.asTx(tx)
	if err != nil {
		return nil, err
	}
	if err := mt.lock(ctx, requestKey(requestID)); err != nil {
		return nil, err
	}
	if r, ok := mt.requests[requestID]; ok {
		r = cloneRequest(r)
		return &r, nil
	}
	return s.FindRequestByID(ctx, requestID)
}

func (s *Store) UpdateRequestResolutionInTx(ctx context.Context, tx portsrepo.Tx, request domain.MonetaryRequest) error {
	mt, err := s.asTx(tx)
	if err != nil {
		return err
	}
	if _, ok := mt.held[requestKey(request.RequestID)]; !ok {
		return fmt.Errorf("memory: request %s updated without lock", request.RequestID)
	}
	mt.requests[request.RequestID] = cloneRequest(request)
	return nil
}
