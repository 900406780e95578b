package service

import (
	"fmt"
	"strconv"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/meilisearch/meilisearch-go"
)

const businessIndex = "businesses"

// businessDocument is the flattened search projection of a business.
type businessDocument struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	City           string `json:"city"`
	State          string `json:"state"`
	BusinessTypeID uint   `json:"business_type_id"`
	SectorID       uint   `json:"sector_id"`
	IsVerified     bool   `json:"is_verified"`
	CreatedAt      int64  `json:"created_at"`
}

// SearchService mirrors business rows into the search index. A nil client
// turns every call into a no-op so the API works without a search backend.
type SearchService struct {
	client meilisearch.ServiceManager
}

func NewSearchService(client meilisearch.ServiceManager) *SearchService {
	return &SearchService{client: client}
}

// InitIndexes configures filterable and sortable attributes. Safe to call on
// every boot; Meilisearch treats repeats as updates.
func (s *SearchService) InitIndexes() error {
	if s.client == nil {
		return nil
	}

	index := s.client.Index(businessIndex)

	filterableAttrs := []string{"business_type_id", "sector_id", "is_verified", "city"}
	filterableInterface := make([]interface{}, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := index.UpdateFilterableAttributes(&filterableInterface); err != nil {
		return fmt.Errorf("failed to set filterable attributes: %w", err)
	}

	sortableAttrs := []string{"name", "created_at"}
	if _, err := index.UpdateSortableAttributes(&sortableAttrs); err != nil {
		return fmt.Errorf("failed to set sortable attributes: %w", err)
	}

	return nil
}

func (s *SearchService) IndexBusiness(business *model.Business) error {
	if s.client == nil {
		return nil
	}

	doc := businessDocument{
		ID:         strconv.Itoa(int(business.ID)),
		Name:       business.Name,
		City:       stringOrEmpty(business.City),
		State:      stringOrEmpty(business.State),
		IsVerified: business.IsVerified,
		CreatedAt:  business.CreatedAt.Unix(),
	}
	if business.BusinessTypeID != nil {
		doc.BusinessTypeID = *business.BusinessTypeID
	}
	if business.BusinessType != nil {
		doc.SectorID = business.BusinessType.SectorID
	}

	if _, err := s.client.Index(businessIndex).AddDocuments([]businessDocument{doc}, strPtr("id")); err != nil {
		return fmt.Errorf("failed to index business %d: %w", business.ID, err)
	}
	return nil
}

func (s *SearchService) RemoveBusiness(id uint) error {
	if s.client == nil {
		return nil
	}
	if _, err := s.client.Index(businessIndex).DeleteDocument(strconv.Itoa(int(id))); err != nil {
		return fmt.Errorf("failed to remove business %d from index: %w", id, err)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}
