package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/hatkhataapp/hatkhata-server/internal/calc"
	"github.com/hatkhataapp/hatkhata-server/internal/domain"
)

func (s *Server) registerListRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBazaarLists",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists",
		Summary:     "List bazaar lists",
		Description: "Returns lists filtered by tags, matched against a search query, and sorted",
		Tags:        []string{"Lists"},
	}, s.handleListLists)

	huma.Register(s.api, huma.Operation{
		OperationID: "createBazaarList",
		Method:      http.MethodPost,
		Path:        "/api/v1/lists",
		Summary:     "Create bazaar list",
		Description: "Creates a new bazaar list, optionally seeded with items",
		Tags:        []string{"Lists"},
	}, s.handleCreateList)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBazaarList",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{id}",
		Summary:     "Get bazaar list",
		Description: "Returns a single list by ID",
		Tags:        []string{"Lists"},
	}, s.handleGetList)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBazaarList",
		Method:      http.MethodPatch,
		Path:        "/api/v1/lists/{id}",
		Summary:     "Update bazaar list",
		Description: "Updates list fields; items may be replaced wholesale",
		Tags:        []string{"Lists"},
	}, s.handleUpdateList)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBazaarList",
		Method:      http.MethodDelete,
		Path:        "/api/v1/lists/{id}",
		Summary:     "Delete bazaar list",
		Description: "Deletes a list and repacks the remaining order",
		Tags:        []string{"Lists"},
	}, s.handleDeleteList)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleListPin",
		Method:      http.MethodPost,
		Path:        "/api/v1/lists/{id}/pin",
		Summary:     "Toggle list pin",
		Description: "Toggles the pinned state and refreshes the updated timestamp",
		Tags:        []string{"Lists"},
	}, s.handleTogglePin)

	huma.Register(s.api, huma.Operation{
		OperationID: "reorderBazaarLists",
		Method:      http.MethodPost,
		Path:        "/api/v1/lists/reorder",
		Summary:     "Reorder bazaar lists",
		Description: "Applies a new manual ordering; unknown IDs are ignored and absent lists keep their relative order",
		Tags:        []string{"Lists"},
	}, s.handleReorderLists)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBazaarListTotal",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{id}/total",
		Summary:     "Get list totals",
		Description: "Returns price totals for a list, formatted per the current language and currency",
		Tags:        []string{"Lists"},
	}, s.handleGetListTotal)
}

// === DTOs ===

type ListListsInput struct {
	Sort string `query:"sort" enum:"newest,oldest,category,alphabetical" doc:"Sort mode, defaults to newest"`
	Tags string `query:"tags" doc:"Comma-separated tag IDs to filter by"`
	Q    string `query:"q" doc:"Case-insensitive search over titles and item names"`
}

type ListListsResponse struct {
	Lists []domain.BazaarList `json:"lists" doc:"Matching lists"`
}

type ListListsOutput struct {
	Body ListListsResponse
}

type ItemDraftRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100" doc:"Item name"`
	TagID    string  `json:"tag_id,omitempty" doc:"Optional tag ID"`
	Quantity string  `json:"quantity,omitempty" doc:"Free-form quantity"`
	Unit     string  `json:"unit,omitempty" validate:"omitempty,oneof=kg g pcs litre ml dozen hali bag" doc:"Measurement unit"`
	Price    float64 `json:"price,omitempty" validate:"omitempty,gte=0" doc:"Unit price"`
}

type CreateListRequest struct {
	Title    string             `json:"title" validate:"required,min=1,max=200" doc:"List title"`
	TagID    string             `json:"tag_id,omitempty" doc:"Optional tag ID"`
	IsUrgent bool               `json:"is_urgent,omitempty" doc:"Urgency flag"`
	Items    []ItemDraftRequest `json:"items,omitempty" validate:"omitempty,dive" doc:"Initial items"`
}

type CreateListInput struct {
	Body CreateListRequest
}

type ListOutput struct {
	Body domain.BazaarList
}

type GetListInput struct {
	ID string `path:"id" doc:"List ID"`
}

type UpdateListRequest struct {
	Title        *string             `json:"title,omitempty" validate:"omitempty,min=1,max=200" doc:"List title"`
	TagID        *string             `json:"tag_id,omitempty" doc:"Tag ID, empty string clears"`
	IsUrgent     *bool               `json:"is_urgent,omitempty" doc:"Urgency flag"`
	Notes        *string             `json:"notes,omitempty" doc:"Free-form notes"`
	IsNotePinned *bool               `json:"is_note_pinned,omitempty" doc:"Pin the note above items"`
	Items        []domain.BazaarItem `json:"items,omitempty" doc:"Wholesale item replacement"`
}

type UpdateListInput struct {
	ID   string `path:"id" doc:"List ID"`
	Body UpdateListRequest
}

type DeleteListInput struct {
	ID string `path:"id" doc:"List ID"`
}

type ReorderListsRequest struct {
	ListIDs []string `json:"list_ids" validate:"required" doc:"List IDs in the desired order"`
}

type ReorderListsInput struct {
	Body ReorderListsRequest
}

type ListTotalResponse struct {
	Total              float64 `json:"total" doc:"Sum over all items"`
	CheckedTotal       float64 `json:"checked_total" doc:"Sum over checked items"`
	UncheckedTotal     float64 `json:"unchecked_total" doc:"Sum over unchecked items"`
	FormattedTotal     string  `json:"formatted_total" doc:"Total formatted per current language and currency"`
	FormattedUnchecked string  `json:"formatted_unchecked" doc:"Unchecked total formatted per current language and currency"`
	Currency           string  `json:"currency" doc:"Currency code"`
}

type ListTotalOutput struct {
	Body ListTotalResponse
}

// === Handlers ===

func (s *Server) handleListLists(_ context.Context, input *ListListsInput) (*ListListsOutput, error) {
	lists := s.store.Lists.Lists()

	if input.Tags != "" {
		lists = domain.FilterByTags(lists, strings.Split(input.Tags, ","))
	}
	if input.Q != "" {
		lists = domain.SearchLists(lists, input.Q)
	}

	mode := domain.SortMode(input.Sort)
	if mode == "" {
		mode = domain.SortNewest
	}
	lists = domain.SortLists(lists, mode, s.store.Tags.TagName)

	return &ListListsOutput{Body: ListListsResponse{Lists: lists}}, nil
}

func (s *Server) handleCreateList(_ context.Context, input *CreateListInput) (*ListOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	drafts := make([]domain.ItemDraft, len(input.Body.Items))
	for i, item := range input.Body.Items {
		drafts[i] = domain.ItemDraft{
			Name:     item.Name,
			TagID:    item.TagID,
			Quantity: item.Quantity,
			Unit:     domain.Unit(item.Unit),
			Price:    item.Price,
		}
	}

	list, err := s.store.Lists.AddList(input.Body.Title, input.Body.TagID, input.Body.IsUrgent, drafts)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Body: list}, nil
}

func (s *Server) handleGetList(_ context.Context, input *GetListInput) (*ListOutput, error) {
	list, err := s.store.Lists.GetListByID(input.ID)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Body: list}, nil
}

func (s *Server) handleUpdateList(_ context.Context, input *UpdateListInput) (*ListOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	list, err := s.store.Lists.UpdateList(input.ID, domain.ListPatch{
		Title:        input.Body.Title,
		TagID:        input.Body.TagID,
		IsUrgent:     input.Body.IsUrgent,
		Notes:        input.Body.Notes,
		IsNotePinned: input.Body.IsNotePinned,
		Items:        input.Body.Items,
	})
	if err != nil {
		return nil, err
	}

	return &ListOutput{Body: list}, nil
}

func (s *Server) handleDeleteList(_ context.Context, input *DeleteListInput) (*struct{}, error) {
	if err := s.store.Lists.DeleteList(input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleTogglePin(_ context.Context, input *GetListInput) (*ListOutput, error) {
	list, err := s.store.Lists.TogglePin(input.ID)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Body: list}, nil
}

func (s *Server) handleReorderLists(_ context.Context, input *ReorderListsInput) (*ListListsOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	s.store.Lists.ReorderLists(input.Body.ListIDs)

	// Return the manual order just applied, not a derived sort.
	return &ListListsOutput{Body: ListListsResponse{Lists: s.store.Lists.Lists()}}, nil
}

func (s *Server) handleGetListTotal(_ context.Context, input *GetListInput) (*ListTotalOutput, error) {
	list, err := s.store.Lists.GetListByID(input.ID)
	if err != nil {
		return nil, err
	}

	settings := s.store.Settings.Settings()
	total := calc.ListTotal(list.Items)
	unchecked := calc.UncheckedTotal(list.Items)

	return &ListTotalOutput{
		Body: ListTotalResponse{
			Total:              total,
			CheckedTotal:       total - unchecked,
			UncheckedTotal:     unchecked,
			FormattedTotal:     calc.FormatCurrency(total, settings.CurrencySymbol, settings.Language),
			FormattedUnchecked: calc.FormatCurrency(unchecked, settings.CurrencySymbol, settings.Language),
			Currency:           settings.Currency,
		},
	}, nil
}
