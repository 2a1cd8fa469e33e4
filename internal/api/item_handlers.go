package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
)

func (s *Server) registerItemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "addListItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/lists/{id}/items",
		Summary:     "Add item",
		Description: "Appends an item to a list",
		Tags:        []string{"Items"},
	}, s.handleAddItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateListItem",
		Method:      http.MethodPatch,
		Path:        "/api/v1/lists/{id}/items/{itemId}",
		Summary:     "Update item",
		Description: "Updates item fields; an unknown item ID leaves the list unchanged",
		Tags:        []string{"Items"},
	}, s.handleUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteListItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/lists/{id}/items/{itemId}",
		Summary:     "Delete item",
		Description: "Removes an item and repacks the remaining order",
		Tags:        []string{"Items"},
	}, s.handleDeleteItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleItemCheck",
		Method:      http.MethodPost,
		Path:        "/api/v1/lists/{id}/items/{itemId}/check",
		Summary:     "Toggle item check",
		Description: "Flips an item's checked state",
		Tags:        []string{"Items"},
	}, s.handleToggleItemCheck)

	huma.Register(s.api, huma.Operation{
		OperationID: "reorderListItems",
		Method:      http.MethodPost,
		Path:        "/api/v1/lists/{id}/items/reorder",
		Summary:     "Reorder items",
		Description: "Applies a new manual item ordering; unknown IDs are ignored",
		Tags:        []string{"Items"},
	}, s.handleReorderItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearCheckedItems",
		Method:      http.MethodPost,
		Path:        "/api/v1/lists/{id}/items/clear-checked",
		Summary:     "Clear checked items",
		Description: "Removes every checked item from a list",
		Tags:        []string{"Items"},
	}, s.handleClearCheckedItems)
}

// === DTOs ===

type AddItemInput struct {
	ID   string `path:"id" doc:"List ID"`
	Body ItemDraftRequest
}

type AddItemResponse struct {
	ItemID string            `json:"item_id" doc:"ID of the newly added item"`
	List   domain.BazaarList `json:"list" doc:"List after the change"`
}

type AddItemOutput struct {
	Body AddItemResponse
}

type UpdateItemRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100" doc:"Item name"`
	TagID    *string  `json:"tag_id,omitempty" doc:"Tag ID, empty string clears"`
	Quantity *string  `json:"quantity,omitempty" doc:"Free-form quantity"`
	Unit     *string  `json:"unit,omitempty" validate:"omitempty,oneof=kg g pcs litre ml dozen hali bag" doc:"Measurement unit"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gte=0" doc:"Unit price"`
}

type UpdateItemInput struct {
	ID     string `path:"id" doc:"List ID"`
	ItemID string `path:"itemId" doc:"Item ID"`
	Body   UpdateItemRequest
}

type ItemTargetInput struct {
	ID     string `path:"id" doc:"List ID"`
	ItemID string `path:"itemId" doc:"Item ID"`
}

type ReorderItemsRequest struct {
	ItemIDs []string `json:"item_ids" validate:"required" doc:"Item IDs in the desired order"`
}

type ReorderItemsInput struct {
	ID   string `path:"id" doc:"List ID"`
	Body ReorderItemsRequest
}

type ClearCheckedInput struct {
	ID string `path:"id" doc:"List ID"`
}

type ClearCheckedResponse struct {
	Removed int               `json:"removed" doc:"Number of items removed"`
	List    domain.BazaarList `json:"list" doc:"List after the change"`
}

type ClearCheckedOutput struct {
	Body ClearCheckedResponse
}

// === Handlers ===

func (s *Server) handleAddItem(_ context.Context, input *AddItemInput) (*AddItemOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	list, itemID, err := s.store.Lists.AddItem(input.ID, domain.ItemDraft{
		Name:     input.Body.Name,
		TagID:    input.Body.TagID,
		Quantity: input.Body.Quantity,
		Unit:     domain.Unit(input.Body.Unit),
		Price:    input.Body.Price,
	})
	if err != nil {
		return nil, err
	}

	return &AddItemOutput{Body: AddItemResponse{ItemID: itemID, List: list}}, nil
}

func (s *Server) handleUpdateItem(_ context.Context, input *UpdateItemInput) (*ListOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	var unit *domain.Unit
	if input.Body.Unit != nil {
		u := domain.Unit(*input.Body.Unit)
		unit = &u
	}

	list, err := s.store.Lists.UpdateItem(input.ID, input.ItemID, domain.ItemPatch{
		Name:     input.Body.Name,
		TagID:    input.Body.TagID,
		Quantity: input.Body.Quantity,
		Unit:     unit,
		Price:    input.Body.Price,
	})
	if err != nil {
		return nil, err
	}

	return &ListOutput{Body: list}, nil
}

func (s *Server) handleDeleteItem(_ context.Context, input *ItemTargetInput) (*ListOutput, error) {
	list, err := s.store.Lists.DeleteItem(input.ID, input.ItemID)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Body: list}, nil
}

func (s *Server) handleToggleItemCheck(_ context.Context, input *ItemTargetInput) (*ListOutput, error) {
	list, err := s.store.Lists.ToggleItemCheck(input.ID, input.ItemID)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Body: list}, nil
}

func (s *Server) handleReorderItems(_ context.Context, input *ReorderItemsInput) (*ListOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	list, err := s.store.Lists.ReorderItems(input.ID, input.Body.ItemIDs)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Body: list}, nil
}

func (s *Server) handleClearCheckedItems(_ context.Context, input *ClearCheckedInput) (*ClearCheckedOutput, error) {
	list, removed, err := s.store.Lists.ClearCheckedItems(input.ID)
	if err != nil {
		return nil, err
	}

	return &ClearCheckedOutput{Body: ClearCheckedResponse{Removed: removed, List: list}}, nil
}
