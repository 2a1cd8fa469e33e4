package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all tags",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/tags",
		Summary:     "Create tag",
		Description: "Creates a new tag; names are unique ignoring case",
		Tags:        []string{"Tags"},
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag",
		Description: "Returns a single tag by ID",
		Tags:        []string{"Tags"},
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Update tag",
		Description: "Updates a tag's name and/or color",
		Tags:        []string{"Tags"},
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Delete tag",
		Description: "Deletes a tag; lists referencing it keep their tag_id",
		Tags:        []string{"Tags"},
	}, s.handleDeleteTag)
}

// === DTOs ===

type ListTagsResponse struct {
	Tags []domain.Tag `json:"tags" doc:"All tags"`
}

type ListTagsOutput struct {
	Body ListTagsResponse
}

type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=50" doc:"Tag name, unique ignoring case"`
	Color string `json:"color" validate:"required,hexcolor" doc:"Display color"`
}

type CreateTagInput struct {
	Body CreateTagRequest
}

type TagOutput struct {
	Body domain.Tag
}

type GetTagInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

type UpdateTagRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=50" doc:"Tag name"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor" doc:"Display color"`
}

type UpdateTagInput struct {
	ID   string `path:"id" doc:"Tag ID"`
	Body UpdateTagRequest
}

type DeleteTagInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

// === Handlers ===

func (s *Server) handleListTags(_ context.Context, _ *struct{}) (*ListTagsOutput, error) {
	return &ListTagsOutput{Body: ListTagsResponse{Tags: s.store.Tags.Tags()}}, nil
}

func (s *Server) handleCreateTag(_ context.Context, input *CreateTagInput) (*TagOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	tagID, err := s.store.Tags.AddTag(input.Body.Name, input.Body.Color)
	if err != nil {
		return nil, err
	}

	tag, err := s.store.Tags.GetTagByID(tagID)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: tag}, nil
}

func (s *Server) handleGetTag(_ context.Context, input *GetTagInput) (*TagOutput, error) {
	tag, err := s.store.Tags.GetTagByID(input.ID)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: tag}, nil
}

func (s *Server) handleUpdateTag(_ context.Context, input *UpdateTagInput) (*TagOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	// Unknown IDs are a no-op in the store, but a named URL resource
	// that does not exist is a 404 here.
	if _, err := s.store.Tags.GetTagByID(input.ID); err != nil {
		return nil, err
	}

	err := s.store.Tags.UpdateTag(input.ID, domain.TagPatch{
		Name:  input.Body.Name,
		Color: input.Body.Color,
	})
	if err != nil {
		return nil, err
	}

	tag, err := s.store.Tags.GetTagByID(input.ID)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: tag}, nil
}

func (s *Server) handleDeleteTag(_ context.Context, input *DeleteTagInput) (*struct{}, error) {
	if _, err := s.store.Tags.GetTagByID(input.ID); err != nil {
		return nil, err
	}

	s.store.Tags.DeleteTag(input.ID)
	return nil, nil
}
