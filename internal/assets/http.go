// Copyright (c) 2026 Assetdeck. All rights reserved.
// Author: dev@assetdeck.io

package assets

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/assetdeck/assetdeck/internal/platform/apperr"
	requestutil "github.com/assetdeck/assetdeck/internal/platform/request"
	"github.com/assetdeck/assetdeck/internal/platform/validate"
	"github.com/assetdeck/assetdeck/internal/session"
	"github.com/assetdeck/assetdeck/pkg/convert"
	"github.com/assetdeck/assetdeck/pkg/pagination"
)

// # HTTP Layer

// Handler serves the asset screens. Every route assumes the session
// middleware already enforced authentication; the admin checks here gate the
// mutating screens only, as a presentation measure — the backend enforces
// authorization independently on every call.
type Handler struct {
	service  *Service
	manager  *session.Manager
	renderer session.Renderer
	logger   *slog.Logger
}

// NewHandler constructs a [Handler] with its dependencies.
func NewHandler(service *Service, manager *session.Manager, renderer session.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		manager:  manager,
		renderer: renderer,
		logger:   logger,
	}
}

// RegisterRoutes mounts the asset screens on the router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/assets", func(router chi.Router) {
		router.Get("/", handler.ShowList)
		router.Get("/new", handler.ShowCreate)
		router.Post("/new", handler.SubmitCreate)
		router.Get("/{id}", handler.ShowDetail)
		router.Get("/{id}/edit", handler.ShowEdit)
		router.Post("/{id}/edit", handler.SubmitEdit)
		router.Get("/{id}/delete", handler.ShowDelete)
		router.Post("/{id}/delete", handler.SubmitDelete)
	})
}

// # List & Detail

// ShowList renders the asset table, optionally narrowed to one category.
// A fetch failure renders an empty table behind an error notification; the
// screen itself never breaks.
func (handler *Handler) ShowList(writer http.ResponseWriter, request *http.Request) {
	context := request.Context()
	state := session.FromContext(context)
	category := requestutil.Query(request, "category")

	page, err := handler.service.List(context, state.AccessToken, category, pagination.FromRequest(request))
	if err != nil {
		handler.flashFailure(request, err)
		page = Page{CategoryFilter: category}
	}

	handler.renderer.Render(writer, request, http.StatusOK, "asset-list", map[string]any{
		"Page":    page,
		"IsAdmin": state.IsAdmin(),
	})
}

// ShowDetail renders a single asset. An unknown id gets a dedicated
// not-found screen rather than a generic failure.
func (handler *Handler) ShowDetail(writer http.ResponseWriter, request *http.Request) {
	context := request.Context()
	state := session.FromContext(context)

	asset, err := handler.service.Get(context, state.AccessToken, handler.assetID(request))
	if err != nil {
		if apperr.IsCode(err, "NOT_FOUND") {
			handler.renderer.Render(writer, request, http.StatusNotFound, "asset-not-found", map[string]any{})
			return
		}
		handler.flashFailure(request, err)
		http.Redirect(writer, request, "/assets", http.StatusSeeOther)
		return
	}

	handler.renderer.Render(writer, request, http.StatusOK, "asset-detail", map[string]any{
		"Asset":   asset,
		"IsAdmin": state.IsAdmin(),
	})
}

// # Create

// ShowCreate renders the add-asset form.
func (handler *Handler) ShowCreate(writer http.ResponseWriter, request *http.Request) {
	if !handler.requireAdmin(writer, request) {
		return
	}
	handler.renderForm(writer, request, http.StatusOK, nil, formView{})
}

// SubmitCreate handles the add-asset form.
func (handler *Handler) SubmitCreate(writer http.ResponseWriter, request *http.Request) {
	if !handler.requireAdmin(writer, request) {
		return
	}
	context := request.Context()
	state := session.FromContext(context)

	input, err := handler.parseInput(request)
	if err != nil {
		handler.renderForm(writer, request, http.StatusBadRequest, nil, formView{
			Input:  input,
			Errors: map[string]string{"form": validate.ErrInvalidForm.Error()},
		})
		return
	}

	created, err := handler.service.Create(context, state.AccessToken, input)
	if err != nil {
		handler.handleWriteFailure(writer, request, nil, input, err)
		return
	}

	handler.manager.Flash(context, state.ID, session.FlashSuccess, "Asset added successfully")
	handler.logger.InfoContext(context, "asset_created", slog.Int("asset_id", created.ID))
	http.Redirect(writer, request, "/assets", http.StatusSeeOther)
}

// # Edit

// ShowEdit renders the edit form with the current values. The serial number
// is displayed as a disabled field; it is never part of the submission.
func (handler *Handler) ShowEdit(writer http.ResponseWriter, request *http.Request) {
	if !handler.requireAdmin(writer, request) {
		return
	}
	context := request.Context()
	state := session.FromContext(context)

	asset, err := handler.service.Get(context, state.AccessToken, handler.assetID(request))
	if err != nil {
		if apperr.IsCode(err, "NOT_FOUND") {
			handler.renderer.Render(writer, request, http.StatusNotFound, "asset-not-found", map[string]any{})
			return
		}
		handler.flashFailure(request, err)
		http.Redirect(writer, request, "/assets", http.StatusSeeOther)
		return
	}

	handler.renderForm(writer, request, http.StatusOK, asset, formView{
		Input: Input{
			Name:           asset.Name,
			Description:    asset.Description,
			AssetType:      asset.AssetType,
			CategoryName:   asset.Category.Name,
			DepartmentName: asset.DepartmentName,
			Status:         string(asset.Status),
		},
	})
}

// SubmitEdit handles the edit form.
func (handler *Handler) SubmitEdit(writer http.ResponseWriter, request *http.Request) {
	if !handler.requireAdmin(writer, request) {
		return
	}
	context := request.Context()
	state := session.FromContext(context)
	id := handler.assetID(request)

	input, err := handler.parseInput(request)
	if err != nil {
		handler.renderForm(writer, request, http.StatusBadRequest, &Asset{ID: id}, formView{
			Input:  input,
			Errors: map[string]string{"form": validate.ErrInvalidForm.Error()},
		})
		return
	}

	updated, err := handler.service.Update(context, state.AccessToken, id, input)
	if err != nil {
		handler.handleWriteFailure(writer, request, &Asset{ID: id}, input, err)
		return
	}

	handler.manager.Flash(context, state.ID, session.FlashSuccess, "Asset updated successfully")
	handler.logger.InfoContext(context, "asset_updated", slog.Int("asset_id", updated.ID))
	http.Redirect(writer, request, "/assets", http.StatusSeeOther)
}

// # Delete

// ShowDelete renders the confirmation screen; nothing is removed until the
// confirmed POST arrives.
func (handler *Handler) ShowDelete(writer http.ResponseWriter, request *http.Request) {
	if !handler.requireAdmin(writer, request) {
		return
	}
	context := request.Context()
	state := session.FromContext(context)

	asset, err := handler.service.Get(context, state.AccessToken, handler.assetID(request))
	if err != nil {
		if apperr.IsCode(err, "NOT_FOUND") {
			handler.renderer.Render(writer, request, http.StatusNotFound, "asset-not-found", map[string]any{})
			return
		}
		handler.flashFailure(request, err)
		http.Redirect(writer, request, "/assets", http.StatusSeeOther)
		return
	}

	handler.renderer.Render(writer, request, http.StatusOK, "asset-confirm-delete", map[string]any{
		"Asset": asset,
	})
}

// SubmitDelete removes the asset after confirmation.
func (handler *Handler) SubmitDelete(writer http.ResponseWriter, request *http.Request) {
	if !handler.requireAdmin(writer, request) {
		return
	}
	context := request.Context()
	state := session.FromContext(context)
	id := handler.assetID(request)

	if err := handler.service.Delete(context, state.AccessToken, id); err != nil {
		handler.flashFailure(request, err)
		http.Redirect(writer, request, "/assets", http.StatusSeeOther)
		return
	}

	handler.manager.Flash(context, state.ID, session.FlashSuccess, "Asset deleted successfully")
	handler.logger.InfoContext(context, "asset_deleted", slog.Int("asset_id", id))
	http.Redirect(writer, request, "/assets", http.StatusSeeOther)
}

// # Internal Helpers

// formView carries the redisplay data for the create and edit forms.
type formView struct {
	Input  Input
	Errors map[string]string
}

// renderForm draws the asset form, fetching the select options fresh. asset
// is nil on the create screen.
func (handler *Handler) renderForm(writer http.ResponseWriter, request *http.Request, status int, asset *Asset, view formView) {
	context := request.Context()
	state := session.FromContext(context)

	options, err := handler.service.Options(context, state.AccessToken)
	if err != nil {
		handler.flashFailure(request, err)
	}

	handler.renderer.Render(writer, request, status, "asset-form", map[string]any{
		"Asset":   asset,
		"Input":   view.Input,
		"Errors":  view.Errors,
		"Options": options,
	})
}

// handleWriteFailure redisplays the form for validation errors and flashes
// everything else.
func (handler *Handler) handleWriteFailure(writer http.ResponseWriter, request *http.Request, asset *Asset, input Input, err error) {
	if ae := apperr.As(err); ae != nil && ae.Code == "VALIDATION_ERROR" {
		errors := make(map[string]string, len(ae.Details))
		for _, detail := range ae.Details {
			errors[detail.Field] = detail.Message
		}
		handler.renderForm(writer, request, http.StatusUnprocessableEntity, asset, formView{
			Input:  input,
			Errors: errors,
		})
		return
	}

	handler.flashFailure(request, err)
	handler.renderForm(writer, request, http.StatusUnprocessableEntity, asset, formView{Input: input})
}

// parseInput reads the writable asset fields. Any posted serial number is
// deliberately ignored.
func (handler *Handler) parseInput(request *http.Request) (Input, error) {
	if err := requestutil.ParseForm(request); err != nil {
		return Input{}, err
	}
	return Input{
		Name:           requestutil.Field(request, FieldName),
		Description:    requestutil.Field(request, FieldDescription),
		AssetType:      requestutil.Field(request, FieldAssetType),
		CategoryName:   requestutil.Field(request, FieldCategory),
		DepartmentName: requestutil.Field(request, FieldDepartment),
		Status:         requestutil.Field(request, FieldStatus),
	}, nil
}

// requireAdmin gates the mutating screens. Non-admins are bounced to the
// list with a notification; the false return means the response is written.
func (handler *Handler) requireAdmin(writer http.ResponseWriter, request *http.Request) bool {
	state := session.FromContext(request.Context())
	if state.IsAdmin() {
		return true
	}
	handler.manager.Flash(request.Context(), state.ID, session.FlashError, "You do not have permission to do that")
	http.Redirect(writer, request, "/assets", http.StatusSeeOther)
	return false
}

// assetID extracts the id route parameter.
func (handler *Handler) assetID(request *http.Request) int {
	return convert.ToInt(requestutil.Param(request, "id"))
}

// flashFailure queues the user-facing message carried by a normalized error.
func (handler *Handler) flashFailure(request *http.Request, err error) {
	context := request.Context()
	state := session.FromContext(context)

	message := apperr.GenericMessage
	if ae := apperr.As(err); ae != nil && ae.Message != "" {
		message = ae.Message
	}
	handler.manager.Flash(context, state.ID, session.FlashError, message)
	handler.logger.WarnContext(context, "asset_screen_failure", slog.Any("error", err))
}
