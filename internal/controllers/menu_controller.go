package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/littlelemon/littlelemon-api/internal/models"
	"github.com/littlelemon/littlelemon-api/internal/services"
	"github.com/shopspring/decimal"
)

// MenuController handles HTTP requests for menu items
type MenuController interface {
	// ListMenuItems retrieves all menu items
	ListMenuItems(c *gin.Context)
	// GetMenuItem retrieves a menu item by its ID
	GetMenuItem(c *gin.Context)
	// CreateMenuItem creates a new menu item
	CreateMenuItem(c *gin.Context)
	// UpdateMenuItem updates an existing menu item, fully or partially
	UpdateMenuItem(c *gin.Context)
	// DeleteMenuItem deletes a menu item by its ID
	DeleteMenuItem(c *gin.Context)
}

type menuController struct {
	service services.MenuService
}

// NewMenuController creates a new instance of MenuController
func NewMenuController(service services.MenuService) MenuController {
	return &menuController{service: service}
}

// menuItemRequest carries a create or update payload. Pointer fields
// distinguish "absent" from "zero" so PATCH can validate only what the
// client sent.
type menuItemRequest struct {
	Title     *string          `json:"title"`
	Price     *decimal.Decimal `json:"price"`
	Inventory *int             `json:"inventory"`
}

// validate checks the supplied fields; requireAll additionally demands that
// every field is present (create and PUT). Returns a map of offending
// fields, empty when the payload is acceptable.
func (r *menuItemRequest) validate(requireAll bool) map[string]interface{} {
	fields := map[string]interface{}{}

	if r.Title == nil {
		if requireAll {
			fields["title"] = "this field is required"
		}
	} else if *r.Title == "" {
		fields["title"] = "may not be blank"
	}

	if r.Price == nil && requireAll {
		fields["price"] = "this field is required"
	}

	if r.Inventory == nil && requireAll {
		fields["inventory"] = "this field is required"
	}

	return fields
}

// apply copies the supplied fields onto the menu item
func (r *menuItemRequest) apply(item *models.Menu) {
	if r.Title != nil {
		item.Title = *r.Title
	}
	if r.Price != nil {
		item.Price = *r.Price
	}
	if r.Inventory != nil {
		item.Inventory = *r.Inventory
	}
}

// bindError turns a JSON decoding failure into a field-naming validation
// error where the decoder tells us which field was malformed.
func bindError(err error) models.APIError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return models.NewValidationError(map[string]interface{}{
			typeErr.Field: "invalid value: expected " + typeErr.Type.String(),
		})
	}
	return models.NewAPIError(models.ErrBadRequest, "Invalid request body")
}

// pathID extracts the trailing integer identifier from the route
func pathID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid ID format"))
		return 0, false
	}
	return id, true
}

// ListMenuItems godoc
// @Summary List menu items
// @Description Get all menu items (public access)
// @Tags menu-items
// @Produce json
// @Success 200 {array} models.Menu
// @Failure 500 {object} models.APIError
// @Router /api/menu-items [get]
func (mc *menuController) ListMenuItems(ctx *gin.Context) {
	items, err := mc.service.GetAllMenuItems()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve menu items"))
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// GetMenuItem godoc
// @Summary Get a menu item
// @Description Get a single menu item by ID (public access)
// @Tags menu-items
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} models.Menu
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/menu-items/{id} [get]
func (mc *menuController) GetMenuItem(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	item, err := mc.service.GetMenuItemByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrMenuItemNotFound, "Menu item not found"))
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// CreateMenuItem godoc
// @Summary Create a menu item
// @Description Create a new menu item
// @Tags menu-items
// @Accept json
// @Produce json
// @Param item body menuItemRequest true "Menu item fields"
// @Success 201 {object} models.Menu
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Security BearerAuth
// @Router /api/menu-items [post]
func (mc *menuController) CreateMenuItem(ctx *gin.Context) {
	var req menuItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	if fields := req.validate(true); len(fields) > 0 {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(fields))
		return
	}

	var item models.Menu
	req.apply(&item)

	created, err := mc.service.CreateMenuItem(item)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create menu item"))
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdateMenuItem godoc
// @Summary Update a menu item
// @Description Update a menu item; PUT requires the full payload, PATCH accepts a partial one
// @Tags menu-items
// @Accept json
// @Produce json
// @Param id path int true "Menu item ID"
// @Param item body menuItemRequest true "Menu item fields"
// @Success 200 {object} models.Menu
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/menu-items/{id} [put]
func (mc *menuController) UpdateMenuItem(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	item, err := mc.service.GetMenuItemByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrMenuItemNotFound, "Menu item not found"))
		return
	}

	var req menuItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	requireAll := ctx.Request.Method == http.MethodPut
	if fields := req.validate(requireAll); len(fields) > 0 {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(fields))
		return
	}

	req.apply(&item)
	item.ID = id

	updated, err := mc.service.UpdateMenuItem(item)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to update menu item"))
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteMenuItem godoc
// @Summary Delete a menu item
// @Description Permanently delete a menu item by ID
// @Tags menu-items
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/menu-items/{id} [delete]
func (mc *menuController) DeleteMenuItem(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := mc.service.DeleteMenuItem(id); err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrMenuItemNotFound, "Menu item not found"))
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
