package api

import (
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khryptorgraphics/schedcore/internal/anneal"
	"github.com/khryptorgraphics/schedcore/internal/apierrors"
	"github.com/khryptorgraphics/schedcore/internal/builder"
	"github.com/khryptorgraphics/schedcore/internal/model"
)

// respondError writes the {"error": "..."} body original_source's
// ApiError::into_response produces, mapping *apierrors.APIError to its
// declared status and falling back to 500 for anything else.
func respondError(c *gin.Context, err error) {
	if apiErr, ok := apierrors.As(err); ok {
		c.JSON(apiErr.Status(), apierrors.ErrorResponse{Error: apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, apierrors.ErrorResponse{Error: err.Error()})
}

// --- items ---

type createItemRequest struct {
	Name        string                          `json:"name" binding:"required"`
	ItemSetType model.SetType                   `json:"item_set_type" binding:"required"`
	Schema      map[string]model.FieldSchema    `json:"schema"`
}

func (h *Handler) createItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.InvalidInput(err.Error()))
		return
	}

	h.store.PutItem(req.Name, model.Item{
		ItemSetType: req.ItemSetType,
		Members:     []model.Member{},
		Schema:      req.Schema,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Item created"})
}

type itemResponse struct {
	Name        string        `json:"name"`
	ItemSetType model.SetType `json:"item_set_type"`
	MemberCount int           `json:"member_count"`
}

func (h *Handler) listItems(c *gin.Context) {
	names := h.store.ListCategories()
	items := make([]itemResponse, 0, len(names))
	for _, name := range names {
		item, err := h.store.GetItem(name)
		if err != nil {
			continue
		}
		items = append(items, itemResponse{Name: item.Name, ItemSetType: item.ItemSetType, MemberCount: len(item.Members)})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type updateItemRequest struct {
	ItemSetType model.SetType                `json:"item_set_type" binding:"required"`
	Schema      map[string]model.FieldSchema `json:"schema"`
}

func (h *Handler) updateItem(c *gin.Context) {
	itemName := c.Param("item_name")
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.InvalidInput(err.Error()))
		return
	}

	existing, err := h.store.GetItem(itemName)
	if err != nil {
		respondError(c, err)
		return
	}

	existing.ItemSetType = req.ItemSetType
	existing.Schema = req.Schema
	h.store.PutItem(itemName, existing)
	c.JSON(http.StatusOK, gin.H{"message": "Item updated"})
}

func (h *Handler) deleteItem(c *gin.Context) {
	itemName := c.Param("item_name")
	if err := h.store.DeleteItem(itemName); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// --- members ---

type memberRequest struct {
	ID     model.ItemId           `json:"id"`
	Fields map[string]model.Value `json:"fields"`
}

func (h *Handler) addMember(c *gin.Context) {
	itemName := c.Param("item_name")
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.InvalidInput(err.Error()))
		return
	}

	item, err := h.store.GetItem(itemName)
	if err != nil {
		respondError(c, err)
		return
	}

	fields := model.ApplyFieldSchema(req.Fields, item.Schema)
	if err := h.store.AddMember(itemName, model.Member{ID: req.ID, Fields: fields}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Member added"})
}

type memberResponse struct {
	ID     model.ItemId           `json:"id"`
	Fields map[string]model.Value `json:"fields"`
}

func (h *Handler) listMembers(c *gin.Context) {
	itemName := c.Param("item_name")
	item, err := h.store.GetItem(itemName)
	if err != nil {
		respondError(c, err)
		return
	}

	members := make([]memberResponse, 0, len(item.Members))
	for _, m := range item.Members {
		members = append(members, memberResponse{ID: m.ID, Fields: m.Fields})
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *Handler) updateMember(c *gin.Context) {
	itemName := c.Param("item_name")
	memberID, err := parseMemberID(c.Param("member_id"))
	if err != nil {
		respondError(c, apierrors.InvalidInput(err.Error()))
		return
	}

	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.InvalidInput(err.Error()))
		return
	}

	item, err := h.store.GetItem(itemName)
	if err != nil {
		respondError(c, err)
		return
	}

	fields := model.ApplyFieldSchema(req.Fields, item.Schema)
	if err := h.store.UpdateMember(itemName, memberID, fields); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member updated"})
}

func (h *Handler) deleteMember(c *gin.Context) {
	itemName := c.Param("item_name")
	memberID, err := parseMemberID(c.Param("member_id"))
	if err != nil {
		respondError(c, apierrors.InvalidInput(err.Error()))
		return
	}

	if err := h.store.DeleteMember(itemName, memberID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}

func parseMemberID(raw string) (model.ItemId, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return model.ItemId(id), nil
}

// --- constraints ---

type createConstraintRequest struct {
	Constraint model.Constraint `json:"constraint" binding:"required"`
}

func (h *Handler) createConstraint(c *gin.Context) {
	var req createConstraintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.InvalidInput(err.Error()))
		return
	}
	h.store.AddConstraint(req.Constraint)
	c.JSON(http.StatusCreated, gin.H{"message": "Constraint created"})
}

func (h *Handler) listConstraints(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"constraints": h.store.ListConstraints()})
}

func (h *Handler) updateConstraint(c *gin.Context) {
	name := c.Param("name")
	var req createConstraintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.InvalidInput(err.Error()))
		return
	}

	if err := h.store.DeleteConstraint(name); err != nil {
		respondError(c, err)
		return
	}
	h.store.AddConstraint(req.Constraint)
	c.JSON(http.StatusOK, gin.H{"message": "Constraint updated"})
}

func (h *Handler) deleteConstraint(c *gin.Context) {
	name := c.Param("name")
	if err := h.store.DeleteConstraint(name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Constraint deleted"})
}

// --- solve ---

type solveRequest struct {
	InitialTemperature float64 `json:"initial_temperature"`
	CoolingRate        float64 `json:"cooling_rate"`
	MaxIterations      uint32  `json:"max_iterations"`
}

type solveResponse struct {
	Schedule  model.Schedule `json:"schedule"`
	FinalCost uint64         `json:"final_cost"`
}

func (h *Handler) solve(c *gin.Context) {
	var req solveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.InvalidInput(err.Error()))
		return
	}
	if req.InitialTemperature == 0 {
		req.InitialTemperature = h.solver.InitialTemperature
	}
	if req.CoolingRate == 0 {
		req.CoolingRate = h.solver.CoolingRate
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = h.solver.MaxIterations
	}

	problem, constraints := h.store.Snapshot()
	initial := builder.RandomSchedule(problem, anneal.NewSeededRand(rand.Uint64(), rand.Uint64()))

	result := anneal.Solve(problem, constraints, initial, anneal.Params{
		InitialTemperature: req.InitialTemperature,
		CoolingRate:        req.CoolingRate,
		MaxIterations:      req.MaxIterations,
	})

	c.JSON(http.StatusOK, solveResponse{Schedule: result.Schedule, FinalCost: result.Cost})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
