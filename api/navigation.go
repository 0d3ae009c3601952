package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"juniorcars/models"
	"juniorcars/schema"
)

var navigationSortable = []string{"created_at", "updated_at", "label", "order_index"}

func (a *APIModule) listNavigation(c *gin.Context) {
	q, err := schema.ParseListQuery(c.Request.URL.Query(), navigationSortable, "flat")
	if err != nil {
		respondValidation(c, err)
		return
	}

	// tree shape: fetch everything ordered by sibling position and nest
	// children under their parents client-side of the database. The full
	// forest is returned, so the response carries no pagination block.
	if c.Query("flat") == "false" {
		var items []models.NavigationItem
		if err := a.db.Order("order_index ASC, id ASC").Find(&items).Error; err != nil {
			log.Printf("listNavigation tree: %v", err)
			respondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		respondData(c, http.StatusOK, buildNavigationTree(items))
		return
	}

	query := a.db.Model(&models.NavigationItem{})
	if q.Search != "" {
		query = query.Where("label LIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("listNavigation count: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	var items []models.NavigationItem
	if err := query.Order(q.SortBy + " " + q.SortOrder).
		Offset(q.Offset()).Limit(q.Limit).
		Find(&items).Error; err != nil {
		log.Printf("listNavigation find: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondList(c, items, q, total)
}

// buildNavigationTree nests items under their parents. Items whose parent is
// missing are promoted to roots instead of being dropped.
func buildNavigationTree(items []models.NavigationItem) []models.NavigationItem {
	byID := make(map[uint]bool, len(items))
	for _, item := range items {
		byID[item.ID] = true
	}

	children := make(map[uint][]models.NavigationItem)
	var roots []models.NavigationItem
	for _, item := range items {
		if item.ParentID != nil && byID[*item.ParentID] {
			children[*item.ParentID] = append(children[*item.ParentID], item)
		} else {
			roots = append(roots, item)
		}
	}

	var attach func(node *models.NavigationItem)
	attach = func(node *models.NavigationItem) {
		node.Children = children[node.ID]
		for i := range node.Children {
			attach(&node.Children[i])
		}
	}
	for i := range roots {
		attach(&roots[i])
	}
	return roots
}

func (a *APIModule) getNavigation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var item models.NavigationItem
	err = a.db.First(&item, id).Error
	if err == gorm.ErrRecordNotFound {
		respondError(c, http.StatusNotFound, "Navigation item not found")
		return
	}
	if err != nil {
		log.Printf("getNavigation: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondData(c, http.StatusOK, item)
}

// parentExists verifies a parentId reference points at a real item.
func (a *APIModule) parentExists(parentID uint) bool {
	var count int64
	a.db.Model(&models.NavigationItem{}).Where("id = ?", parentID).Count(&count)
	return count > 0
}

// wouldCycle walks the ancestor chain from parentID and reports whether id
// appears in it. Keeps a node from becoming its own ancestor.
func (a *APIModule) wouldCycle(id uint, parentID uint) bool {
	seen := map[uint]bool{id: true}
	current := parentID
	for {
		if seen[current] {
			return true
		}
		seen[current] = true

		var item models.NavigationItem
		if err := a.db.First(&item, current).Error; err != nil {
			return false
		}
		if item.ParentID == nil {
			return false
		}
		current = *item.ParentID
	}
}

func (a *APIModule) createNavigation(c *gin.Context) {
	var input schema.CreateNavigationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := schema.Check(input); err != nil {
		respondValidation(c, err)
		return
	}

	if input.ParentID != nil && !a.parentExists(*input.ParentID) {
		respondValidation(c, schema.NewValidationError("parentId", "exists", "parentId references a missing navigation item"))
		return
	}

	item := models.NavigationItem{
		Label:      input.Label,
		URL:        input.URL,
		ParentID:   input.ParentID,
		OrderIndex: input.OrderIndex,
		IsActive:   input.IsActive == nil || *input.IsActive,
		IsExternal: input.IsExternal != nil && *input.IsExternal,
		Target:     input.Target,
	}

	if err := a.db.Create(&item).Error; err != nil {
		log.Printf("createNavigation: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create navigation item")
		return
	}

	invalidatePages()
	respondData(c, http.StatusCreated, item)
}

func (a *APIModule) updateNavigation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var item models.NavigationItem
	if err := a.db.First(&item, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Navigation item not found")
		return
	}

	var input schema.UpdateNavigationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := schema.Check(input); err != nil {
		respondValidation(c, err)
		return
	}

	if input.ParentID != nil {
		if *input.ParentID == item.ID {
			respondValidation(c, schema.NewValidationError("parentId", "cycle", "an item cannot be its own parent"))
			return
		}
		if !a.parentExists(*input.ParentID) {
			respondValidation(c, schema.NewValidationError("parentId", "exists", "parentId references a missing navigation item"))
			return
		}
		if a.wouldCycle(item.ID, *input.ParentID) {
			respondValidation(c, schema.NewValidationError("parentId", "cycle", "parentId would create a cycle"))
			return
		}
		item.ParentID = input.ParentID
	} else if input.ClearParent {
		item.ParentID = nil
	}

	if input.Label != nil {
		item.Label = *input.Label
	}
	if input.URL != nil {
		item.URL = *input.URL
	}
	if input.OrderIndex != nil {
		item.OrderIndex = *input.OrderIndex
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if input.IsExternal != nil {
		item.IsExternal = *input.IsExternal
	}
	if input.Target != nil {
		item.Target = *input.Target
	}

	if err := a.db.Save(&item).Error; err != nil {
		log.Printf("updateNavigation: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update navigation item")
		return
	}

	invalidatePages()
	respondData(c, http.StatusOK, item)
}

func (a *APIModule) deleteNavigation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var item models.NavigationItem
	if err := a.db.First(&item, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Navigation item not found")
		return
	}

	// children are promoted to roots so no parentId dangles
	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.NavigationItem{}).
			Where("parent_id = ?", item.ID).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		log.Printf("deleteNavigation: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete navigation item")
		return
	}

	invalidatePages()
	respondMessage(c, http.StatusOK, "Navigation item deleted successfully")
}
