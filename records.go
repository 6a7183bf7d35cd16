package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ecodev/models"
	"ecodev/pkg/importer"
)

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

// rowFromJSON reshapes a create-form payload into an importer row so forms
// and spreadsheet imports share one validation path.
func rowFromJSON(fields map[string]string) importer.Row {
	row := importer.Row{}
	for k, v := range fields {
		if v != "" {
			row[k] = v
		}
	}
	return row
}

// ---- programs ----

func listProgramsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var programs []models.Program
	if err := db.Where("user_id = ?", user.ID).Order("id desc").Find(&programs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, programs)
}

// getOwnedProgram looks a program up by id AND owner. A foreign id behaves
// exactly like a missing one.
func getOwnedProgram(c *gin.Context, userID uint) (*models.Program, bool) {
	var prog models.Program
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&prog).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
		return nil, false
	}
	return &prog, true
}

func getProgramHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	prog, ok := getOwnedProgram(c, user.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, prog)
}

func createProgramHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category" binding:"required"`
		Status      string `json:"status"`
		Budget      string `json:"budget" binding:"required"`
		StartDate   string `json:"startDate" binding:"required"`
		EndDate     string `json:"endDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prog, err := importer.CoerceProgram(rowFromJSON(map[string]string{
		"name":        req.Name,
		"description": req.Description,
		"category":    req.Category,
		"status":      req.Status,
		"budget":      req.Budget,
		"startDate":   req.StartDate,
		"endDate":     req.EndDate,
	}))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prog.UserID = user.ID
	if err := db.Create(prog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, prog)
}

func updateProgramHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	prog, ok := getOwnedProgram(c, user.ID)
	if !ok {
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Status      *string `json:"status"`
		Budget      *string `json:"budget"`
		StartDate   *string `json:"startDate"`
		EndDate     *string `json:"endDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		prog.Name = *req.Name
	}
	if req.Description != nil {
		prog.Description = *req.Description
	}
	if req.Category != nil {
		if !oneOf(*req.Category, models.ProgramCategories) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		prog.Category = *req.Category
	}
	if req.Status != nil {
		if !oneOf(*req.Status, models.ProgramStatuses) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		prog.Status = *req.Status
	}
	if req.Budget != nil {
		budget, err := importer.ParseBudget(*req.Budget)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		prog.Budget = budget
	}
	if req.StartDate != nil {
		t, parsed := importer.ParseDate(*req.StartDate)
		if !parsed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
			return
		}
		prog.StartDate = t
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			prog.EndDate = nil
		} else {
			t, parsed := importer.ParseDate(*req.EndDate)
			if !parsed {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
				return
			}
			prog.EndDate = &t
		}
	}
	if prog.EndDate != nil && prog.EndDate.Before(prog.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate precedes startDate"})
		return
	}
	if err := db.Save(prog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, prog)
}

// deleteProgramHandler removes a program and cascades to its projects in one
// transaction.
func deleteProgramHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	prog, ok := getOwnedProgram(c, user.ID)
	if !ok {
		return
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("program_id = ? AND user_id = ?", prog.ID, user.ID).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		return tx.Delete(prog).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- projects ----

func listProjectsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := db.Where("user_id = ?", user.ID)
	if pid := c.Query("programId"); pid != "" {
		q = q.Where("program_id = ?", pid)
	}
	var projects []models.Project
	if err := q.Order("id desc").Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

func getProjectHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var proj models.Project
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&proj).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, proj)
}

// ownsProgram reports whether programID belongs to userID. A query failure
// is returned separately so it is never confused with a missing reference.
func ownsProgram(programID, userID uint) (bool, error) {
	var cnt int64
	err := db.Model(&models.Program{}).Where("id = ? AND user_id = ?", programID, userID).Count(&cnt).Error
	return cnt > 0, err
}

func createProjectHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		ProgramID   string `json:"programId" binding:"required"`
		Status      string `json:"status"`
		Priority    string `json:"priority"`
		Budget      string `json:"budget" binding:"required"`
		Progress    string `json:"progress"`
		StartDate   string `json:"startDate" binding:"required"`
		Deadline    string `json:"deadline" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	proj, err := importer.CoerceProject(rowFromJSON(map[string]string{
		"name":        req.Name,
		"description": req.Description,
		"programId":   req.ProgramID,
		"status":      req.Status,
		"priority":    req.Priority,
		"budget":      req.Budget,
		"progress":    req.Progress,
		"startDate":   req.StartDate,
		"deadline":    req.Deadline,
	}))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	owns, err := ownsProgram(proj.ProgramID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if !owns {
		c.JSON(http.StatusBadRequest, gin.H{"error": "program not found"})
		return
	}
	proj.UserID = user.ID
	if err := db.Create(proj).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, proj)
}

func updateProjectHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var proj models.Project
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&proj).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		ProgramID   *uint   `json:"programId"`
		Status      *string `json:"status"`
		Priority    *string `json:"priority"`
		Budget      *string `json:"budget"`
		Progress    *int    `json:"progress"`
		StartDate   *string `json:"startDate"`
		Deadline    *string `json:"deadline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		proj.Name = *req.Name
	}
	if req.Description != nil {
		proj.Description = *req.Description
	}
	if req.ProgramID != nil {
		owns, err := ownsProgram(*req.ProgramID, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
			return
		}
		if !owns {
			c.JSON(http.StatusBadRequest, gin.H{"error": "program not found"})
			return
		}
		proj.ProgramID = *req.ProgramID
	}
	if req.Status != nil {
		if !oneOf(*req.Status, models.ProjectStatuses) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		proj.Status = *req.Status
	}
	if req.Priority != nil {
		if !oneOf(*req.Priority, models.ProjectPriorities) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
			return
		}
		proj.Priority = *req.Priority
	}
	if req.Budget != nil {
		budget, err := importer.ParseBudget(*req.Budget)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		proj.Budget = budget
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid progress"})
			return
		}
		proj.Progress = *req.Progress
	}
	if req.StartDate != nil {
		t, parsed := importer.ParseDate(*req.StartDate)
		if !parsed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
			return
		}
		proj.StartDate = t
	}
	if req.Deadline != nil {
		t, parsed := importer.ParseDate(*req.Deadline)
		if !parsed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline"})
			return
		}
		proj.Deadline = t
	}
	if proj.Deadline.Before(proj.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deadline precedes startDate"})
		return
	}
	if err := db.Save(&proj).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, proj)
}

func deleteProjectHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	res := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).Delete(&models.Project{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
