package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/export"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.svc.Projects.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectResponse{ID: p.ID, ShortID: p.ShortID, Name: p.Name})
	}
	c.JSON(http.StatusOK, out)
}

// project resolves the :project path segment, which may be a short id or a
// full id. On failure the response is already written.
func (s *Server) project(c *gin.Context) (*domain.Project, bool) {
	p, err := s.svc.Projects.Resolve(c.Request.Context(), c.Param("project"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return p, true
}

func (s *Server) handleTree(c *gin.Context) {
	p, ok := s.project(c)
	if !ok {
		return
	}
	tree, err := s.svc.Wbs.Tree(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, treeResponse(tree))
}

func (s *Server) handleTimeline(c *gin.Context) {
	p, ok := s.project(c)
	if !ok {
		return
	}
	rows, err := s.svc.Wbs.Timeline(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, timelineRows(rows))
}

func (s *Server) handleCreateNode(c *gin.Context) {
	s.upsert(c, "", http.StatusCreated)
}

func (s *Server) handleUpdateNode(c *gin.Context) {
	s.upsert(c, c.Param("id"), http.StatusOK)
}

func (s *Server) upsert(c *gin.Context, id string, status int) {
	p, ok := s.project(c)
	if !ok {
		return
	}
	var req NodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		writeError(c, err)
		return
	}
	node, err := s.svc.Wbs.Upsert(c.Request.Context(), p.ID, id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, nodeResponse(*node))
}

func (s *Server) handleDeleteNode(c *gin.Context) {
	p, ok := s.project(c)
	if !ok {
		return
	}
	removed, err := s.svc.Wbs.Delete(c.Request.Context(), p.ID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Removed: removed})
}

func (s *Server) handleStructural(c *gin.Context) {
	p, ok := s.project(c)
	if !ok {
		return
	}
	ctx, id := c.Request.Context(), c.Param("id")

	var changed bool
	var err error
	switch action := c.Param("action"); action {
	case "up":
		changed, err = s.svc.Wbs.Reorder(ctx, p.ID, id, domain.DirectionUp)
	case "down":
		changed, err = s.svc.Wbs.Reorder(ctx, p.ID, id, domain.DirectionDown)
	case "indent":
		changed, err = s.svc.Wbs.Indent(ctx, p.ID, id)
	case "outdent":
		changed, err = s.svc.Wbs.Outdent(ctx, p.ID, id)
	default:
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{
			Error: fmt.Sprintf("unknown action %q", action),
			Code:  "NOT_FOUND",
		})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, StructuralResponse{Changed: changed})
}

func (s *Server) handleExportCSV(c *gin.Context) {
	s.export(c, s.svc.Export.ExportCSV)
}

func (s *Server) handleExportJSON(c *gin.Context) {
	s.export(c, s.svc.Export.ExportJSON)
}

func (s *Server) export(c *gin.Context, render func(ctx context.Context, projectID string) (*export.Document, error)) {
	p, ok := s.project(c)
	if !ok {
		return
	}
	doc, err := render(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

func (s *Server) handleImport(c *gin.Context) {
	p, ok := s.project(c)
	if !ok {
		return
	}
	n, err := s.svc.Import.ImportFromSource(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ImportResponse{Imported: n})
}
