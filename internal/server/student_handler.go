package server

import (
	"github.com/alexanderramin/nuclea/internal/service"
	"github.com/gin-gonic/gin"
)

// StudentHandler serves the stored, read-only views.
type StudentHandler struct {
	profiles service.ProfileService
	analyses service.AnalysisService
}

func NewStudentHandler(profiles service.ProfileService, analyses service.AnalysisService) *StudentHandler {
	return &StudentHandler{profiles: profiles, analyses: analyses}
}

func (h *StudentHandler) Profile(c *gin.Context) {
	resp, err := h.profiles.StudentProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *StudentHandler) Works(c *gin.Context) {
	works, err := h.profiles.ListWorks(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"student_id": c.Param("id"), "works": works})
}

func (h *StudentHandler) Analysis(c *gin.Context) {
	view, err := h.analyses.GetAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, view)
}
