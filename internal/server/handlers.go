package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/skillgap-analyzer/internal/affiliate"
	"github.com/jonathan/skillgap-analyzer/internal/analyzer"
	"github.com/jonathan/skillgap-analyzer/internal/roadmap"
	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// CreateAnalysisRequest is the POST /analyses body.
type CreateAnalysisRequest struct {
	UserID               string              `json:"user_id" validate:"required"`
	ResumeID             string              `json:"resume_id" validate:"required"`
	ResumeText           string              `json:"resume_text" validate:"required"`
	CurrentRole          string              `json:"current_role"`
	CurrentSkills        []types.ResumeSkill `json:"current_skills"`
	TargetRole           string              `json:"target_role" validate:"required"`
	TargetOccupationCode string              `json:"target_occupation_code"`
	TargetSkills         []types.TargetSkill `json:"target_skills"`
	AvailabilityHours    float64             `json:"availability_hours" validate:"gte=0"`
	LearningVelocity     float64             `json:"learning_velocity" validate:"gte=0"`
}

// CreateAnalysisResponse wraps the analysis with its cache disposition.
type CreateAnalysisResponse struct {
	Analysis  *types.SkillGapAnalysis `json:"analysis"`
	FromCache bool                    `json:"from_cache"`
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req CreateAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	res, err := s.analyzer.Analyze(r.Context(), analyzer.Request{
		UserID:               req.UserID,
		ResumeID:             req.ResumeID,
		ResumeText:           req.ResumeText,
		CurrentRole:          req.CurrentRole,
		CurrentSkills:        req.CurrentSkills,
		TargetRole:           req.TargetRole,
		TargetOccupationCode: req.TargetOccupationCode,
		TargetSkills:         req.TargetSkills,
		AvailabilityHours:    req.AvailabilityHours,
		LearningVelocity:     req.LearningVelocity,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	status := http.StatusCreated
	if res.FromCache {
		status = http.StatusOK
	}
	s.jsonResponse(w, status, CreateAnalysisResponse{Analysis: res.Analysis, FromCache: res.FromCache})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseAnalysisID(w, r)
	if !ok {
		return
	}

	analysis, err := s.analyzer.Get(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseAnalysisID(w, r)
	if !ok {
		return
	}

	analysis, err := s.analyzer.Get(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, roadmap.ProgressReport(analysis))
}

// UpdateProgressRequest is the PATCH /analyses/{id}/progress body.
type UpdateProgressRequest struct {
	CompletionProgress float64 `json:"completion_progress"`
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseAnalysisID(w, r)
	if !ok {
		return
	}

	var req UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := s.analyzer.UpdateProgress(r.Context(), id, req.CompletionProgress)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseAnalysisID(w, r)
	if !ok {
		return
	}
	if s.catalog == nil {
		s.errorResponse(w, http.StatusNotImplemented, "Course catalog is not configured")
		return
	}

	skill := r.URL.Query().Get("skill")
	if skill == "" {
		s.errorResponse(w, http.StatusBadRequest, "Query parameter 'skill' is required")
		return
	}
	sortKey := affiliate.SortKey(r.URL.Query().Get("sort"))
	if sortKey == "" {
		sortKey = affiliate.SortRatingDesc
	}

	analysis, err := s.analyzer.Get(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	rec := affiliate.FetchRecommendations(r.Context(), s.catalog, skill, sortKey, affiliate.DefaultTopN)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"recommendations": rec,
		"tracking_id":     affiliate.TrackingID(analysis.UserID, analysis.ID, skill),
	})
}

func (s *Server) handleRecordClick(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseAnalysisID(w, r)
	if !ok {
		return
	}

	if err := s.tracker.RecordClick(r.Context(), id); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// RecordConversionRequest is the POST /analyses/{id}/conversions body.
type RecordConversionRequest struct {
	Revenue float64 `json:"revenue" validate:"gte=0"`
}

func (s *Server) handleRecordConversion(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseAnalysisID(w, r)
	if !ok {
		return
	}

	var req RecordConversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := s.tracker.RecordConversion(r.Context(), id, req.Revenue); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (s *Server) handleTrajectory(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	targetRole := r.URL.Query().Get("target_role")
	if targetRole == "" {
		s.errorResponse(w, http.StatusBadRequest, "Query parameter 'target_role' is required")
		return
	}

	traj, err := s.analyzer.Trajectory(r.Context(), userID, targetRole)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if traj == nil {
		s.errorResponse(w, http.StatusNotFound, "Not enough history for a trajectory")
		return
	}
	s.jsonResponse(w, http.StatusOK, traj)
}

func (s *Server) handleSearchOccupations(w http.ResponseWriter, r *http.Request) {
	if s.occupations == nil {
		s.errorResponse(w, http.StatusNotImplemented, "Occupation provider is not configured")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		s.errorResponse(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	occupations, err := s.occupations.SearchOccupations(r.Context(), query)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, occupations)
}

func (s *Server) parseAnalysisID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID")
		return uuid.Nil, false
	}
	return id, true
}
