package rest

import (
	"net/http"

	"github.com/dmitrijs2005/loggy/internal/validation"
	"github.com/gorilla/mux"
)

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lq := validation.NormalizeListQuery(q.Get("sort"), q.Get("dir"), q.Get("q"), q.Get("tab"))

	list, err := s.jobs.List(r.Context(), userIDFrom(r.Context()), lq)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	resp := make([]jobResponse, 0, len(list))
	for _, j := range list {
		resp = append(resp, toJobResponse(j))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) jobStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.jobs.Stats(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	job, err := s.jobs.Create(r.Context(), userIDFrom(r.Context()), req.input())
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toJobResponse(job))
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Get(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJobResponse(job))
}

func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	job, err := s.jobs.Update(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"], req.input())
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJobResponse(job))
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.jobs.Delete(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
