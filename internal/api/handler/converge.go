package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/grantsync/internal/api/request"
	"github.com/edvin/grantsync/internal/api/response"
	"github.com/edvin/grantsync/internal/converge"
	"github.com/edvin/grantsync/internal/metrics"
	"github.com/edvin/grantsync/internal/model"
	"github.com/edvin/grantsync/internal/priv"
)

// Engine runs one convergence request. *converge.Engine satisfies it.
type Engine interface {
	Run(ctx context.Context, req converge.Request) (model.ConvergeResult, error)
}

type Converge struct {
	engine Engine
	ex     converge.Executor
}

func NewConverge(engine Engine, ex converge.Executor) *Converge {
	return &Converge{engine: engine, ex: ex}
}

func (h *Converge) Run(w http.ResponseWriter, r *http.Request) {
	var req request.Converge
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.engine.Run(r.Context(), converge.Request{
		User:       req.User,
		Host:       req.Host,
		State:      req.State,
		Password:   req.Password,
		Privileges: req.Privileges,
		DryRun:     req.DryRun,
	})
	if err != nil {
		metrics.ConvergeRuns.WithLabelValues(req.State, "error").Inc()
		response.WriteError(w, statusFor(err), err.Error())
		return
	}

	outcome := "unchanged"
	if result.Changed {
		outcome = "changed"
	}
	metrics.ConvergeRuns.WithLabelValues(req.State, outcome).Inc()
	response.WriteJSON(w, http.StatusOK, result)
}

// Grants reports an account's live privileges as a specification string.
func (h *Converge) Grants(w http.ResponseWriter, r *http.Request) {
	id := model.AccountIdentity{
		User: chi.URLParam(r, "user"),
		Host: chi.URLParam(r, "host"),
	}
	if id.User == "" || id.Host == "" {
		response.WriteError(w, http.StatusBadRequest, "user and host are required")
		return
	}

	exists, err := h.ex.Exists(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !exists {
		response.WriteError(w, http.StatusNotFound, "no such account")
		return
	}

	lines, err := h.ex.ShowGrants(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	m, err := priv.ParseGrants(lines)
	if err != nil {
		response.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{
		"user":       id.User,
		"host":       id.Host,
		"privileges": priv.FormatSpec(m),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, priv.ErrMalformedSpec),
		errors.Is(err, converge.ErrPasswordRequired):
		return http.StatusBadRequest
	case errors.Is(err, priv.ErrUnparsableGrant):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
