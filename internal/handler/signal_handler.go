/*
Package handler provides the HTTP handlers and routing setup for the signaling server.

This file implements the /signal endpoint. Requests carry an open-keyed JSON
envelope whose operation is selected by the first recognized key in a fixed
priority order; the matching directory operation runs and the result (or a
held-open long-poll response) is written back.
*/
package handler

import (
	"encoding/json"
	"net/http"

	"lansignal/internal/app/directory"
	"lansignal/internal/pkg/errs"
	"lansignal/internal/pkg/req"
	"lansignal/internal/pkg/resp"
)

// signalOps fixes the dispatch priority for envelopes that carry more than
// one recognized operation key: the first match wins. The order is part of
// the wire contract and must stay deterministic.
var signalOps = [...]string{"register", "unregister", "offer", "answer", "reject", "wait"}

type registerParams struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type unregisterParams struct {
	ID string `json:"id"`
}

type offerParams struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Offer json.RawMessage `json:"offer"`
}

type answerParams struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Answer json.RawMessage `json:"answer"`
}

type rejectParams struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type waitParams struct {
	ID string `json:"id"`
}

// bindParams decodes the operation key's value into the params struct.
func bindParams(raw json.RawMessage, dst any) *errs.CustomError {
	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.NewError(errs.ErrInvalidParams)
	}
	return nil
}

// HandleSignal returns the handler for the /signal endpoint.
func HandleSignal(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var envelope map[string]json.RawMessage
		if bindErr := req.BindJSON(w, r, &envelope); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}

		var op string
		var raw json.RawMessage
		for _, candidate := range signalOps {
			if v, ok := envelope[candidate]; ok {
				op = candidate
				raw = v
				break
			}
		}

		if op == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknownOperation))
			return
		}

		switch op {
		case "register":
			handleRegister(deps, w, r, raw)
		case "unregister":
			handleUnregister(deps, w, r, raw)
		case "offer":
			handleOffer(deps, w, r, raw)
		case "answer":
			handleAnswer(deps, w, r, raw)
		case "reject":
			handleReject(deps, w, r, raw)
		case "wait":
			handleWait(deps, w, r, raw)
		}
	}
}

func handleRegister(deps *AppDeps, w http.ResponseWriter, r *http.Request, raw json.RawMessage) {
	var p registerParams
	if bindErr := bindParams(raw, &p); bindErr != nil {
		resp.RespondError(w, r, bindErr)
		return
	}

	result, opErr := deps.Directory.Register(p.ID, p.Name)
	if opErr != nil {
		resp.RespondError(w, r, opErr)
		return
	}

	resp.RespondSuccess(w, r, result)
}

func handleUnregister(deps *AppDeps, w http.ResponseWriter, r *http.Request, raw json.RawMessage) {
	var p unregisterParams
	if bindErr := bindParams(raw, &p); bindErr != nil {
		resp.RespondError(w, r, bindErr)
		return
	}

	if opErr := deps.Directory.Unregister(p.ID); opErr != nil {
		resp.RespondError(w, r, opErr)
		return
	}

	resp.RespondSuccess(w, r, nil)
}

func handleOffer(deps *AppDeps, w http.ResponseWriter, r *http.Request, raw json.RawMessage) {
	var p offerParams
	if bindErr := bindParams(raw, &p); bindErr != nil {
		resp.RespondError(w, r, bindErr)
		return
	}

	if opErr := deps.Directory.Offer(p.ID, p.Offer, p.Name); opErr != nil {
		resp.RespondError(w, r, opErr)
		return
	}

	resp.RespondSuccess(w, r, nil)
}

func handleAnswer(deps *AppDeps, w http.ResponseWriter, r *http.Request, raw json.RawMessage) {
	var p answerParams
	if bindErr := bindParams(raw, &p); bindErr != nil {
		resp.RespondError(w, r, bindErr)
		return
	}

	if opErr := deps.Directory.Answer(p.ID, p.Answer, p.Name); opErr != nil {
		resp.RespondError(w, r, opErr)
		return
	}

	resp.RespondSuccess(w, r, nil)
}

func handleReject(deps *AppDeps, w http.ResponseWriter, r *http.Request, raw json.RawMessage) {
	var p rejectParams
	if bindErr := bindParams(raw, &p); bindErr != nil {
		resp.RespondError(w, r, bindErr)
		return
	}

	if opErr := deps.Directory.Reject(p.ID, p.Name); opErr != nil {
		resp.RespondError(w, r, opErr)
		return
	}

	resp.RespondSuccess(w, r, nil)
}

// handleWait holds the response open until a batch arrives or the client
// disconnects. The server never times the poll out on its own; retry policy
// lives entirely in the client's long-poll loop.
func handleWait(deps *AppDeps, w http.ResponseWriter, r *http.Request, raw json.RawMessage) {
	var p waitParams
	if bindErr := bindParams(raw, &p); bindErr != nil {
		resp.RespondError(w, r, bindErr)
		return
	}

	batch, waiter, opErr := deps.Directory.Wait(p.ID)
	if opErr != nil {
		resp.RespondError(w, r, opErr)
		return
	}

	if waiter == nil {
		resp.RespondSuccess(w, r, directory.WaitResult{Messages: batch})
		return
	}

	select {
	case batch := <-waiter.Done():
		resp.RespondSuccess(w, r, directory.WaitResult{Messages: batch})
	case <-r.Context().Done():
		// Connection dropped before fulfillment. The identity check inside
		// CancelWait keeps this from clearing a newer wait's slot.
		deps.Directory.CancelWait(p.ID, waiter)
	}
}
