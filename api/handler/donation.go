package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/nikki1405/CSP/api/transport"
	"github.com/nikki1405/CSP/domain"
	"github.com/nikki1405/CSP/pkg/httpcontext"
	donationUC "github.com/nikki1405/CSP/usecase/donation"
)

type DonationHandler struct {
	baseHandler
	uc *donationUC.UseCase
}

func NewDonationHandler(uc *donationUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DonationHandler {
	return &DonationHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List donations
// @Tags donations
// @Router /api/v1/donations [get]
func (h *DonationHandler) List(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	args := ctx.QueryArgs()
	query := domain.Query{
		SearchTerm:  string(args.Peek("search")),
		Location:    string(args.Peek("location")),
		FoodType:    string(args.Peek("food_type")),
		StatusIn:    parseStatuses(string(args.Peek("status"))),
		NewestFirst: true,
	}
	if args.GetBool("mine") {
		query.DonorID = actor.ID
	}

	params := donationUC.ListParams{
		Query:  query,
		Limit:  parseInt(string(args.Peek("limit")), 50),
		Offset: parseInt(string(args.Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.List(stdCtx, params)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	meta := transport.ListMeta{
		Total:    len(result.Donations),
		Rejected: result.Rejected,
	}
	if query.DonorID != "" {
		meta.Stats = result.Stats
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(result.Donations, meta))
}

// @Summary Post donation
// @Tags donations
// @Router /api/v1/donations [post]
func (h *DonationHandler) Create(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	raw, ok := h.parseDonation(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Post(stdCtx, actor, raw)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Get donation
// @Tags donations
// @Router /api/v1/donations/{id} [get]
func (h *DonationHandler) Get(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}

	id, ok := h.donationID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	d, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, d)
}

// @Summary Edit donation
// @Tags donations
// @Router /api/v1/donations/{id} [put]
func (h *DonationHandler) Update(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	id, ok := h.donationID(ctx)
	if !ok {
		return
	}

	raw, ok := h.parseDonation(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, actor, id, raw)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Withdraw donation
// @Tags donations
// @Router /api/v1/donations/{id} [delete]
func (h *DonationHandler) Withdraw(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	id, ok := h.donationID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Withdraw(stdCtx, actor, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Claim donation
// @Tags donations
// @Router /api/v1/donations/{id}/claim [post]
func (h *DonationHandler) Claim(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	id, ok := h.donationID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	claimed, err := h.uc.Claim(stdCtx, actor, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, claimed)
}

// @Summary Complete donation
// @Tags donations
// @Router /api/v1/donations/{id}/complete [post]
func (h *DonationHandler) Complete(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	id, ok := h.donationID(ctx)
	if !ok {
		return
	}

	var req transport.CompleteRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	completed, err := h.uc.Complete(stdCtx, actor, id, req.Feedback)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, completed)
}

// @Summary List my claimed donations
// @Tags donations
// @Router /api/v1/donations/claims/mine [get]
func (h *DonationHandler) MyClaims(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.MyClaims(stdCtx, actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	meta := transport.ListMeta{Total: len(result.Donations), Rejected: result.Rejected}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(result.Donations, meta))
}

// @Summary Claim audit trail for a donation
// @Tags donations
// @Router /api/v1/donations/{id}/claims [get]
func (h *DonationHandler) ClaimHistory(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}

	id, ok := h.donationID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	history, err := h.uc.ClaimHistory(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	meta := transport.ListMeta{Total: len(history)}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(history, meta))
}

// @Summary List my past claims
// @Tags donations
// @Router /api/v1/claims/mine [get]
func (h *DonationHandler) MyClaimHistory(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	history, err := h.uc.MyClaimHistory(stdCtx, actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	meta := transport.ListMeta{Total: len(history)}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(history, meta))
}

func (h *DonationHandler) parseDonation(ctx *fasthttp.RequestCtx) (domain.RawDonation, bool) {
	var req transport.DonationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return domain.RawDonation{}, false
	}
	return domain.RawDonation{
		FoodType:      req.FoodType,
		Category:      req.Category,
		Quantity:      req.Quantity,
		Description:   req.Description,
		PickupAddress: req.PickupAddress,
		ExpiryTime:    req.ExpiryTime,
		DonorName:     req.DonorName,
		DonorPhone:    req.DonorPhone,
		Preferences:   req.Preferences,
	}, true
}

func (h *DonationHandler) donationID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing donation id", nil))
		return "", false
	}
	return id, true
}

func parseStatuses(value string) []domain.DonationStatus {
	if value == "" {
		return nil
	}
	var statuses []domain.DonationStatus
	for _, part := range strings.Split(value, ",") {
		s := domain.DonationStatus(strings.ToLower(strings.TrimSpace(part)))
		if domain.ValidStatus(s) {
			statuses = append(statuses, s)
		}
	}
	return statuses
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
