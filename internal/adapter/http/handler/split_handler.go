package handler

import (
	"time"

	"party-loot-ledger/internal/adapter/http/dto"
	"party-loot-ledger/internal/core/domain"
	"party-loot-ledger/internal/core/ports"
	"party-loot-ledger/pkg/apperror"
	"party-loot-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SplitHandler handles loot-split endpoints.
type SplitHandler struct {
	splitSvc ports.SplitService
}

// NewSplitHandler creates a new SplitHandler.
func NewSplitHandler(splitSvc ports.SplitService) *SplitHandler {
	return &SplitHandler{splitSvc: splitSvc}
}

// Preview handles POST /api/v1/split/preview — computes a split without
// touching the ledger.
func (h *SplitHandler) Preview(c *gin.Context) {
	in, _, ok := bindSplitInput(c)
	if !ok {
		return
	}

	result, err := h.splitSvc.PreviewSplit(in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Commit handles POST /api/v1/split/commit — computes a split and appends
// the single fund transaction.
func (h *SplitHandler) Commit(c *gin.Context) {
	in, note, ok := bindSplitInput(c)
	if !ok {
		return
	}

	result, tx, err := h.splitSvc.CommitSplit(c.Request.Context(), in, uuid.NewString(), time.Now().UTC(), note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.SplitCommitResponse{
		Result:      result,
		Transaction: toTransactionResponse(*tx),
	})
}

func bindSplitInput(c *gin.Context) (domain.LootSplitInput, string, bool) {
	var req dto.SplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return domain.LootSplitInput{}, "", false
	}
	in, err := toSplitInput(req)
	if err != nil {
		response.Error(c, err)
		return domain.LootSplitInput{}, "", false
	}
	return in, req.Note, true
}

func toSplitInput(req dto.SplitRequest) (domain.LootSplitInput, error) {
	loot, err := domain.ParseCoinVector(req.Loot)
	if err != nil {
		return domain.LootSplitInput{}, err
	}

	partySize, err := req.PartySize.Int64()
	if err != nil || partySize < 1 || partySize > int64(int(^uint(0)>>1)) {
		return domain.LootSplitInput{}, apperror.ErrInvalidPartySize()
	}

	choice := domain.PreAllocation{Mode: domain.PreAllocationMode(req.PreAllocation.Mode)}
	switch choice.Mode {
	case domain.PreAllocationFixed:
		if req.PreAllocation.Fixed == nil {
			return domain.LootSplitInput{}, apperror.Validation("fixed pre-allocation requires a fixed vector")
		}
		fixed, err := domain.ParseCoinVector(req.PreAllocation.Fixed)
		if err != nil {
			return domain.LootSplitInput{}, err
		}
		choice.Fixed = fixed
	case domain.PreAllocationPercent:
		if req.PreAllocation.Percent == nil {
			return domain.LootSplitInput{}, apperror.ErrInvalidPercent()
		}
		choice.Percent = *req.PreAllocation.Percent
	}

	return domain.LootSplitInput{
		Loot:          loot,
		PartySize:     int(partySize),
		PreAllocation: choice,
	}, nil
}
