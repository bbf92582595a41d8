package services

import (
	"context"
	"encoding/json"

	"github.com/nikki1405/CSP/domain"
	"github.com/nikki1405/CSP/internal/infrastructure/buffer"
	"github.com/nikki1405/CSP/usecase"
)

type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferProfile(ctx context.Context, operation string, user *domain.User) error {
	if b.processor == nil || user == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	item := buffer.Item{
		UserID:    user.ID,
		Entity:    buffer.EntityProfile,
		Operation: operation,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferDonation(ctx context.Context, operation string, donation *domain.Donation) error {
	if b.processor == nil || donation == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(donation)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        donation.ID,
		UserID:    donation.DonorID,
		Entity:    buffer.EntityDonation,
		Operation: operation,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
