package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"hotelops/internal/domain/pricing"
	"hotelops/internal/pkg/errs"
	"hotelops/internal/usecase/queries"
	"hotelops/internal/usecase/remote"

	"github.com/google/uuid"
)

var ErrInvalidRateMode = errs.New("invalid rate mode")

// BatchValidationError carries every offending category of a rejected
// batch so the caller can surface all of them at once. Nothing reaches
// the remote service when validation fails.
type BatchValidationError struct {
	Violations map[pricing.CategoryID]pricing.RangeViolation
}

func (e *BatchValidationError) Error() string {
	cats := make([]string, 0, len(e.Violations))
	for id := range e.Violations {
		cats = append(cats, id.String())
	}
	return fmt.Sprintf("rate tier validation failed for: %s", strings.Join(cats, ", "))
}

// PartialCommitError reports a batch whose per-category commits partly
// failed. Committed categories stay committed; the caller re-attempts only
// the failed subset.
type PartialCommitError struct {
	Succeeded []pricing.CategoryID
	Failed    []pricing.CategoryID
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("pricing commit incomplete: %d categories saved, %d failed", len(e.Succeeded), len(e.Failed))
}

type PricingCommands interface {
	// SavePricingBatch validates the edited tiers of one rate mode and,
	// on success, commits each changed category as an independent
	// sequence of per-room updates. The commit is deliberately not
	// atomic across categories.
	SavePricingBatch(ctx context.Context, hotelID uuid.UUID, mode pricing.RateMode, edits []RateTierEdit) error
}

type pricingCommandsImpl struct {
	gateway remote.PricingGateway
	logger  *slog.Logger
}

func NewPricingCommands(gateway remote.PricingGateway, logger *slog.Logger) PricingCommands {
	return &pricingCommandsImpl{
		gateway: gateway,
		logger:  logger,
	}
}

func (p *pricingCommandsImpl) SavePricingBatch(ctx context.Context, hotelID uuid.UUID, mode pricing.RateMode, edits []RateTierEdit) error {
	if !mode.IsValid() {
		return ErrInvalidRateMode
	}

	rooms, err := p.gateway.FetchRoomsByHotel(ctx, hotelID)
	if err != nil {
		return errs.Mark(err, errs.ErrRemoteOperationFailed)
	}

	sheet := pricing.NewSheet(mode, queries.AggregateRateTiers(rooms, mode))
	committed := make(map[pricing.CategoryID]pricing.RateTier, len(sheet.Tiers()))
	for _, t := range sheet.Tiers() {
		committed[t.CategoryID] = t
	}

	editedSet := make(map[pricing.CategoryID]bool, len(edits))
	for _, edit := range edits {
		base, ok := committed[edit.CategoryID]
		if !ok {
			return errs.Mark(fmt.Errorf("category %s has no rooms", edit.CategoryID), pricing.ErrUnknownCategory)
		}
		if err := sheet.Edit(pricing.RateTier{
			CategoryID:     edit.CategoryID,
			MinPrice:       edit.MinPrice,
			BasePrice:      edit.BasePrice,
			MaxPrice:       edit.MaxPrice,
			AvailableUnits: base.AvailableUnits,
		}); err != nil {
			return err
		}
		editedSet[edit.CategoryID] = true
	}

	// Only the edited categories are validated: a stored tier that is
	// already out of range must not block an unrelated save.
	edited := make([]pricing.RateTier, 0, len(editedSet))
	for _, t := range sheet.Tiers() {
		if editedSet[t.CategoryID] {
			edited = append(edited, t)
		}
	}
	if violations := pricing.ValidateBatch(edited); len(violations) > 0 {
		return &BatchValidationError{Violations: violations}
	}

	// Saving the tiers exactly as loaded is a no-op.
	dirty := sheet.Dirty()
	if len(dirty) == 0 {
		return nil
	}

	roomsByCategory := make(map[pricing.CategoryID][]remote.RoomUnit)
	for _, room := range rooms {
		id := pricing.CategoryID(room.Category)
		roomsByCategory[id] = append(roomsByCategory[id], room)
	}

	working := make(map[pricing.CategoryID]pricing.RateTier, len(sheet.Tiers()))
	for _, t := range sheet.Tiers() {
		working[t.CategoryID] = t
	}

	var succeeded []pricing.CategoryID
	for _, categoryID := range dirty {
		if commitErr := p.commitCategory(ctx, mode, working[categoryID], roomsByCategory[categoryID]); commitErr != nil {
			p.logger.Warn("rate tier commit failed",
				"hotel_id", hotelID,
				"category", categoryID.String(),
				"mode", mode.String(),
				"error", commitErr.Error(),
			)
			continue
		}
		sheet.MarkCommitted(categoryID)
		succeeded = append(succeeded, categoryID)
	}

	// Whatever is still dirty after the loop is exactly the failed subset.
	if failed := sheet.Dirty(); len(failed) > 0 {
		return &PartialCommitError{Succeeded: succeeded, Failed: failed}
	}
	return nil
}

// commitCategory pushes one category's tier to every room unit in it.
// Units share the category's pricing, so each update is idempotent and
// safe to replay after a partial failure.
func (p *pricingCommandsImpl) commitCategory(ctx context.Context, mode pricing.RateMode, tier pricing.RateTier, rooms []remote.RoomUnit) error {
	for _, room := range rooms {
		update := remote.RoomPricingUpdate{
			Mode:          mode.String(),
			MinPrice:      tier.MinPrice,
			BasePrice:     tier.BasePrice,
			MaxPrice:      tier.MaxPrice,
			ExtraBedPrice: room.ExtraBedPrice,
		}
		if _, err := p.gateway.UpdateRoomPricing(ctx, room.ID, update); err != nil {
			return errs.Wrap(err, fmt.Sprintf("room %s", room.ID))
		}
	}
	return nil
}
