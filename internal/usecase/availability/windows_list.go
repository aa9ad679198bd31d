package availability

import (
	"context"

	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/models"
)

type ListWindows struct {
	repo scheduling.Repository
}

func NewListWindows(repo scheduling.Repository) *ListWindows {
	return &ListWindows{repo: repo}
}

func (uc *ListWindows) Execute(
	ctx context.Context,
	lawyerID uint,
	activeOnly bool,
) ([]models.AvailabilityWindow, error) {
	return uc.repo.ListWindows(ctx, lawyerID, activeOnly)
}
