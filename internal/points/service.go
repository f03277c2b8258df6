package points

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/pkg/enums"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
)

// historyLimit caps how many ledger rows the admin view returns.
const historyLimit = 20

// Entry is one ledger row in a user's points history.
type Entry struct {
	ID          uuid.UUID                   `json:"id"`
	Type        enums.PointsTransactionType `json:"type"`
	Amount      int                         `json:"amount"`
	Description string                      `json:"description"`
	BookingID   *uuid.UUID                  `json:"booking_id"`
	CreatedAt   time.Time                   `json:"created_at"`
}

// History is a user's current balance plus their newest ledger rows.
type History struct {
	Username string  `json:"username"`
	Balance  int     `json:"balance"`
	Entries  []Entry `json:"entries"`
}

// Service reads user points for the admin surface.
type Service interface {
	History(ctx context.Context, username string) (History, error)
}

type service struct {
	repo Repository
}

// NewService wires a points service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("points repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) History(ctx context.Context, username string) (History, error) {
	if username == "" {
		return History{}, pkgerrors.New(pkgerrors.CodeValidation, "username required")
	}

	user, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return History{}, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return History{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	rows, err := s.repo.ListRecentByUsername(ctx, username, historyLimit)
	if err != nil {
		return History{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list points transactions")
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			ID:          row.ID,
			Type:        row.Type,
			Amount:      row.Amount,
			Description: row.Description,
			BookingID:   row.BookingID,
			CreatedAt:   row.CreatedAt,
		})
	}

	return History{
		Username: user.Username,
		Balance:  user.PointsBalance,
		Entries:  entries,
	}, nil
}
