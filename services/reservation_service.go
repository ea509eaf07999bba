package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-backend/models"

	"gorm.io/gorm"
)

// ReservationService owns the reservation lifecycle and the room/date
// conflict model. Intervals are half-open, so a reservation ending at
// 10:00 does not conflict with one starting at 10:00.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// IsAvailable reports whether [start, end) on the given room and date is
// free of pending and approved reservations.
func (s *ReservationService) IsAvailable(roomID uint, date, start, end string) (bool, error) {
	var n int64
	err := s.DB.Model(&models.Reservation{}).
		Where("room_id = ? AND date = ? AND state IN ?",
			roomID, date, []string{models.ReservationPending, models.ReservationApproved}).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Create validates the slot and inserts a pending reservation. The
// overlap check runs inside the insert transaction and the partial unique
// index on (room_id, date, start_time) backstops it, so two concurrent
// requests for the same slot cannot both get in.
func (s *ReservationService) Create(userID, roomID uint, date, start, end, reason, group, subject string) (*models.Reservation, error) {
	if !models.ValidDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if !models.ValidTimeOfDay(start) || !models.ValidTimeOfDay(end) {
		return nil, fmt.Errorf("%w: times must be HH:MM", ErrValidation)
	}
	// Zero-padded HH:MM strings order the same as the times they name.
	if start >= end {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}

	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, fmt.Errorf("%w: room is not active", ErrValidation)
	}

	reservation := models.Reservation{
		RoomID:    roomID,
		UserID:    userID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		State:     models.ReservationPending,
		Reason:    strings.TrimSpace(reason),
		Group:     group,
		Subject:   subject,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Reservation{}).
			Where("room_id = ? AND date = ? AND state IN ?",
				roomID, date, []string{models.ReservationPending, models.ReservationApproved}).
			Where("start_time < ? AND end_time > ?", end, start).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrConflict
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return s.Get(reservation.ID)
}

// SetState is the admin decision endpoint: approve, reject or cancel a
// reservation (or reset it to pending). ApprovedAt is stamped when the
// reservation becomes approved and cleared when it leaves that state.
// Re-admitting a rejected or cancelled reservation re-runs the overlap
// check: the freed slot may have been booked again in the meantime.
func (s *ReservationService) SetState(reservationID uint, newState, adminComment string) (*models.Reservation, error) {
	if !models.ValidReservationState(newState) {
		return nil, fmt.Errorf("%w: state must be pending, approved, rejected or cancelled", ErrValidation)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if liveReservationState(newState) && !liveReservationState(reservation.State) {
			var n int64
			if err := tx.Model(&models.Reservation{}).
				Where("id <> ?", reservation.ID).
				Where("room_id = ? AND date = ? AND state IN ?",
					reservation.RoomID, reservation.Date,
					[]string{models.ReservationPending, models.ReservationApproved}).
				Where("start_time < ? AND end_time > ?", reservation.EndTime, reservation.StartTime).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return ErrConflict
			}
		}

		updates := map[string]interface{}{
			"state":         newState,
			"admin_comment": adminComment,
		}
		switch {
		case newState == models.ReservationApproved:
			updates["approved_at"] = time.Now()
		case reservation.State == models.ReservationApproved:
			updates["approved_at"] = nil
		}

		return tx.Model(&reservation).Updates(updates).Error
	})
	if err != nil {
		// The slot index also rejects a re-admission that lands on an
		// identical start time.
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return s.Get(reservationID)
}

// liveReservationState reports whether state occupies its slot.
func liveReservationState(state string) bool {
	return state == models.ReservationPending || state == models.ReservationApproved
}

// Cancel lets the owner (or an admin) withdraw a reservation that is
// still pending.
func (s *ReservationService) Cancel(reservationID, actorID uint, actorRole string) (*models.Reservation, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if reservation.UserID != actorID && actorRole != models.RoleAdmin {
			return ErrForbidden
		}

		if reservation.State != models.ReservationPending {
			return ErrInvalidState
		}

		return tx.Model(&reservation).Update("state", models.ReservationCancelled).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(reservationID)
}

// Get loads a reservation with its room and user.
func (s *ReservationService) Get(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.Preload("Room").Preload("User").First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

// List returns all reservations, newest first, optionally filtered by
// state.
func (s *ReservationService) List(state string) ([]models.Reservation, error) {
	q := s.DB.Preload("Room").Preload("User").Order("created_at DESC")
	if state != "" {
		q = q.Where("state = ?", state)
	}
	var reservations []models.Reservation
	if err := q.Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListByUser returns one user's reservations, most recent date first.
func (s *ReservationService) ListByUser(userID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.Preload("Room").
		Where("user_id = ?", userID).
		Order("date DESC, start_time DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListForRoomDate returns the live reservations of a room on one day,
// ordered by start time. Used by the public availability view.
func (s *ReservationService) ListForRoomDate(roomID uint, date string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.Preload("User").
		Where("room_id = ? AND date = ? AND state IN ?",
			roomID, date, []string{models.ReservationPending, models.ReservationApproved}).
		Order("start_time ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// isUniqueViolation matches the duplicate-key errors the postgres and
// sqlite drivers produce when the slot index rejects an insert.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
