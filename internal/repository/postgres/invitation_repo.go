package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"guestportal/internal/domain"
)

const invitationColumns = "id, guest_name, guest_email, college_name, event_title, subject, staff_number, staff_email, status, created_at, updated_at, deleted_at"

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{DB: db}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (guest_name, guest_email, college_name, event_title, subject, staff_number, staff_email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		inv.GuestName, inv.GuestEmail, inv.CollegeName, inv.EventTitle,
		inv.Subject, inv.StaffNumber, inv.StaffEmail, inv.Status,
		inv.CreatedAt, inv.UpdatedAt,
	).Scan(&inv.ID)
}

func (r *invitationRepository) GetByID(ctx context.Context, id int64) (*domain.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM invitations
		WHERE id = $1 AND deleted_at IS NULL
	`, invitationColumns)
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) List(ctx context.Context, filter domain.InvitationFilter) ([]*domain.Invitation, error) {
	var args []interface{}
	query := fmt.Sprintf(`SELECT %s FROM invitations WHERE deleted_at IS NULL`, invitationColumns)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	invitations := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

func (r *invitationRepository) Count(ctx context.Context, filter domain.InvitationFilter) (int, error) {
	var args []interface{}
	query := `SELECT COUNT(*) FROM invitations WHERE deleted_at IS NULL`
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *invitationRepository) Update(ctx context.Context, id int64, upd domain.InvitationUpdate) (*domain.Invitation, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.GuestName != nil {
		addSet("guest_name", *upd.GuestName)
	}
	if upd.GuestEmail != nil {
		addSet("guest_email", *upd.GuestEmail)
	}
	if upd.CollegeName != nil {
		addSet("college_name", *upd.CollegeName)
	}
	if upd.EventTitle != nil {
		addSet("event_title", *upd.EventTitle)
	}
	if upd.Subject != nil {
		addSet("subject", *upd.Subject)
	}
	if upd.StaffNumber != nil {
		addSet("staff_number", *upd.StaffNumber)
	}
	if upd.StaffEmail != nil {
		addSet("staff_email", *upd.StaffEmail)
	}
	if upd.Status != nil {
		addSet("status", *upd.Status)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE invitations SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, invitationColumns)
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE invitations
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvitation(row rowScanner) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var deletedNull sql.NullTime
	err := row.Scan(
		&inv.ID, &inv.GuestName, &inv.GuestEmail, &inv.CollegeName,
		&inv.EventTitle, &inv.Subject, &inv.StaffNumber, &inv.StaffEmail,
		&inv.Status, &inv.CreatedAt, &inv.UpdatedAt, &deletedNull,
	)
	if err != nil {
		return nil, err
	}
	if deletedNull.Valid {
		inv.DeletedAt = &deletedNull.Time
	}
	return inv, nil
}
