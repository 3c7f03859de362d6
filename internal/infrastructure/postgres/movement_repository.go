package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla movements es append-only: este adaptador no expone UPDATE ni
// DELETE sobre movimientos.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, type, quantity, note, user_id, requester_name, requester_cpf, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		nullIfEmpty(movement.Note), nullIfEmpty(movement.UserID),
		nullIfEmpty(movement.RequesterName), nullIfEmpty(movement.RequesterCPF),
		movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `
		SELECT id, product_id, type, quantity, note, user_id, requester_name, requester_cpf, created_at
		FROM movements WHERE id = $1`
	var m entity.Movement
	var note, userID, requesterName, requesterCPF *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity,
		&note, &userID, &requesterName, &requesterCPF, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	m.Note = orEmpty(note)
	m.UserID = orEmpty(userID)
	m.RequesterName = orEmpty(requesterName)
	m.RequesterCPF = orEmpty(requesterCPF)
	return &m, nil
}

// SumByProduct agrega todo el historial del producto en una sola pasada:
// total de entradas y total de salidas. Fuente de verdad del saldo.
func (r *MovementRepo) SumByProduct(productID string) (entries, exits int64, err error) {
	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE type = 'IN'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE type = 'OUT'), 0)
		FROM movements WHERE product_id = $1`
	err = r.q.QueryRow(context.Background(), query, productID).Scan(&entries, &exits)
	if err != nil {
		return 0, 0, fmt.Errorf("sum movements: %w", err)
	}
	return entries, exits, nil
}

// List devuelve el historial filtrado (join con products para el nombre),
// del más reciente al más antiguo. Los filtros se combinan con AND.
func (r *MovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.MovementWithProduct, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.quantity, m.note, m.user_id, m.requester_name, m.requester_cpf, m.created_at, p.name
		FROM movements m
		JOIN products p ON p.id = m.product_id`
	where, args := buildMovementFilter(filter)
	query += where
	query += fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementWithProduct
	for rows.Next() {
		var m entity.MovementWithProduct
		var note, userID, requesterName, requesterCPF *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity,
			&note, &userID, &requesterName, &requesterCPF, &m.CreatedAt, &m.ProductName); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Note = orEmpty(note)
		m.UserID = orEmpty(userID)
		m.RequesterName = orEmpty(requesterName)
		m.RequesterCPF = orEmpty(requesterCPF)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Count cuenta el historial filtrado (para la paginación).
func (r *MovementRepo) Count(filter repository.MovementFilter) (int, error) {
	query := `
		SELECT count(*)
		FROM movements m
		JOIN products p ON p.id = m.product_id`
	where, args := buildMovementFilter(filter)
	query += where

	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}

// buildMovementFilter arma la cláusula WHERE conjuntiva del historial.
// From/To son inclusivos sobre la FECHA de creación (no el instante).
func buildMovementFilter(filter repository.MovementFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.ProductName != "" {
		args = append(args, "%"+filter.ProductName+"%")
		conds = append(conds, fmt.Sprintf("p.name ILIKE $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("m.type = $%d", len(args)))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("m.created_at::date >= $%d::date", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("m.created_at::date <= $%d::date", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}
