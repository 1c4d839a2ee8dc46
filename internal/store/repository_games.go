package store

import (
	"context"
	"encoding/json"
	"errors"

	"bingo-server/internal/game"

	"github.com/jackc/pgx/v5"
)

// Games are stored document-style: fields, winners and podium live in jsonb
// columns and partial updates replace exactly one column. Handlers re-fetch
// before every mutation, so a column update never clobbers sibling data it
// did not compute.

func (s *Store) CreateGame(ctx context.Context, authorID, title string, fields []game.Field) (string, error) {
	id := NewID()
	for i := range fields {
		if fields[i].ID == "" {
			fields[i].ID = NewID()
		}
		fields[i].Checked = false
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO games (id, author_id, title, phase, fields, winners, podium)
		 VALUES ($1, $2, $3, $4, $5, '[]', '[]')`,
		id, authorID, title, string(game.PhaseEditing), fieldsJSON)
	return id, err
}

func (s *Store) GetGame(ctx context.Context, id string) (*game.Game, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT id, author_id, title, phase, fields, winners, podium, created_at
		 FROM games WHERE id = $1`, id)
	return scanGame(row)
}

func (s *Store) ListGamesByAuthor(ctx context.Context, authorID string) ([]game.Game, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, author_id, title, phase, fields, winners, podium, created_at
		 FROM games WHERE author_id = $1 ORDER BY created_at DESC`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []game.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

func (s *Store) UpdateGameFields(ctx context.Context, id string, fields []game.Field) error {
	b, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return s.updateGameColumn(ctx, id, "fields", string(b))
}

func (s *Store) UpdateGamePhase(ctx context.Context, id string, phase game.Phase) error {
	return s.updateGameColumn(ctx, id, "phase", string(phase))
}

func (s *Store) UpdateGamePodium(ctx context.Context, id string, podium []game.PodiumEntry) error {
	b, err := json.Marshal(podium)
	if err != nil {
		return err
	}
	return s.updateGameColumn(ctx, id, "podium", string(b))
}

func (s *Store) UpdateGameWinners(ctx context.Context, id string, winners []string) error {
	if winners == nil {
		winners = []string{}
	}
	b, err := json.Marshal(winners)
	if err != nil {
		return err
	}
	return s.updateGameColumn(ctx, id, "winners", string(b))
}

func (s *Store) updateGameColumn(ctx context.Context, id, column, value string) error {
	var sql string
	switch column {
	case "fields":
		sql = `UPDATE games SET fields = $2 WHERE id = $1`
	case "winners":
		sql = `UPDATE games SET winners = $2 WHERE id = $1`
	case "podium":
		sql = `UPDATE games SET podium = $2 WHERE id = $1`
	case "phase":
		sql = `UPDATE games SET phase = $2 WHERE id = $1`
	default:
		return errors.New("unknown game column " + column)
	}
	tag, err := s.Pool.Exec(ctx, sql, id, value)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanGame(row pgx.Row) (*game.Game, error) {
	var (
		g       game.Game
		phase   string
		fields  []byte
		winners []byte
		podium  []byte
	)
	if err := row.Scan(&g.ID, &g.AuthorID, &g.Title, &phase, &fields, &winners, &podium, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	g.Phase = game.Phase(phase)
	if err := json.Unmarshal(fields, &g.Fields); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(winners, &g.Winners); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(podium, &g.Podium); err != nil {
		return nil, err
	}
	return &g, nil
}
