// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package planstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/loomplan/loom/lib/clock"
	"github.com/loomplan/loom/lib/codec"
	"github.com/loomplan/loom/lib/plangraph"
	"github.com/loomplan/loom/lib/schema/workitem"
	"github.com/loomplan/loom/lib/sqlitepool"
	"github.com/loomplan/loom/lib/timeline"
)

// ErrPlanNotFound indicates no plan is stored under the requested
// name.
var ErrPlanNotFound = errors.New("plan not found")

const schema = `
CREATE TABLE IF NOT EXISTS plans (
	name        TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT '',
	saved_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
	plan_name    TEXT NOT NULL,
	position     INTEGER NOT NULL,
	id           TEXT NOT NULL,
	kind         TEXT NOT NULL,
	name         TEXT NOT NULL,
	link         TEXT,
	owner        TEXT,
	timeline     BLOB,
	points       INTEGER,
	participants BLOB,
	PRIMARY KEY (plan_name, position)
);

CREATE TABLE IF NOT EXISTS edges (
	plan_name TEXT NOT NULL,
	position  INTEGER NOT NULL,
	from_id   TEXT NOT NULL,
	to_id     TEXT NOT NULL,
	dep_type  TEXT NOT NULL,
	PRIMARY KEY (plan_name, position)
);
`

// Store persists named plans in a SQLite database.
//
// Write path: SavePlan replaces the plan's rows in a single IMMEDIATE
// transaction, so readers never observe a half-saved plan.
//
// Read path: LoadPlan selects the plan's rows in position order and
// replays them through plangraph, re-running every compatibility and
// cycle check.
type Store struct {
	pool   *sqlitepool.Pool
	clock  clock.Clock
	logger *slog.Logger
}

// StoreConfig holds the parameters for opening a plan store.
type StoreConfig struct {
	// Path is the filesystem path to the SQLite database file. The
	// parent directory must exist. Required.
	Path string

	// PoolSize is the number of connections in the pool. Defaults to
	// 4 if zero or negative.
	PoolSize int

	// Clock provides the current time for saved_at stamps. Defaults
	// to the real clock.
	Clock clock.Clock

	// Logger receives operational messages. Defaults to a no-op
	// logger.
	Logger *slog.Logger
}

// Open opens (creating if necessary) a plan store at the configured
// path. The caller must Close the store when done.
func Open(cfg StoreConfig) (*Store, error) {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 4
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     cfg.Path,
		PoolSize: poolSize,
		Logger:   cfg.Logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("plan store: %w", err)
	}

	return &Store{
		pool:   pool,
		clock:  cfg.Clock,
		logger: cfg.Logger,
	}, nil
}

// Close releases the store's database connections.
func (s *Store) Close() error {
	return s.pool.Close()
}

// PlanInfo summarizes one stored plan.
type PlanInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SavedAt     time.Time `json:"saved_at"`
	Items       int       `json:"items"`
	Edges       int       `json:"edges"`
}

// SavePlan stores the graph under name, replacing any previous plan
// stored under the same name.
func (s *Store) SavePlan(ctx context.Context, name, description string, graph *plangraph.Graph) (err error) {
	if name == "" {
		return fmt.Errorf("plan store: plan name is required")
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("plan store: save %q: %w", name, err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("plan store: begin transaction: %w", err)
	}
	defer endTransaction(&err)

	if err := s.deleteRows(conn, name); err != nil {
		return err
	}

	err = sqlitex.Execute(conn,
		"INSERT INTO plans (name, description, saved_at) VALUES (?, ?, ?)",
		&sqlitex.ExecOptions{
			Args: []any{name, description, s.clock.Now().UnixNano()},
		})
	if err != nil {
		return fmt.Errorf("plan store: insert plan %q: %w", name, err)
	}

	itemPosition := 0
	edgePosition := 0
	for _, item := range graph.Items() {
		if err := s.insertItem(conn, name, itemPosition, item); err != nil {
			return err
		}
		itemPosition++

		deps, _ := graph.Dependencies(item.ID())
		for _, dep := range deps {
			err = sqlitex.Execute(conn,
				"INSERT INTO edges (plan_name, position, from_id, to_id, dep_type) VALUES (?, ?, ?, ?, ?)",
				&sqlitex.ExecOptions{
					Args: []any{name, edgePosition, item.ID().String(), dep.TargetID.String(), string(dep.Type)},
				})
			if err != nil {
				return fmt.Errorf("plan store: insert edge: %w", err)
			}
			edgePosition++
		}
	}

	s.logger.Info("plan saved",
		"plan", name,
		"items", itemPosition,
		"edges", edgePosition,
	)
	return nil
}

// LoadPlan rebuilds the graph stored under name.
func (s *Store) LoadPlan(ctx context.Context, name string) (*plangraph.Graph, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan store: load %q: %w", name, err)
	}
	defer s.pool.Put(conn)

	exists, err := s.planExists(conn, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("plan store: %q: %w", name, ErrPlanNotFound)
	}

	graph := plangraph.New()
	byID := make(map[uuid.UUID]workitem.Item)

	err = sqlitex.Execute(conn,
		`SELECT id, kind, name, link, owner, timeline, points, participants
		 FROM items WHERE plan_name = ? ORDER BY position`,
		&sqlitex.ExecOptions{
			Args: []any{name},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				item, err := scanItem(stmt)
				if err != nil {
					return err
				}
				if err := graph.Insert(item); err != nil {
					return err
				}
				byID[item.ID()] = item
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("plan store: load %q items: %w", name, err)
	}

	type storedEdge struct {
		from, to uuid.UUID
		dep      workitem.DependencyType
	}
	var storedEdges []storedEdge
	err = sqlitex.Execute(conn,
		"SELECT from_id, to_id, dep_type FROM edges WHERE plan_name = ? ORDER BY position",
		&sqlitex.ExecOptions{
			Args: []any{name},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				from, err := uuid.Parse(stmt.ColumnText(0))
				if err != nil {
					return fmt.Errorf("parsing edge from_id: %w", err)
				}
				to, err := uuid.Parse(stmt.ColumnText(1))
				if err != nil {
					return fmt.Errorf("parsing edge to_id: %w", err)
				}
				dep, err := workitem.ParseDependencyType(stmt.ColumnText(2))
				if err != nil {
					return err
				}
				storedEdges = append(storedEdges, storedEdge{from: from, to: to, dep: dep})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("plan store: load %q edges: %w", name, err)
	}

	for _, edge := range storedEdges {
		from, ok := byID[edge.from]
		if !ok {
			return nil, fmt.Errorf("plan store: plan %q: edge references unknown item %s", name, edge.from)
		}
		to, ok := byID[edge.to]
		if !ok {
			return nil, fmt.Errorf("plan store: plan %q: edge references unknown item %s", name, edge.to)
		}
		if err := graph.Connect(from, to, edge.dep); err != nil {
			return nil, fmt.Errorf("plan store: plan %q: %w", name, err)
		}
	}
	return graph, nil
}

// ListPlans returns summaries of every stored plan, sorted by name.
func (s *Store) ListPlans(ctx context.Context) ([]PlanInfo, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan store: list: %w", err)
	}
	defer s.pool.Put(conn)

	var infos []PlanInfo
	err = sqlitex.Execute(conn,
		`SELECT p.name, p.description, p.saved_at,
		        (SELECT COUNT(*) FROM items i WHERE i.plan_name = p.name),
		        (SELECT COUNT(*) FROM edges e WHERE e.plan_name = p.name)
		 FROM plans p ORDER BY p.name`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				infos = append(infos, PlanInfo{
					Name:        stmt.ColumnText(0),
					Description: stmt.ColumnText(1),
					SavedAt:     time.Unix(0, stmt.ColumnInt64(2)).UTC(),
					Items:       stmt.ColumnInt(3),
					Edges:       stmt.ColumnInt(4),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("plan store: list: %w", err)
	}
	return infos, nil
}

// DeletePlan removes the plan stored under name.
func (s *Store) DeletePlan(ctx context.Context, name string) (err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("plan store: delete %q: %w", name, err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("plan store: begin transaction: %w", err)
	}
	defer endTransaction(&err)

	exists, err := s.planExists(conn, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("plan store: %q: %w", name, ErrPlanNotFound)
	}
	if err := s.deleteRows(conn, name); err != nil {
		return err
	}

	s.logger.Info("plan deleted", "plan", name)
	return nil
}

func (s *Store) planExists(conn *sqlite.Conn, name string) (bool, error) {
	var exists bool
	err := sqlitex.Execute(conn,
		"SELECT 1 FROM plans WHERE name = ?",
		&sqlitex.ExecOptions{
			Args: []any{name},
			ResultFunc: func(*sqlite.Stmt) error {
				exists = true
				return nil
			},
		})
	if err != nil {
		return false, fmt.Errorf("plan store: checking %q: %w", name, err)
	}
	return exists, nil
}

func (s *Store) deleteRows(conn *sqlite.Conn, name string) error {
	for _, query := range []string{
		"DELETE FROM plans WHERE name = ?",
		"DELETE FROM items WHERE plan_name = ?",
		"DELETE FROM edges WHERE plan_name = ?",
	} {
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{Args: []any{name}})
		if err != nil {
			return fmt.Errorf("plan store: clearing %q: %w", name, err)
		}
	}
	return nil
}

func (s *Store) insertItem(conn *sqlite.Conn, plan string, position int, item workitem.Item) error {
	var link any
	if value, ok := item.Link(); ok {
		link = value
	}
	var owner any
	if value, ok := item.Owner(); ok {
		owner = value
	}

	var timelineBlob any
	if tl, ok := item.Timeline(); ok {
		data, err := codec.Marshal(tl)
		if err != nil {
			return fmt.Errorf("plan store: marshal timeline: %w", err)
		}
		timelineBlob = data
	}

	var points any
	if value, ok := item.Points(); ok {
		points = value
	}

	var participantsBlob any
	if participants := item.Participants(); len(participants) > 0 {
		data, err := codec.Marshal(participants)
		if err != nil {
			return fmt.Errorf("plan store: marshal participants: %w", err)
		}
		participantsBlob = data
	}

	err := sqlitex.Execute(conn,
		`INSERT INTO items
		 (plan_name, position, id, kind, name, link, owner, timeline, points, participants)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				plan, position,
				item.ID().String(), string(item.Kind()), item.Name(),
				link, owner, timelineBlob, points, participantsBlob,
			},
		})
	if err != nil {
		return fmt.Errorf("plan store: insert item %q: %w", item.Name(), err)
	}
	return nil
}

func scanItem(stmt *sqlite.Stmt) (workitem.Item, error) {
	id, err := uuid.Parse(stmt.ColumnText(0))
	if err != nil {
		return nil, fmt.Errorf("parsing item id: %w", err)
	}
	kind, err := workitem.ParseKind(stmt.ColumnText(1))
	if err != nil {
		return nil, err
	}

	builder := workitem.Builder{}.WithID(id).WithName(stmt.ColumnText(2))
	if stmt.ColumnType(3) != sqlite.TypeNull {
		builder = builder.WithLink(stmt.ColumnText(3))
	}
	if stmt.ColumnType(4) != sqlite.TypeNull {
		builder = builder.WithOwner(stmt.ColumnText(4))
	}
	if stmt.ColumnType(5) != sqlite.TypeNull {
		blob := make([]byte, stmt.ColumnLen(5))
		stmt.ColumnBytes(5, blob)
		var tl timeline.Timeline
		if err := codec.Unmarshal(blob, &tl); err != nil {
			return nil, fmt.Errorf("decoding timeline: %w", err)
		}
		builder = builder.WithTimeline(tl)
	}
	if stmt.ColumnType(6) != sqlite.TypeNull {
		builder = builder.WithPoints(stmt.ColumnInt(6))
	}
	if stmt.ColumnType(7) != sqlite.TypeNull {
		blob := make([]byte, stmt.ColumnLen(7))
		stmt.ColumnBytes(7, blob)
		var participants []string
		if err := codec.Unmarshal(blob, &participants); err != nil {
			return nil, fmt.Errorf("decoding participants: %w", err)
		}
		builder = builder.WithParticipants(participants...)
	}

	item, err := builder.Build(kind)
	if err != nil {
		return nil, fmt.Errorf("rebuilding item %s: %w", id, err)
	}
	return item, nil
}
