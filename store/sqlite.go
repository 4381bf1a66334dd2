package store

import (
	"context"
	"errors"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"varcss/variables"
)

const schema = `
CREATE TABLE IF NOT EXISTS collections (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS modes (
	id            TEXT PRIMARY KEY,
	collection_id TEXT NOT NULL REFERENCES collections(id),
	name          TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS variables (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	collection_id TEXT NOT NULL REFERENCES collections(id),
	type          TEXT NOT NULL,
	code_syntax   TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS vals (
	variable_id TEXT NOT NULL REFERENCES variables(id),
	mode_id     TEXT NOT NULL REFERENCES modes(id),
	kind        TEXT NOT NULL,
	r REAL NOT NULL DEFAULT 0,
	g REAL NOT NULL DEFAULT 0,
	b REAL NOT NULL DEFAULT 0,
	a REAL NOT NULL DEFAULT 0,
	num REAL NOT NULL DEFAULT 0,
	txt TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (variable_id, mode_id)
);
`

// value kinds as persisted in vals table
const (
	kindColor   = "COLOR"
	kindFloat   = "FLOAT"
	kindString  = "STRING"
	kindBoolean = "BOOLEAN"
	kindAlias   = "ALIAS"
)

// SQLite keeps document in single SQLite database file. Opened read-only it
// behaves like a document user has no edit rights for.
// NOTE: presently not to be used concurrently!
type SQLite struct {
	conn     *sqlite.Conn
	readOnly bool
}

var _ variables.Store = (*SQLite)(nil)

// OpenSQLite opens (creating if necessary and allowed) document database.
func OpenSQLite(path string, readOnly bool) (*SQLite, error) {
	flags := []sqlite.OpenFlags{sqlite.OpenReadWrite, sqlite.OpenCreate}
	if readOnly {
		flags = []sqlite.OpenFlags{sqlite.OpenReadOnly}
	}
	conn, err := sqlite.OpenConn(path, flags...)
	if err != nil {
		return nil, fmt.Errorf("unable to open document '%s': %w", path, err)
	}
	if !readOnly {
		if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
			conn.Close()
			return nil, fmt.Errorf("unable to prepare document '%s': %w", path, err)
		}
	}
	return &SQLite{conn: conn, readOnly: readOnly}, nil
}

// Close releases database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

// ReadOnly reports whether document was opened without edit rights.
func (s *SQLite) ReadOnly() bool {
	return s.readOnly
}

func (s *SQLite) writable(op string) error {
	if s.readOnly {
		return fmt.Errorf("%s: %w", op, variables.ErrReadOnly)
	}
	return nil
}

// wrap maps SQLite result codes to store errors.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if sqlite.ErrCode(err).ToPrimary() == sqlite.ResultReadOnly {
		return fmt.Errorf("%s: %w", op, errors.Join(variables.ErrReadOnly, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *SQLite) Collections(ctx context.Context) ([]variables.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		res   []variables.Collection
		index = make(map[string]int)
	)
	err := sqlitex.Execute(s.conn, `SELECT id, name FROM collections ORDER BY rowid`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			index[stmt.ColumnText(0)] = len(res)
			res = append(res, variables.Collection{ID: stmt.ColumnText(0), Name: stmt.ColumnText(1)})
			return nil
		}})
	if err != nil {
		return nil, wrap("list collections", err)
	}
	err = sqlitex.Execute(s.conn, `SELECT id, collection_id, name FROM modes ORDER BY rowid`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			i, ok := index[stmt.ColumnText(1)]
			if !ok {
				return nil
			}
			res[i].Modes = append(res[i].Modes, variables.Mode{ID: stmt.ColumnText(0), Name: stmt.ColumnText(2)})
			return nil
		}})
	if err != nil {
		return nil, wrap("list modes", err)
	}
	return res, nil
}

func (s *SQLite) collection(id string) (variables.Collection, error) {
	var (
		c     variables.Collection
		found bool
	)
	err := sqlitex.Execute(s.conn, `SELECT id, name FROM collections WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				c.ID, c.Name, found = stmt.ColumnText(0), stmt.ColumnText(1), true
				return nil
			}})
	if err != nil {
		return c, wrap("get collection", err)
	}
	if !found {
		return c, fmt.Errorf("collection %s: %w", id, variables.ErrNotFound)
	}
	err = sqlitex.Execute(s.conn, `SELECT id, name FROM modes WHERE collection_id = ? ORDER BY rowid`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				c.Modes = append(c.Modes, variables.Mode{ID: stmt.ColumnText(0), Name: stmt.ColumnText(1)})
				return nil
			}})
	if err != nil {
		return c, wrap("get modes", err)
	}
	return c, nil
}

func (s *SQLite) CreateCollection(ctx context.Context, name string) (c variables.Collection, err error) {
	if err = ctx.Err(); err != nil {
		return c, err
	}
	if err = s.writable("create collection"); err != nil {
		return c, err
	}
	cid, err := newID()
	if err != nil {
		return c, err
	}
	mid, err := newID()
	if err != nil {
		return c, err
	}

	defer sqlitex.Save(s.conn)(&err)

	if err = sqlitex.Execute(s.conn, `INSERT INTO collections (id, name) VALUES (?, ?)`,
		&sqlitex.ExecOptions{Args: []any{cid, name}}); err != nil {
		return c, wrap("create collection", err)
	}
	if err = sqlitex.Execute(s.conn, `INSERT INTO modes (id, collection_id, name) VALUES (?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{mid, cid, DefaultModeName}}); err != nil {
		return c, wrap("create default mode", err)
	}
	return variables.Collection{ID: cid, Name: name, Modes: []variables.Mode{{ID: mid, Name: DefaultModeName}}}, nil
}

func (s *SQLite) AddMode(ctx context.Context, collectionID, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.writable("add mode"); err != nil {
		return "", err
	}
	c, err := s.collection(collectionID)
	if err != nil {
		return "", err
	}
	if _, ok := c.ModeByName(name); ok {
		return "", fmt.Errorf("mode %q already exists in collection %q", name, c.Name)
	}
	id, err := newID()
	if err != nil {
		return "", err
	}
	if err := sqlitex.Execute(s.conn, `INSERT INTO modes (id, collection_id, name) VALUES (?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{id, collectionID, name}}); err != nil {
		return "", wrap("add mode", err)
	}
	return id, nil
}

func (s *SQLite) RenameMode(ctx context.Context, collectionID, modeID, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.writable("rename mode"); err != nil {
		return err
	}
	if err := sqlitex.Execute(s.conn, `UPDATE modes SET name = ? WHERE id = ? AND collection_id = ?`,
		&sqlitex.ExecOptions{Args: []any{name, modeID, collectionID}}); err != nil {
		return wrap("rename mode", err)
	}
	if s.conn.Changes() == 0 {
		return fmt.Errorf("mode %s: %w", modeID, variables.ErrNotFound)
	}
	return nil
}

const selectVariables = `SELECT id, name, collection_id, type, code_syntax FROM variables`

func scanVariable(stmt *sqlite.Stmt) variables.Variable {
	return variables.Variable{
		ID:           stmt.ColumnText(0),
		Name:         stmt.ColumnText(1),
		CollectionID: stmt.ColumnText(2),
		Type:         variables.ResolvedType(stmt.ColumnText(3)),
		CodeSyntax:   stmt.ColumnText(4),
		ValuesByMode: make(map[string]variables.Value),
	}
}

func scanValue(stmt *sqlite.Stmt, first int) (variables.Value, error) {
	switch kind := stmt.ColumnText(first); kind {
	case kindColor:
		return variables.RGBA{
			R: stmt.ColumnFloat(first + 1),
			G: stmt.ColumnFloat(first + 2),
			B: stmt.ColumnFloat(first + 3),
			A: stmt.ColumnFloat(first + 4),
		}, nil
	case kindFloat:
		return variables.Float(stmt.ColumnFloat(first + 5)), nil
	case kindBoolean:
		return variables.Boolean(stmt.ColumnFloat(first+5) != 0), nil
	case kindString:
		return variables.String(stmt.ColumnText(first + 6)), nil
	case kindAlias:
		return variables.Alias{ID: stmt.ColumnText(first + 6)}, nil
	default:
		return nil, fmt.Errorf("unknown value kind %q", kind)
	}
}

// valueArgs returns kind, r, g, b, a, num, txt.
func valueArgs(val variables.Value) ([]any, error) {
	switch v := val.(type) {
	case variables.RGBA:
		return []any{kindColor, v.R, v.G, v.B, v.A, 0.0, ""}, nil
	case variables.Float:
		return []any{kindFloat, 0.0, 0.0, 0.0, 0.0, float64(v), ""}, nil
	case variables.Boolean:
		n := 0.0
		if v {
			n = 1
		}
		return []any{kindBoolean, 0.0, 0.0, 0.0, 0.0, n, ""}, nil
	case variables.String:
		return []any{kindString, 0.0, 0.0, 0.0, 0.0, 0.0, string(v)}, nil
	case variables.Alias:
		return []any{kindAlias, 0.0, 0.0, 0.0, 0.0, 0.0, v.ID}, nil
	default:
		return nil, fmt.Errorf("unsupported value %T", val)
	}
}

func (s *SQLite) Variables(ctx context.Context) ([]variables.Variable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		res   []variables.Variable
		index = make(map[string]int)
	)
	err := sqlitex.Execute(s.conn, selectVariables+` ORDER BY rowid`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			v := scanVariable(stmt)
			index[v.ID] = len(res)
			res = append(res, v)
			return nil
		}})
	if err != nil {
		return nil, wrap("list variables", err)
	}
	err = sqlitex.Execute(s.conn, `SELECT variable_id, mode_id, kind, r, g, b, a, num, txt FROM vals`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			i, ok := index[stmt.ColumnText(0)]
			if !ok {
				return nil
			}
			val, err := scanValue(stmt, 2)
			if err != nil {
				return err
			}
			res[i].ValuesByMode[stmt.ColumnText(1)] = val
			return nil
		}})
	if err != nil {
		return nil, wrap("list values", err)
	}
	return res, nil
}

func (s *SQLite) Variable(ctx context.Context, id string) (variables.Variable, error) {
	if err := ctx.Err(); err != nil {
		return variables.Variable{}, err
	}
	var (
		v     variables.Variable
		found bool
	)
	err := sqlitex.Execute(s.conn, selectVariables+` WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				v, found = scanVariable(stmt), true
				return nil
			}})
	if err != nil {
		return v, wrap("get variable", err)
	}
	if !found {
		return v, fmt.Errorf("variable %s: %w", id, variables.ErrNotFound)
	}
	err = sqlitex.Execute(s.conn, `SELECT mode_id, kind, r, g, b, a, num, txt FROM vals WHERE variable_id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				val, err := scanValue(stmt, 1)
				if err != nil {
					return err
				}
				v.ValuesByMode[stmt.ColumnText(0)] = val
				return nil
			}})
	if err != nil {
		return v, wrap("get values", err)
	}
	return v, nil
}

func (s *SQLite) CreateVariable(ctx context.Context, name, collectionID string, t variables.ResolvedType) (variables.Variable, error) {
	if err := ctx.Err(); err != nil {
		return variables.Variable{}, err
	}
	if err := s.writable("create variable"); err != nil {
		return variables.Variable{}, err
	}
	if _, err := variables.ParseResolvedType(string(t)); err != nil {
		return variables.Variable{}, err
	}
	if _, err := s.collection(collectionID); err != nil {
		return variables.Variable{}, err
	}
	id, err := newID()
	if err != nil {
		return variables.Variable{}, err
	}
	if err := sqlitex.Execute(s.conn, `INSERT INTO variables (id, name, collection_id, type) VALUES (?, ?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{id, name, collectionID, string(t)}}); err != nil {
		return variables.Variable{}, wrap("create variable", err)
	}
	return variables.Variable{ID: id, Name: name, CollectionID: collectionID, Type: t, ValuesByMode: make(map[string]variables.Value)}, nil
}

func (s *SQLite) SetValue(ctx context.Context, variableID, modeID string, val variables.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.writable("set value"); err != nil {
		return err
	}
	v, err := s.Variable(ctx, variableID)
	if err != nil {
		return err
	}
	c, err := s.collection(v.CollectionID)
	if err != nil {
		return err
	}
	found := false
	for _, m := range c.Modes {
		if m.ID == modeID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("mode %s in collection %q: %w", modeID, c.Name, variables.ErrNotFound)
	}
	var target *variables.Variable
	if a, ok := val.(variables.Alias); ok {
		if t, err := s.Variable(ctx, a.ID); err == nil {
			target = &t
		}
	}
	if err := variables.CheckValue(v, val, target); err != nil {
		return err
	}
	args, err := valueArgs(val)
	if err != nil {
		return err
	}
	args = append([]any{variableID, modeID}, args...)
	if err := sqlitex.Execute(s.conn, `INSERT OR REPLACE INTO vals (variable_id, mode_id, kind, r, g, b, a, num, txt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{Args: args}); err != nil {
		return wrap("set value", err)
	}
	return nil
}

func (s *SQLite) SetCodeSyntax(ctx context.Context, variableID, syntax string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.writable("set code syntax"); err != nil {
		return err
	}
	if err := sqlitex.Execute(s.conn, `UPDATE variables SET code_syntax = ? WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []any{syntax, variableID}}); err != nil {
		return wrap("set code syntax", err)
	}
	if s.conn.Changes() == 0 {
		return fmt.Errorf("variable %s: %w", variableID, variables.ErrNotFound)
	}
	return nil
}
