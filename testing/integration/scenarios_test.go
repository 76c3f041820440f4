package integration

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	"github.com/zoobzio/condql"
)

// backend adapts a database connection to the scenarios below.
type backend struct {
	dialect condql.Dialect
	exec    func(ctx context.Context, query string, args ...any) error
	strings func(ctx context.Context, query string, args ...any) ([]string, error)
	count   func(ctx context.Context, query string, args ...any) (int64, error)
}

// sqlBackend wraps a database/sql handle.
func sqlBackend(d condql.Dialect, db *sql.DB) backend {
	return backend{
		dialect: d,
		exec: func(ctx context.Context, query string, args ...any) error {
			_, err := db.ExecContext(ctx, query, args...)
			return err
		},
		strings: func(ctx context.Context, query string, args ...any) ([]string, error) {
			rows, err := db.QueryContext(ctx, query, args...)
			if err != nil {
				return nil, err
			}
			defer rows.Close()
			var out []string
			for rows.Next() {
				var s string
				if err := rows.Scan(&s); err != nil {
					return nil, err
				}
				out = append(out, s)
			}
			return out, rows.Err()
		},
		count: func(ctx context.Context, query string, args ...any) (int64, error) {
			var n int64
			err := db.QueryRowContext(ctx, query, args...).Scan(&n)
			return n, err
		},
	}
}

// seed inserts the shared fixture through multi-row INSERTs. Tables must be
// freshly created so identities start at 1.
func seed(ctx context.Context, t *testing.T, b backend) {
	t.Helper()

	users := condql.Insert(b.dialect, "users").
		Columns("username", "email", "age", "active").
		Values("alice", "alice@example.com", 30, true).
		Values("bob", "bob@example.com", 25, true).
		Values("charlie", "charlie@example.com", 35, false).
		Values("diana", "diana@example.com", 28, true)

	posts := condql.Insert(b.dialect, "posts").
		Columns("user_id", "title", "views", "published").
		Values(1, "First Post", 100, true).
		Values(1, "Second Post", 50, true).
		Values(2, "Bob's Post", 75, true).
		Values(3, "Draft Post", 0, false)

	orders := condql.Insert(b.dialect, "orders").
		Columns("user_id", "total", "status").
		Values(1, 99.99, "completed").
		Values(1, 149.99, "completed").
		Values(2, 49.99, "pending").
		Values(4, 199.99, "completed")

	for _, stmt := range []*condql.InsertBuilder{users, posts, orders} {
		query, args, err := stmt.Query()
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if err := b.exec(ctx, query, args...); err != nil {
			t.Fatalf("Seed failed: %v\nSQL: %s", err, query)
		}
	}
}

// usernames renders sel and returns the selected usernames.
func usernames(ctx context.Context, t *testing.T, b backend, sel *condql.SelectBuilder) []string {
	t.Helper()
	query, args, err := sel.Query()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	names, err := b.strings(ctx, query, args...)
	if err != nil {
		t.Fatalf("Query failed: %v\nSQL: %s", err, query)
	}
	return names
}

func countRows(ctx context.Context, t *testing.T, b backend, table string, fn func(*condql.Where)) int64 {
	t.Helper()
	sel := condql.Select(b.dialect).ColumnsRaw("COUNT(*)").From(table)
	if fn != nil {
		sel.Where(fn)
	}
	query, args, err := sel.Query()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	n, err := b.count(ctx, query, args...)
	if err != nil {
		t.Fatalf("Count failed: %v\nSQL: %s", err, query)
	}
	return n
}

func assertNames(t *testing.T, want, got []string) {
	t.Helper()
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// runConditionScenarios checks the condition builder against a seeded
// database. Every query orders by username so results are deterministic.
func runConditionScenarios(ctx context.Context, t *testing.T, b backend) {
	d := b.dialect
	users := func(fn func(*condql.Where)) *condql.SelectBuilder {
		return condql.Select(d, "username").From("users").Where(fn).OrderBy("username", condql.ASC)
	}

	t.Run("scalar", func(t *testing.T) {
		got := usernames(ctx, t, b, users(func(w *condql.Where) { w.Column("active", true) }))
		assertNames(t, []string{"alice", "bob", "diana"}, got)
	})

	t.Run("in or", func(t *testing.T) {
		got := usernames(ctx, t, b, users(func(w *condql.Where) {
			w.Column("id", []int{1, 3}).OrColumnOp("age", ">", 30)
		}))
		assertNames(t, []string{"alice", "charlie"}, got)
	})

	t.Run("single element list", func(t *testing.T) {
		got := usernames(ctx, t, b, users(func(w *condql.Where) { w.ColumnOp("id", condql.IN, []int{2}) }))
		assertNames(t, []string{"bob"}, got)
	})

	t.Run("group", func(t *testing.T) {
		got := usernames(ctx, t, b, users(func(w *condql.Where) {
			w.Column("active", true).Group(func(q *condql.Conditions) {
				q.ColumnOp("age", "<", 26).OrLike("username", "d%")
			})
		}))
		assertNames(t, []string{"bob", "diana"}, got)
	})

	t.Run("not", func(t *testing.T) {
		got := usernames(ctx, t, b, users(func(w *condql.Where) {
			w.Not(func(q *condql.Conditions) { q.Column("username", []string{"alice", "bob"}) })
		}))
		assertNames(t, []string{"charlie", "diana"}, got)
	})

	t.Run("between", func(t *testing.T) {
		got := usernames(ctx, t, b, users(func(w *condql.Where) { w.Between("age", 26, 31) }))
		assertNames(t, []string{"alice", "diana"}, got)
	})

	t.Run("null", func(t *testing.T) {
		got := usernames(ctx, t, b, users(func(w *condql.Where) { w.IsNull("age") }))
		assertNames(t, nil, got)
		if n := countRows(ctx, t, b, "users", func(w *condql.Where) { w.IsNotNull("email") }); n != 4 {
			t.Errorf("Expected 4 users with email, got %d", n)
		}
	})

	t.Run("raw", func(t *testing.T) {
		got := usernames(ctx, t, b, users(func(w *condql.Where) { w.Raw("!age * 2 > ?", 60) }))
		assertNames(t, []string{"charlie"}, got)
	})

	t.Run("exists", func(t *testing.T) {
		got := usernames(ctx, t, b, users(func(w *condql.Where) {
			w.Exists(condql.Select(d, "id").From("orders").Where(func(w *condql.Where) {
				w.Relation("orders.user_id", "users.id")
			}))
		}))
		assertNames(t, []string{"alice", "bob", "diana"}, got)
	})

	t.Run("subquery", func(t *testing.T) {
		got := usernames(ctx, t, b, users(func(w *condql.Where) {
			w.ColumnSub("id", condql.IN, condql.Select(d, "user_id").From("posts").Where(func(w *condql.Where) {
				w.Column("published", true)
			}))
		}))
		assertNames(t, []string{"alice", "bob"}, got)
	})

	t.Run("join", func(t *testing.T) {
		sel := condql.Select(d, "u.username").
			From("posts p").
			Join("users u", func(on *condql.On) { on.Relation("p.user_id", "u.id") }).
			Where(func(w *condql.Where) { w.ColumnOp("p.views", ">=", 75) }).
			OrderBy("u.username", condql.ASC)
		assertNames(t, []string{"alice", "bob"}, usernames(ctx, t, b, sel))
	})

	t.Run("pagination", func(t *testing.T) {
		sel := condql.Select(d, "username").From("users").OrderBy("username", condql.ASC).Limit(2).Offset(1)
		assertNames(t, []string{"bob", "charlie"}, usernames(ctx, t, b, sel))
	})

	if d.Capabilities().RowValues {
		t.Run("row values", func(t *testing.T) {
			got := usernames(ctx, t, b, users(func(w *condql.Where) {
				w.Column([]string{"username", "age"}, [][]any{{"alice", 30}, {"charlie", 30}})
			}))
			assertNames(t, []string{"alice"}, got)
		})
	}
}

// runDateScenarios checks the date part helpers. It expects an empty events
// table with name and happened_at columns.
func runDateScenarios(ctx context.Context, t *testing.T, b backend) {
	d := b.dialect

	t.Run("dates", func(t *testing.T) {
		query, args, err := condql.Insert(d, "events").
			Columns("name", "happened_at").
			Values("launch", "2024-03-05 09:30:00").
			Values("review", "2024-08-17 14:00:00").
			Values("retro", "2023-08-01 16:45:00").
			Query()
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if err := b.exec(ctx, query, args...); err != nil {
			t.Fatalf("Insert failed: %v\nSQL: %s", err, query)
		}

		events := func(fn func(*condql.Where)) *condql.SelectBuilder {
			return condql.Select(d, "name").From("events").Where(fn).OrderBy("name", condql.ASC)
		}
		assertNames(t, []string{"launch", "review"},
			usernames(ctx, t, b, events(func(w *condql.Where) { w.Year("happened_at", 2024) })))
		assertNames(t, []string{"retro", "review"},
			usernames(ctx, t, b, events(func(w *condql.Where) { w.Month("happened_at", "08") })))
		assertNames(t, []string{"launch"},
			usernames(ctx, t, b, events(func(w *condql.Where) { w.Date("happened_at", "2024-03-05") })))
		assertNames(t, []string{"retro", "review"},
			usernames(ctx, t, b, events(func(w *condql.Where) { w.TimeOp("happened_at", ">", "12:00:00") })))
		assertNames(t, []string{"retro"},
			usernames(ctx, t, b, events(func(w *condql.Where) {
				w.Day("happened_at", 1).OrYearOp("happened_at", "<", 2020)
			})))
	})
}

// runMutationScenarios checks UPDATE and DELETE. It changes the fixture and
// must run last.
func runMutationScenarios(ctx context.Context, t *testing.T, b backend) {
	d := b.dialect

	t.Run("update", func(t *testing.T) {
		query, args, err := condql.Update(d, "users").
			Set("age", 31).
			Where(func(w *condql.Where) { w.Column("username", "alice") }).
			Query()
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if err := b.exec(ctx, query, args...); err != nil {
			t.Fatalf("Update failed: %v\nSQL: %s", err, query)
		}
		if n := countRows(ctx, t, b, "users", func(w *condql.Where) { w.Column("age", 31) }); n != 1 {
			t.Errorf("Expected 1 updated user, got %d", n)
		}
	})

	t.Run("delete", func(t *testing.T) {
		query, args, err := condql.Delete(d, "orders").
			Where(func(w *condql.Where) { w.Column("status", "pending") }).
			Query()
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if err := b.exec(ctx, query, args...); err != nil {
			t.Fatalf("Delete failed: %v\nSQL: %s", err, query)
		}
		if n := countRows(ctx, t, b, "orders", nil); n != 3 {
			t.Errorf("Expected 3 orders, got %d", n)
		}
	})
}
