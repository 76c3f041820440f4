package condql_test

import (
	"errors"
	"testing"

	"github.com/zoobzio/condql"
	"github.com/zoobzio/condql/mariadb"
	"github.com/zoobzio/condql/mssql"
	"github.com/zoobzio/condql/mysql"
	"github.com/zoobzio/condql/postgres"
	"github.com/zoobzio/condql/sqlite"
	condqltest "github.com/zoobzio/condql/testing"
)

func TestSelect(t *testing.T) {
	d := mysql.New()

	tests := []struct {
		name   string
		build  func() *condql.SelectBuilder
		sql    string
		params []any
	}{
		{
			name:  "star",
			build: func() *condql.SelectBuilder { return condql.Select(d).From("users") },
			sql:   "SELECT * FROM `users`",
		},
		{
			name: "where order limit",
			build: func() *condql.SelectBuilder {
				return condql.Select(d, "id", "name").
					From("users").
					Where(func(w *condql.Where) { w.Column("active", true).OrColumn("id", []int{1, 2}) }).
					OrderBy("name", condql.ASC).
					OrderBy("id", "desc").
					Limit(10).
					Offset(20)
			},
			sql:    "SELECT `id`, `name` FROM `users` WHERE `active` = ? OR `id` IN (?, ?) ORDER BY `name` ASC, `id` DESC LIMIT 10 OFFSET 20",
			params: []any{true, 1, 2},
		},
		{
			name: "distinct with alias",
			build: func() *condql.SelectBuilder {
				return condql.Select(d, "u.email AS mail", "u.*").Distinct().From("users u")
			},
			sql: "SELECT DISTINCT `u`.`email` AS `mail`, `u`.* FROM `users` AS `u`",
		},
		{
			name: "joins",
			build: func() *condql.SelectBuilder {
				return condql.Select(d, "u.id", "p.title").
					From("users u").
					Join("posts p", func(on *condql.On) {
						on.Relation("p.user_id", "u.id").Column("p.published", true)
					}).
					LeftJoin("comments c", func(on *condql.On) { on.Relation("c.post_id", "p.id") }).
					CrossJoin("tags").
					Where(func(w *condql.Where) { w.ColumnOp("u.age", ">", 18) })
			},
			sql: "SELECT `u`.`id`, `p`.`title` FROM `users` AS `u`" +
				" INNER JOIN `posts` AS `p` ON `p`.`user_id` = `u`.`id` AND `p`.`published` = ?" +
				" LEFT JOIN `comments` AS `c` ON `c`.`post_id` = `p`.`id`" +
				" CROSS JOIN `tags`" +
				" WHERE `u`.`age` > ?",
			params: []any{true, 18},
		},
		{
			name: "group having",
			build: func() *condql.SelectBuilder {
				return condql.Select(d, "user_id").
					ColumnsRaw("COUNT(*) AS !total").
					From("orders").
					Where(func(w *condql.Where) { w.Column("status", "paid") }).
					GroupBy("user_id").
					Having(func(h *condql.Having) { h.Raw("COUNT(*) > ?", 5) }).
					OrderByRaw("!total DESC")
			},
			sql:    "SELECT `user_id`, COUNT(*) AS `total` FROM `orders` WHERE `status` = ? GROUP BY `user_id` HAVING (COUNT(*) > ?) ORDER BY `total` DESC",
			params: []any{"paid", 5},
		},
		{
			name: "repeated where extends",
			build: func() *condql.SelectBuilder {
				return condql.Select(d).From("users").
					Where(func(w *condql.Where) { w.Column("a", 1) }).
					Where(func(w *condql.Where) { w.OrColumn("b", 2) })
			},
			sql:    "SELECT * FROM `users` WHERE `a` = ? OR `b` = ?",
			params: []any{1, 2},
		},
		{
			name: "from subquery",
			build: func() *condql.SelectBuilder {
				sub := condql.Select(d, "user_id").From("orders").Where(func(w *condql.Where) {
					w.ColumnOp("total", ">", 100)
				})
				return condql.Select(d).FromSub(sub, "big").Where(func(w *condql.Where) {
					w.IsNotNull("user_id")
				})
			},
			sql:    "SELECT * FROM (SELECT `user_id` FROM `orders` WHERE `total` > ?) AS `big` WHERE `user_id` IS NOT NULL",
			params: []any{100},
		},
		{
			name: "for update",
			build: func() *condql.SelectBuilder {
				return condql.Select(d).From("jobs").Where(func(w *condql.Where) { w.Column("id", 7) }).ForUpdate()
			},
			sql:    "SELECT * FROM `jobs` WHERE `id` = ? FOR UPDATE",
			params: []any{7},
		},
		{
			name: "offset only",
			build: func() *condql.SelectBuilder {
				return condql.Select(d).From("users").Offset(5)
			},
			sql: "SELECT * FROM `users` LIMIT 18446744073709551615 OFFSET 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params, err := tt.build().ToSQL()
			condqltest.AssertRendered(t, tt.sql, tt.params, sql, params, err)
		})
	}
}

func TestSelect_Errors(t *testing.T) {
	d := mysql.New()

	tests := []struct {
		name     string
		build    func() *condql.SelectBuilder
		sentinel error
	}{
		{
			name:     "bad direction",
			build:    func() *condql.SelectBuilder { return condql.Select(d).From("t").OrderBy("a", "sideways") },
			sentinel: condql.ErrInvalidValue,
		},
		{
			name:     "negative limit",
			build:    func() *condql.SelectBuilder { return condql.Select(d).From("t").Limit(-1) },
			sentinel: condql.ErrInvalidValue,
		},
		{
			name:     "negative offset",
			build:    func() *condql.SelectBuilder { return condql.Select(d).From("t").Offset(-1) },
			sentinel: condql.ErrInvalidValue,
		},
		{
			name: "cross join with on",
			build: func() *condql.SelectBuilder {
				return condql.Select(d).From("t").JoinOn(condql.CrossJoin, "u", func(*condql.On) {})
			},
			sentinel: condql.ErrInvalidValue,
		},
		{
			name: "where error",
			build: func() *condql.SelectBuilder {
				return condql.Select(d).From("t").Where(func(w *condql.Where) {
					w.Column([]string{"a", "b"}, []int{1})
				})
			},
			sentinel: condql.ErrWrongRowValuesCount,
		},
		{
			name: "on error",
			build: func() *condql.SelectBuilder {
				return condql.Select(d).From("t").Join("u", func(on *condql.On) { on.RelationOp("a", "=", 1) })
			},
			sentinel: condql.ErrInvalidValue,
		},
		{
			name:     "raw placeholders",
			build:    func() *condql.SelectBuilder { return condql.Select(d).ColumnsRaw("COUNT(?)") },
			sentinel: condql.ErrInvalidValue,
		},
		{
			name:     "for update on sqlite",
			build:    func() *condql.SelectBuilder { return condql.Select(sqlite.New()).From("t").ForUpdate() },
			sentinel: condql.ErrUnsupportedFeature,
		},
		{
			name:     "no dialect",
			build:    func() *condql.SelectBuilder { return condql.Select(nil).From("t") },
			sentinel: condql.ErrUndefinedDialect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.build()
			_, _, err := b.ToSQL()
			condqltest.AssertErrorIs(t, err, tt.sentinel)
			if b.String() != "" {
				t.Errorf("String() = %q, want empty on error", b.String())
			}
		})
	}

	condqltest.AssertPanics(t, func() {
		condql.Select(d).Limit(-5).MustToSQL()
	})
}

func TestSelect_Dialects(t *testing.T) {
	build := func(d condql.Dialect) *condql.SelectBuilder {
		return condql.Select(d, "id").
			From("users").
			Where(func(w *condql.Where) {
				w.Column("status", "active").Column("role", []string{"admin", "owner"})
			}).
			OrderBy("id", condql.ASC).
			Limit(10).
			Offset(20)
	}

	tests := []struct {
		name  string
		d     condql.Dialect
		query string
	}{
		{
			name:  "mysql",
			d:     mysql.New(),
			query: "SELECT `id` FROM `users` WHERE `status` = ? AND `role` IN (?, ?) ORDER BY `id` ASC LIMIT 10 OFFSET 20",
		},
		{
			name:  "mariadb",
			d:     mariadb.New(),
			query: "SELECT `id` FROM `users` WHERE `status` = ? AND `role` IN (?, ?) ORDER BY `id` ASC LIMIT 10 OFFSET 20",
		},
		{
			name:  "postgres",
			d:     postgres.New(),
			query: `SELECT "id" FROM "users" WHERE "status" = $1 AND "role" IN ($2, $3) ORDER BY "id" ASC LIMIT 10 OFFSET 20`,
		},
		{
			name:  "sqlite",
			d:     sqlite.New(),
			query: `SELECT "id" FROM "users" WHERE "status" = ? AND "role" IN (?, ?) ORDER BY "id" ASC LIMIT 10 OFFSET 20`,
		},
		{
			name:  "mssql",
			d:     mssql.New(),
			query: "SELECT [id] FROM [users] WHERE [status] = @p1 AND [role] IN (@p2, @p3) ORDER BY [id] ASC OFFSET 20 ROWS FETCH NEXT 10 ROWS ONLY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, params, err := build(tt.d).Query()
			condqltest.AssertRendered(t, tt.query, []any{"active", "admin", "owner"}, query, params, err)
		})
	}

	t.Run("mssql requires order by", func(t *testing.T) {
		_, _, err := condql.Select(mssql.New()).From("users").Limit(5).Query()
		if !condql.IsUnsupportedFeature(err) {
			t.Fatalf("Query() error = %v, want unsupported feature", err)
		}
		var ufErr condql.UnsupportedFeatureError
		if !errors.As(err, &ufErr) || ufErr.Hint == "" {
			t.Errorf("UnsupportedFeatureError = %+v", ufErr)
		}
	})

	t.Run("sqlite offset only", func(t *testing.T) {
		sql := condql.Select(sqlite.New()).From("users").Offset(3).String()
		condqltest.AssertSQL(t, `SELECT * FROM "users" LIMIT -1 OFFSET 3`, sql)
	})
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name   string
		build  func() *condql.InsertBuilder
		query  string
		params []any
	}{
		{
			name: "rows",
			build: func() *condql.InsertBuilder {
				return condql.Insert(mysql.New(), "users").
					Columns("name", "email").
					Values("ann", "ann@example.com").
					Values("bob", "bob@example.com")
			},
			query:  "INSERT INTO `users` (`name`, `email`) VALUES (?, ?), (?, ?)",
			params: []any{"ann", "ann@example.com", "bob", "bob@example.com"},
		},
		{
			name: "map sorted",
			build: func() *condql.InsertBuilder {
				return condql.Insert(postgres.New(), "users").
					Set(map[string]any{"name": "ann", "age": 30}).
					Returning("id")
			},
			query:  `INSERT INTO "users" ("age", "name") VALUES ($1, $2) RETURNING "id"`,
			params: []any{30, "ann"},
		},
		{
			name: "mysql ignore",
			build: func() *condql.InsertBuilder {
				return condql.Insert(mysql.New(), "tags").Columns("name").Values("go").IgnoreConflicts()
			},
			query:  "INSERT IGNORE INTO `tags` (`name`) VALUES (?)",
			params: []any{"go"},
		},
		{
			name: "sqlite ignore",
			build: func() *condql.InsertBuilder {
				return condql.Insert(sqlite.New(), "tags").Columns("name").Values("go").IgnoreConflicts()
			},
			query:  `INSERT OR IGNORE INTO "tags" ("name") VALUES (?)`,
			params: []any{"go"},
		},
		{
			name: "postgres ignore",
			build: func() *condql.InsertBuilder {
				return condql.Insert(postgres.New(), "tags").Columns("name").Values("go").IgnoreConflicts()
			},
			query:  `INSERT INTO "tags" ("name") VALUES ($1) ON CONFLICT DO NOTHING`,
			params: []any{"go"},
		},
		{
			name: "mariadb returning",
			build: func() *condql.InsertBuilder {
				return condql.Insert(mariadb.New(), "users").Columns("name").Values("ann").Returning("id", "created_at")
			},
			query:  "INSERT INTO `users` (`name`) VALUES (?) RETURNING `id`, `created_at`",
			params: []any{"ann"},
		},
		{
			name: "mssql",
			build: func() *condql.InsertBuilder {
				return condql.Insert(mssql.New(), "dbo.users").Columns("name").Values("ann").Values("bob")
			},
			query:  "INSERT INTO [dbo].[users] ([name]) VALUES (@p1), (@p2)",
			params: []any{"ann", "bob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, params, err := tt.build().Query()
			condqltest.AssertRendered(t, tt.query, tt.params, query, params, err)
		})
	}
}

func TestInsert_Errors(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *condql.InsertBuilder
		sentinel error
	}{
		{
			name:     "no rows",
			build:    func() *condql.InsertBuilder { return condql.Insert(mysql.New(), "t").Columns("a") },
			sentinel: condql.ErrInvalidValue,
		},
		{
			name:     "values before columns",
			build:    func() *condql.InsertBuilder { return condql.Insert(mysql.New(), "t").Values(1) },
			sentinel: condql.ErrInvalidValue,
		},
		{
			name:     "row arity",
			build:    func() *condql.InsertBuilder { return condql.Insert(mysql.New(), "t").Columns("a", "b").Values(1) },
			sentinel: condql.ErrWrongRowValuesCount,
		},
		{
			name:     "empty table",
			build:    func() *condql.InsertBuilder { return condql.Insert(mysql.New(), " ") },
			sentinel: condql.ErrInvalidValue,
		},
		{
			name: "returning on mysql",
			build: func() *condql.InsertBuilder {
				return condql.Insert(mysql.New(), "t").Columns("a").Values(1).Returning("id")
			},
			sentinel: condql.ErrUnsupportedFeature,
		},
		{
			name: "ignore on mssql",
			build: func() *condql.InsertBuilder {
				return condql.Insert(mssql.New(), "t").Columns("a").Values(1).IgnoreConflicts()
			},
			sentinel: condql.ErrUnsupportedFeature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.build().ToSQL()
			condqltest.AssertErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestUpdate(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		b := condql.Update(mysql.New(), "users").
			Set("name", "ann").
			SetRaw("logins", "!logins + ?", 1).
			Where(func(w *condql.Where) { w.Column("id", 7) }).
			OrderBy("id", condql.DESC).
			Limit(1)
		sql, params, err := b.ToSQL()
		condqltest.AssertRendered(t,
			"UPDATE `users` SET `name` = ?, `logins` = `logins` + ? WHERE `id` = ? ORDER BY `id` DESC LIMIT 1",
			[]any{"ann", 1, 7}, sql, params, err)
	})

	t.Run("postgres map", func(t *testing.T) {
		b := condql.Update(postgres.New(), "users").
			SetMap(map[string]any{"name": "ann", "email": "a@example.com"}).
			Where(func(w *condql.Where) { w.Column([]string{"org_id", "id"}, []int{3, 7}) })
		query, params, err := b.Query()
		condqltest.AssertRendered(t,
			`UPDATE "users" SET "email" = $1, "name" = $2 WHERE ("org_id", "id") = ($3, $4)`,
			[]any{"a@example.com", "ann", 3, 7}, query, params, err)
	})

	t.Run("no set", func(t *testing.T) {
		_, _, err := condql.Update(mysql.New(), "users").ToSQL()
		condqltest.AssertErrorIs(t, err, condql.ErrInvalidValue)
	})

	t.Run("limit on postgres", func(t *testing.T) {
		b := condql.Update(postgres.New(), "users").Set("a", 1).Limit(1)
		condqltest.AssertErrorIs(t, b.Err(), condql.ErrUnsupportedFeature)
	})

	t.Run("where clause access", func(t *testing.T) {
		b := condql.Update(mysql.New(), "users").Set("a", 1)
		b.WhereClause().IsNull("deleted_at")
		condqltest.AssertSQL(t, "UPDATE `users` SET `a` = ? WHERE `deleted_at` IS NULL", b.String())
	})
}

func TestDelete(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		b := condql.Delete(mysql.New(), "sessions").
			Where(func(w *condql.Where) { w.ColumnOp("expires_at", "<", "2024-01-01") }).
			OrderBy("expires_at", condql.ASC).
			Limit(100)
		sql, params, err := b.ToSQL()
		condqltest.AssertRendered(t,
			"DELETE FROM `sessions` WHERE `expires_at` < ? ORDER BY `expires_at` ASC LIMIT 100",
			[]any{"2024-01-01"}, sql, params, err)
	})

	t.Run("mssql", func(t *testing.T) {
		b := condql.Delete(mssql.New(), "sessions").
			Where(func(w *condql.Where) { w.Column("user_id", []int{1, 2}).OrIsNull("user_id") })
		query, params, err := b.Query()
		condqltest.AssertRendered(t,
			"DELETE FROM [sessions] WHERE [user_id] IN (@p1, @p2) OR [user_id] IS NULL",
			[]any{1, 2}, query, params, err)
	})

	t.Run("without where", func(t *testing.T) {
		condqltest.AssertSQL(t, `DELETE FROM "logs"`, condql.Delete(sqlite.New(), "logs").String())
	})

	t.Run("limit on sqlite", func(t *testing.T) {
		b := condql.Delete(sqlite.New(), "logs").Limit(10)
		condqltest.AssertErrorIs(t, b.Err(), condql.ErrUnsupportedFeature)
	})

	t.Run("no dialect", func(t *testing.T) {
		_, _, err := condql.Delete(nil, "logs").ToSQL()
		condqltest.AssertErrorIs(t, err, condql.ErrUndefinedDialect)
	})
}
