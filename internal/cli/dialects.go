package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoobzio/condql"
	"github.com/zoobzio/condql/mariadb"
	"github.com/zoobzio/condql/mssql"
	"github.com/zoobzio/condql/mysql"
	"github.com/zoobzio/condql/postgres"
	"github.com/zoobzio/condql/sqlite"
)

var dialects = map[string]func() condql.Dialect{
	"mariadb":  func() condql.Dialect { return mariadb.New() },
	"mssql":    func() condql.Dialect { return mssql.New() },
	"mysql":    func() condql.Dialect { return mysql.New() },
	"postgres": func() condql.Dialect { return postgres.New() },
	"sqlite":   func() condql.Dialect { return sqlite.New() },
}

// DialectNames returns the supported dialect names in sorted order.
func DialectNames() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupDialect returns a fresh dialect by name, case-insensitively.
func LookupDialect(name string) (condql.Dialect, error) {
	ctor, ok := dialects[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (supported: %s)", name, strings.Join(DialectNames(), ", "))
	}
	return ctor(), nil
}

// dialectInfo describes a dialect for the dialects command.
type dialectInfo struct {
	Name          string `json:"name"`
	RowValues     bool   `json:"row_values"`
	Returning     bool   `json:"returning"`
	RowLocking    bool   `json:"row_locking"`
	MutationLimit bool   `json:"mutation_limit"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List supported dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := make([]dialectInfo, 0, len(dialects))
			for _, name := range DialectNames() {
				caps := dialects[name]().Capabilities()
				infos = append(infos, dialectInfo{
					Name:          name,
					RowValues:     caps.RowValues,
					Returning:     caps.Returning,
					RowLocking:    caps.RowLocking,
					MutationLimit: caps.MutationLimit,
				})
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}
			for _, info := range infos {
				fmt.Fprintln(out, info.Name)
			}
			return nil
		},
	}
}
