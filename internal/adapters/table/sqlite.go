package table

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" driver
)

func readSQLite(ctx context.Context, path, table string) ([]string, [][]string, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()

	query := "SELECT * FROM " + quoteIdent(table)
	rs, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer func() { _ = rs.Close() }()

	header, err := rs.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("columns of %s: %w", table, err)
	}

	var rows [][]string
	vals := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rs.Next() {
		if err := rs.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan %s: %w", table, err)
		}
		rec := make([]string, len(vals))
		for i, v := range vals {
			rec[i] = cellText(v)
		}
		rows = append(rows, rec)
	}
	if err := rs.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return header, rows, nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}
