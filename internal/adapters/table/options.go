package table

// Option applies a configuration option to Open.
type Option func(*options)

type options struct {
	name  string
	sheet string
	table string
}

// WithName sets the dataset name used in error messages.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithSheet selects the worksheet of a spreadsheet. Defaults to the first
// sheet.
func WithSheet(sheet string) Option {
	return func(o *options) {
		o.sheet = sheet
	}
}

// WithSQLTable selects the table of a SQLite database. Defaults to the
// dataset name.
func WithSQLTable(table string) Option {
	return func(o *options) {
		o.table = table
	}
}
