// Package logging constructs the slog loggers used across sortify.
//
// It offers a console handler that renders timestamp, level, component prefix,
// and flattened key=value attributes on a single line, plus a JSON handler for
// machine consumption. Attr helpers and standardized field names keep log keys
// consistent between the CLI layer and the sorter core.
package logging
