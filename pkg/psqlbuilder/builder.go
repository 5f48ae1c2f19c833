package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder squirrel avec les placeholders Postgres ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select commence un SELECT
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert commence un INSERT
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Update commence un UPDATE
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete commence un DELETE
func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}
