// Package all wires every built-in SQL backend into the storage registry.
//
// Importing it for side effects makes the "sqlite", "postgres" and "mssql"
// kinds available to storage.New:
//
//	import _ "movieratings/internal/storage/all"
package all

import (
	_ "movieratings/internal/storage/mssql"
	_ "movieratings/internal/storage/postgres"
	_ "movieratings/internal/storage/sqlite"
)
