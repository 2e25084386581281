package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"keywatch/internal/db"
	"keywatch/internal/mongodb"
	"keywatch/internal/store"
	"keywatch/internal/store/memory"
)

// OpenStore connects to the keyword store named by connString. The URL scheme
// selects the backend; Postgres schemas are migrated before returning.
func OpenStore(ctx context.Context, connString string) (store.Store, error) {
	u, err := url.Parse(connString)
	if err != nil {
		return nil, fmt.Errorf("invalid store connection string: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		database, err := db.New(ctx, connString)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(connString); err != nil {
			database.Close()
			return nil, err
		}
		slog.Info("connected to postgres", "host", u.Host)
		return database, nil
	case "mongodb", "mongodb+srv":
		s, err := mongodb.New(ctx, connString)
		if err != nil {
			return nil, err
		}
		slog.Info("connected to mongodb", "host", u.Host, "database", mongodb.DatabaseName(connString))
		return s, nil
	case "memory":
		slog.Warn("using in-memory keyword store; keywords are lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported store scheme %q", u.Scheme)
	}
}
