package graphqlserver

import (
	"context"
	"errors"

	"inventory.GO/graphql"
	gqlmodels "inventory.GO/graphql/models"
	"inventory.GO/graphql/registry"
	systemRepo "inventory.GO/model/repository/system"
)

const defaultRecentRuns = 10

func init() {
	// _extension(name: "recentSyncRuns", args: "{\"limit\": 5}")
	registry.Register("recentSyncRuns", recentSyncRuns)
}

func recentSyncRuns(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	db := graphql.DBFromContext(ctx)
	if db == nil {
		return nil, errors.New("recentSyncRuns: no database in context")
	}
	limit := defaultRecentRuns
	if v, ok := args["limit"].(float64); ok && v > 0 && v <= 100 {
		limit = int(v)
	}
	runs, err := systemRepo.NewRunRepository(db).Recent(limit)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.SyncRun, 0, len(runs))
	for i := range runs {
		out = append(out, SyncRunModel(&runs[i]))
	}
	return out, nil
}
