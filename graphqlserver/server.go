package graphqlserver

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"inventory.GO/api"
	"inventory.GO/graphql"
	gqlmodels "inventory.GO/graphql/models"
	"inventory.GO/graphql/registry"
	inventoryEntity "inventory.GO/model/entity/inventory"
	systemEntity "inventory.GO/model/entity/system"
	inventoryService "inventory.GO/service/inventory"
	reportService "inventory.GO/service/report"
)

// RootResolver is the root for graphql-go.
type RootResolver struct {
	deps *api.Deps
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{deps: r.deps}
}

// QueryResolver implements Query fields on top of the services in deps.
type QueryResolver struct {
	deps *api.Deps
}

type SearchArgs struct {
	Search *string
}

func (r *QueryResolver) Items(ctx context.Context, args SearchArgs) ([]*ItemResolver, error) {
	items, err := r.deps.Inventory.ListItems(deref(args.Search))
	if err != nil {
		return nil, err
	}
	out := make([]*ItemResolver, 0, len(items))
	for i := range items {
		out = append(out, &ItemResolver{item: items[i], deps: r.deps})
	}
	return out, nil
}

type ItemArgs struct {
	ID string
}

// Item returns null for an unknown id.
func (r *QueryResolver) Item(ctx context.Context, args ItemArgs) (*ItemResolver, error) {
	details, err := r.deps.Inventory.GetItem(args.ID)
	if err != nil {
		if errors.Is(err, inventoryService.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	subs := make([]*gqlmodels.Subcomponent, 0, len(details.Subcomponents))
	for _, d := range details.Subcomponents {
		subs = append(subs, &gqlmodels.Subcomponent{
			SubcomponentID:   d.SubcomponentID,
			Name:             d.Name,
			Stock:            d.Stock,
			QuantityRequired: d.QuantityRequired,
		})
	}
	return &ItemResolver{item: details.InventoryItem, deps: r.deps, subs: subs, loaded: true}, nil
}

func (r *QueryResolver) ReorderAdvisory(ctx context.Context, args SearchArgs) ([]*gqlmodels.ReorderAdvice, error) {
	advice, err := r.deps.Inventory.ReorderAdvisory(deref(args.Search))
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.ReorderAdvice, 0, len(advice))
	for _, a := range advice {
		out = append(out, &gqlmodels.ReorderAdvice{
			ItemID:            a.ItemID,
			Name:              a.Name,
			Stock:             a.Stock,
			ReorderThreshold:  a.ReorderThreshold,
			SuggestedQuantity: a.SuggestedQuantity,
			Supplier:          a.Supplier,
		})
	}
	return out, nil
}

func (r *QueryResolver) SyncStatus(ctx context.Context) (*gqlmodels.SyncStatus, error) {
	st, err := r.deps.Sync.Status(ctx)
	if err != nil {
		return nil, err
	}
	out := &gqlmodels.SyncStatus{LastAssessed: formatTime(st.LastAssessed)}
	if st.LastRun != nil {
		out.LastRun = SyncRunModel(st.LastRun)
	}
	return out, nil
}

type DailySalesArgs struct {
	StartDate *string
	EndDate   *string
}

func (r *QueryResolver) DailySales(ctx context.Context, args DailySalesArgs) ([]*gqlmodels.DailySales, error) {
	start, end, err := reportService.ParseRange(deref(args.StartDate), deref(args.EndDate), time.Now())
	if err != nil {
		return nil, err
	}
	days, err := r.deps.Reports.DailyTotals(start, end)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.DailySales, 0, len(days))
	for _, d := range days {
		out = append(out, &gqlmodels.DailySales{
			Date:     d.Date,
			Quantity: d.Quantity,
			Revenue:  d.Revenue.StringFixed(2),
			Lines:    int32(d.Lines),
		})
	}
	return out, nil
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	m := make(map[string]interface{})
	if args.Args != nil && *args.Args != "" {
		if err := json.Unmarshal([]byte(*args.Args), &m); err != nil {
			return nil, err
		}
	}
	out, err := registry.Resolve(graphql.WithDB(ctx, r.deps.DB), args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// ItemResolver resolves Item. Subcomponents load lazily for list results.
type ItemResolver struct {
	item   inventoryEntity.InventoryItem
	deps   *api.Deps
	subs   []*gqlmodels.Subcomponent
	loaded bool
}

func (r *ItemResolver) ID() string { return r.item.ID }
func (r *ItemResolver) Name() string { return r.item.Name }
func (r *ItemResolver) Stock() float64 { return r.item.Stock }
func (r *ItemResolver) ReorderThreshold() *float64 { return r.item.ReorderThreshold }
func (r *ItemResolver) ReorderQuantity() *float64 { return r.item.ReorderQuantity }
func (r *ItemResolver) Supplier() *string { return r.item.Supplier }
func (r *ItemResolver) IsMix() bool { return r.item.IsMix }
func (r *ItemResolver) NeedsReorder() bool { return r.item.NeedsReorder() }

func (r *ItemResolver) Subcomponents(ctx context.Context) ([]*gqlmodels.Subcomponent, error) {
	if r.loaded {
		return r.subs, nil
	}
	full, err := (&QueryResolver{deps: r.deps}).Item(ctx, ItemArgs{ID: r.item.ID})
	if err != nil {
		return nil, err
	}
	if full == nil {
		return []*gqlmodels.Subcomponent{}, nil
	}
	r.subs, r.loaded = full.subs, true
	return r.subs, nil
}

// SyncRunModel maps a sync_run row to its GraphQL shape.
func SyncRunModel(run *systemEntity.SyncRun) *gqlmodels.SyncRun {
	m := &gqlmodels.SyncRun{
		ID:             run.ID,
		Kind:           run.Kind,
		Status:         run.Status,
		StartedAt:      formatTime(run.StartedAt),
		FinishedAt:     formatTimePtr(run.FinishedAt),
		WindowStart:    formatTimePtr(run.WindowStart),
		WindowEnd:      formatTimePtr(run.WindowEnd),
		NewItems:       int32(run.NewItems),
		Orders:         int32(run.Orders),
		SalesProcessed: int32(run.SalesProcessed),
		Skipped:        int32(run.Skipped),
	}
	if len(run.Warnings) > 0 {
		w := string(run.Warnings)
		m.Warnings = &w
	}
	if run.Error != "" {
		e := run.Error
		m.Error = &e
	}
	return m
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(deps *api.Deps) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{deps: deps}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
