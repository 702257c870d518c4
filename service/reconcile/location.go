package reconcile

import (
	"context"
	"fmt"
	"strings"
)

const locationCacheTag = "square:location"

// resolveLocation returns the configured location id, or the first location when no
// name is configured. Resolved ids are cached for LocationTTL.
func (e *Engine) resolveLocation(ctx context.Context) (string, error) {
	key := "square:location:" + strings.ToLower(e.opts.LocationName)
	if id, ok := e.opts.Cache.GetString(key); ok {
		return id, nil
	}

	locations, err := e.source.Locations(ctx)
	if err != nil {
		return "", fmt.Errorf("list locations: %w", err)
	}
	if len(locations) == 0 {
		return "", fmt.Errorf("%w: account has no locations", ErrUnresolvedLocation)
	}

	id := locations[0].ID
	if name := strings.TrimSpace(e.opts.LocationName); name != "" {
		id = ""
		for _, loc := range locations {
			if strings.EqualFold(strings.TrimSpace(loc.Name), name) {
				id = loc.ID
				break
			}
		}
		if id == "" {
			return "", fmt.Errorf("%w: no location named %q", ErrUnresolvedLocation, name)
		}
	}
	if id == "" {
		return "", fmt.Errorf("%w: location without id", ErrUnresolvedLocation)
	}
	e.opts.Cache.Set(key, id, e.opts.LocationTTL, locationCacheTag)
	return id, nil
}

// ForgetLocation drops cached location ids so the next pass lists locations again.
func (e *Engine) ForgetLocation() {
	e.opts.Cache.DeleteByTag(locationCacheTag)
}
