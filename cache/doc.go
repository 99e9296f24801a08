// Package cache provides a TTL cache for computed health reports.
//
// The cache absorbs probe storms: within the TTL window concurrent and
// repeated requests for the same report type are served from one stored
// payload, and concurrent misses deduplicate into a single in-flight
// recomputation via singleflight. Stale entries are not actively evicted;
// they are superseded by the next successful computation.
//
//	reports := cache.NewMemory[Report](cache.Policy{TTL: 5 * time.Second})
//
//	report, err := reports.GetOrCompute(ctx, "detailed", buildDetailed)
package cache
