// Package middleware groups the Fiber middleware installed by the start
// command.
//
//   - rayid tags every request with an X-Ray-ID, reusing a valid client
//     supplied UUID, and exposes it to logger.WithRayID.
//   - auth rejects requests whose X-API-Key does not match the configured
//     key. An empty key leaves the API open, which suits local use.
//
// rayid runs first so rejected requests are still traceable. The swagger
// routes are registered before auth and stay public.
package middleware
