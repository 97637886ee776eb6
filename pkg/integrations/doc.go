// Package integrations provides HTTP clients for the services a report
// talks to.
//
// # Overview
//
// Each service has its own subpackage:
//
//   - [metabase]: runs a saved card query and returns its rows
//   - [discord]: posts a rendered report to a channel webhook
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by both
// services:
//
//   - Default headers applied to every request
//   - Retry with exponential backoff for 429 and 5xx gateway responses
//     (see [httputil.Policy])
//   - Status classification into coded errors (UNAUTHORIZED, RATE_LIMITED,
//     NETWORK_ERROR)
//   - Request and response events sent to [observability.HTTP]
//
// Requests are rebuilt for every attempt so request bodies can be replayed:
//
//	body, err := client.Do(ctx, func(ctx context.Context) (*http.Request, error) {
//	    return http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
//	})
//
// [metabase]: github.com/matzehuels/tablecast/pkg/integrations/metabase
// [discord]: github.com/matzehuels/tablecast/pkg/integrations/discord
package integrations
