// Package health defines the minimal liveness contract implemented by
// storage backends.
package health

import "context"

// HealthPinger reports whether a dependency can serve traffic.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
