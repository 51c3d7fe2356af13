package instance

import "github.com/angelmondragon/urbanx-storefront/pkg/env"

// GetID returns the process instance identifier used in startup logs.
// Platform provided names win over the host name.
func GetID() string {
	return env.First("local", "URBANX_INSTANCE_ID", "DYNO", "HOSTNAME")
}
