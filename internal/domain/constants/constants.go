// Package constants holds cross-layer constant values.
package constants

// Pub/Sub provider names accepted by the pubsub.provider config key.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
