// Package messaging publishes domain events to a message broker.
//
// Business code depends on Publisher only; the broker (NATS, NSQ or Kafka) is
// chosen from configuration by NewFromDriver. The service never consumes its
// own events, so there is no consumer side.
package messaging
