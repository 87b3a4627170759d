// Package messaging publishes and consumes events over a pluggable broker.
//
// Business code depends on Publisher and Consumer only; the broker (NATS,
// Kafka, NSQ, Google Pub/Sub, RabbitMQ or the in-process Memory bus) is picked
// from configuration by NewFromDriver.
//
// Every consumer acknowledges a message when its handler returns nil and asks
// for redelivery otherwise.
package messaging
