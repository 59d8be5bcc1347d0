// Package webhooks verifies and dispatches callbacks sent by the Cuenca API.
//
// Payloads are signed with HMAC-SHA256 over the raw body using the webhook
// secret configured on the transport client.
package webhooks
