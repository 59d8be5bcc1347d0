// Package core contains the shared contracts of the Cuenca SDK: configuration,
// error envelopes, logging and metrics hooks. The transport and resource
// packages depend on core; core must not depend on them.
package core
