// Package domain defines the DTOs exchanged with the backend and the
// contracts (stores, clients, services) the rest of the client is built on.
// It contains plain types and interfaces only; the backend owns every entity.
package domain
