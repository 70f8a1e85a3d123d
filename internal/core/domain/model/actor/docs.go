// Package actor describes who is performing an operation: an identity plus
// one of three roles (user, delivery, admin).
package actor
