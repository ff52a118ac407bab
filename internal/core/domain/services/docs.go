// Package services contains domain services that implement business logic
// spanning value objects without belonging to a single aggregate. The fee
// calculator lives here: it turns parcel details and urgency into a
// deterministic fee breakdown.
package services
