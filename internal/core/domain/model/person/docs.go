// Package person provides the DeliveryPerson aggregate: the availability and
// location profile of a delivery-role user.
//
// Key business rules:
//   - One profile per user, linked through userID
//   - Location reports are last-write-wins and never fail for a known profile
//   - Rating and completed deliveries are read-only here
package person
