package http

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/core/domain/services"
)

type EndpointBody struct {
	Address      string  `json:"address"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	ContactName  string  `json:"contact_name"`
	ContactPhone string  `json:"contact_phone"`
}

type ParcelBody struct {
	Description         string   `json:"description"`
	DeclaredValue       *float64 `json:"declared_value,omitempty"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

type CreateDeliveryRequestBody struct {
	Pickup           EndpointBody `json:"pickup"`
	Dropoff          EndpointBody `json:"dropoff"`
	Parcel           ParcelBody   `json:"parcel"`
	Price            float64      `json:"price"`
	EstimatedMinutes int          `json:"estimated_minutes"`
}

type TransitionBody struct {
	Status string `json:"status"`
}

type RegisterDeliveryPersonBody struct {
	VehicleType  string `json:"vehicle_type"`
	LicensePlate string `json:"license_plate"`
}

type LocationBody struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type AvailabilityBody struct {
	Available bool `json:"available"`
}

type DeliveryRequestResponse struct {
	ID               kernel.UUID  `json:"id"`
	UserID           kernel.UUID  `json:"user_id"`
	DeliveryPersonID *kernel.UUID `json:"delivery_person_id"`
	Pickup           EndpointBody `json:"pickup"`
	Dropoff          EndpointBody `json:"dropoff"`
	Parcel           ParcelBody   `json:"parcel"`
	Status           string       `json:"status"`
	Price            float64      `json:"price"`
	EstimatedMinutes int          `json:"estimated_minutes,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

type DeliveryPersonResponse struct {
	ID                  kernel.UUID `json:"id"`
	UserID              kernel.UUID `json:"user_id"`
	VehicleType         string      `json:"vehicle_type"`
	LicensePlate        string      `json:"license_plate,omitempty"`
	IsAvailable         bool        `json:"is_available"`
	CurrentLat          *float64    `json:"current_lat"`
	CurrentLng          *float64    `json:"current_lng"`
	LocationUpdatedAt   *time.Time  `json:"location_updated_at"`
	Rating              float64     `json:"rating"`
	CompletedDeliveries int         `json:"completed_deliveries"`
	CreatedAt           time.Time   `json:"created_at"`
}

type NearbyDeliveryPersonResponse struct {
	DeliveryPersonResponse
	DistanceKm float64 `json:"distance_km"`
}

type LocationUpdateResponse struct {
	Updated bool `json:"updated"`
}

func toEndpointBody(e request.Endpoint) EndpointBody {
	return EndpointBody{
		Address:      e.Address(),
		Lat:          e.Location().Lat(),
		Lng:          e.Location().Lng(),
		ContactName:  e.ContactName(),
		ContactPhone: e.ContactPhone(),
	}
}

func toDeliveryRequestResponse(r *request.DeliveryRequest) DeliveryRequestResponse {
	return DeliveryRequestResponse{
		ID:               r.ID(),
		UserID:           r.UserID(),
		DeliveryPersonID: r.DeliveryPersonID(),
		Pickup:           toEndpointBody(r.Pickup()),
		Dropoff:          toEndpointBody(r.Dropoff()),
		Parcel: ParcelBody{
			Description:         r.Parcel().Description(),
			DeclaredValue:       r.Parcel().DeclaredValue(),
			SpecialInstructions: r.Parcel().SpecialInstructions(),
		},
		Status:           r.Status().String(),
		Price:            r.Price(),
		EstimatedMinutes: r.EstimatedMinutes(),
		CreatedAt:        r.CreatedAt(),
		UpdatedAt:        r.UpdatedAt(),
	}
}

func toDeliveryRequestResponses(rs []*request.DeliveryRequest) []DeliveryRequestResponse {
	out := make([]DeliveryRequestResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toDeliveryRequestResponse(r))
	}
	return out
}

func toDeliveryPersonResponse(p *person.DeliveryPerson) DeliveryPersonResponse {
	resp := DeliveryPersonResponse{
		ID:                  p.ID(),
		UserID:              p.UserID(),
		VehicleType:         p.Vehicle().String(),
		LicensePlate:        p.LicensePlate(),
		IsAvailable:         p.IsAvailable(),
		LocationUpdatedAt:   p.LocationUpdatedAt(),
		Rating:              p.Rating(),
		CompletedDeliveries: p.CompletedDeliveries(),
		CreatedAt:           p.CreatedAt(),
	}
	if loc := p.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		resp.CurrentLat = &lat
		resp.CurrentLng = &lng
	}
	return resp
}

func toDeliveryPersonResponses(ps []*person.DeliveryPerson) []DeliveryPersonResponse {
	out := make([]DeliveryPersonResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toDeliveryPersonResponse(p))
	}
	return out
}

func toNearbyResponses(ranked []services.Nearby) []NearbyDeliveryPersonResponse {
	out := make([]NearbyDeliveryPersonResponse, 0, len(ranked))
	for _, n := range ranked {
		out = append(out, NearbyDeliveryPersonResponse{
			DeliveryPersonResponse: toDeliveryPersonResponse(n.Person),
			DistanceKm:             n.DistanceKm,
		})
	}
	return out
}
