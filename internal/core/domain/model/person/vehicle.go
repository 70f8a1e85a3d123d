package person

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// VehicleType is how a delivery person moves parcels around.
type VehicleType int

const (
	VehicleUnknown VehicleType = iota
	VehicleBike
	VehicleMotorcycle
	VehicleCar
	VehicleWalking
)

func getVehicleStrings() map[VehicleType]string {
	return map[VehicleType]string{
		VehicleUnknown:    "unknown",
		VehicleBike:       "bike",
		VehicleMotorcycle: "motorcycle",
		VehicleCar:        "car",
		VehicleWalking:    "walking",
	}
}

// ParseVehicleType converts a wire name ("bike", "motorcycle", "car", "walking").
func ParseVehicleType(s string) (VehicleType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for v, name := range getVehicleStrings() {
		if v != VehicleUnknown && name == normalized {
			return v, nil
		}
	}
	return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%q is not a known vehicle", s))
}

func (v VehicleType) Validate() error {
	if v < VehicleBike || v > VehicleWalking {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%d is not a valid vehicle", v))
	}
	return nil
}

func (v VehicleType) String() string {
	if s, ok := getVehicleStrings()[v]; ok {
		return s
	}
	return "unknown"
}
