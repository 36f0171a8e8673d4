package models

// Property occupancy states.
const (
	PropertyStatusVacant   = "vacant"
	PropertyStatusOccupied = "occupied"
)

// Property is a rentable unit. Status flips between vacant and occupied as
// tenants are assigned and removed; new properties start vacant.
type Property struct {
	Base        `bson:",inline"`
	Name        string  `bson:"name" json:"name"`
	Address     string  `bson:"address" json:"address"`
	Type        string  `bson:"type" json:"type"` // e.g. apartment, studio, commercial
	MonthlyRent float64 `bson:"monthly_rent" json:"monthly_rent"`
	FloorLevel  string  `bson:"floor_level,omitempty" json:"floor_level,omitempty"`
	UnitNumber  string  `bson:"unit_number,omitempty" json:"unit_number,omitempty"`
	RoomDetails string  `bson:"room_details,omitempty" json:"room_details,omitempty"`
	Status      string  `bson:"status" json:"status"`
}
