package models

// TruckLocation is one stop on the food truck's weekly schedule.
type TruckLocation struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Location     string      `json:"location"`
	Address      string      `json:"address"`
	Coordinates  Coordinates `json:"coordinates"`
	DayOfWeek    int         `json:"dayOfWeek"` // 0 = Sunday, 6 = Saturday
	StartTime    string      `json:"startTime"`
	EndTime      string      `json:"endTime"`
	SpecialEvent string      `json:"specialEvent,omitempty"`
}
