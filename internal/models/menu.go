package models

// MenuItem is a dish on the food truck menu.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	CategoryID  string   `json:"categoryId"`
	Image       string   `json:"image,omitempty"`
	Available   bool     `json:"available"`
	Dietary     []string `json:"dietary"`
	Popular     bool     `json:"popular"`
	Calories    int      `json:"calories"`
}
