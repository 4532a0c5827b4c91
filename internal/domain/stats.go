package domain

// ActivityStars is the mean star value over every rating of every product
// under one activity.
type ActivityStars struct {
	Activity string  `json:"activity"`
	Stars    float64 `json:"stars"`
}

// StarGroup collects the products whose per-product mean equals Stars.
// Products are in ascending order.
type StarGroup struct {
	Stars    float64  `json:"stars"`
	Products []string `json:"products"`
}
