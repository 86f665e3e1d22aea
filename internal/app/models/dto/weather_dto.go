package dto

// WeatherQuery represents the coordinates of a weather lookup
type WeatherQuery struct {
	Lat *float64 `form:"lat" binding:"required,gte=-90,lte=90"`
	Lon *float64 `form:"lon" binding:"required,gte=-180,lte=180"`
}

// WeatherResponse represents current conditions at a location
type WeatherResponse struct {
	Temp        int     `json:"temp" example:"12"`
	FeelsLike   int     `json:"feels_like" example:"10"`
	Humidity    float64 `json:"humidity" example:"64"`
	Description string  `json:"description" example:"Parçalı bulutlu"`
	Icon        string  `json:"icon" example:"03d"`
	City        string  `json:"city" example:"Erzurum"`
	Country     string  `json:"country"`
}
